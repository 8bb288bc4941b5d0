package blogposts

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

func TestMapperRoundTrip(t *testing.T) {
	published := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)
	want := BlogPost{
		ID:          "post-1",
		Title:       "Shipping faster",
		Slug:        "shipping-faster",
		Subtitle:    "Lessons",
		Excerpt:     "Short",
		Content:     "<p>Long</p>",
		ImageURL:    "https://cdn.example.com/p.png",
		ImageAlt:    "Team",
		AuthorName:  "Ola",
		Keywords:    []string{"delivery", "process"},
		IsPinned:    true,
		PublishedAt: &published,
		CreatedAt:   published,
		UpdatedAt:   published.Add(time.Minute),
	}

	got, err := toDomain(toRecord(want))
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestToDomainOptionalFieldsStayEmpty(t *testing.T) {
	got, err := toDomain(record{ID: "p", Title: "T", Slug: "t"})
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}
	if got.PublishedAt != nil {
		t.Fatalf("expected nil published at, got %v", got.PublishedAt)
	}
	if got.Keywords == nil || len(got.Keywords) != 0 {
		t.Fatalf("expected empty keywords, got %#v", got.Keywords)
	}
	if _, err := toDomain(record{ID: "p", Slug: "t"}); domain.KindOf(err) != domain.KindMapping {
		t.Fatalf("expected mapping error for missing title, got %v", err)
	}
}

func TestCreateInputAcceptsEncodedKeywords(t *testing.T) {
	var input CreateBlogPostInput
	payload := `{"title":"x","keywords":"[\"a\",\"b\"]"}`
	if err := json.Unmarshal([]byte(payload), &input); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual([]string(input.Keywords), []string{"a", "b"}) {
		t.Fatalf("expected decoded keywords, got %v", input.Keywords)
	}
}
