package store

import (
	"testing"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

func TestLayoutTableName(t *testing.T) {
	cases := []struct {
		layout Layout
		entity string
		locale domain.Locale
		want   string
	}{
		{RemoteLayout, "case_studies", domain.LocaleEN, "zirospace_case_studies_en"},
		{RemoteLayout, "case_study_sliders", domain.LocalePL, "zirospace_case_study_sliders_pl"},
		{LocalLayout, "case_studies", domain.LocalePL, "case_studies_pl"},
		{LocalLayout, "blog_posts", domain.LocaleEN, "blog_posts_en"},
	}
	for _, tc := range cases {
		if got := tc.layout.TableName(tc.entity, tc.locale); got != tc.want {
			t.Fatalf("%s layout: expected %s, got %s", tc.layout.Name, tc.want, got)
		}
	}
}
