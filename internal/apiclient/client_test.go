package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/zirospace/zirospace-cms/internal/admin"
	"github.com/zirospace/zirospace-cms/internal/blogposts"
	"github.com/zirospace/zirospace-cms/internal/casestudies"
	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/httpapi"
	"github.com/zirospace/zirospace-cms/internal/services"
	"github.com/zirospace/zirospace-cms/internal/store"
	"github.com/zirospace/zirospace-cms/pkg/testsupport"
)

func newBackedClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db := testsupport.NewSQLiteDB(t)
	opts := []store.Option{
		store.WithClock(testsupport.SteppingClock(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), time.Second)),
	}
	caseRepo := casestudies.NewRemoteRepository(db, opts...)
	postRepo := blogposts.NewRemoteRepository(db, opts...)
	offerRepo := services.NewRemoteRepository(db, opts...)
	for _, locale := range domain.SupportedLocales {
		require.NoError(t, caseRepo.EnsureSchema(ctx, locale))
		require.NoError(t, postRepo.EnsureSchema(ctx, locale))
		require.NoError(t, offerRepo.EnsureSchema(ctx, locale))
	}

	srv := httptest.NewServer(httpapi.New(httpapi.Services{
		CaseStudies: casestudies.NewService(caseRepo),
		BlogPosts:   blogposts.NewService(postRepo),
		Services:    services.NewService(offerRepo, nil),
	}))
	t.Cleanup(srv.Close)

	client, err := New(srv.URL + "/")
	require.NoError(t, err)
	return client
}

func TestResourceRoundTripAndTypedErrors(t *testing.T) {
	client := newBackedClient(t)
	offerings := NewResource[services.Offering, services.CreateOfferingInput, services.OfferingPatch](
		client, httpapi.SegmentServices, "service")
	ctx := context.Background()

	created, err := offerings.Create(ctx, services.CreateOfferingInput{Title: "  Web App  "}, domain.LocaleEN)
	require.NoError(t, err)
	require.Equal(t, "Web App", created.Title)
	require.Equal(t, "web-app", created.Slug)

	bySlug, err := offerings.GetBySlug(ctx, "web-app", domain.LocaleEN)
	require.NoError(t, err)
	require.Equal(t, created.ID, bySlug.ID)

	missing, err := offerings.Get(ctx, "ghost", domain.LocaleEN)
	require.NoError(t, err)
	require.Nil(t, missing)

	title := "Ghost"
	_, err = offerings.Update(ctx, "ghost", services.OfferingPatch{Title: &title}, domain.LocaleEN)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "ghost", notFound.Key)
	require.Equal(t, domain.LocaleEN, notFound.Locale)

	_, err = offerings.Create(ctx, services.CreateOfferingInput{Title: " "}, domain.LocaleEN)
	var invalid *domain.ValidationError
	require.ErrorAs(t, err, &invalid)
	require.Contains(t, invalid.Fields(), "title")

	require.NoError(t, offerings.Delete(ctx, created.ID, domain.LocaleEN))
	require.True(t, domain.IsNotFound(offerings.Delete(ctx, created.ID, domain.LocaleEN)))
}

func TestAdminStoreOverHTTP_PinScenario(t *testing.T) {
	client := newBackedClient(t)
	st := admin.NewStore(Backends(client))
	ctx := context.Background()

	a, err := st.BlogPosts.Create(ctx, domain.LocaleEN, blogposts.CreateBlogPostInput{Title: "A", IsPinned: true})
	require.NoError(t, err)
	b, err := st.BlogPosts.Create(ctx, domain.LocaleEN, blogposts.CreateBlogPostInput{Title: "B"})
	require.NoError(t, err)

	require.NoError(t, st.Pins.Pin(ctx, domain.LocaleEN, b.ID))
	require.NoError(t, st.BlogPosts.Refresh(ctx, domain.LocaleEN))

	pinned := map[string]bool{}
	for _, post := range st.BlogPosts.Items(domain.LocaleEN) {
		pinned[post.ID] = post.IsPinned
	}
	require.False(t, pinned[a.ID])
	require.True(t, pinned[b.ID])

	remote, err := NewBlogPosts(client).Get(ctx, b.ID, domain.LocaleEN)
	require.NoError(t, err)
	require.True(t, remote.IsPinned)
}

func TestAdminStoreOverHTTP_ReorderScenario(t *testing.T) {
	client := newBackedClient(t)
	st := admin.NewStore(Backends(client))
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"S1", "S2", "S3"} {
		created, err := st.CaseStudies.Create(ctx, domain.LocalePL, casestudies.CreateCaseStudyInput{Title: title})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}
	require.NoError(t, st.CaseStudies.Reorder(ctx, domain.LocalePL, []string{ids[2], ids[0], ids[1]}))
	require.NoError(t, st.CaseStudies.Refresh(ctx, domain.LocalePL))

	var titles []string
	for _, cs := range st.CaseStudies.Items(domain.LocalePL) {
		titles = append(titles, cs.Title)
	}
	require.Equal(t, []string{"S3", "S1", "S2"}, titles)

	err := st.Testimonials.Reorder(ctx, domain.LocalePL, []string{"x"})
	require.ErrorIs(t, err, admin.ErrReorderUnsupported)
}

func TestDecodeErrorByStatus(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
		kind   domain.Kind
	}{
		"conflict":    {http.StatusConflict, `{"error":"dup","code":"conflict","details":"slug taken"}`, domain.KindConflict},
		"partial":     {http.StatusBadGateway, `{"error":"half","code":"partial_failure","details":"pin b"}`, domain.KindPartial},
		"unavailable": {http.StatusServiceUnavailable, `upstream down`, domain.KindTransport},
		"internal":    {http.StatusInternalServerError, `{"error":"boom","code":"store","details":"db closed"}`, domain.KindStore},
		"mapping":     {http.StatusInternalServerError, `{"error":"bad row","code":"mapping","details":"title"}`, domain.KindMapping},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client, err := New(srv.URL)
			require.NoError(t, err)
			_, err = NewResource[services.Offering, services.CreateOfferingInput, services.OfferingPatch](
				client, httpapi.SegmentServices, "service").List(context.Background(), domain.LocaleEN)
			require.Equal(t, tc.kind, domain.KindOf(err), "got %v", err)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := New(url)
	require.NoError(t, err)
	_, err = NewResource[services.Offering, services.CreateOfferingInput, services.OfferingPatch](
		client, httpapi.SegmentServices, "service").List(context.Background(), domain.LocaleEN)

	var transport *domain.TransportError
	require.True(t, errors.As(err, &transport), "got %v", err)
	require.Equal(t, domain.KindTransport, domain.KindOf(err))
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("localhost:8080")
	require.Error(t, err)
}
