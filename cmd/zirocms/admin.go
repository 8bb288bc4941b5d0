package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zirospace/zirospace-cms/internal/admin"
	"github.com/zirospace/zirospace-cms/internal/apiclient"
	"github.com/zirospace/zirospace-cms/internal/domain"
)

func newAdminCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Inspect content through the admin API of a running server",
	}
	cmd.AddCommand(newAdminRefreshCommand(opts))
	return cmd
}

func newAdminRefreshCommand(opts *options) *cobra.Command {
	var (
		baseURL string
		locale  string
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Load every collection of a locale and print item counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := domain.ParseLocale(firstNonEmpty(locale, opts.config.DefaultLocale))
			if err != nil {
				return err
			}

			clientOpts := []apiclient.Option{}
			if token := strings.TrimSpace(opts.config.Admin.Token); token != "" {
				clientOpts = append(clientOpts, apiclient.WithHeader("Authorization", "Bearer "+token))
			}
			client, err := apiclient.New(firstNonEmpty(baseURL, opts.config.HTTP.BaseURL), clientOpts...)
			if err != nil {
				return err
			}

			st := admin.NewStore(apiclient.Backends(client), admin.WithTimeout(opts.config.Admin.RequestTimeout))
			refreshErr := st.RefreshAll(cmd.Context(), target)
			printCounts(cmd, st, target)
			return refreshErr
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL (defaults to http.base_url)")
	cmd.Flags().StringVar(&locale, "locale", "", "Locale to load (defaults to default_locale)")
	return cmd
}

func printCounts(cmd *cobra.Command, st *admin.Store, locale domain.Locale) {
	counts := []struct {
		entity string
		items  int
	}{
		{admin.EntityCaseStudies, len(st.CaseStudies.Items(locale))},
		{admin.EntityBlogPosts, len(st.BlogPosts.Items(locale))},
		{admin.EntityTestimonials, len(st.Testimonials.Items(locale))},
		{admin.EntityBanners, len(st.Banners.Items(locale))},
		{admin.EntityServices, len(st.Services.Items(locale))},
		{admin.EntityAdvisors, len(st.Advisors.Items(locale))},
		{admin.EntitySliders, len(st.Sliders.Items(locale))},
	}
	for _, c := range counts {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s %d\n", c.entity, locale, c.items)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
