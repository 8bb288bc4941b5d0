package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/zirospace/zirospace-cms"
)

func newServeCommand(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the public and admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode := strings.TrimSpace(opts.config.HTTP.Mode); mode != "" {
				gin.SetMode(mode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			module, err := cms.New(ctx, opts.config)
			if err != nil {
				return err
			}
			defer module.Close()

			if addr == "" {
				addr = opts.config.HTTP.Addr
			}
			return module.HTTPServer().Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to http.addr)")
	return cmd
}
