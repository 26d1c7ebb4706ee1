package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jbukuts/folio/internal/api"
	"github.com/jbukuts/folio/internal/site"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != "" && servePort != cfg.Port {
			cfg.Port = servePort
			if os.Getenv("SITE_URL") == "" {
				cfg.SiteURL = "http://localhost:" + servePort
			}
		}
		log := newLogger(cfg)

		lib, err := loadLibrary(cfg, log)
		if err != nil {
			return err
		}
		st, err := site.New(cfg, lib, log)
		if err != nil {
			return err
		}
		srv := api.NewServer(st, log, cfg)

		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("starting folio", "port", cfg.Port, "site_url", cfg.SiteURL, "routes", len(st.Routes()))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", os.Getenv("PORT"), "Port to listen on (default $PORT or 3000)")
	rootCmd.AddCommand(serveCmd)
}
