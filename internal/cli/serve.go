package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vetsec/url-security/internal/adapters/storage"
	"github.com/vetsec/url-security/internal/api"
	"github.com/vetsec/url-security/internal/application"
	"github.com/vetsec/url-security/internal/config"
	"github.com/vetsec/url-security/internal/domain/heuristics"
	"github.com/vetsec/url-security/internal/ports"
)

func newServeCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP analysis API",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env for local development
			_ = godotenv.Load()

			cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Storage is optional: without a database the API still scores
			// URLs, it just cannot answer queries about past analyses
			var store ports.Storage
			if cfg.Database.URL != "" {
				pg, err := storage.NewPostgresStore(cfg.Database.URL)
				if err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer pg.Close()

				if err := pg.InitSchema(); err != nil {
					return fmt.Errorf("failed to initialize schema: %w", err)
				}

				log.Println("Connected to PostgreSQL")
				store = pg
			} else {
				log.Println("No database configured; running without persistence")
			}

			// Wire the application service (dependency injection via
			// constructor): outer layers connect adapters, inner layers
			// stay free of them
			service := application.NewAnalysisService(store, heuristics.NewEngine(cfg.Lists()))

			if watch {
				if cfgPath == "" {
					log.Println("--watch needs --config; nothing to watch")
				} else {
					watcher := config.NewWatcher(cfgPath, service.ReloadLists)
					go func() {
						if err := watcher.Start(ctx); err != nil {
							log.Printf("List watcher stopped: %v", err)
						}
					}()
				}
			}

			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           api.NewApp(service).Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Printf("urlvet API listening on %s", cfg.Server.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Println("Shutting down...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Reload reference lists when the config file changes")
	return cmd
}
