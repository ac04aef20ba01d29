package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	vitrine "github.com/vitrinehq/vitrine"
	httpAdapter "github.com/vitrinehq/vitrine/internal/adapters/http"
	"github.com/vitrinehq/vitrine/internal/adapters/memory"
	redisAdapter "github.com/vitrinehq/vitrine/internal/adapters/redis"
	"github.com/vitrinehq/vitrine/internal/cli"
	"github.com/vitrinehq/vitrine/internal/config"
	"github.com/vitrinehq/vitrine/internal/presentation/tui"
	"github.com/vitrinehq/vitrine/pkg/observability"
	"github.com/vitrinehq/vitrine/pkg/ports"
	"github.com/vitrinehq/vitrine/pkg/session"
	sessionmw "github.com/vitrinehq/vitrine/pkg/session/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dev server",
	Long: `Starts the Vitrine dev server: catalog inspection, experience
resolution, preview-session management and hot-reload events over SSE.
Sessions live in memory by default; pass --redis to share them across
replicas.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		debug, _ := cmd.Flags().GetBool("debug")
		cfgPath, _ := cmd.Flags().GetString("config")
		watch, _ := cmd.Flags().GetBool("watch")
		redisAddr, _ := cmd.Flags().GetString("redis")
		redisPassword, _ := cmd.Flags().GetString("redis-password")
		redisDB, _ := cmd.Flags().GetInt("redis-db")

		logger := cli.NewLogger(debug)

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		engine := vitrine.New(
			vitrine.WithLogger(logger),
			vitrine.WithLifecycleHooks(metrics.Hooks()),
		)

		// Session storage: Redis when shared across replicas, memory otherwise.
		var store ports.SnapshotStore
		mgrOpts := []session.Option{session.WithLogger(logger)}
		if redisAddr != "" {
			redisStore := redisAdapter.New(redisAddr, redisPassword, redisDB)
			defer redisStore.Close()
			store = redisStore
			mgrOpts = append(mgrOpts,
				session.WithLocker(redisAdapter.NewLocker(redisStore.Client(), "vitrine:preview:")),
			)
		} else {
			store = memory.NewSnapshotStore()
		}

		// VITRINE_SESSION_KEY (base64, 32 bytes decoded) enables at-rest
		// encryption; cursor traces are scrubbed before persisting.
		if encoded := os.Getenv("VITRINE_SESSION_KEY"); encoded != "" {
			key, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil || len(key) != 32 {
				fmt.Println("VITRINE_SESSION_KEY must be 32 bytes, base64-encoded")
				os.Exit(1)
			}
			store = sessionmw.Chain(store,
				sessionmw.NewScrubMiddleware([]string{"^cursor"}),
				sessionmw.NewEncryptionMiddleware(sessionmw.EncryptionConfig{ActiveKey: key}),
			)
		}

		mgr := session.NewManager(store, mgrOpts...)

		serverOpts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
		}
		if watch && cfgPath != "" {
			var watcher ports.ConfigWatcher = config.NewWatcher(filepath.Dir(cfgPath))
			serverOpts = append(serverOpts, httpAdapter.WithWatcher(watcher))
		}

		handler := httpAdapter.NewServer(engine, mgr, serverOpts...).Handler()

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		if cli.IsTerminal() {
			tui.PrintBanner(vitrine.Version)
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Vitrine dev server on %s\n", srv.Addr)
			if cfgPath != "" {
				fmt.Printf("Configuration: %s\n", cfgPath)
			}
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Vitrine dev server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("watch", false, "Watch the configuration directory and stream reload events")
	serveCmd.Flags().String("redis", "", "Redis address for shared preview sessions (empty means in-memory)")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database number")
}
