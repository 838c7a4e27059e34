package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/recera/panzoom/cmd/panzoom/internal/config"
	"github.com/recera/panzoom/pkg/debug"
	"github.com/recera/panzoom/pkg/live"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(flags *rootFlags) *cobra.Command {
	var addr string
	var noWatch bool
	var origins []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live viewport server",
		Long: `Runs a WebSocket server that hosts one viewport session per browser
client. Clients connect to ` + live.PathPrefix + `<session-id>.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Addr()
			}
			if flags.debug {
				debug.EnableLogging(nil)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			configPath := flags.configPath
			if noWatch {
				configPath = ""
			}
			liveServer := live.NewServer(cfg.ViewportOptions())
			if len(origins) == 0 {
				log.Println("⚠️  Accepting WebSocket connections from any origin (use --allow-origin to restrict)")
			} else {
				liveServer.SetAllowedOrigins(origins)
			}
			return runServe(ctx, addr, configPath, liveServer)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (defaults to server.host:server.port from config)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the config file when it changes")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "Browser origin allowed to connect, e.g. http://localhost:7420 (repeatable; default any)")

	return cmd
}

func newServeMux(liveServer *live.Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(live.PathPrefix, liveServer.HandleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"sessions": liveServer.SessionCount()})
	})
	return mux
}

// runServe serves until ctx is cancelled or the listener fails, then shuts
// down the HTTP server and every live session. When configPath is set,
// viewport changes in the file apply to sessions created afterwards.
func runServe(ctx context.Context, addr, configPath string, liveServer *live.Server) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newServeMux(liveServer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("🚀 Live server listening on http://%s%s<session-id>", addr, live.PathPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	})

	if configPath != "" {
		g.Go(func() error {
			err := config.Watch(ctx, configPath, func(cfg *config.Config) {
				log.Printf("🔄 Config reloaded, new sessions use %+v", cfg.ViewportOptions())
				liveServer.SetOptions(cfg.ViewportOptions())
			})
			// A broken watcher should not take the server down with it.
			if err != nil {
				log.Printf("⚠️  Config watch stopped: %v", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Println("🛑 Shutting down live server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Hijacked WebSocket connections are not tracked by Shutdown.
		liveServer.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
