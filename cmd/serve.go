package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/klauspost/compress/gzhttp"
	"github.com/urfave/cli/v3"

	"github.com/d1ks/d1ks/pkg/api"
	"github.com/d1ks/d1ks/pkg/cache"
	"github.com/d1ks/d1ks/pkg/config"
	"github.com/d1ks/d1ks/pkg/history"
	"github.com/d1ks/d1ks/pkg/provider"
	"github.com/d1ks/d1ks/pkg/realtime"
	"github.com/d1ks/d1ks/pkg/resolver"
	"github.com/d1ks/d1ks/pkg/store"
)

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the search HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides config)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, c.String("config"), c.String("host"), c.Int("port"))
		},
	}
}

func serve(ctx context.Context, configPath, hostFlag string, portFlag int) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if hostFlag != "" {
		cfg.Host = hostFlag
	}
	if portFlag > 0 {
		cfg.Port = portFlag
	}

	st, err := store.Open(filepath.Join(cfg.DataDir, "state.db"))
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			fmt.Printf("Warning: failed to close state store: %v\n", err)
		}
	}()

	settings, err := st.LoadSettings()
	if err != nil {
		log.Printf("Warning: failed to load settings, using defaults: %v", err)
	}
	entries, err := st.LoadHistory()
	if err != nil {
		log.Printf("Warning: failed to load search history: %v", err)
	}

	hub := realtime.NewHub(0)
	serper := provider.NewSerper(provider.SerperConfig{
		APIKey:   cfg.Provider.APIKey,
		Endpoint: cfg.Provider.Endpoint,
	})
	meili := provider.NewMeili(provider.MeiliConfig{
		Host:   cfg.Meili.Host,
		APIKey: cfg.Meili.APIKey,
		Index:  cfg.Meili.Index,
	})

	session := resolver.NewSession(resolver.Options{
		Provider: remoteProvider(cfg, serper),
		Cache:    cache.New(cfg.Search.CacheSize),
		History:  history.Load(entries),
		Settings: settings,
		Store:    st,
		Hub:      hub,
	})

	apiServer := api.NewServer(session, serper, meili, hub, st)

	mux := http.NewServeMux()
	apiServer.RegisterRoutes(mux)
	mux.HandleFunc("/static/", handleStatic)
	mux.HandleFunc("/", handleHome)

	handler := gzhttp.GzipHandler(api.CorsMiddleware(mux))

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: handler,
	}

	go func() {
		log.Printf("Starting search server on http://%s", cfg.Addr())
		log.Printf("Available endpoints:")
		log.Printf("  Web UI:")
		log.Printf("    GET / - Search page")
		log.Printf("  API:")
		log.Printf("    GET /api/health - Health check")
		log.Printf("    GET /api/search - Resolve a query (cache, remote, local fallback)")
		log.Printf("    GET /api/suggest - Typed suggestions")
		log.Printf("    POST /api/search/proxy - Keyed provider proxy")
		log.Printf("    POST /api/index/add - Add documents to the full-text index")
		log.Printf("    POST /api/search/meili - Query the full-text index")
		log.Printf("    GET/DELETE /api/history - Search history")
		log.Printf("    GET/PUT /api/settings - User settings")
		log.Printf("    GET/PUT /api/theme - Theme preference")
		log.Printf("    GET /api/firehose/ws - Live search event stream")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Signal handling - includes SIGHUP for reload
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Set up filesystem watcher for config file
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("Warning: failed to create config file watcher: %v", err)
	} else {
		defer func() {
			if err := watcher.Close(); err != nil {
				log.Printf("Warning: failed to close config file watcher: %v", err)
			}
		}()

		if err := watcher.Add(configPath); err != nil {
			log.Printf("Warning: failed to watch config file %s: %v", configPath, err)
		} else {
			log.Printf("Watching config file for changes: %s", configPath)
		}
	}

	// Nil channels block forever, so the loop works without a watcher too.
	var watchEvents chan fsnotify.Event
	var watchErrors chan error
	if watcher != nil {
		watchEvents = watcher.Events
		watchErrors = watcher.Errors
	}

	for {
		select {
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading configuration...")
				if err := reloadConfiguration(configPath, apiServer); err != nil {
					log.Printf("Failed to reload configuration: %v", err)
				} else {
					log.Println("Configuration reloaded successfully")
				}
			case syscall.SIGINT, syscall.SIGTERM:
				fmt.Println("\nShutting down...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		case event := <-watchEvents:
			// React to write, create, rename, and remove events (editors often use atomic writes)
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				log.Printf("Config file changed: %s (event: %s), reloading configuration...", event.Name, event.Op.String())

				if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					// Small delay to ensure the new file is fully written
					time.Sleep(200 * time.Millisecond)

					if _, err := os.Stat(configPath); os.IsNotExist(err) {
						log.Printf("Config file was removed and not replaced, skipping reload")
						continue
					}

					// Re-add the config file to watcher in case it was replaced
					if err := watcher.Add(configPath); err != nil {
						log.Printf("Warning: failed to re-add config file to watcher after rename/remove: %v", err)
					}
				} else {
					// Add a small delay to ensure file write is complete
					time.Sleep(100 * time.Millisecond)
				}

				if err := reloadConfiguration(configPath, apiServer); err != nil {
					log.Printf("Failed to reload configuration after file change: %v", err)
				} else {
					log.Println("Configuration reloaded successfully after file change")
				}
			}
		case err := <-watchErrors:
			log.Printf("Config file watcher error: %v", err)
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		}
	}
}

// reloadConfiguration rebuilds the upstream clients from the config file.
// Host/port changes need a restart; only provider and index settings are
// hot-swapped.
func reloadConfiguration(configPath string, apiServer *api.Server) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading new config: %w", err)
	}

	serper := provider.NewSerper(provider.SerperConfig{
		APIKey:   cfg.Provider.APIKey,
		Endpoint: cfg.Provider.Endpoint,
	})
	meili := provider.NewMeili(provider.MeiliConfig{
		Host:   cfg.Meili.Host,
		APIKey: cfg.Meili.APIKey,
		Index:  cfg.Meili.Index,
	})

	apiServer.Reconfigure(serper, meili, remoteProvider(cfg, serper))
	return nil
}

// remoteProvider picks the resolver's remote source through the provider
// registry: the configured name when available, the keyed provider when a
// key is set, and the keyless instant-answer API otherwise.
func remoteProvider(cfg *config.Config, serper *provider.Serper) provider.Provider {
	registry := provider.NewRegistry()
	registry.Register(provider.NewDDG(""))
	if serper.Configured() {
		registry.Register(serper)
	}

	if p := registry.Get(cfg.Provider.Name); p != nil {
		return p
	}
	if p := registry.Get(provider.ProviderSerper); p != nil {
		return p
	}
	return registry.Get(provider.ProviderDuckDuckGo)
}
