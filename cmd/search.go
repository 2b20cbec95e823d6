package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/d1ks/d1ks/pkg/cache"
	"github.com/d1ks/d1ks/pkg/config"
	"github.com/d1ks/d1ks/pkg/history"
	"github.com/d1ks/d1ks/pkg/paginate"
	"github.com/d1ks/d1ks/pkg/provider"
	"github.com/d1ks/d1ks/pkg/resolver"
	"github.com/d1ks/d1ks/pkg/store"
)

// Define styles using lipgloss
var (
	queryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	resultTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))

	resultURLStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	resultDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Margin(0, 0, 1, 0)

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	noResultsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run a one-shot search from the command line",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Result page to show",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results per page",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "local",
				Usage: "Skip the remote provider and search the built-in corpus only",
				Value: false,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := c.Args().First()
			if query == "" {
				return fmt.Errorf("usage: d1ks search <query>")
			}
			return searchOnce(ctx, c.String("config"), query, c.Int("page"), c.Int("limit"), c.Bool("local"))
		},
	}
}

func searchOnce(ctx context.Context, configPath, query string, page, limit int, localOnly bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := store.Open(filepath.Join(cfg.DataDir, "state.db"))
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	defer func() {
		_ = st.Close()
	}()

	settings, err := st.LoadSettings()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	entries, err := st.LoadHistory()
	if err != nil {
		return fmt.Errorf("loading search history: %w", err)
	}

	var remote provider.Provider
	if !localOnly {
		serper := provider.NewSerper(provider.SerperConfig{
			APIKey:   cfg.Provider.APIKey,
			Endpoint: cfg.Provider.Endpoint,
		})
		remote = remoteProvider(cfg, serper)
	}

	session := resolver.NewSession(resolver.Options{
		Provider: remote,
		Cache:    cache.New(cfg.Search.CacheSize),
		History:  history.Load(entries),
		Settings: settings,
		Store:    st,
	})

	result, err := session.Resolve(ctx, query, page)
	if err != nil {
		return fmt.Errorf("resolving query: %w", err)
	}

	paged := paginate.Paginate(result.Documents, page, limit)

	fmt.Println(queryStyle.Render(fmt.Sprintf("Results for %q", result.Query)))

	if len(paged.Items) == 0 {
		fmt.Println(noResultsStyle.Render("No results found."))
		return nil
	}

	for i, doc := range paged.Items {
		fmt.Printf("%d. %s\n", (page-1)*limit+i+1, resultTitleStyle.Render(doc.Title))
		fmt.Printf("   %s\n", resultURLStyle.Render(doc.URL))
		if doc.Description != "" {
			fmt.Printf("   %s\n", resultDescStyle.Render(doc.Description))
		} else {
			fmt.Println()
		}
	}

	fmt.Println(sourceStyle.Render(fmt.Sprintf("source: %s | page %d of %d | %d results total",
		result.Source, page, paged.TotalPages, len(result.Documents))))
	return nil
}
