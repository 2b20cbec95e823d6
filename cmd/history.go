package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/d1ks/d1ks/pkg/config"
	"github.com/d1ks/d1ks/pkg/store"
)

// HistoryCommand creates the history command
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Manage the persisted search history",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show the search history, newest first",
				Action: func(ctx context.Context, c *cli.Command) error {
					return listHistory(c.String("config"))
				},
			},
			{
				Name:  "clear",
				Usage: "Delete all history entries",
				Action: func(ctx context.Context, c *cli.Command) error {
					return clearHistory(c.String("config"))
				},
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return listHistory(c.String("config"))
		},
	}
}

func openStateStore(configPath string) (*store.Store, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	st, err := store.Open(filepath.Join(cfg.DataDir, "state.db"))
	if err != nil {
		return nil, fmt.Errorf("opening state store: %w", err)
	}
	return st, nil
}

func listHistory(configPath string) error {
	st, err := openStateStore(configPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = st.Close()
	}()

	entries, err := st.LoadHistory()
	if err != nil {
		return fmt.Errorf("loading search history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No search history.")
		return nil
	}

	for i, entry := range entries {
		fmt.Printf("%d. %s\n", i+1, entry)
	}
	return nil
}

func clearHistory(configPath string) error {
	st, err := openStateStore(configPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = st.Close()
	}()

	if err := st.SaveHistory(nil); err != nil {
		return fmt.Errorf("clearing search history: %w", err)
	}
	fmt.Println("Search history cleared.")
	return nil
}
