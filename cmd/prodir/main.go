// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/prodir"
	"github.com/poiesic/prodir/core"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "prodir",
		Usage: "Local search over a directory of production companies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the local database directory",
				Value:   "./prodir_db",
			},
			&cli.StringFlag{
				Name:  "companies-url",
				Usage: "URL of the published company dataset",
			},
			&cli.StringFlag{
				Name:  "filters-url",
				Usage: "URL of the initial filter definitions",
			},
			&cli.StringFlag{
				Name:  "search-endpoint",
				Usage: "Remote search API endpoint (local ranking when unset)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search the company catalog",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "material",
						Usage: "Require a material (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "process",
						Usage: "Require a process (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "certification",
						Usage: "Prefer a certification (repeatable)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: prodir.DefaultMaxResults,
					},
				},
			},
			{
				Name:   "refresh",
				Usage:  "Refetch the company dataset and rewrite the cache",
				Action: refreshCommand,
			},
			{
				Name:   "filters",
				Usage:  "List registered filter parameters by priority",
				Action: filtersCommand,
			},
			{
				Name:   "history",
				Usage:  "Show recent searches",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "clear",
						Usage: "Clear the search history instead",
					},
				},
			},
			{
				Name:   "analytics",
				Usage:  "Show the analytics ledger summary",
				Action: analyticsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openDirectory assembles a Directory from the global flags and loads its
// persisted state.
func openDirectory(ctx context.Context, c *cli.Context) (*prodir.Directory, error) {
	config := prodir.DefaultConfig()
	config.CompaniesURL = c.String("companies-url")
	config.FilterSeedURL = c.String("filters-url")
	config.SearchEndpoint = c.String("search-endpoint")

	dir, err := prodir.NewDirectory(c.String("db"), prodir.WithConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}
	if err := dir.Init(ctx); err != nil {
		dir.Close()
		return nil, fmt.Errorf("failed to initialize directory: %w", err)
	}
	return dir, nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("search query is required")
	}

	dir, err := openDirectory(ctx, c)
	if err != nil {
		return err
	}
	defer dir.Close()

	req := core.SearchRequest{
		Query:   query,
		Filters: selectionsFromFlags(c),
		Limit:   c.Int("limit"),
	}

	results, err := dir.Search(ctx, req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d companies\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: %s [%d]\n", i+1, hit.Company.Name, hit.Score)
		if hit.Company.Description != "" {
			fmt.Printf("   %s\n", hit.Company.Description)
		}
		if hit.Company.Address != nil && hit.Company.Address.City != "" {
			fmt.Printf("   %s, %s\n", hit.Company.Address.City, hit.Company.Address.Country)
		}
	}
	return nil
}

// selectionsFromFlags builds filter selections from the repeatable flags,
// normalizing the values the way the registry stores its options.
func selectionsFromFlags(c *cli.Context) map[string]core.FilterSelection {
	selections := make(map[string]core.FilterSelection)
	for flag, filterID := range map[string]string{
		"material":      "materials",
		"process":       "processes",
		"certification": "certifications",
	} {
		values := c.StringSlice(flag)
		if len(values) == 0 {
			continue
		}
		normalized := make([]string, len(values))
		for i, v := range values {
			normalized[i] = core.NormalizeValue(v)
		}
		selections[filterID] = core.FilterSelection{Values: normalized}
	}
	if len(selections) == 0 {
		return nil
	}
	return selections
}

func refreshCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.String("companies-url") == "" {
		return fmt.Errorf("companies-url is required for refresh")
	}

	dir, err := openDirectory(ctx, c)
	if err != nil {
		return err
	}
	defer dir.Close()

	if err := dir.Catalog().Refresh(ctx); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	fmt.Printf("Catalog refreshed: %d companies\n", dir.Catalog().Count())
	return nil
}

func filtersCommand(c *cli.Context) error {
	ctx := context.Background()

	dir, err := openDirectory(ctx, c)
	if err != nil {
		return err
	}
	defer dir.Close()

	params := dir.PrioritizedFilters()
	if len(params) == 0 {
		fmt.Println("No filter parameters registered")
		return nil
	}

	scores := dir.Analytics().SuccessScoreMap()
	for _, p := range params {
		fmt.Printf("%s (%s, seen %d, success %d)\n", p.ID, p.Type, p.Occurrences, scores[p.ID])
		for _, opt := range p.Options {
			fmt.Printf("  - %s\n", opt.Label)
		}
	}
	return nil
}

func historyCommand(c *cli.Context) error {
	ctx := context.Background()

	dir, err := openDirectory(ctx, c)
	if err != nil {
		return err
	}
	defer dir.Close()

	if c.Bool("clear") {
		if err := dir.History().Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Println("Search history cleared")
		return nil
	}

	entries := dir.History().Entries()
	if len(entries) == 0 {
		fmt.Println("No searches yet")
		return nil
	}
	for _, entry := range entries {
		fmt.Printf("%s  %s\n", entry.Timestamp.Local().Format(time.DateTime), entry.Query)
	}
	return nil
}

func analyticsCommand(c *cli.Context) error {
	ctx := context.Background()

	dir, err := openDirectory(ctx, c)
	if err != nil {
		return err
	}
	defer dir.Close()

	snap := dir.Analytics().Snapshot()
	fmt.Printf("Searches: %d\n", len(snap.Searches))
	fmt.Printf("Clicks:   %d\n", len(snap.Clicks))
	fmt.Printf("Contacts: %d\n", len(snap.Contacts))

	scores := dir.Analytics().SuccessScores()
	if len(scores) > 0 {
		fmt.Println("Parameter success:")
		for _, s := range scores {
			fmt.Printf("  %s: %d\n", s.Param, s.Score)
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
