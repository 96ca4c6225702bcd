package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/prodir/core"
)

func TestSelectionsFromFlags(t *testing.T) {
	newContext := func(t *testing.T, args []string) *cli.Context {
		t.Helper()
		var captured *cli.Context
		app := &cli.App{
			Name: "prodir",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{Name: "material"},
				&cli.StringSliceFlag{Name: "process"},
				&cli.StringSliceFlag{Name: "certification"},
			},
			Action: func(c *cli.Context) error {
				captured = c
				return nil
			},
		}
		require.NoError(t, app.Run(append([]string{"prodir"}, args...)))
		require.NotNil(t, captured)
		return captured
	}

	t.Run("values are normalized", func(t *testing.T) {
		c := newContext(t, []string{"--material", "Stainless Steel", "--certification", "ISO 9001"})

		selections := selectionsFromFlags(c)
		require.Len(t, selections, 2)
		assert.Equal(t, []string{"stainless_steel"}, selections["materials"].Values)
		assert.Equal(t, []string{"iso_9001"}, selections["certifications"].Values)
	})

	t.Run("repeated flags accumulate", func(t *testing.T) {
		c := newContext(t, []string{"--process", "Welding", "--process", "Cutting"})

		selections := selectionsFromFlags(c)
		assert.Equal(t, core.FilterSelection{Values: []string{"welding", "cutting"}}, selections["processes"])
	})

	t.Run("no flags yields nil", func(t *testing.T) {
		assert.Nil(t, selectionsFromFlags(newContext(t, nil)))
	})
}

func TestSearchCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "prodir",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Value: "./prodir_db"},
		},
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
			},
		},
	}

	t.Run("missing query fails", func(t *testing.T) {
		err := app.Run([]string{"prodir", "search"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query")
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		testCases := []string{
			"DEBUG",
			"Info",
			"WaRn",
			"ERROR",
		}

		for _, tc := range testCases {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("default log level is info", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				level := c.String("log-level")
				assert.Equal(t, "info", level)
				return nil
			},
		}

		err := app.Run([]string{"test"})
		require.NoError(t, err)
	})
}

func TestMain(m *testing.M) {
	// Run tests
	code := m.Run()
	os.Exit(code)
}
