package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}

func findStringFlag(cmd *cli.Command, name string) *cli.StringFlag {
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func findIntFlag(cmd *cli.Command, name string) *cli.IntFlag {
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.IntFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func TestCommandFlags(t *testing.T) {
	app := newApp()

	t.Run("db flag is required everywhere", func(t *testing.T) {
		for _, name := range []string{"sync-dict", "ingest", "process", "recompute", "override", "status", "indices"} {
			cmd := findCommand(t, app, name)
			dbFlag := findStringFlag(cmd, "db")
			require.NotNil(t, dbFlag, "command %s", name)
			assert.True(t, dbFlag.Required, "command %s", name)
			assert.Empty(t, dbFlag.EnvVars, "command %s", name)
		}
	})

	t.Run("ingest lang has default value of en", func(t *testing.T) {
		langFlag := findStringFlag(findCommand(t, app, "ingest"), "lang")
		require.NotNil(t, langFlag)
		assert.Equal(t, "en", langFlag.Value)
	})

	t.Run("process workers has default value of 4", func(t *testing.T) {
		workersFlag := findIntFlag(findCommand(t, app, "process"), "workers")
		require.NotNil(t, workersFlag)
		assert.Equal(t, 4, workersFlag.Value)
	})

	t.Run("process limit defaults to unlimited", func(t *testing.T) {
		limitFlag := findIntFlag(findCommand(t, app, "process"), "limit")
		require.NotNil(t, limitFlag)
		assert.Equal(t, 0, limitFlag.Value)
	})

	t.Run("recompute report-interval has default value of 10", func(t *testing.T) {
		reportFlag := findIntFlag(findCommand(t, app, "recompute"), "report-interval")
		require.NotNil(t, reportFlag)
		assert.Equal(t, 10, reportFlag.Value)
	})

	t.Run("recompute max-retries has default value of 3", func(t *testing.T) {
		retriesFlag := findIntFlag(findCommand(t, app, "recompute"), "max-retries")
		require.NotNil(t, retriesFlag)
		assert.Equal(t, 3, retriesFlag.Value)
	})

	t.Run("recompute retry-delay has default value of 500ms", func(t *testing.T) {
		cmd := findCommand(t, app, "recompute")
		var delayFlag *cli.DurationFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.DurationFlag); ok && f.Name == "retry-delay" {
				delayFlag = f
				break
			}
		}
		require.NotNil(t, delayFlag)
		assert.Equal(t, 500*time.Millisecond, delayFlag.Value)
	})

	t.Run("override level is required", func(t *testing.T) {
		levelFlag := findIntFlag(findCommand(t, app, "override"), "level")
		require.NotNil(t, levelFlag)
		assert.True(t, levelFlag.Required)
	})
}

func TestCommandValidation(t *testing.T) {
	t.Run("missing db flag fails", func(t *testing.T) {
		err := newApp().Run([]string{"equilex", "status"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})

	t.Run("missing dir flag fails for sync-dict", func(t *testing.T) {
		err := newApp().Run([]string{"equilex", "sync-dict", "--db", "/tmp/test"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dir")
	})

	t.Run("missing file flag fails for ingest", func(t *testing.T) {
		err := newApp().Run([]string{"equilex", "ingest", "--db", "/tmp/test"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file")
	})
}

func TestSetupLogger(t *testing.T) {
	newTestApp := func() *cli.App {
		return &cli.App{
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
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				err := newTestApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("log levels are case insensitive", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				err := newTestApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newTestApp().Run([]string{"test", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "verbose")
	})
}
