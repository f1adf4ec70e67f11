package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/ganot/stageboard/internal/app"
	"github.com/ganot/stageboard/internal/config"
	"github.com/ganot/stageboard/internal/domain/board"
)

type commandContext struct {
	flags *rootFlags

	configOnce sync.Once
	config     config.Config
	configErr  error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(c.flags.config)
		if path == "" {
			path = os.Getenv("STAGEBOARD_CONFIG_PATH")
		}
		cfg, err := config.LoadFrom(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.flags.backend != "" {
			cfg.Store.Backend = c.flags.backend
		}
		if c.flags.dataDir != "" {
			cfg.Store.DataDir = c.flags.dataDir
		}
		if c.flags.dbPath != "" {
			cfg.Store.DBPath = c.flags.dbPath
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withService opens the configured store for the duration of fn.
func (c *commandContext) withService(cmd *cobra.Command, fn func(*board.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := app.OpenStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	return fn(board.NewService(store, logger))
}

func (c *commandContext) jsonOutput() bool {
	return c.flags.json
}

func parseID(name, raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return id, nil
}
