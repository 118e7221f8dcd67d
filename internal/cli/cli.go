// Package cli implements the seating command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ethan-kaseff/seating-chart/internal/config"
	"github.com/ethan-kaseff/seating-chart/pkg/buildinfo"
	"github.com/ethan-kaseff/seating-chart/pkg/seating"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/editor"
	"github.com/ethan-kaseff/seating-chart/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "seating"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Seating plans wedding and event floor layouts",
		Long:         `Seating is a CLI tool for planning event seating: tables and venue fixtures on a floor plan, a guest list with meals and dietary needs, automatic table arrangement, and group-aware seat assignment.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/seating/config.toml)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		c.registerHooks()
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.newCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.guestCommand())
	root.AddCommand(c.tableCommand())
	root.AddCommand(c.objectCommand())
	root.AddCommand(c.assignCommand())
	root.AddCommand(c.unassignCommand())
	root.AddCommand(c.arrangeCommand())
	root.AddCommand(c.autoseatCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration & Store Factory
// =============================================================================

// loadConfig reads the config file named by --config, or the default
// location when the flag is unset.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	return config.LoadDefault()
}

// openStore builds the persistence backend selected in the config.
func (c *CLI) openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	case config.BackendFile:
		return store.NewFileStore(cfg.Storage.Dir)
	case config.BackendMongo:
		loggerFromContext(ctx).Debug("connecting to MongoDB", "uri", cfg.Storage.Mongo.URI)
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Storage.Mongo.URI,
			Database:   cfg.Storage.Mongo.Database,
			Collection: cfg.Storage.Mongo.Collection,
		})
	case config.BackendRedis:
		loggerFromContext(ctx).Debug("connecting to Redis", "addr", cfg.Storage.Redis.Addr)
		return store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
			TTL:      cfg.Storage.Redis.TTL.Std(),
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// =============================================================================
// Editing Sessions
// =============================================================================

// withEvent loads an event, runs fn against an editing session, and
// flushes any pending save before closing the store. CLI invocations are
// one-shot, so the debounce is bypassed with an explicit flush.
func (c *CLI) withEvent(ctx context.Context, eventID string, fn func(*editor.Editor) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	st, err := c.openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	doc, err := st.Load(ctx, eventID)
	if err != nil {
		return fmt.Errorf("load event %s: %w", eventID, err)
	}

	ed := editor.New(doc, editor.Options{
		Save: func(ctx context.Context, doc seating.Document) error {
			return st.Save(ctx, eventID, doc)
		},
		Debounce:        cfg.Editor.AutosaveDebounce.Std(),
		HistoryCapacity: cfg.Editor.HistoryCapacity,
		OnSaveError: func(err error) {
			c.Logger.Error("autosave failed", "event", eventID, "err", err)
		},
	})
	defer ed.Close()

	if err := fn(ed); err != nil {
		return err
	}

	flushCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := ed.Flush(flushCtx); err != nil {
		return fmt.Errorf("save event %s: %w", eventID, err)
	}
	return nil
}

// withStore opens the configured store for commands that do not need an
// editing session.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store, config.Config) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	st, err := c.openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return fn(st, cfg)
}
