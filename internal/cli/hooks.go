package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ethan-kaseff/seating-chart/pkg/observability"
)

// logHooks routes engine and store events to the CLI logger at debug
// level, so --verbose shows what the engines are doing.
type logHooks struct {
	logger *log.Logger
}

// registerHooks installs logging observability hooks backed by the CLI
// logger. Safe to call more than once; the last registration wins.
func (c *CLI) registerHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetEditorHooks(h)
	observability.SetSaveHooks(h)
	observability.SetStoreHooks(h)
}

func (h *logHooks) OnActionApplied(_ context.Context, name string, changed bool) {
	h.logger.Debug("action applied", "action", name, "changed", changed)
}

func (h *logHooks) OnUndo(_ context.Context, stepped bool) {
	h.logger.Debug("undo", "stepped", stepped)
}

func (h *logHooks) OnRedo(_ context.Context, stepped bool) {
	h.logger.Debug("redo", "stepped", stepped)
}

func (h *logHooks) OnArrange(_ context.Context, tables int, proposed bool, dur time.Duration) {
	h.logger.Debug("arranged tables", "tables", tables, "resizeProposed", proposed,
		"dur", dur.Round(time.Millisecond))
}

func (h *logHooks) OnAutoSeat(_ context.Context, placed, leftover int, dur time.Duration) {
	h.logger.Debug("auto-seated guests", "placed", placed, "leftover", leftover,
		"dur", dur.Round(time.Millisecond))
}

func (h *logHooks) OnSaveScheduled(_ context.Context, version uint64) {
	h.logger.Debug("save scheduled", "version", version)
}

func (h *logHooks) OnSaveComplete(_ context.Context, version uint64, dur time.Duration, err error) {
	if err != nil {
		h.logger.Warn("save failed", "version", version, "err", err)
		return
	}
	h.logger.Debug("save complete", "version", version, "dur", dur.Round(time.Millisecond))
}

func (h *logHooks) OnLoad(_ context.Context, backend, eventID string, dur time.Duration, err error) {
	h.logger.Debug("store load", "backend", backend, "event", eventID,
		"dur", dur.Round(time.Millisecond), "err", err)
}

func (h *logHooks) OnSave(_ context.Context, backend, eventID string, dur time.Duration, err error) {
	h.logger.Debug("store save", "backend", backend, "event", eventID,
		"dur", dur.Round(time.Millisecond), "err", err)
}
