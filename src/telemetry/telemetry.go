// Package telemetry bridges the install/launch pipeline's event emitter
// to structured logging. Pipeline components never import a logging
// library directly — they only ever call (*events.EventEmitter).Emit. A
// Bridge subscribes to the event names the pipeline emits and forwards
// each occurrence to a zap.Logger, so an embedding shell that wants logs
// gets them by attaching one Bridge instead of every component growing a
// logger dependency.
package telemetry

import (
	"go.uber.org/zap"

	"github.com/voxforge/launcher-core/src/events"
)

// warnEvents names event names this Bridge logs at warn instead of debug:
// anything shaped like a failure report rather than routine progress.
var warnEvents = map[string]bool{
	"error":                     true,
	"library_failed":            true,
	"native_missing_classifier": true,
}

// Bridge forwards named events to a zap.Logger.
type Bridge struct {
	log *zap.Logger
}

// NewBridge wraps log. A nil log is replaced with a no-op logger so a
// Bridge is always safe to Attach even before a caller wires real output.
func NewBridge(log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bridge{log: log}
}

// Attach registers a handler for each of names on e, logging every
// occurrence through b's logger. Safe to call more than once with
// disjoint name sets; calling it twice with the same name double-logs,
// since events.EventEmitter has no Off.
func (b *Bridge) Attach(e *events.EventEmitter, names ...string) {
	for _, name := range names {
		name := name
		e.On(name, func(data any) {
			if warnEvents[name] {
				b.log.Warn(name, zap.Any("data", data))
				return
			}
			b.log.Debug(name, zap.Any("data", data))
		})
	}
}

// AttachAll wires b to every event name the pipeline is known to emit as
// of this revision (see KnownEvents). Callers adding a new event name to a
// component should add it here too, or it logs silently nowhere.
func (b *Bridge) AttachAll(e *events.EventEmitter) {
	b.Attach(e, KnownEvents...)
}

// KnownEvents enumerates every event name the pipeline emits: the loader
// strategies (vanilla, fabric, quilt, neoforge, optifine), the
// library/native fetcher, the asset fetcher, and the runtime provisioner.
var KnownEvents = []string{
	"vanilla_install_start", "vanilla_install_done",
	"fabric_install_start", "fabric_install_done",
	"quilt_install_start", "quilt_install_done",
	"neoforge_install_start", "neoforge_installer_download_start",
	"neoforge_installer_run_start", "neoforge_install_done",
	"optifine_install_start", "optifine_install_done",
	"client_download_start",
	"library_download_start", "library_done", "library_failed", "library_skipped",
	"native_download_start", "native_extracted", "native_missing_classifier", "natives_none",
	"asset_index_download_start", "assets_discovered", "assets_progress", "assets_done", "assets_legacy",
	"runtime_download_start", "runtime_downloaded", "runtime_extracted",
	"launch_start", "launch_done",
	"loader_unknown",
	"error",
}
