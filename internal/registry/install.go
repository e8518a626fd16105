package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/agentx-labs/addonctl/internal/addon"
	"github.com/agentx-labs/addonctl/internal/store"
	"github.com/google/uuid"
)

// ErrNoRegistrar is reported through OnInstallFailed when a handle has
// nowhere to record the install.
var ErrNoRegistrar = errors.New("no add-on store configured")

type handleState int

const (
	handleIdle handleState = iota
	handleRunning
	handleDone
)

// handle installs one catalog entry. The payload is first copied into a
// staging directory ("download"), then moved into place and registered
// ("install").
type handle struct {
	id           string
	entry        Entry
	installedDir string
	registrar    Registrar
	repo         *Repository

	mu        sync.Mutex
	listeners []addon.InstallListener
	state     handleState
	cancel    context.CancelFunc
}

func (r *Repository) newHandle(e Entry) *handle {
	return &handle{
		id:           uuid.NewString(),
		entry:        e,
		installedDir: r.opts.InstalledDir,
		registrar:    r.opts.Registrar,
		repo:         r,
	}
}

func (h *handle) ID() string { return h.id }

// AddListener registers l and tells it about this handle.
func (h *handle) AddListener(l addon.InstallListener) {
	h.mu.Lock()
	h.listeners = append(h.listeners, l)
	h.mu.Unlock()
	l.OnNewInstall(h)
}

// Install starts the install in the background. Calls after the first do
// nothing.
func (h *handle) Install() {
	h.mu.Lock()
	if h.state != handleIdle {
		h.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(h.repo.life)
	h.state = handleRunning
	h.cancel = cancel
	h.repo.installs.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.repo.installs.Done()
		h.run(ctx)
	}()
}

// Cancel stops a running install. Cancelling before Install reports a
// cancelled download; cancelling a finished install does nothing.
func (h *handle) Cancel() {
	h.mu.Lock()
	switch h.state {
	case handleIdle:
		h.state = handleDone
		h.mu.Unlock()
		h.emit(func(l addon.InstallListener) { l.OnDownloadCancelled(h) })
	case handleRunning:
		h.cancel()
		h.mu.Unlock()
	default:
		h.mu.Unlock()
	}
}

func (h *handle) emit(fn func(addon.InstallListener)) {
	h.mu.Lock()
	listeners := append([]addon.InstallListener(nil), h.listeners...)
	h.mu.Unlock()
	for _, l := range listeners {
		fn(l)
	}
}

func (h *handle) finish() {
	h.mu.Lock()
	h.state = handleDone
	h.cancel()
	h.mu.Unlock()
}

func (h *handle) run(ctx context.Context) {
	defer h.finish()
	logger := h.repo.logger.With("install", h.id, "name", h.entry.Name)

	staging := filepath.Join(h.installedDir, ".staging-"+h.id)
	defer os.RemoveAll(staging)

	h.emit(func(l addon.InstallListener) { l.OnDownloadStarted(h) })
	total, err := treeSize(h.entry.Dir)
	if err == nil {
		err = copyDir(ctx, h.entry.Dir, staging, func(copied int64) {
			h.emit(func(l addon.InstallListener) { l.OnDownloadProgress(h, copied, total) })
		})
	}
	if err != nil {
		if ctx.Err() != nil {
			logger.Debug("download cancelled")
			h.emit(func(l addon.InstallListener) { l.OnDownloadCancelled(h) })
			return
		}
		logger.Warn("download failed", "error", err)
		h.emit(func(l addon.InstallListener) { l.OnDownloadFailed(h, err) })
		return
	}
	h.emit(func(l addon.InstallListener) { l.OnDownloadEnded(h) })

	if ctx.Err() != nil {
		logger.Debug("install cancelled")
		h.emit(func(l addon.InstallListener) { l.OnInstallCancelled(h) })
		return
	}
	h.emit(func(l addon.InstallListener) { l.OnInstallStarted(h) })

	installed, target, err := h.place(staging)
	if err != nil {
		logger.Warn("install failed", "error", err)
		h.emit(func(l addon.InstallListener) { l.OnInstallFailed(h, err) })
		return
	}
	logger.Debug("install ended", "path", target)
	h.emit(func(l addon.InstallListener) { l.OnInstallEnded(h, installed) })
}

// place moves the staged payload into a directory no other installed add-on
// owns and records it. The target is returned relative to the installed
// directory.
func (h *handle) place(staging string) (addon.Entity, string, error) {
	if h.registrar == nil {
		return nil, "", ErrNoRegistrar
	}

	h.repo.placeMu.Lock()
	defer h.repo.placeMu.Unlock()

	target, err := h.registrar.PayloadPath(h.entry.Name, h.entry.Category, h.entry.installPath())
	if err != nil {
		return nil, "", fmt.Errorf("choosing a directory for %s: %w", h.entry.Name, err)
	}
	dst := filepath.Join(h.installedDir, target)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return nil, "", fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}
	if err := os.RemoveAll(dst); err != nil {
		return nil, "", fmt.Errorf("removing existing installation at %s: %w", dst, err)
	}
	if err := os.Rename(staging, dst); err != nil {
		return nil, "", fmt.Errorf("moving %s into place: %w", h.entry.Name, err)
	}

	installed, err := h.registrar.Register(store.Record{
		Name:     h.entry.Name,
		Version:  h.entry.Version,
		Category: h.entry.Category,
		Path:     target,
	})
	return installed, target, err
}
