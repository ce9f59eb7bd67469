package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aajetechnology/StudyBot/internal/logger"
)

const defaultSettleDelay = 500 * time.Millisecond

type Options struct {
	MaxConcurrent int
	// SettleDelay is how long a new file is left alone so its writer can finish.
	SettleDelay time.Duration
}

// New watches dir. Files accepted by filter are passed to handler with at
// most opts.MaxConcurrent running at once.
func New(dir string, filter Filter, handler EventHandler, opts Options, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = defaultSettleDelay
	}

	return &implWatcher{
		dir:         dir,
		filter:      filter,
		handler:     handler,
		logger:      log,
		watcher:     fsw,
		settleDelay: opts.SettleDelay,
		slots:       newSemaphore(opts.MaxConcurrent),
		inFlight:    make(map[string]bool),
	}, nil
}
