package watcher

import "context"

// Watcher monitors a directory and hands new files to a handler.
type Watcher interface {
	// Start blocks until ctx is cancelled, then waits for running handlers.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one file.
type EventHandler func(ctx context.Context, filePath string) error

// Filter selects the files worth handling.
type Filter func(filePath string) bool
