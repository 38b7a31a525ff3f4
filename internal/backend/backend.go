// Package backend selects the presenter loop named in the configuration.
package backend

import (
	"context"
	"fmt"
	"sort"

	"gridcaster/internal/backend/desktop"
	"gridcaster/internal/backend/glwindow"
	"gridcaster/internal/backend/headless"
	"gridcaster/internal/backend/terminal"
	"gridcaster/internal/config"
	"gridcaster/internal/game"
)

// RunFunc drives a session until it ends. Window backends must be called
// from the main goroutine.
type RunFunc func(ctx context.Context, cfg *config.Config, s *game.Session) error

var backends = map[string]RunFunc{
	"desktop":  desktop.Run,
	"glwindow": glwindow.Run,
	"terminal": terminal.Run,
	"headless": headless.Run,
}

// Lookup returns the backend registered under name.
func Lookup(name string) (RunFunc, error) {
	run, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (have %v)", name, Names())
	}
	return run, nil
}

// Names lists the registered backends in sorted order.
func Names() []string {
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ConsoleSafe reports whether the backend leaves stdout free for logging.
func ConsoleSafe(name string) bool {
	return name != "terminal"
}
