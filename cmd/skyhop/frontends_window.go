//go:build !nowindow

package main

// The window frontend needs cgo and a display stack. Build with -tags nowindow
// for headless servers.
import _ "github.com/vovakirdan/skyhop/internal/platform/window"
