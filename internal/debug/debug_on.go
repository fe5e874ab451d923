//go:build debug

// Package debug provides a centralized, categorized debug logging system.
// Build with -tags debug to enable logging.
package debug

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	APP    Category = "APP"    // Orchestration, startup, config
	FS     Category = "FS"     // Scans, moves, deletes
	MODEL  Category = "MODEL"  // Column model mutation
	LAYOUT Category = "LAYOUT" // Slot positions, reflow, bounds
	DRAG   Category = "DRAG"   // Drag sessions and drop resolution
	STORE  Category = "STORE"  // Order and settings persistence
	UI     Category = "UI"     // Rendering, toasts, dialogs

	// Verbose, disabled by default
	UI_EVENT Category = "UI_EVENT" // Pointer and scroll events
)

var (
	enabledCategories = map[Category]bool{
		APP:      true,
		FS:       true,
		MODEL:    true,
		LAYOUT:   true,
		DRAG:     true,
		STORE:    true,
		UI:       true,
		UI_EVENT: false,
	}
	categoryMu sync.RWMutex

	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func init() {
	// IMGSORT_DEBUG=APP,DRAG or IMGSORT_DEBUG=all or IMGSORT_DEBUG=none
	env := os.Getenv("IMGSORT_DEBUG")
	if env == "" {
		return
	}
	categoryMu.Lock()
	defer categoryMu.Unlock()

	env = strings.ToUpper(env)
	switch env {
	case "ALL":
		for cat := range enabledCategories {
			enabledCategories[cat] = true
		}
	case "NONE":
		for cat := range enabledCategories {
			enabledCategories[cat] = false
		}
	default:
		for cat := range enabledCategories {
			enabledCategories[cat] = false
		}
		for _, cat := range strings.Split(env, ",") {
			enabledCategories[Category(strings.TrimSpace(cat))] = true
		}
	}
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}
	logger.Printf("[%s] %s", cat, fmt.Sprintf(format, args...))
}

// EnableAll enables all debug categories including verbose ones
func EnableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = true
	}
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}
