//go:build !debug

// Package debug provides a centralized, categorized debug logging system.
// This is the no-op version for release builds.
package debug

// Enabled indicates whether debug logging is active
const Enabled = false

// Category represents a debug logging category
type Category string

const (
	APP      Category = "APP"
	FS       Category = "FS"
	MODEL    Category = "MODEL"
	LAYOUT   Category = "LAYOUT"
	DRAG     Category = "DRAG"
	STORE    Category = "STORE"
	UI       Category = "UI"
	UI_EVENT Category = "UI_EVENT"
)

// Log is a no-op in release builds
func Log(cat Category, format string, args ...interface{}) {}

// EnableAll is a no-op in release builds
func EnableAll() {}

// IsEnabled always returns false in release builds
func IsEnabled(cat Category) bool { return false }
