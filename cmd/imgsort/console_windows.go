//go:build windows

package main

import (
	"syscall"
)

// manageConsole detaches from the console window unless debugging.
func manageConsole(debug bool) {
	if debug {
		return
	}
	// A binary started from Explorer would otherwise keep an empty console open.
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	freeConsole := kernel32.NewProc("FreeConsole")
	freeConsole.Call()
}
