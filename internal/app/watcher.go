package app

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/imgsort/internal/debug"
)

const driftSettle = 300 * time.Millisecond

// SlotWatcher reports directory slots whose contents changed outside the
// program. It never touches the board; the orchestrator drains Changed on
// the UI thread and decides what to do.
type SlotWatcher struct {
	fsw     *fsnotify.Watcher
	settle  time.Duration
	wake    func()
	changed chan string

	mu      sync.Mutex
	slots   map[string]bool
	pending map[string]*time.Timer
	closed  bool
}

// NewSlotWatcher starts watching. wake is called whenever a slot is queued
// on Changed, typically to invalidate the window; it may be nil.
func NewSlotWatcher(settle time.Duration, wake func()) (*SlotWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if settle <= 0 {
		settle = driftSettle
	}
	if wake == nil {
		wake = func() {}
	}
	sw := &SlotWatcher{
		fsw:     fsw,
		settle:  settle,
		wake:    wake,
		changed: make(chan string, 16),
		slots:   make(map[string]bool),
		pending: make(map[string]*time.Timer),
	}
	go sw.loop()
	return sw, nil
}

func (sw *SlotWatcher) loop() {
	for {
		select {
		case ev, ok := <-sw.fsw.Events:
			if !ok {
				return
			}
			// Writes inside an image do not change slot membership.
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			debug.Log(debug.FS, "watch: %s %s", ev.Op, ev.Name)
			sw.touch(filepath.Dir(ev.Name))
		case err, ok := <-sw.fsw.Errors:
			if !ok {
				return
			}
			debug.Log(debug.FS, "watch error: %v", err)
		}
	}
}

// touch restarts the settle timer for slot so a burst of events yields
// one report.
func (sw *SlotWatcher) touch(slot string) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.closed || !sw.slots[slot] {
		return
	}
	if t, ok := sw.pending[slot]; ok {
		t.Reset(sw.settle)
		return
	}
	sw.pending[slot] = time.AfterFunc(sw.settle, func() { sw.fire(slot) })
}

func (sw *SlotWatcher) fire(slot string) {
	sw.mu.Lock()
	delete(sw.pending, slot)
	closed := sw.closed
	sw.mu.Unlock()
	if closed {
		return
	}
	select {
	case sw.changed <- slot:
		debug.Log(debug.FS, "watch: %s settled", slot)
		sw.wake()
	default:
		// A report for this round is already queued.
	}
}

// Watch adds a slot directory.
func (sw *SlotWatcher) Watch(dir string) error {
	dir = filepath.Clean(dir)
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.slots[dir] {
		return nil
	}
	if err := sw.fsw.Add(dir); err != nil {
		return err
	}
	sw.slots[dir] = true
	return nil
}

// Changed delivers slot directories after their events settle.
func (sw *SlotWatcher) Changed() <-chan string {
	return sw.changed
}

func (sw *SlotWatcher) Close() error {
	sw.mu.Lock()
	sw.closed = true
	for slot, t := range sw.pending {
		t.Stop()
		delete(sw.pending, slot)
	}
	sw.mu.Unlock()
	return sw.fsw.Close()
}
