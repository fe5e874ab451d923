package app

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/justyntemme/imgsort/internal/config"
	"github.com/justyntemme/imgsort/internal/debug"
	"github.com/justyntemme/imgsort/internal/fs"
	"github.com/justyntemme/imgsort/internal/grid"
	"github.com/justyntemme/imgsort/internal/model"
	"github.com/justyntemme/imgsort/internal/organizer"
	"github.com/justyntemme/imgsort/internal/store"
	"github.com/justyntemme/imgsort/internal/ui"
)

const (
	settingWindowWidth  = "window.width"
	settingWindowHeight = "window.height"
)

// Orchestrator owns the main window. Every model, layout and file mutation
// happens on its event loop.
type Orchestrator struct {
	window    *app.Window
	config    *config.Manager
	organizer *organizer.Organizer
	store     *store.DB // nil when persistence is disabled or failed to open
	ui        *ui.Renderer
	images    *ui.ImageCache
	watcher   *SlotWatcher
	state     ui.State
	debug     bool
	size      image.Point // last window size in dp
}

func NewOrchestrator(cfg *config.Manager, debug bool) *Orchestrator {
	c := cfg.Get()
	return &Orchestrator{
		window: new(app.Window),
		config: cfg,
		ui:     ui.NewRenderer(),
		images: ui.NewImageCache(c.Enlarge.CacheEntries, fs.DecodeFile),
		debug:  debug,
	}
}

func geometryFromConfig(l config.LayoutConfig) grid.Geometry {
	return grid.Geometry{
		ColumnWidth:  l.ColumnWidth,
		SlotHeight:   l.SlotHeight,
		Gap:          l.Gap,
		HeaderOffset: l.HeaderOffset,
		Margin:       l.Margin,
	}
}

func (o *Orchestrator) Run() error {
	if o.debug {
		log.Println("Starting imgsort in DEBUG mode")
		debug.EnableAll()
	}

	cfg := o.config.Get()
	if err := o.config.ParseError(); err != nil {
		o.ui.ShowError(fmt.Sprintf("Config error in %s, using defaults: %v", o.config.Path(), err))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := organizer.Options{
		Geometry:      geometryFromConfig(cfg.Layout),
		ThumbnailSize: cfg.Layout.ThumbnailSize,
	}
	if cfg.Store.Path != "" {
		db := store.NewDB()
		if err := db.Open(cfg.Store.Path); err != nil {
			log.Printf("Failed to open DB: %v", err)
			o.ui.ShowWarning("Column order will not be saved: " + err.Error())
		} else {
			o.store = db
			opts.Store = db
			defer db.Close()
		}
	}

	slots := make([]organizer.Slot, len(cfg.Directories))
	for i, d := range cfg.Directories {
		slots[i] = organizer.Slot{Path: d.Path, Label: d.DisplayLabel()}
	}
	o.organizer = organizer.New(slots, opts)
	if err := o.organizer.Open(); err != nil {
		return err
	}
	if skipped := o.organizer.Skipped(); len(skipped) > 0 {
		o.ui.ShowWarning(fmt.Sprintf("Skipped %d unreadable image(s), see log", len(skipped)))
	}
	o.syncState()

	if cfg.Behavior.WatchDirectories {
		o.startWatcher(slots)
		if o.watcher != nil {
			defer o.watcher.Close()
		}
	}

	o.size = o.initialSize(cfg.Window)
	o.window.Option(
		app.Title("imgsort"),
		app.Size(unit.Dp(o.size.X), unit.Dp(o.size.Y)),
	)

	var ops op.Ops
	for {
		switch e := o.window.Event().(type) {
		case app.DestroyEvent:
			o.saveWindowSize()
			return e.Err
		case app.FrameEvent:
			o.trackSize(e)
			o.drainWatcher()

			gtx := app.NewContext(&ops, e)
			evt := o.ui.Layout(gtx, &o.state)

			if o.debug && evt.Action != ui.ActionNone {
				log.Printf("[DEBUG] Action: %s, Handle: %s", evt.Action, evt.Handle)
			}

			o.handleUIEvent(evt)
			e.Frame(gtx.Ops)
		}
	}
}

func (o *Orchestrator) handleUIEvent(evt ui.UIEvent) {
	switch evt.Action {
	case ui.ActionDrop:
		o.doDrop(evt.Outcome)
	case ui.ActionDelete, ui.ActionConfirmDelete:
		o.doDelete(evt.Handle)
	case ui.ActionEnlarge:
		o.doEnlarge(evt.Handle)
	}
}

// syncState rebuilds the renderer's view of the board.
func (o *Orchestrator) syncState() {
	slots := o.organizer.Slots()
	cols := make([]ui.ColumnView, len(slots))
	for c, s := range slots {
		entries := o.organizer.Entries(c)
		cards := make([]ui.CardView, 0, len(entries))
		for i, e := range entries {
			pos, _ := o.organizer.Position(e.Handle)
			cards = append(cards, ui.CardView{
				Handle:   e.Handle,
				Name:     e.Name,
				Location: model.Location{Column: c, Position: i},
				Pos:      pos,
				Thumb:    o.organizer.Thumbnail(e.Handle),
			})
		}
		cols[c] = ui.ColumnView{Label: s.Label, Cards: cards}
	}

	o.state.Columns = cols
	o.state.Geometry = o.organizer.Geometry()
	o.state.Bounds = o.organizer.Bounds()
	o.state.ConfirmDelete = o.config.Get().Behavior.ConfirmDelete
	o.window.Invalidate()
}

func (o *Orchestrator) startWatcher(slots []organizer.Slot) {
	w, err := NewSlotWatcher(driftSettle, o.window.Invalidate)
	if err != nil {
		log.Printf("Failed to start directory watcher: %v", err)
		return
	}
	for _, s := range slots {
		dir, err := filepath.Abs(s.Path)
		if err != nil {
			dir = s.Path
		}
		if err := w.Watch(dir); err != nil {
			log.Printf("Failed to watch %s: %v", dir, err)
		}
	}
	o.watcher = w
}

// drainWatcher checks every slot reported as changed since the last frame.
func (o *Orchestrator) drainWatcher() {
	if o.watcher == nil {
		return
	}
	for {
		select {
		case dir := <-o.watcher.Changed():
			o.checkDrift(dir)
		default:
			return
		}
	}
}

func (o *Orchestrator) checkDrift(dir string) {
	c, ok := o.organizer.ColumnFor(dir)
	if !ok {
		return
	}
	drift, err := o.organizer.Verify(c)
	if err != nil {
		log.Printf("Verify %s: %v", dir, err)
		o.ui.ShowError(fmt.Sprintf("Cannot read %s: %v", dir, err))
		return
	}
	if drift.Empty() {
		return
	}
	label := o.organizer.Slots()[c].Label
	log.Printf("Drift in %s: %s", dir, drift)
	o.ui.ShowWarning(fmt.Sprintf("%s changed on disk (%s). Restart to rescan.", label, drift))
}

// initialSize prefers the size saved on the last exit over the configured one.
func (o *Orchestrator) initialSize(w config.WindowConfig) image.Point {
	size := image.Pt(w.Width, w.Height)
	if o.store == nil {
		return size
	}
	if v, ok := o.intSetting(settingWindowWidth); ok {
		size.X = v
	}
	if v, ok := o.intSetting(settingWindowHeight); ok {
		size.Y = v
	}
	return size
}

func (o *Orchestrator) intSetting(key string) (int, bool) {
	raw, ok, err := o.store.Setting(key)
	if err != nil {
		log.Printf("Store: failed to read %s: %v", key, err)
		return 0, false
	}
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func (o *Orchestrator) trackSize(e app.FrameEvent) {
	ppd := e.Metric.PxPerDp
	if ppd <= 0 {
		return
	}
	o.size = image.Pt(int(float32(e.Size.X)/ppd), int(float32(e.Size.Y)/ppd))
}

func (o *Orchestrator) saveWindowSize() {
	if o.store == nil || o.size.X <= 0 || o.size.Y <= 0 {
		return
	}
	if err := o.store.SaveSetting(settingWindowWidth, strconv.Itoa(o.size.X)); err != nil {
		log.Printf("Store: failed to save window size: %v", err)
		return
	}
	if err := o.store.SaveSetting(settingWindowHeight, strconv.Itoa(o.size.Y)); err != nil {
		log.Printf("Store: failed to save window size: %v", err)
	}
}

// Main loads the configuration and runs the main window until it is closed.
func Main(debug bool, configPath string) {
	cfg := config.NewManager()
	if err := cfg.Load(configPath); err != nil {
		log.Fatalf("Config: %v", err)
	}

	go func() {
		o := NewOrchestrator(cfg, debug)
		if err := o.Run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
