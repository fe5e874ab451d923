package ui

import (
	"container/list"
	"image"
	"sync"

	"github.com/justyntemme/imgsort/internal/debug"
)

// ImageCache is an LRU of full-resolution images for the enlarge window.
// Images are decoded on the calling goroutine; there is no background loader.
type ImageCache struct {
	mu      sync.Mutex
	cache   map[string]*imageEntry // path -> entry
	lru     *list.List             // front = most recent
	maxSize int
	decode  func(path string) (image.Image, error)
}

type imageEntry struct {
	path    string
	img     image.Image
	element *list.Element
}

// NewImageCache creates a cache holding at most maxEntries images.
func NewImageCache(maxEntries int, decode func(path string) (image.Image, error)) *ImageCache {
	return &ImageCache{
		cache:   make(map[string]*imageEntry),
		lru:     list.New(),
		maxSize: max(maxEntries, 1),
		decode:  decode,
	}
}

// Get returns a cached image and marks it most recently used.
func (ic *ImageCache) Get(path string) (image.Image, bool) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	entry, ok := ic.cache[path]
	if !ok {
		return nil, false
	}
	ic.lru.MoveToFront(entry.element)
	return entry.img, true
}

// Load returns the cached image or decodes and caches it.
func (ic *ImageCache) Load(path string) (image.Image, error) {
	if img, ok := ic.Get(path); ok {
		debug.Log(debug.UI, "ImageCache: hit %s", path)
		return img, nil
	}
	img, err := ic.decode(path)
	if err != nil {
		return nil, err
	}
	ic.put(path, img)
	return img, nil
}

// put adds an image, evicting the least recently used entries if necessary.
func (ic *ImageCache) put(path string, img image.Image) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	if entry, ok := ic.cache[path]; ok {
		entry.img = img
		ic.lru.MoveToFront(entry.element)
		return
	}

	for ic.lru.Len() >= ic.maxSize {
		oldest := ic.lru.Back()
		if oldest == nil {
			break
		}
		old := oldest.Value.(*imageEntry)
		delete(ic.cache, old.path)
		ic.lru.Remove(oldest)
		debug.Log(debug.UI, "ImageCache: evicted %s", old.path)
	}

	entry := &imageEntry{path: path, img: img}
	entry.element = ic.lru.PushFront(entry)
	ic.cache[path] = entry
}

// Remove drops path, e.g. after its file moved or was deleted.
func (ic *ImageCache) Remove(path string) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	if entry, ok := ic.cache[path]; ok {
		ic.lru.Remove(entry.element)
		delete(ic.cache, path)
	}
}

// Size returns the current number of cached images.
func (ic *ImageCache) Size() int {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return len(ic.cache)
}
