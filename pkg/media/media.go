// Package media provides concrete visual elements for flow layouts.
//
// An [Item] is a single image or video backed by a source reference
// (file path or URL). Items implement [flow.Element]; their intrinsic
// dimensions may be known at construction (explicit manifest values),
// probed from the file ([Probe]), or arrive later for streaming sources
// (see [AwaitIntrinsicSize]).
package media

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/flowgrid/pkg/errors"
)

// Kind identifies the media technology behind an element.
type Kind string

// Supported media kinds.
const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// imageExts and videoExts map lowercase file extensions to kinds.
var (
	imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}
	videoExts = map[string]bool{".mp4": true, ".webm": true, ".mov": true, ".mkv": true}
)

// KindFromSource infers the media kind from a source's file extension.
// Unknown extensions yield an UNSUPPORTED_MEDIA error so a layout hole
// is never produced silently.
func KindFromSource(src string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(src))
	switch {
	case imageExts[ext]:
		return KindImage, nil
	case videoExts[ext]:
		return KindVideo, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupportedMedia,
			"cannot determine media kind for %q", src)
	}
}

// Item is a single visual element. The intrinsic size is guarded by a
// mutex because streaming sources report it asynchronously while a
// readiness poller watches for it.
type Item struct {
	kind   Kind
	source string

	mu     sync.RWMutex
	width  float64
	height float64
}

// New creates an item of an explicitly given kind.
func New(kind Kind, source string) (*Item, error) {
	if kind != KindImage && kind != KindVideo {
		return nil, errors.New(errors.ErrCodeUnsupportedMedia, "unknown media kind %q", kind)
	}
	if err := errors.ValidateSource(source); err != nil {
		return nil, err
	}
	return &Item{kind: kind, source: source}, nil
}

// NewFromSource creates an item, inferring the kind from the source.
func NewFromSource(source string) (*Item, error) {
	kind, err := KindFromSource(source)
	if err != nil {
		return nil, err
	}
	return New(kind, source)
}

// Kind returns the media kind.
func (i *Item) Kind() Kind { return i.kind }

// Source returns the source reference.
func (i *Item) Source() string { return i.source }

// IntrinsicWidth returns the natural width in source units, or 0 if not
// yet known.
func (i *Item) IntrinsicWidth() float64 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.width
}

// IntrinsicHeight returns the natural height in source units, or 0 if
// not yet known.
func (i *Item) IntrinsicHeight() float64 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.height
}

// SetIntrinsicSize records the natural dimensions. Safe to call from a
// metadata-loading goroutine while a poller is watching.
func (i *Item) SetIntrinsicSize(width, height float64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.width = width
	i.height = height
}

// Ready reports whether both intrinsic dimensions are known (non-zero).
// Layout must not be invoked for an item before it is ready.
func (i *Item) Ready() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.width > 0 && i.height > 0
}
