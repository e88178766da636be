package media

import (
	"context"
	"encoding/json"
	"image"
	"os"

	// Register decoders for the supported image formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/matzehuels/flowgrid/pkg/cache"
	"github.com/matzehuels/flowgrid/pkg/errors"
)

// Probe reads the intrinsic dimensions of an image file without
// decoding pixel data.
//
// Video sources cannot be probed from file headers here; they require
// explicit dimensions (or an asynchronous metadata source watched via
// [AwaitIntrinsicSize]) and report UNSUPPORTED_MEDIA.
func Probe(path string) (width, height float64, err error) {
	kind, err := KindFromSource(path)
	if err != nil {
		return 0, 0, err
	}
	if kind != KindImage {
		return 0, 0, errors.New(errors.ErrCodeUnsupportedMedia,
			"cannot probe dimensions of %s source %q; provide explicit width/height", kind, path)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, errors.Wrap(errors.ErrCodeFileNotFound, err, "media file %q", path)
		}
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidSource, err, "open media file %q", path)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeUnsupportedMedia, err, "decode dimensions of %q", path)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, errors.New(errors.ErrCodeUndefinedAspect,
			"media file %q reports dimensions %dx%d", path, cfg.Width, cfg.Height)
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}

// probeEntry is the cached representation of a probe result.
type probeEntry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Prober probes media dimensions through a cache. Probe results are
// immutable facts about a file (keyed by path, size, and mtime), so
// caching them does not make layout computation stateful.
type Prober struct {
	cache cache.Cache
	keyer cache.Keyer
}

// NewProber creates a prober backed by the given cache.
// A nil cache disables caching.
func NewProber(c cache.Cache, keyer cache.Keyer) *Prober {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Prober{cache: c, keyer: keyer}
}

// Probe returns the intrinsic dimensions of path, consulting the cache
// first. The hit return reports whether the result came from cache.
func (p *Prober) Probe(ctx context.Context, path string) (width, height float64, hit bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "media file %q", path)
		}
		return 0, 0, false, errors.Wrap(errors.ErrCodeInvalidSource, err, "stat media file %q", path)
	}

	key := p.keyer.ProbeKey(path, cache.ProbeKeyOpts{
		Size:    info.Size(),
		ModTime: info.ModTime().Unix(),
	})

	if data, ok, err := p.cache.Get(ctx, key); err == nil && ok {
		var entry probeEntry
		if json.Unmarshal(data, &entry) == nil && entry.Width > 0 && entry.Height > 0 {
			return entry.Width, entry.Height, true, nil
		}
		// Corrupt entry: fall through to re-probe.
	}

	width, height, err = Probe(path)
	if err != nil {
		return 0, 0, false, err
	}

	if data, err := json.Marshal(probeEntry{Width: width, Height: height}); err == nil {
		_ = p.cache.Set(ctx, key, data, cache.TTLProbe)
	}
	return width, height, false, nil
}
