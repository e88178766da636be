// Package manifest loads gallery manifests: TOML files describing a
// frame and the media that should fill it.
//
// A minimal manifest:
//
//	[frame]
//	width = 1280
//	height = 720
//	spacing = 10
//
//	[[media]]
//	src = "photos/a.jpg"
//
//	[[media]]
//	src = "clips/b.mp4"
//	width = 1920
//	height = 1080
//
// The kind of each entry is inferred from the src extension unless set
// explicitly. Width and height are optional for images (they can be
// probed from the file) but required for videos, whose dimensions
// cannot be read without a decoder.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowgrid/pkg/errors"
	"github.com/matzehuels/flowgrid/pkg/media"
)

// Frame describes the target frame dimensions and spacing.
type Frame struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	Spacing float64 `toml:"spacing"`
}

// Entry is a single media declaration.
type Entry struct {
	Src    string  `toml:"src"`
	Kind   string  `toml:"kind"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Manifest is a parsed gallery manifest.
type Manifest struct {
	Frame Frame   `toml:"frame"`
	Media []Entry `toml:"media"`

	// Dir is the directory containing the manifest file. Relative
	// media paths resolve against it.
	Dir string `toml:"-"`
}

// Load reads and validates a manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %q", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest %q", path)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse manifest %q", path)
	}
	m.Dir = filepath.Dir(path)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks frame dimensions, spacing, and every media entry.
func (m *Manifest) Validate() error {
	if err := errors.ValidateFrame(m.Frame.Width, m.Frame.Height); err != nil {
		return err
	}
	if err := errors.ValidateSpacing(m.Frame.Spacing); err != nil {
		return err
	}
	if len(m.Media) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest declares no media")
	}

	for _, e := range m.Media {
		if e.Src == "" {
			return errors.New(errors.ErrCodeInvalidManifest, "media entry missing src")
		}
		if err := errors.ValidateSource(e.Src); err != nil {
			return err
		}
		if _, err := entryKind(e); err != nil {
			return err
		}
		if (e.Width < 0) || (e.Height < 0) || (e.Width > 0) != (e.Height > 0) {
			return errors.New(errors.ErrCodeInvalidManifest,
				"media entry %q must declare both width and height or neither", e.Src)
		}
	}
	return nil
}

// Items converts the manifest's media entries to media items. Entries
// with declared dimensions are ready immediately; the rest must be
// probed or await async metadata.
func (m *Manifest) Items() ([]*media.Item, error) {
	items := make([]*media.Item, 0, len(m.Media))
	for _, e := range m.Media {
		kind, err := entryKind(e)
		if err != nil {
			return nil, err
		}
		it, err := media.New(kind, e.Src)
		if err != nil {
			return nil, err
		}
		if e.Width > 0 && e.Height > 0 {
			it.SetIntrinsicSize(e.Width, e.Height)
		}
		items = append(items, it)
	}
	return items, nil
}

// Resolve returns the absolute path of a media source relative to the
// manifest directory. Absolute sources pass through unchanged.
func (m *Manifest) Resolve(src string) string {
	if filepath.IsAbs(src) || m.Dir == "" {
		return src
	}
	return filepath.Join(m.Dir, src)
}

func entryKind(e Entry) (media.Kind, error) {
	if e.Kind != "" {
		k := media.Kind(e.Kind)
		if k != media.KindImage && k != media.KindVideo {
			return "", errors.New(errors.ErrCodeInvalidManifest, "unknown media kind %q", e.Kind)
		}
		return k, nil
	}
	return media.KindFromSource(e.Src)
}
