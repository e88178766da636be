package pipeline

import (
	"context"

	"github.com/matzehuels/flowgrid/pkg/errors"
	"github.com/matzehuels/flowgrid/pkg/flow"
	"github.com/matzehuels/flowgrid/pkg/media"
	"github.com/matzehuels/flowgrid/pkg/observability"
)

// ProbeElements fills in intrinsic dimensions for every element that
// does not have them yet. Image files are probed on disk (through the
// probe cache); everything else gets opts.AwaitTimeout to become ready
// via asynchronous metadata before the stage fails.
//
// resolve maps a declared media source to a filesystem path.
func (r *Runner) ProbeElements(ctx context.Context, elements []flow.Element, resolve func(string) string, opts Options, info *CacheInfo) error {
	prober := media.NewProber(r.Cache, r.Keyer)
	cacheHooks := observability.Cache()

	var pending []flow.Element
	for _, el := range elements {
		it, ok := el.(*media.Item)
		if !ok || it.Ready() {
			continue
		}
		if it.Kind() != media.KindImage {
			pending = append(pending, el)
			continue
		}

		path := resolve(it.Source())
		w, h, hit, err := r.probeOne(ctx, prober, path, opts.Refresh)
		if err != nil {
			return err
		}
		if hit {
			info.ProbeHits++
			cacheHooks.OnCacheHit(ctx, "probe")
		} else {
			info.ProbeMisses++
			cacheHooks.OnCacheMiss(ctx, "probe")
		}
		it.SetIntrinsicSize(w, h)
	}

	if len(pending) == 0 {
		return nil
	}
	if opts.AwaitTimeout <= 0 {
		return errors.New(errors.ErrCodeInvalidManifest,
			"element has no dimensions and cannot be probed (declare width and height)")
	}

	waitCtx, cancel := context.WithTimeout(ctx, opts.AwaitTimeout)
	defer cancel()
	if err := media.WaitReady(waitCtx, pending, media.DefaultPollInterval); err != nil {
		return errors.Wrap(errors.ErrCodeUnsupportedMedia, err,
			"timed out waiting for media dimensions")
	}
	return nil
}

func (r *Runner) probeOne(ctx context.Context, prober *media.Prober, path string, refresh bool) (float64, float64, bool, error) {
	if refresh {
		w, h, err := media.Probe(path)
		return w, h, false, err
	}
	return prober.Probe(ctx, path)
}
