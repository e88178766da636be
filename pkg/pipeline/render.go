package pipeline

import (
	"github.com/matzehuels/flowgrid/pkg/errors"
	"github.com/matzehuels/flowgrid/pkg/flow"
	"github.com/matzehuels/flowgrid/pkg/wall"
	"github.com/matzehuels/flowgrid/pkg/wall/sink"
)

// Render positions the layout inside the frame and generates output
// artifacts in the requested formats.
func (r *Runner) Render(l flow.Layout, opts Options, fallback bool) (wall.Wall, map[string][]byte, error) {
	w, err := wall.Build(l, opts.Width, opts.Height)
	if err != nil {
		return wall.Wall{}, nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(w, format, opts, fallback)
		if err != nil {
			return wall.Wall{}, nil, err
		}
		artifacts[format] = data
	}
	return w, artifacts, nil
}

func renderFormat(w wall.Wall, format string, opts Options, fallback bool) ([]byte, error) {
	switch format {
	case FormatJSON:
		jsonOpts := []sink.JSONOption{sink.WithJSONTitle(opts.Title)}
		if fallback {
			jsonOpts = append(jsonOpts, sink.WithJSONFallback())
		}
		return sink.RenderJSON(w, jsonOpts...)

	case FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.Background != "" {
			svgOpts = append(svgOpts, sink.WithSVGBackground(opts.Background))
		}
		if opts.Outlines {
			svgOpts = append(svgOpts, sink.WithSVGOutlines())
		}
		return sink.RenderSVG(w, svgOpts...), nil

	case FormatHTML:
		htmlOpts := []sink.HTMLOption{sink.WithHTMLTitle(opts.Title)}
		if opts.Background != "" {
			htmlOpts = append(htmlOpts, sink.WithHTMLBackground(opts.Background))
		}
		if opts.Autoplay {
			htmlOpts = append(htmlOpts, sink.WithHTMLAutoplay())
		}
		return sink.RenderHTML(w, htmlOpts...), nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format %q", format)
	}
}
