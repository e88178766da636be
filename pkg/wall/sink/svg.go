package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/flowgrid/pkg/media"
	"github.com/matzehuels/flowgrid/pkg/wall"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background  string
	placeholder string
	outlines    bool
}

// WithSVGBackground sets the frame background fill. Default "#111111".
func WithSVGBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithSVGPlaceholder sets the fill for blocks that cannot be inlined
// (videos and bare geometry elements). Default "#333333".
func WithSVGPlaceholder(color string) SVGOption {
	return func(r *svgRenderer) { r.placeholder = color }
}

// WithSVGOutlines draws a stroke around every block, useful for
// debugging spacing and centering.
func WithSVGOutlines() SVGOption { return func(r *svgRenderer) { r.outlines = true } }

// RenderSVG renders the positioned wall as a standalone SVG document.
// Image elements become <image> references to their source path;
// videos and sourceless elements become placeholder rectangles labeled
// with the source basename when one is known.
func RenderSVG(w wall.Wall, opts ...SVGOption) []byte {
	r := svgRenderer{background: "#111111", placeholder: "#333333"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w.FrameWidth, w.FrameHeight, w.FrameWidth, w.FrameHeight)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		w.FrameWidth, w.FrameHeight, html.EscapeString(r.background))

	for _, b := range w.Blocks() {
		r.renderBlock(&buf, b)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderBlock(buf *bytes.Buffer, b wall.Block) {
	source, kind := describe(b.Element)

	if kind == string(media.KindImage) && source != "" {
		fmt.Fprintf(buf, `  <image href="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="xMidYMid slice"/>`+"\n",
			html.EscapeString(source), b.Left, b.Top, b.Width(), b.Height())
	} else {
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			b.Left, b.Top, b.Width(), b.Height(), html.EscapeString(r.placeholder))
		if source != "" {
			fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" fill="#cccccc" font-family="sans-serif" font-size="%.1f">%s</text>`+"\n",
				b.CenterX(), b.CenterY(), labelSize(b), html.EscapeString(source))
		}
	}

	if r.outlines {
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#ff00ff" stroke-width="1"/>`+"\n",
			b.Left, b.Top, b.Width(), b.Height())
	}
}

// labelSize picks a font size that stays legible without overflowing
// small blocks.
func labelSize(b wall.Block) float64 {
	s := b.Height() / 6
	if s < 8 {
		s = 8
	}
	if s > 16 {
		s = 16
	}
	return s
}
