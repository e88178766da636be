package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/flowgrid/pkg/media"
	"github.com/matzehuels/flowgrid/pkg/wall"
)

// HTMLOption configures HTML rendering via [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title      string
	background string
	autoplay   bool
}

// WithHTMLTitle sets the document title. Default "flowgrid".
func WithHTMLTitle(t string) HTMLOption { return func(r *htmlRenderer) { r.title = t } }

// WithHTMLBackground sets the page background color. Default "#111111".
func WithHTMLBackground(color string) HTMLOption {
	return func(r *htmlRenderer) { r.background = color }
}

// WithHTMLAutoplay makes video elements start muted and looping.
func WithHTMLAutoplay() HTMLOption { return func(r *htmlRenderer) { r.autoplay = true } }

// RenderHTML renders the positioned wall as a standalone HTML page.
// Every block becomes an absolutely positioned <img> or <video> inside
// a fixed-size frame div; elements without a source become empty
// placeholder divs.
func RenderHTML(w wall.Wall, opts ...HTMLOption) []byte {
	r := htmlRenderer{title: "flowgrid", background: "#111111"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&buf, "  <meta charset=\"utf-8\">\n  <title>%s</title>\n", html.EscapeString(r.title))
	fmt.Fprintf(&buf, `  <style>
    body { margin: 0; background: %s; }
    .frame { position: relative; width: %.0fpx; height: %.0fpx; margin: 0 auto; overflow: hidden; }
    .frame img, .frame video, .frame .placeholder { position: absolute; object-fit: cover; }
    .frame .placeholder { background: #333; }
  </style>
`, html.EscapeString(r.background), w.FrameWidth, w.FrameHeight)
	buf.WriteString("</head>\n<body>\n  <div class=\"frame\">\n")

	for _, b := range w.Blocks() {
		r.renderBlock(&buf, b)
	}

	buf.WriteString("  </div>\n</body>\n</html>\n")
	return buf.Bytes()
}

func (r *htmlRenderer) renderBlock(buf *bytes.Buffer, b wall.Block) {
	pos := fmt.Sprintf(`style="left:%.2fpx;top:%.2fpx;width:%.2fpx;height:%.2fpx"`,
		b.Left, b.Top, b.Width(), b.Height())
	source, kind := describe(b.Element)

	switch {
	case kind == string(media.KindImage) && source != "":
		fmt.Fprintf(buf, "    <img src=\"%s\" %s>\n", html.EscapeString(source), pos)
	case kind == string(media.KindVideo) && source != "":
		attrs := "controls"
		if r.autoplay {
			attrs = "autoplay muted loop playsinline"
		}
		fmt.Fprintf(buf, "    <video src=\"%s\" %s %s></video>\n", html.EscapeString(source), attrs, pos)
	default:
		fmt.Fprintf(buf, "    <div class=\"placeholder\" %s></div>\n", pos)
	}
}
