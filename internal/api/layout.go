package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/flowgrid/pkg/errors"
	"github.com/matzehuels/flowgrid/pkg/flow"
	"github.com/matzehuels/flowgrid/pkg/media"
	"github.com/matzehuels/flowgrid/pkg/pipeline"
)

// layoutRequest is the POST /v1/layout request body.
type layoutRequest struct {
	Width      float64          `json:"width"`
	Height     float64          `json:"height"`
	Spacing    *float64         `json:"spacing,omitempty"`
	Elements   []elementRequest `json:"elements"`
	NoFallback bool             `json:"no_fallback,omitempty"`
}

// elementRequest declares one element. Width and height are required;
// the server does not probe media files.
type elementRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Source string  `json:"source,omitempty"`
	Kind   string  `json:"kind,omitempty"`
}

type layoutResponse struct {
	Height      float64           `json:"height"`
	Width       float64           `json:"width"`
	Rows        [][]blockResponse `json:"rows"`
	Evaluations int               `json:"evaluations"`
	Fallback    bool              `json:"fallback,omitempty"`
	Warning     string            `json:"warning,omitempty"`
	RequestID   string            `json:"request_id,omitempty"`
}

type blockResponse struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Source string  `json:"source,omitempty"`
	Kind   string  `json:"kind,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest,
			errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode request body"))
		return
	}

	elements, err := buildElements(req.Elements)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	opts := pipeline.Options{
		Elements:   elements,
		Width:      req.Width,
		Height:     req.Height,
		NoFallback: req.NoFallback,
		Formats:    []string{pipeline.FormatJSON},
		Logger:     s.logger,
	}
	if req.Spacing != nil {
		opts.SetSpacing(*req.Spacing)
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, errors.ErrCodeInvalidFrame),
			errors.Is(err, errors.ErrCodeInvalidSpacing),
			errors.Is(err, errors.ErrCodeInvalidManifest),
			errors.Is(err, errors.ErrCodeInvalidSource),
			errors.Is(err, errors.ErrCodeUndefinedAspect),
			errors.Is(err, errors.ErrCodeUnsupportedMedia):
			status = http.StatusBadRequest
		case errors.IsInfeasible(err):
			status = http.StatusUnprocessableEntity
		}
		s.writeError(w, r, status, err)
		return
	}

	resp := layoutResponse{
		Height:      result.Height,
		Width:       result.Layout.Width,
		Rows:        buildRows(result),
		Evaluations: result.Stats.Evaluations,
		Fallback:    result.Fallback,
		RequestID:   RequestID(r.Context()),
	}
	if result.Fallback {
		resp.Warning = "no feasible height for the frame; packed at minimum height"
	}
	writeJSON(w, http.StatusOK, resp)
}

func buildElements(reqs []elementRequest) ([]flow.Element, error) {
	if len(reqs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "elements required")
	}
	elements := make([]flow.Element, 0, len(reqs))
	for _, e := range reqs {
		if e.Width <= 0 || e.Height <= 0 {
			return nil, errors.New(errors.ErrCodeUndefinedAspect,
				"element %q has dimensions %vx%v; both must be positive", e.Source, e.Width, e.Height)
		}
		if e.Kind != "" {
			it, err := media.New(media.Kind(e.Kind), e.Source)
			if err != nil {
				return nil, err
			}
			it.SetIntrinsicSize(e.Width, e.Height)
			elements = append(elements, it)
			continue
		}
		elements = append(elements, plainElement{w: e.Width, h: e.Height})
	}
	return elements, nil
}

// plainElement is a sourceless fixed-aspect element.
type plainElement struct{ w, h float64 }

func (p plainElement) IntrinsicWidth() float64  { return p.w }
func (p plainElement) IntrinsicHeight() float64 { return p.h }

func buildRows(result *pipeline.Result) [][]blockResponse {
	rows := make([][]blockResponse, 0, len(result.Wall.Rows))
	for _, row := range result.Wall.Rows {
		out := make([]blockResponse, 0, len(row))
		for _, b := range row {
			br := blockResponse{
				X:      b.Left,
				Y:      b.Top,
				Width:  b.Width(),
				Height: b.Height(),
			}
			if it, ok := b.Element.(*media.Item); ok {
				br.Source = it.Source()
				br.Kind = string(it.Kind())
			}
			out = append(out, br)
		}
		rows = append(rows, out)
	}
	return rows
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Error("request failed",
		"path", r.URL.Path,
		"status", status,
		"error", err,
		"request_id", RequestID(r.Context()))
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
