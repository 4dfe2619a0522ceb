package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/pipeline"
	"github.com/egoview/egoview/pkg/view"
)

// viewOptions parses the shared view query parameters into pipeline options.
func viewOptions(r *http.Request) (graphName string, opts pipeline.Options, err error) {
	q := r.URL.Query()
	graphName = q.Get("graph")
	if graphName == "" {
		return "", opts, errors.New(errors.ErrCodeInvalidParameter, "graph parameter is required")
	}

	opts = pipeline.Options{
		Focus:          q.Get("focus"),
		OutRadius:      pipeline.DefaultOutRadius,
		InRadius:       pipeline.DefaultInRadius,
		HideSources:    q.Get("hide_sources") == "true",
		SimplifyChains: q.Get("simplify_chains") == "true",
		LayoutMode:     q.Get("layout"),
	}
	if v := q.Get("out_radius"); v != "" {
		opts.OutRadius, err = strconv.Atoi(v)
		if err != nil {
			return "", opts, errors.New(errors.ErrCodeInvalidParameter, "out_radius must be an integer, got %q", v)
		}
	}
	if v := q.Get("in_radius"); v != "" {
		opts.InRadius, err = strconv.Atoi(v)
		if err != nil {
			return "", opts, errors.New(errors.ErrCodeInvalidParameter, "in_radius must be an integer, got %q", v)
		}
	}
	if v := q.Get("attributes"); v != "" {
		opts.ShowAttributes = strings.Split(v, ",")
	}
	return graphName, opts, nil
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	name, opts, err := viewOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Logger = s.logger

	g, err := s.source.Load(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(result.Artifacts[pipeline.FormatJSON])
}

func (s *Server) handleViewHTML(w http.ResponseWriter, r *http.Request) {
	name, opts, err := viewOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{pipeline.FormatHTML}
	opts.Logger = s.logger

	g, err := s.source.Load(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(result.Artifacts[pipeline.FormatHTML])
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	names, err := s.source.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"graphs": names})
}

func (s *Server) handleAttributes(w http.ResponseWriter, r *http.Request) {
	g, err := s.source.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	attrs := g.AvailableAttributes()
	if attrs == nil {
		attrs = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"attributes": attrs})
}

func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	focus := r.URL.Query().Get("focus")
	if focus == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidParameter, "focus parameter is required"))
		return
	}
	g, err := s.source.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	succs, preds, err := view.Neighbors(g, focus)
	if err != nil {
		writeError(w, err)
		return
	}
	if succs == nil {
		succs = []view.Neighbor{}
	}
	if preds == nil {
		preds = []view.Neighbor{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"successors":   succs,
		"predecessors": preds,
	})
}
