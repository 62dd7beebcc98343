package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rapidmidiex/xentui/interval"
	"github.com/rapidmidiex/xentui/keycolors"
)

type (
	intervalsResponse struct {
		Intervals []interval.Interval `json:"intervals"`
	}

	colorsResponse struct {
		Colors keycolors.Colors `json:"colors"`
	}

	textResponse struct {
		Text string `json:"text"`
	}

	errorResponse struct {
		Detail string `json:"detail"`
	}
)

func (s *Server) handleChord(w http.ResponseWriter, r *http.Request) {
	intervals, err := s.parseChord(r.URL.Query().Get("text"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, intervalsResponse{Intervals: intervals})
}

func (s *Server) handleAutoKeys(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["n"])
	if err != nil {
		s.writeError(w, fmt.Errorf("number of keys: %w", err))
		return
	}
	colors, err := s.autoKeys(n)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, colorsResponse{Colors: colors})
}

func (s *Server) handleGapKeys(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	whiteKeys, err := intParam(q.Get("white"), 0)
	if err != nil {
		s.writeError(w, fmt.Errorf("white: %w", err))
		return
	}
	offset, err := intParam(q.Get("offset"), s.Config().Keyboard.Offset)
	if err != nil {
		s.writeError(w, fmt.Errorf("offset: %w", err))
		return
	}
	colors, err := s.gapKeys(q.Get("generator"), whiteKeys, offset)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, colorsResponse{Colors: colors})
}

func (s *Server) handleHertz(w http.ResponseWriter, r *http.Request) {
	v, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
	if err != nil {
		s.writeError(w, fmt.Errorf("value: %w", err))
		return
	}
	s.writeJSON(w, textResponse{Text: s.formatter().Hertz(v)})
}

func (s *Server) handleExponential(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v, err := strconv.ParseFloat(q.Get("value"), 64)
	if err != nil {
		s.writeError(w, fmt.Errorf("value: %w", err))
		return
	}
	f := s.formatter()
	digits, err := intParam(q.Get("digits"), f.FractionDigits)
	if err != nil || digits < 0 || digits > 20 {
		s.writeError(w, fmt.Errorf("digits must be an integer within 0..20, got %q", q.Get("digits")))
		return
	}
	f.FractionDigits = digits
	s.writeJSON(w, textResponse{Text: f.Exponential(v)})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.timings.Stats())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.logger.Debug("bad request", "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(errorResponse{Detail: err.Error()}); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
