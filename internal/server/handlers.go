package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/redlinehq/redline/internal/apply"
	"github.com/redlinehq/redline/internal/session"
	"github.com/redlinehq/redline/internal/suggest"
	"github.com/redlinehq/redline/internal/worddiff"
)

// maxBodyBytes caps request bodies; editor documents are small.
const maxBodyBytes = 1 << 20

type checkRequest struct {
	Text string `json:"text"`
}

type checkResponse struct {
	Suggestions []suggest.Suggestion `json:"suggestions"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if !readJSON(w, r, &req) {
		return
	}
	suggestions := s.engine.Check(r.Context(), req.Text)
	if suggestions == nil {
		suggestions = []suggest.Suggestion{}
	}
	writeJSON(w, http.StatusOK, checkResponse{Suggestions: suggestions})
}

type applyRequest struct {
	Text        string             `json:"text"`
	Corrections []apply.Correction `json:"corrections"`
}

type applyResponse struct {
	Corrected string `json:"corrected"`
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !readJSON(w, r, &req) {
		return
	}
	corrected, err := s.engine.Apply(r.Context(), req.Text, req.Corrections)
	if err != nil {
		if errors.Is(err, apply.ErrOverlapping) || errors.Is(err, apply.ErrOutOfRange) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, applyResponse{Corrected: corrected})
}

type diffRequest struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}

type diffResponse struct {
	Segments []worddiff.Segment `json:"segments"`
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if !readJSON(w, r, &req) {
		return
	}
	segs := s.engine.Diff(r.Context(), req.Original, req.Corrected)
	if segs == nil {
		segs = []worddiff.Segment{}
	}
	writeJSON(w, http.StatusOK, diffResponse{Segments: segs})
}

type sessionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text,omitempty"`
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create(r.Context())
	writeJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID})
}

func (s *Server) handleSessionCurrent(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	text, _ := sess.Current()
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Text: text})
}

func (s *Server) handleSessionClose(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Close(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type pushRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSessionPush(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req pushRequest
	if !readJSON(w, r, &req) {
		return
	}
	sess.Push(req.Text)
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Text: req.Text})
}

func (s *Server) handleSessionUndo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	text, undone := sess.Undo()
	if !undone {
		writeError(w, http.StatusConflict, errors.New("nothing to undo"))
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Text: text})
}

func (s *Server) handleSessionRedo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	text, redone := sess.Redo()
	if !redone {
		writeError(w, http.StatusConflict, errors.New("nothing to redo"))
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Text: text})
}

// lookup resolves the {id} path value to a live session, writing a 404
// on failure.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return sess, true
}

// readJSON decodes the request body into v. On failure it writes a 400
// and returns false.
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeJSON encodes v as JSON with the given status code. On encoding
// failure it falls back to a plain 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error":"encoding failure"}`, http.StatusInternalServerError)
	}
}
