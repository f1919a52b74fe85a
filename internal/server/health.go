package server

import "net/http"

// healthResult is the JSON body for the health endpoints.
type healthResult struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// handleHealthz is the liveness probe: a process that can serve HTTP is
// alive.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResult{Status: "ok"})
}

// handleReadyz reports readiness. The engine is ready once its
// dictionary answers queries; an empty dictionary means the word list
// failed to load and every token would be flagged.
func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	checks := map[string]string{"dictionary": "ok"}
	status := http.StatusOK
	res := healthResult{Status: "ok", Checks: checks}

	if !s.engine.Checker().Correct("the") {
		checks["dictionary"] = "fail: dictionary empty or not loaded"
		res.Status = "fail"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, res)
}
