package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/alexanderramin/tdee/internal/contract"
	"github.com/alexanderramin/tdee/internal/domain"
	"github.com/alexanderramin/tdee/internal/repository"
	"github.com/alexanderramin/tdee/internal/service"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type logEntryJSON struct {
	Date     string   `json:"date"`
	Weight   *float64 `json:"weight"`
	Calories *float64 `json:"calories"`
}

type logWriteResponse struct {
	Entry *logEntryJSON `json:"entry,omitempty"`
	TDEE  int           `json:"tdee"`
}

type profileJSON struct {
	StartWeight    *float64  `json:"start_weight"`
	GoalWeight     *float64  `json:"goal_weight"`
	HeightCm       *float64  `json:"height_cm"`
	WeeklyRate     float64   `json:"weekly_rate"`
	CalculatedTDEE *int      `json:"calculated_tdee"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type profilePatchJSON struct {
	StartWeight *float64 `json:"start_weight"`
	GoalWeight  *float64 `json:"goal_weight"`
	HeightCm    *float64 `json:"height_cm"`
	WeeklyRate  *float64 `json:"weekly_rate"`
}

func toLogEntryJSON(e domain.LogEntry) logEntryJSON {
	return logEntryJSON{Date: e.DateKey(), Weight: e.Weight, Calories: e.Calories}
}

func toProfileJSON(p *domain.UserProfile) profileJSON {
	return profileJSON{
		StartWeight:    p.StartWeight,
		GoalWeight:     p.GoalWeight,
		HeightCm:       p.HeightCm,
		WeeklyRate:     p.WeeklyRate,
		CalculatedTDEE: p.CalculatedTDEE,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.tracker.GetSummary(r.Context(), contract.NewSummaryRequest())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) listLogs(w http.ResponseWriter, r *http.Request) {
	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, r, badRequest("days must be an integer, got %q", v))
			return
		}
		days = n
	}

	entries, err := s.tracker.ListLogs(r.Context(), days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]logEntryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLogEntryJSON(e))
	}
	s.writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) createLog(w http.ResponseWriter, r *http.Request) {
	var body logEntryJSON
	if err := decodeBody(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	date, err := domain.ParseDate(body.Date, s.now())
	if err != nil {
		s.writeError(w, r, badRequest("%v", err))
		return
	}

	entry := &domain.LogEntry{Date: date, Weight: body.Weight, Calories: body.Calories}
	tdee, err := s.tracker.AddLog(r.Context(), entry)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	stored := toLogEntryJSON(*entry)
	s.writeJSON(w, r, http.StatusCreated, logWriteResponse{Entry: &stored, TDEE: tdee})
}

func (s *Server) deleteLog(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["date"]
	date, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		s.writeError(w, r, badRequest("invalid date %q (expected YYYY-MM-DD)", raw))
		return
	}
	tdee, err := s.tracker.DeleteLog(r.Context(), date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, logWriteResponse{TDEE: tdee})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.tracker.GetProfile(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toProfileJSON(p))
}

func (s *Server) patchProfile(w http.ResponseWriter, r *http.Request) {
	var body profilePatchJSON
	if err := decodeBody(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.tracker.UpdateProfile(r.Context(), domain.ProfilePatch{
		StartWeight: body.StartWeight,
		GoalWeight:  body.GoalWeight,
		HeightCm:    body.HeightCm,
		WeeklyRate:  body.WeeklyRate,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toProfileJSON(p))
}

func (s *Server) getTarget(w http.ResponseWriter, r *http.Request) {
	var rate *float64
	if v := r.URL.Query().Get("rate"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			s.writeError(w, r, badRequest("rate must be a finite number, got %q", v))
			return
		}
		rate = &f
	}
	target, err := s.tracker.Target(r.Context(), rate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, target)
}

func (s *Server) recalculate(w http.ResponseWriter, r *http.Request) {
	tdee, err := s.tracker.Recalculate(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, logWriteResponse{TDEE: tdee})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

func badRequest(format string, args ...any) error {
	return &service.ValidationError{Problems: []string{fmt.Sprintf(format, args...)}}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case service.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	default:
		s.logger.ErrorContext(r.Context(), "api_error", "path", r.URL.Path, "error", err.Error())
	}
	s.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

// writeJSON encodes v before sending the status line, so an unencodable
// value turns into a 500 instead of an empty success.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.ErrorContext(r.Context(), "api_encode_failed", "path", r.URL.Path, "error", err.Error())
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "encoding response failed"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
