package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/wordwise/internal/bankio"
	"github.com/abhisek/wordwise/internal/parent"
	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/quiz"
	"github.com/abhisek/wordwise/internal/stats"
	"github.com/abhisek/wordwise/internal/store"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	PIN string `json:"pin"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.login.Allow() {
		writeError(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.guard.Check(r.Context(), req.PIN); err != nil {
		if errors.Is(err, parent.ErrWrongPIN) {
			s.log.Warn("parent login rejected", zap.String("remote", r.RemoteAddr))
			writeError(w, http.StatusUnauthorized, "wrong PIN")
			return
		}
		s.internalError(w, "check PIN", err)
		return
	}
	tok, exp, err := s.auth.Issue()
	if err != nil {
		s.internalError(w, "issue token", err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: tok, ExpiresAt: exp})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	history, err := s.history.All(r.Context())
	if err != nil {
		s.internalError(w, "load history", err)
		return
	}
	writeJSON(w, http.StatusOK, stats.BuildReport(history, s.now()))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.history.All(r.Context())
	if err != nil {
		s.internalError(w, "load history", err)
		return
	}
	if history == nil {
		history = []quiz.Record{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleResetHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Reset(r.Context()); err != nil {
		s.internalError(w, "reset history", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type recordsRequest struct {
	SessionID string        `json:"session_id"`
	Records   []quiz.Record `json:"records"`
}

type recordsResponse struct {
	SessionID string `json:"session_id"`
	Correct   int    `json:"correct"`
	Total     int    `json:"total"`
}

// handleQuizRecords accepts the records of one finished session. A session
// ID that was already written is rejected so a retried upload cannot count
// twice.
func (s *Server) handleQuizRecords(w http.ResponseWriter, r *http.Request) {
	var req recordsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Records) == 0 {
		writeError(w, http.StatusBadRequest, "records: at least one record is required")
		return
	}
	now := s.now()
	for i := range req.Records {
		rec := &req.Records[i]
		rec.QuestionID = strings.TrimSpace(rec.QuestionID)
		if rec.QuestionID == "" {
			writeError(w, http.StatusBadRequest, "records: question_id is required")
			return
		}
		if strings.TrimSpace(rec.Category) == "" {
			rec.Category = question.DefaultCategory
		}
		if rec.Timestamp.IsZero() {
			rec.Timestamp = now
		}
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	err := s.history.Append(r.Context(), req.SessionID, req.Records)
	if errors.Is(err, store.ErrDuplicateSession) {
		writeError(w, http.StatusConflict, "session already recorded")
		return
	}
	if err != nil {
		s.internalError(w, "append history", err)
		return
	}

	correct, total := quiz.Score(req.Records)
	s.metrics.observeRecords(correct, total)
	writeJSON(w, http.StatusCreated, recordsResponse{SessionID: req.SessionID, Correct: correct, Total: total})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.bank.Categories(r.Context())
	if err != nil {
		s.internalError(w, "list categories", err)
		return
	}
	if cats == nil {
		cats = []question.CategoryCount{}
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	qs, err := s.bank.List(r.Context())
	if err != nil {
		s.internalError(w, "list questions", err)
		return
	}
	if c := r.URL.Query().Get("category"); c != "" {
		qs = question.FilterByCategory(qs, c)
	}
	if qs == nil {
		qs = []question.Question{}
	}
	writeJSON(w, http.StatusOK, qs)
}

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var q question.Question
	if !decodeBody(w, r, &q) {
		return
	}
	if strings.TrimSpace(q.ID) == "" {
		q.ID = question.NewID(question.PrefixUser, s.now(), -1)
	}
	q = question.Normalize(q)
	if err := s.bank.Add(r.Context(), q); err != nil {
		s.bankError(w, "add question", err)
		return
	}
	s.refreshBankSize(r)
	s.log.Info("bank mutated", zap.String("kind", "add"), zap.Int("count", 1))
	writeJSON(w, http.StatusCreated, q)
}

func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var q question.Question
	if !decodeBody(w, r, &q) {
		return
	}
	q.ID = chi.URLParam(r, "id")
	q = question.Normalize(q)
	if err := s.bank.Update(r.Context(), q); err != nil {
		s.bankError(w, "update question", err)
		return
	}
	s.log.Info("bank mutated", zap.String("kind", "update"), zap.Int("count", 1))
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := s.bank.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.bankError(w, "delete question", err)
		return
	}
	s.refreshBankSize(r)
	s.log.Info("bank mutated", zap.String("kind", "delete"), zap.Int("count", 1))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearQuestions(w http.ResponseWriter, r *http.Request) {
	if err := s.bank.Clear(r.Context()); err != nil {
		s.bankError(w, "clear bank", err)
		return
	}
	s.metrics.setBankSize(0)
	s.log.Info("bank mutated", zap.String("kind", "clear"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportTSV(w http.ResponseWriter, r *http.Request) {
	qs, err := s.bank.List(r.Context())
	if err != nil {
		s.internalError(w, "list questions", err)
		return
	}
	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="wordwise.tsv"`)
	if err := bankio.WriteTSV(w, qs); err != nil {
		s.log.Error("export tsv", zap.Error(err))
	}
}

func (s *Server) refreshBankSize(r *http.Request) {
	if n, err := s.bank.Count(r.Context()); err == nil {
		s.metrics.setBankSize(n)
	}
}

// bankError maps store and validation failures to status codes.
func (s *Server) bankError(w http.ResponseWriter, op string, err error) {
	switch {
	case question.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "question not found")
	case errors.Is(err, store.ErrDuplicateID):
		writeError(w, http.StatusConflict, "question id already exists")
	default:
		s.internalError(w, op, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}
