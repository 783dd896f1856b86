package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/candidate-screener/internal/schemas"
	"github.com/jonathan/candidate-screener/internal/types"
)

// UploadResponse represents the response for POST /candidates
type UploadResponse struct {
	CandidateID   string `json:"candidate_id"`
	PriorityScore int    `json:"priority_score"`
	Status        string `json:"status"`
}

// RerankRequest represents the request body for POST /candidates/{id}/rerank
type RerankRequest struct {
	OverallScore int `json:"overall_score"`
	FraudScore   int `json:"fraud_score"`
}

// RerankResponse represents the response for POST /candidates/{id}/rerank
type RerankResponse struct {
	CandidateID    string `json:"candidate_id"`
	FinalRankScore int    `json:"final_rank_score"`
}

// handleUploadCandidate registers a candidate and stores any submitted
// resume data
func (s *Server) handleUploadCandidate(w http.ResponseWriter, r *http.Request) {
	var req types.UploadCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var profile *types.CandidateProfile
	if len(req.Profile) > 0 {
		if err := schemas.ValidateCandidateProfile(req.Profile); err != nil {
			var ve *schemas.ValidationError
			if errors.As(err, &ve) {
				s.errorResponse(w, http.StatusBadRequest, "Invalid profile: "+ve.Error())
				return
			}
			s.errorResponse(w, http.StatusInternalServerError, "Profile validation unavailable: "+err.Error())
			return
		}

		profile = &types.CandidateProfile{}
		if err := json.Unmarshal(req.Profile, profile); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid profile: "+err.Error())
			return
		}
	}

	candidate, err := s.registrar.Register(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if profile != nil || req.RawText != "" {
		if err := s.store.SaveCandidateProfile(r.Context(), candidate.ID, req.RawText, profile); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to store resume data: "+err.Error())
			return
		}
	}

	s.jsonResponse(w, http.StatusCreated, UploadResponse{
		CandidateID:   candidate.ID,
		PriorityScore: candidate.PriorityScore,
		Status:        candidate.Status,
	})
}

// handleGetCandidate returns the candidate intake record
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	candidate, err := s.store.GetCandidate(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if candidate == nil {
		err := &ErrCandidateNotFound{CandidateID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, candidate)
}

// handleEvaluate runs the full evaluation pipeline for a candidate and
// returns the final state
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	candidate, err := s.store.GetCandidate(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if candidate == nil {
		err := &ErrCandidateNotFound{CandidateID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	state := s.evaluator.Run(r.Context(), candidate.ID, candidate.JobID)
	s.jsonResponse(w, http.StatusOK, state)
}

// handleRerank recomputes the final rank from the given component scores
func (s *Server) handleRerank(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req RerankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rank := s.reranker.Rerank(r.Context(), id, req.OverallScore, req.FraudScore)
	s.jsonResponse(w, http.StatusOK, RerankResponse{
		CandidateID:    id,
		FinalRankScore: rank,
	})
}

// handleAuditTrail returns the candidate's audit entries in insertion order
func (s *Server) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	entries, err := s.store.GetAuditTrail(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"candidate_id": id,
		"entries":      entries,
	})
}
