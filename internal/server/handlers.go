package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/ats-scorer/internal/latex"
	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/server/middleware"
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/jonathan/ats-scorer/internal/validation"
)

// request is implemented by every request type.
type request interface {
	Validate() error
}

// decode reads a JSON body into req and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, req request) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return req.Validate()
}

// OptimizeResponse is the optimization result with the scores it started from.
type OptimizeResponse struct {
	*types.OptimizationResult
	AnalysisID string            `json:"analysis_id"`
	Scores     types.ScoreBundle `json:"scores"`
}

// ParseResumeResponse is the parsed résumé, its structural score and, for
// LaTeX sources, the structural map.
type ParseResumeResponse struct {
	Resume    *types.Resume         `json:"resume"`
	Structure types.StructureResult `json:"structure"`
	Latex     *latex.StructuralMap  `json:"latex,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Save && s.store == nil {
		s.fail(w, r, &ErrUnavailable{Service: "history"})
		return
	}
	owner, _ := middleware.Subject(r)

	analysis, err := s.analyzer.Analyze(r.Context(), req.ResumeText, req.JobDescription, pipeline.Options{
		Review: req.IncludeReview,
		Save:   req.Save,
		Owner:  owner,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if !req.IncludeParsed {
		trimmed := *analysis
		trimmed.Resume, trimmed.Job = nil, nil
		analysis = &trimmed
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req types.OptimizeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	result, analysis, err := s.analyzer.Optimize(r.Context(), req.ResumeText, req.JobDescription, req.Format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, OptimizeResponse{
		OptimizationResult: result,
		AnalysisID:         analysis.ID,
		Scores:             analysis.Scores,
	})
}

func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	var req types.ParseRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	resume := parsing.ParseResume(req.Text)
	resp := ParseResumeResponse{
		Resume:    resume,
		Structure: scoring.ScoreStructure(resume),
	}
	if req.Format == types.FormatLaTeX || (req.Format == "" && latex.IsLatex(req.Text)) {
		resp.Latex = latex.Parse(req.Text)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleParseJD(w http.ResponseWriter, r *http.Request) {
	var req types.ParseRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	job := parsing.ParseJobDescription(r.Context(), req.Text, s.analyzer.Phrases, s.logger)
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleValidateLatex(w http.ResponseWriter, r *http.Request) {
	var req types.ValidateLatexRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, validation.ValidateLatexSyntax(req.Source))
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, &ErrUnavailable{Service: "history"})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.fail(w, r, &ErrValidation{Field: "limit", Message: fmt.Sprintf("must be a positive integer, got %q", v)})
			return
		}
		limit = n
	}

	summaries, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"analyses": summaries,
		"count":    len(summaries),
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, &ErrUnavailable{Service: "history"})
		return
	}
	analysis, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, &ErrUnavailable{Service: "history"})
		return
	}
	if err := s.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]string{"status": "ok"}
	if s.health != nil {
		for name, state := range s.health() {
			resp[name] = state
		}
	}
	if s.store == nil {
		resp["history"] = "disabled"
	} else if _, ok := resp["history"]; !ok {
		resp["history"] = "enabled"
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
