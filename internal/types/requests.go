package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Source formats accepted by the API.
const (
	FormatText  = "text"
	FormatLaTeX = "latex"
)

// AnalyzeRequest asks for a full scoring run.
type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description" validate:"required,min=20"`
	Format         string `json:"format,omitempty" validate:"omitempty,oneof=text latex"`
	IncludeReview  bool   `json:"include_review,omitempty"`
	IncludeParsed  bool   `json:"include_parsed,omitempty"`
	Save           bool   `json:"save,omitempty"`
}

// OptimizeRequest asks for an edited résumé.
type OptimizeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description" validate:"required,min=20"`
	Format         string `json:"format,omitempty" validate:"omitempty,oneof=text latex"`
}

// ParseRequest carries a single document to parse.
type ParseRequest struct {
	Text   string `json:"text" validate:"required"`
	Format string `json:"format,omitempty" validate:"omitempty,oneof=text latex"`
}

// ValidateLatexRequest carries typesetting source to check.
type ValidateLatexRequest struct {
	Source string `json:"source" validate:"required"`
}

// Validate validates the AnalyzeRequest.
func (r *AnalyzeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the OptimizeRequest.
func (r *OptimizeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ParseRequest.
func (r *ParseRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ValidateLatexRequest.
func (r *ValidateLatexRequest) Validate() error {
	return validate.Struct(r)
}
