package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// UploadCandidateRequest represents a candidate intake submission.
// Profile and RawText are optional pre-extracted resume data; when present the
// profile must pass JSON Schema validation before it is stored.
type UploadCandidateRequest struct {
	JobID          string          `json:"job_id" validate:"required"`
	Source         string          `json:"source,omitempty"`
	Priority       string          `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	ResumeFilePath string          `json:"resume_file_path,omitempty"`
	Profile        json.RawMessage `json:"profile,omitempty"`
	RawText        string          `json:"raw_text,omitempty"`
}

// Validate validates the UploadCandidateRequest using the validator.
func (r *UploadCandidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
