// Package types provides type definitions for structured data used throughout the candidate-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateProfile represents the structured resume data extracted for a candidate.
// Extraction happens upstream; the evaluation pipeline treats this as read-only input.
type CandidateProfile struct {
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone,omitempty"`
	Location       string            `json:"location,omitempty"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Certifications []string          `json:"certifications,omitempty"`
	Links          []string          `json:"links,omitempty"`
}

// ExperienceEntry represents a single role in a candidate's work history.
// Dates use the "YYYY-MM" format; EndDate may be the sentinel "Present".
type ExperienceEntry struct {
	Company    string   `json:"company,omitempty"`
	Title      string   `json:"title,omitempty"`
	StartDate  string   `json:"startDate,omitempty"`
	EndDate    string   `json:"endDate,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// EducationEntry represents a single credential in a candidate's education history.
type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}
