package types

// JobRequirement represents the hiring requirements a candidate is scored against.
type JobRequirement struct {
	ID               string   `json:"id"`
	Title            string   `json:"title,omitempty"`
	MustHaveSkills   []string `json:"must_have_skills"`
	GoodToHaveSkills []string `json:"good_to_have_skills"`
	MinExpYears      float64  `json:"min_exp_years"`
	MaxExpYears      float64  `json:"max_exp_years"`
}

// PriorityTier is a caller-assigned urgency label that contributes a fixed
// bonus during rank consolidation.
type PriorityTier string

// Priority tiers in descending order of ranking bonus.
const (
	PriorityHigh   PriorityTier = "high"
	PriorityMedium PriorityTier = "medium"
	PriorityLow    PriorityTier = "low"
)
