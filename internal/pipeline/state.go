// Package pipeline provides the orchestration of the candidate evaluation
// pipeline: parse -> fraud -> verification -> scoring.
package pipeline

import "github.com/jonathan/candidate-screener/internal/types"

// Status is the lifecycle state of a pipeline run.
type Status string

// Pipeline statuses. DONE and FAILED are terminal.
const (
	StatusStart        Status = "START"
	StatusParsed       Status = "PARSED"
	StatusFraudChecked Status = "FRAUD_CHECKED"
	StatusDone         Status = "DONE"
	StatusFailed       Status = "FAILED"
)

// statusOrder defines the forward progression of non-terminal statuses.
var statusOrder = map[Status]int{
	StatusStart:        0,
	StatusParsed:       1,
	StatusFraudChecked: 2,
	StatusDone:         3,
}

// State is the mutable accumulator for one pipeline run. It is owned
// exclusively by its run; concurrent runs never share a State.
type State struct {
	CandidateID  string                    `json:"candidateId"`
	JobID        string                    `json:"jobId"`
	RawText      string                    `json:"rawText,omitempty"`
	Profile      *types.CandidateProfile   `json:"structuredProfile,omitempty"`
	Fraud        *types.FraudAssessment    `json:"fraudResult,omitempty"`
	Verification *types.VerificationResult `json:"verificationResult,omitempty"`
	Evaluation   *types.ScoreBreakdown     `json:"evaluation,omitempty"`
	FinalRank    int                       `json:"finalRank"`
	Status       Status                    `json:"status"`
	Errors       []string                  `json:"errors"`
}

// NewState creates the initial state for a run.
func NewState(candidateID, jobID string) *State {
	return &State{
		CandidateID: candidateID,
		JobID:       jobID,
		Status:      StatusStart,
		Errors:      []string{},
	}
}

// Update is a partial state change produced by one stage. Nil fields keep the
// previous value; Errors are appended, never replaced.
type Update struct {
	RawText      *string
	Profile      *types.CandidateProfile
	Fraud        *types.FraudAssessment
	Verification *types.VerificationResult
	Evaluation   *types.ScoreBreakdown
	FinalRank    *int
	Status       Status
	Errors       []string
}

// Apply merges an update into the state. Every field follows last-write-wins
// with absent-keeps-previous semantics except Errors (append-only) and Status
// (monotonic forward; FAILED is reachable from any non-terminal status and is
// terminal, as is DONE).
func (s *State) Apply(u Update) {
	if u.RawText != nil {
		s.RawText = *u.RawText
	}
	if u.Profile != nil {
		s.Profile = u.Profile
	}
	if u.Fraud != nil {
		s.Fraud = u.Fraud
	}
	if u.Verification != nil {
		s.Verification = u.Verification
	}
	if u.Evaluation != nil {
		s.Evaluation = u.Evaluation
	}
	if u.FinalRank != nil {
		s.FinalRank = *u.FinalRank
	}
	if u.Status != "" {
		s.applyStatus(u.Status)
	}
	s.Errors = append(s.Errors, u.Errors...)
}

func (s *State) applyStatus(next Status) {
	if s.Terminal() {
		return
	}
	if next == StatusFailed {
		s.Status = StatusFailed
		return
	}
	cur, curOK := statusOrder[s.Status]
	nxt, nxtOK := statusOrder[next]
	if curOK && nxtOK && nxt > cur {
		s.Status = next
	}
}

// Terminal reports whether the run has reached a terminal status.
func (s *State) Terminal() bool {
	return s.Status == StatusDone || s.Status == StatusFailed
}

// Failed reports whether the run is in the FAILED state.
func (s *State) Failed() bool {
	return s.Status == StatusFailed
}

// fail records a fatal stage error and moves the run to FAILED.
func (s *State) fail(msg string) {
	s.Apply(Update{Status: StatusFailed, Errors: []string{msg}})
}
