package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SubmitBallotRequest carries the ranking as rank-string to candidate id, the
// shape the frontend posts. A nil ElectionID or nil Ranking means the field
// was absent from the body; an empty non-nil Ranking is a deliberate spoil.
type SubmitBallotRequest struct {
	ElectionID *int64           `json:"electionId"`
	Ranking    map[string]int64 `json:"ranking"`
}

type SubmitBallotResponse struct {
	SubmissionID string `json:"submission_id"`
	ElectionID   int64  `json:"election_id"`
	Spoiled      bool   `json:"spoiled"`
	BallotCount  int    `json:"ballot_count"`
}
