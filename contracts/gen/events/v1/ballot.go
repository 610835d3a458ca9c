package v1

// EventTypeBallotAccepted is emitted once per committed ballot submission.
const EventTypeBallotAccepted = "ballot.accepted"

// BallotAcceptedData is the Data payload for EventTypeBallotAccepted.
// Consumers must tolerate unknown additional fields.
type BallotAcceptedData struct {
	SubmissionID string `json:"submission_id"`
	ElectionID   int64  `json:"election_id"`
	Spoiled      bool   `json:"spoiled"`
	BallotCount  int    `json:"ballot_count"`
	OccurredAt   string `json:"occurred_at"`
}
