package entities

import "time"

// BallotSubmission is the unique submission event for a (voter, election)
// pair. At most one exists per pair; storage enforces this with a unique
// constraint so concurrent duplicates cannot both commit.
type BallotSubmission struct {
	SubmissionID string
	VoterKey     string
	ElectionID   int64
	Spoiled      bool
	CreatedAt    time.Time
}

// Ballot is one ranked preference row, or the single spoil row when both
// CandidateID and Rank are nil. Rows are append-only: written once at
// submission time, never mutated or deleted.
type Ballot struct {
	BallotID     string
	SubmissionID string
	VoterKey     string
	ElectionID   int64
	CandidateID  *int64
	Rank         *int
	CreatedAt    time.Time
}

// IsSpoil reports whether the row records a deliberate non-vote.
func (b Ballot) IsSpoil() bool {
	return b.CandidateID == nil && b.Rank == nil
}
