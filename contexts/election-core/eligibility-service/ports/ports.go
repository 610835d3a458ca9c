package ports

import (
	"context"

	"quorum/contexts/election-core/eligibility-service/domain/entities"
)

type ElectionRepository interface {
	ListElections(ctx context.Context) ([]entities.Election, error)
	GetElection(ctx context.Context, electionID int64) (entities.Election, error)
	// GetRule returns the one-to-one rule for an election; absence is
	// ErrRuleMissing.
	GetRule(ctx context.Context, electionID int64) (entities.EligibilityRule, error)
	ListCandidates(ctx context.Context, electionID int64) ([]entities.Candidate, error)
}

// VoterDirectory projects voter snapshots owned by the registry context.
type VoterDirectory interface {
	GetVoterAttributes(ctx context.Context, voterKey string) (entities.VoterAttributes, error)
}

// SubmissionLedger answers whether any ballot submission (ranked or spoiled)
// exists for a (voter, election) pair.
type SubmissionLedger interface {
	HasSubmission(ctx context.Context, voterKey string, electionID int64) (bool, error)
}
