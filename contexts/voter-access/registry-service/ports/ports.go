package ports

import (
	"context"
	"time"

	"quorum/contexts/voter-access/registry-service/domain/entities"
)

// UpsertOutcome tags whether an upsert found an existing voter row or
// created a new one. Explicit outcome instead of not-found-driven control
// flow.
type UpsertOutcome string

const (
	UpsertOutcomeCreated UpsertOutcome = "created"
	UpsertOutcomeFound   UpsertOutcome = "found"
)

type VoterRepository interface {
	// UpsertVoter stores the snapshot keyed by VoterKey, overwriting every
	// attribute when the voter already exists.
	UpsertVoter(ctx context.Context, voter entities.Voter) (UpsertOutcome, error)
	GetVoter(ctx context.Context, voterKey string) (entities.Voter, error)
}

// TokenSigner is the session boundary collaborator: mint a tamper-evident
// token for a voter key and recover the key from a presented token.
type TokenSigner interface {
	Mint(voterKey string) (string, error)
	Verify(token string) (string, error)
}

type Clock interface {
	Now() time.Time
}
