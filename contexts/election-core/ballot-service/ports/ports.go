package ports

import (
	"context"
	"time"

	"quorum/contexts/election-core/ballot-service/domain/entities"

	contractsv1 "quorum/contracts/gen/events/v1"
)

type BallotRepository interface {
	HasSubmission(ctx context.Context, voterKey string, electionID int64) (bool, error)
	// CreateSubmission persists the submission event plus its ballot rows
	// atomically. A concurrent duplicate for the same (voter, election)
	// must surface as ErrAlreadyVoted; any other fault leaves no partial
	// rows visible.
	CreateSubmission(ctx context.Context, submission entities.BallotSubmission, ballots []entities.Ballot) error
	ListBallots(ctx context.Context, voterKey string, electionID int64) ([]entities.Ballot, error)
}

// ElectionProjection is the slice of the election catalog the transactor
// needs.
type ElectionProjection struct {
	ElectionID int64
	Name       string
}

type ElectionCatalog interface {
	GetElection(ctx context.Context, electionID int64) (ElectionProjection, error)
	ListCandidateIDs(ctx context.Context, electionID int64) ([]int64, error)
}

// EligibilityGate is the rule predicate from the eligibility evaluator,
// without the prior-submission exclusion.
type EligibilityGate interface {
	RuleAllows(ctx context.Context, voterKey string, electionID int64) (bool, error)
}

// EventEnvelope is the canonical cross-runtime envelope from the contracts
// module.
type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxSource interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, message OutboxMessage) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
