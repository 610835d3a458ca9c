package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"quorum/contexts/election-core/ballot-service/domain/entities"
	domainerrors "quorum/contexts/election-core/ballot-service/domain/errors"
	"quorum/contexts/election-core/ballot-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type submissionModel struct {
	SubmissionID string    `gorm:"column:submission_id;primaryKey"`
	VoterKey     string    `gorm:"column:voter_key;index:idx_submission_pair,unique"`
	ElectionID   int64     `gorm:"column:election_id;index:idx_submission_pair,unique"`
	Spoiled      bool      `gorm:"column:spoiled"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (submissionModel) TableName() string { return "ballot_submissions" }

type ballotModel struct {
	BallotID     string    `gorm:"column:ballot_id;primaryKey"`
	SubmissionID string    `gorm:"column:submission_id;index"`
	VoterKey     string    `gorm:"column:voter_key;index"`
	ElectionID   int64     `gorm:"column:election_id;index"`
	CandidateID  *int64    `gorm:"column:candidate_id"`
	Rank         *int      `gorm:"column:rank"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (ballotModel) TableName() string { return "ballots" }

func (m ballotModel) toEntity() entities.Ballot {
	return entities.Ballot{
		BallotID:     m.BallotID,
		SubmissionID: m.SubmissionID,
		VoterKey:     m.VoterKey,
		ElectionID:   m.ElectionID,
		CandidateID:  m.CandidateID,
		Rank:         m.Rank,
		CreatedAt:    m.CreatedAt,
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	CreatedAt    time.Time  `gorm:"column:created_at;index"`
	PublishedAt  *time.Time `gorm:"column:published_at;index"`
}

func (outboxModel) TableName() string { return "ballot_outbox" }

// Repository persists submissions, ballot rows, and the audit outbox. The
// unique index on (voter_key, election_id) is the arbiter for concurrent
// duplicate submissions.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

func (r *Repository) HasSubmission(ctx context.Context, voterKey string, electionID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Where("voter_key = ? AND election_id = ?", voterKey, electionID).
		Count(&count).Error
	if err != nil {
		r.logError(ctx, "ballot_submission_lookup_failed", err)
		return false, domainerrors.ErrSubmissionFailed
	}
	return count > 0, nil
}

func (r *Repository) CreateSubmission(
	ctx context.Context,
	submission entities.BallotSubmission,
	ballots []entities.Ballot,
) error {
	rows := make([]ballotModel, 0, len(ballots))
	for _, ballot := range ballots {
		rows = append(rows, ballotModel{
			BallotID:     ballot.BallotID,
			SubmissionID: ballot.SubmissionID,
			VoterKey:     ballot.VoterKey,
			ElectionID:   ballot.ElectionID,
			CandidateID:  ballot.CandidateID,
			Rank:         ballot.Rank,
			CreatedAt:    ballot.CreatedAt,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submissionModel{
			SubmissionID: submission.SubmissionID,
			VoterKey:     submission.VoterKey,
			ElectionID:   submission.ElectionID,
			Spoiled:      submission.Spoiled,
			CreatedAt:    submission.CreatedAt,
		}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyVoted
		}
		r.logError(ctx, "ballot_submission_write_failed", err)
		return domainerrors.ErrSubmissionFailed
	}
	return nil
}

func (r *Repository) ListBallots(ctx context.Context, voterKey string, electionID int64) ([]entities.Ballot, error) {
	var models []ballotModel
	err := r.db.WithContext(ctx).
		Where("voter_key = ? AND election_id = ?", voterKey, electionID).
		Order("rank ASC NULLS LAST").
		Find(&models).Error
	if err != nil {
		r.logError(ctx, "ballot_list_failed", err)
		return nil, domainerrors.ErrSubmissionFailed
	}
	ballots := make([]entities.Ballot, 0, len(models))
	for _, model := range models {
		ballots = append(ballots, model.toEntity())
	}
	return ballots, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Create(&outboxModel{
		OutboxID:     envelope.EventID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}).Error
	if err != nil {
		r.logError(ctx, "ballot_outbox_append_failed", err)
		return err
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var models []outboxModel
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		r.logError(ctx, "ballot_outbox_list_failed", err)
		return nil, err
	}
	messages := make([]ports.OutboxMessage, 0, len(models))
	for _, model := range models {
		messages = append(messages, ports.OutboxMessage{
			OutboxID:     model.OutboxID,
			EventType:    model.EventType,
			PartitionKey: model.PartitionKey,
			Payload:      model.Payload,
			CreatedAt:    model.CreatedAt,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Update("published_at", publishedAt.UTC()).Error
	if err != nil {
		r.logError(ctx, "ballot_outbox_mark_failed", err)
	}
	return err
}

func (r *Repository) logError(_ context.Context, event string, err error) {
	if r.logger == nil {
		return
	}
	r.logger.Error("ballot repository operation failed",
		"event", event,
		"module", "election-core/ballot-service",
		"layer", "adapter",
		"error", err.Error(),
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
