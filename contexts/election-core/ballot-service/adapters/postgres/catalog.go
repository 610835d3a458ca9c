package postgresadapter

import (
	"context"
	"errors"
	"log/slog"

	domainerrors "quorum/contexts/election-core/ballot-service/domain/errors"
	"quorum/contexts/election-core/ballot-service/ports"

	"gorm.io/gorm"
)

type electionRowModel struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name"`
}

func (electionRowModel) TableName() string { return "elections" }

type candidateRowModel struct {
	ID         int64 `gorm:"column:id;primaryKey"`
	ElectionID int64 `gorm:"column:election_id;index"`
}

func (candidateRowModel) TableName() string { return "candidates" }

// Catalog reads the election and candidate tables owned by the eligibility
// service. The transactor only needs existence and candidate membership, so
// this stays a thin read-only projection.
type Catalog struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewCatalog(db *gorm.DB, logger *slog.Logger) *Catalog {
	return &Catalog{db: db, logger: logger}
}

func (c *Catalog) GetElection(ctx context.Context, electionID int64) (ports.ElectionProjection, error) {
	var model electionRowModel
	err := c.db.WithContext(ctx).First(&model, "id = ?", electionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ElectionProjection{}, domainerrors.ErrElectionNotFound
		}
		c.logCatalogError(ctx, "ballot_election_lookup_failed", err)
		return ports.ElectionProjection{}, domainerrors.ErrSubmissionFailed
	}
	return ports.ElectionProjection{ElectionID: model.ID, Name: model.Name}, nil
}

func (c *Catalog) ListCandidateIDs(ctx context.Context, electionID int64) ([]int64, error) {
	var ids []int64
	err := c.db.WithContext(ctx).
		Model(&candidateRowModel{}).
		Where("election_id = ?", electionID).
		Pluck("id", &ids).Error
	if err != nil {
		c.logCatalogError(ctx, "ballot_candidate_lookup_failed", err)
		return nil, domainerrors.ErrSubmissionFailed
	}
	return ids, nil
}

func (c *Catalog) logCatalogError(_ context.Context, event string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Error("ballot catalog read failed",
		"event", event,
		"module", "election-core/ballot-service",
		"layer", "adapter",
		"error", err.Error(),
	)
}
