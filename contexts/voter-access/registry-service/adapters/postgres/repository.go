package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"quorum/contexts/voter-access/registry-service/domain/entities"
	domainerrors "quorum/contexts/voter-access/registry-service/domain/errors"
	"quorum/contexts/voter-access/registry-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) UpsertVoter(ctx context.Context, voter entities.Voter) (ports.UpsertOutcome, error) {
	row := voterModelFromEntity(voter)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "voter_key"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return "", r.logError("registry_repo_upsert_voter_insert_failed", create.Error,
			"voter_key", row.VoterKey,
		)
	}
	if create.RowsAffected > 0 {
		return ports.UpsertOutcomeCreated, nil
	}

	// Existing voter: the provider snapshot overwrites every attribute.
	update := r.db.WithContext(ctx).
		Model(&voterModel{}).
		Where("voter_key = ?", row.VoterKey).
		Updates(map[string]any{
			"discipline":          row.Discipline,
			"study_year":          row.StudyYear,
			"engineering_student": row.EngineeringStudent,
			"pey":                 row.PEY,
			"enrollment_status":   row.EnrollmentStatus,
			"updated_at":          row.UpdatedAt,
		})
	if update.Error != nil {
		return "", r.logError("registry_repo_upsert_voter_update_failed", update.Error,
			"voter_key", row.VoterKey,
		)
	}
	return ports.UpsertOutcomeFound, nil
}

func (r *Repository) GetVoter(ctx context.Context, voterKey string) (entities.Voter, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("voter_key = ?", strings.TrimSpace(voterKey)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, domainerrors.ErrVoterNotFound
		}
		return entities.Voter{}, r.logError("registry_repo_get_voter_failed", err,
			"voter_key", strings.TrimSpace(voterKey),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "voter-access/registry-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("registry repository operation failed", fields...)
	return err
}

type voterModel struct {
	VoterKey           string    `gorm:"column:voter_key;primaryKey"`
	Discipline         string    `gorm:"column:discipline"`
	StudyYear          int       `gorm:"column:study_year"`
	EngineeringStudent bool      `gorm:"column:engineering_student"`
	PEY                bool      `gorm:"column:pey"`
	EnrollmentStatus   string    `gorm:"column:enrollment_status"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (voterModel) TableName() string {
	return "voters"
}

func voterModelFromEntity(voter entities.Voter) voterModel {
	row := voterModel{
		VoterKey:           strings.TrimSpace(voter.VoterKey),
		Discipline:         string(voter.Discipline),
		StudyYear:          voter.StudyYear,
		EngineeringStudent: voter.IsEngineeringStudent,
		PEY:                voter.IsPEY,
		EnrollmentStatus:   string(voter.EnrollmentStatus),
		CreatedAt:          voter.CreatedAt.UTC(),
		UpdatedAt:          voter.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m voterModel) toEntity() entities.Voter {
	return entities.Voter{
		VoterKey:             m.VoterKey,
		Discipline:           entities.Discipline(m.Discipline),
		StudyYear:            m.StudyYear,
		IsEngineeringStudent: m.EngineeringStudent,
		IsPEY:                m.PEY,
		EnrollmentStatus:     entities.EnrollmentStatus(m.EnrollmentStatus),
		CreatedAt:            m.CreatedAt.UTC(),
		UpdatedAt:            m.UpdatedAt.UTC(),
	}
}
