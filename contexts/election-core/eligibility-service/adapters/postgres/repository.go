package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"quorum/contexts/election-core/eligibility-service/domain/entities"
	domainerrors "quorum/contexts/election-core/eligibility-service/domain/errors"

	"gorm.io/gorm"
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

func (r *Repository) ListElections(ctx context.Context) ([]entities.Election, error) {
	var rows []electionModel
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("eligibility_repo_list_elections_failed", err)
	}
	items := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetElection(ctx context.Context, electionID int64) (entities.Election, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", electionID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, r.logError("eligibility_repo_get_election_failed", err,
			"election_id", electionID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetRule(ctx context.Context, electionID int64) (entities.EligibilityRule, error) {
	var row eligibilityRuleModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.EligibilityRule{}, domainerrors.ErrRuleMissing
		}
		return entities.EligibilityRule{}, r.logError("eligibility_repo_get_rule_failed", err,
			"election_id", electionID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCandidates(ctx context.Context, electionID int64) ([]entities.Candidate, error) {
	var rows []candidateModel
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("eligibility_repo_list_candidates_failed", err,
			"election_id", electionID,
		)
	}
	items := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetVoterAttributes(ctx context.Context, voterKey string) (entities.VoterAttributes, error) {
	var row voterProjectionModel
	err := r.db.WithContext(ctx).
		Where("voter_key = ?", strings.TrimSpace(voterKey)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VoterAttributes{}, domainerrors.ErrVoterNotFound
		}
		return entities.VoterAttributes{}, r.logError("eligibility_repo_get_voter_failed", err,
			"voter_key", strings.TrimSpace(voterKey),
		)
	}
	return entities.VoterAttributes{
		VoterKey:         row.VoterKey,
		Discipline:       row.Discipline,
		StudyYear:        row.StudyYear,
		IsPEY:            row.PEY,
		EnrollmentStatus: row.EnrollmentStatus,
	}, nil
}

func (r *Repository) HasSubmission(ctx context.Context, voterKey string, electionID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("ballot_submissions").
		Where("voter_key = ?", strings.TrimSpace(voterKey)).
		Where("election_id = ?", electionID).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("eligibility_repo_has_submission_failed", err,
			"voter_key", strings.TrimSpace(voterKey),
			"election_id", electionID,
		)
	}
	return count > 0, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "election-core/eligibility-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("eligibility repository operation failed", fields...)
	return err
}

type electionModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name"`
	SeatsAvailable int       `gorm:"column:seats_available"`
	Category       string    `gorm:"column:category"`
	SessionID      int64     `gorm:"column:session_id"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (electionModel) TableName() string {
	return "elections"
}

func (m electionModel) toEntity() entities.Election {
	return entities.Election{
		ElectionID:     m.ID,
		Name:           m.Name,
		SeatsAvailable: m.SeatsAvailable,
		Category:       entities.Category(m.Category),
		SessionID:      m.SessionID,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

type eligibilityRuleModel struct {
	ElectionID int64 `gorm:"column:election_id;primaryKey"`

	EngEligible bool `gorm:"column:eng_eligible"`
	CheEligible bool `gorm:"column:che_eligible"`
	CivEligible bool `gorm:"column:civ_eligible"`
	EleEligible bool `gorm:"column:ele_eligible"`
	CpeEligible bool `gorm:"column:cpe_eligible"`
	EscEligible bool `gorm:"column:esc_eligible"`
	IndEligible bool `gorm:"column:ind_eligible"`
	LmeEligible bool `gorm:"column:lme_eligible"`
	MecEligible bool `gorm:"column:mec_eligible"`
	MmsEligible bool `gorm:"column:mms_eligible"`

	Year1Eligible bool `gorm:"column:year_1_eligible"`
	Year2Eligible bool `gorm:"column:year_2_eligible"`
	Year3Eligible bool `gorm:"column:year_3_eligible"`
	Year4Eligible bool `gorm:"column:year_4_eligible"`

	PEYEligible    bool   `gorm:"column:pey_eligible"`
	StatusEligible string `gorm:"column:status_eligible"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (eligibilityRuleModel) TableName() string {
	return "eligibility_rules"
}

func (m eligibilityRuleModel) toEntity() entities.EligibilityRule {
	return entities.EligibilityRule{
		ElectionID:     m.ElectionID,
		EngEligible:    m.EngEligible,
		CheEligible:    m.CheEligible,
		CivEligible:    m.CivEligible,
		EleEligible:    m.EleEligible,
		CpeEligible:    m.CpeEligible,
		EscEligible:    m.EscEligible,
		IndEligible:    m.IndEligible,
		LmeEligible:    m.LmeEligible,
		MecEligible:    m.MecEligible,
		MmsEligible:    m.MmsEligible,
		Year1Eligible:  m.Year1Eligible,
		Year2Eligible:  m.Year2Eligible,
		Year3Eligible:  m.Year3Eligible,
		Year4Eligible:  m.Year4Eligible,
		PEYEligible:    m.PEYEligible,
		StatusEligible: entities.StatusEligibility(m.StatusEligible),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

type candidateModel struct {
	ID                   int64     `gorm:"column:id;primaryKey"`
	ElectionID           int64     `gorm:"column:election_id"`
	Name                 string    `gorm:"column:name"`
	Statement            string    `gorm:"column:statement"`
	DisqualifiedStatus   bool      `gorm:"column:disqualified_status"`
	DisqualifiedLink     string    `gorm:"column:disqualified_link"`
	DisqualifiedMessage  string    `gorm:"column:disqualified_message"`
	RuleViolationMessage string    `gorm:"column:rule_violation_message"`
	RuleViolationLink    string    `gorm:"column:rule_violation_link"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (candidateModel) TableName() string {
	return "candidates"
}

func (m candidateModel) toEntity() entities.Candidate {
	return entities.Candidate{
		CandidateID:          m.ID,
		ElectionID:           m.ElectionID,
		Name:                 m.Name,
		Statement:            m.Statement,
		DisqualifiedStatus:   m.DisqualifiedStatus,
		DisqualifiedLink:     m.DisqualifiedLink,
		DisqualifiedMessage:  m.DisqualifiedMessage,
		RuleViolationMessage: m.RuleViolationMessage,
		RuleViolationLink:    m.RuleViolationLink,
		CreatedAt:            m.CreatedAt.UTC(),
		UpdatedAt:            m.UpdatedAt.UTC(),
	}
}

type voterProjectionModel struct {
	VoterKey         string `gorm:"column:voter_key;primaryKey"`
	Discipline       string `gorm:"column:discipline"`
	StudyYear        int    `gorm:"column:study_year"`
	PEY              bool   `gorm:"column:pey"`
	EnrollmentStatus string `gorm:"column:enrollment_status"`
}

func (voterProjectionModel) TableName() string {
	return "voters"
}
