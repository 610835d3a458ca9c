package application

import (
	"context"
	"log/slog"
	"time"

	"quorum/contexts/voter-access/registry-service/domain/entities"
	domainerrors "quorum/contexts/voter-access/registry-service/domain/errors"
	"quorum/contexts/voter-access/registry-service/domain/services"
	"quorum/contexts/voter-access/registry-service/ports"
)

// ResolveResult reports the stable voter key plus whether the snapshot row
// was freshly created or an existing one was overwritten.
type ResolveResult struct {
	VoterKey string
	Outcome  ports.UpsertOutcome
}

// Service resolves signed identity payloads into voter snapshots and owns
// the session-token boundary.
type Service struct {
	Voters       ports.VoterRepository
	Sessions     ports.TokenSigner
	Clock        ports.Clock
	SharedSecret string
	Logger       *slog.Logger
}

// ResolveIdentity validates an inbound identity payload and upserts the
// voter. Resolving the same payload twice yields identical stored state and
// the same key.
func (s Service) ResolveIdentity(ctx context.Context, payload map[string]string, verify bool) (ResolveResult, error) {
	logger := ResolveLogger(s.Logger)

	fields, err := services.ExtractFields(payload)
	if err != nil {
		logger.Warn("identity payload incomplete",
			"event", "registry_resolve_incomplete",
			"module", "voter-access/registry-service",
			"layer", "application",
		)
		return ResolveResult{}, err
	}

	if verify {
		// An absent digest counts as a mismatch, same as a wrong one.
		if !fields.VerifyDigest(payload["hash"], s.SharedSecret) {
			logger.Warn("identity payload digest mismatch",
				"event", "registry_resolve_digest_mismatch",
				"module", "voter-access/registry-service",
				"layer", "application",
			)
			return ResolveResult{}, domainerrors.ErrTamperedIdentity
		}
	}

	if !fields.IdentityEligible() {
		logger.Warn("identity not eligible for society elections",
			"event", "registry_resolve_ineligible",
			"module", "voter-access/registry-service",
			"layer", "application",
		)
		return ResolveResult{}, domainerrors.ErrIneligibleIdentity
	}

	voter, err := fields.DeriveVoter(s.now())
	if err != nil {
		return ResolveResult{}, err
	}

	outcome, err := s.Voters.UpsertVoter(ctx, voter)
	if err != nil {
		logger.Error("voter upsert failed",
			"event", "registry_resolve_upsert_failed",
			"module", "voter-access/registry-service",
			"layer", "application",
			"error", err.Error(),
		)
		return ResolveResult{}, err
	}

	logger.Info("voter identity resolved",
		"event", "registry_resolve_succeeded",
		"module", "voter-access/registry-service",
		"layer", "application",
		"outcome", string(outcome),
		"discipline", string(voter.Discipline),
		"study_year", voter.StudyYear,
		"pey", voter.IsPEY,
	)
	return ResolveResult{VoterKey: voter.VoterKey, Outcome: outcome}, nil
}

// MintSession turns a resolved voter key into a tamper-evident token.
func (s Service) MintSession(voterKey string) (string, error) {
	return s.Sessions.Mint(voterKey)
}

// ResolveSession recovers the voter behind a presented session token.
func (s Service) ResolveSession(ctx context.Context, token string) (entities.Voter, error) {
	voterKey, err := s.Sessions.Verify(token)
	if err != nil {
		return entities.Voter{}, domainerrors.ErrInvalidSessionToken
	}
	return s.Voters.GetVoter(ctx, voterKey)
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}
