package commands

import (
	"context"
	"log/slog"
	"time"

	application "quorum/contexts/election-core/ballot-service/application"
	"quorum/contexts/election-core/ballot-service/domain/entities"
	domainerrors "quorum/contexts/election-core/ballot-service/domain/errors"
	"quorum/contexts/election-core/ballot-service/ports"
)

// SubmitBallotCommand is the write-model input for ballot submission.
// Ranking maps rank to candidate id; an empty map is a deliberate spoil.
type SubmitBallotCommand struct {
	VoterKey   string
	ElectionID int64
	Ranking    map[int]int64
}

type SubmitBallotResult struct {
	SubmissionID string
	ElectionID   int64
	Spoiled      bool
	BallotCount  int
}

// SubmitBallotUseCase is the ballot submission transactor: validation steps
// are pure reads, and the single mutation in step seven is all-or-nothing.
type SubmitBallotUseCase struct {
	Ballots ports.BallotRepository
	Catalog ports.ElectionCatalog
	Gate    ports.EligibilityGate
	Outbox  ports.OutboxWriter
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

// SubmitBallot records exactly one submission event per (voter, election).
// The repository's uniqueness guarantee turns a lost race between the
// prior-vote check and the insert into ErrAlreadyVoted.
func (uc SubmitBallotUseCase) SubmitBallot(ctx context.Context, cmd SubmitBallotCommand) (SubmitBallotResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	logger.Info("ballot submission started",
		"event", "ballot_submit_started",
		"module", "election-core/ballot-service",
		"layer", "application",
		"election_id", cmd.ElectionID,
		"ranked_count", len(cmd.Ranking),
	)

	if cmd.VoterKey == "" || cmd.ElectionID <= 0 {
		return SubmitBallotResult{}, domainerrors.ErrMalformedBallot
	}
	for rank := range cmd.Ranking {
		if rank <= 0 {
			logger.Warn("ballot ranking rejected",
				"event", "ballot_submit_invalid_rank",
				"module", "election-core/ballot-service",
				"layer", "application",
				"election_id", cmd.ElectionID,
				"rank", rank,
			)
			return SubmitBallotResult{}, domainerrors.ErrMalformedBallot
		}
	}

	election, err := uc.Catalog.GetElection(ctx, cmd.ElectionID)
	if err != nil {
		return SubmitBallotResult{}, err
	}

	candidateIDs, err := uc.Catalog.ListCandidateIDs(ctx, election.ElectionID)
	if err != nil {
		return SubmitBallotResult{}, err
	}
	validCandidates := make(map[int64]struct{}, len(candidateIDs))
	for _, id := range candidateIDs {
		validCandidates[id] = struct{}{}
	}

	allowed, err := uc.Gate.RuleAllows(ctx, cmd.VoterKey, election.ElectionID)
	if err != nil {
		return SubmitBallotResult{}, err
	}
	if !allowed {
		logger.Warn("ballot rejected by eligibility rule",
			"event", "ballot_submit_not_eligible",
			"module", "election-core/ballot-service",
			"layer", "application",
			"election_id", election.ElectionID,
		)
		return SubmitBallotResult{}, domainerrors.ErrNotEligible
	}

	voted, err := uc.Ballots.HasSubmission(ctx, cmd.VoterKey, election.ElectionID)
	if err != nil {
		return SubmitBallotResult{}, err
	}
	if voted {
		return SubmitBallotResult{}, domainerrors.ErrAlreadyVoted
	}

	for _, candidateID := range cmd.Ranking {
		if _, ok := validCandidates[candidateID]; !ok {
			logger.Warn("ballot referenced foreign candidate",
				"event", "ballot_submit_invalid_candidate",
				"module", "election-core/ballot-service",
				"layer", "application",
				"election_id", election.ElectionID,
				"candidate_id", candidateID,
			)
			return SubmitBallotResult{}, domainerrors.ErrInvalidCandidate
		}
	}

	now := uc.now()
	submissionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return SubmitBallotResult{}, err
	}
	submission := entities.BallotSubmission{
		SubmissionID: submissionID,
		VoterKey:     cmd.VoterKey,
		ElectionID:   election.ElectionID,
		Spoiled:      len(cmd.Ranking) == 0,
		CreatedAt:    now,
	}

	ballots, err := uc.buildBallots(ctx, submission, cmd.Ranking, now)
	if err != nil {
		return SubmitBallotResult{}, err
	}

	if err := uc.Ballots.CreateSubmission(ctx, submission, ballots); err != nil {
		return SubmitBallotResult{}, err
	}

	if err := uc.appendBallotEvent(ctx, submission, len(ballots), now); err != nil {
		// The vote is durably committed; a failed audit append must not
		// surface as a voter-facing failure.
		logger.Error("ballot audit event append failed",
			"event", "ballot_submit_outbox_failed",
			"module", "election-core/ballot-service",
			"layer", "application",
			"submission_id", submission.SubmissionID,
			"error", err.Error(),
		)
	}

	logger.Info("ballot submission accepted",
		"event", "ballot_submit_accepted",
		"module", "election-core/ballot-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"election_id", election.ElectionID,
		"spoiled", submission.Spoiled,
		"ballot_count", len(ballots),
	)
	return SubmitBallotResult{
		SubmissionID: submission.SubmissionID,
		ElectionID:   election.ElectionID,
		Spoiled:      submission.Spoiled,
		BallotCount:  len(ballots),
	}, nil
}

func (uc SubmitBallotUseCase) buildBallots(
	ctx context.Context,
	submission entities.BallotSubmission,
	ranking map[int]int64,
	now time.Time,
) ([]entities.Ballot, error) {
	if len(ranking) == 0 {
		ballotID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return nil, err
		}
		return []entities.Ballot{{
			BallotID:     ballotID,
			SubmissionID: submission.SubmissionID,
			VoterKey:     submission.VoterKey,
			ElectionID:   submission.ElectionID,
			CreatedAt:    now,
		}}, nil
	}

	ballots := make([]entities.Ballot, 0, len(ranking))
	for rank, candidateID := range ranking {
		ballotID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return nil, err
		}
		rank := rank
		candidateID := candidateID
		ballots = append(ballots, entities.Ballot{
			BallotID:     ballotID,
			SubmissionID: submission.SubmissionID,
			VoterKey:     submission.VoterKey,
			ElectionID:   submission.ElectionID,
			CandidateID:  &candidateID,
			Rank:         &rank,
			CreatedAt:    now,
		})
	}
	return ballots, nil
}

func (uc SubmitBallotUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
