package queries

import (
	"context"
	"log/slog"

	application "quorum/contexts/election-core/eligibility-service/application"
	"quorum/contexts/election-core/eligibility-service/domain/entities"
	"quorum/contexts/election-core/eligibility-service/domain/services"
	"quorum/contexts/election-core/eligibility-service/ports"
)

// EligibleElection pairs an election the voter may vote in with its
// candidate roster.
type EligibleElection struct {
	Election   entities.Election
	Candidates []entities.Candidate
}

// EligibilityUseCase computes the per-voter eligible election set. The
// predicate is a pure function of voter attributes and the election's rule,
// plus the prior-submission exclusion.
type EligibilityUseCase struct {
	Elections ports.ElectionRepository
	Voters    ports.VoterDirectory
	Ledger    ports.SubmissionLedger
	Logger    *slog.Logger
}

// ListEligibleElections filters all elections down to those the voter may
// still vote in. An election the voter has already submitted anything for
// (ranked or spoiled) is excluded regardless of its rule.
func (uc EligibilityUseCase) ListEligibleElections(ctx context.Context, voterKey string) ([]EligibleElection, error) {
	logger := application.ResolveLogger(uc.Logger)

	attrs, err := uc.Voters.GetVoterAttributes(ctx, voterKey)
	if err != nil {
		return nil, err
	}

	elections, err := uc.Elections.ListElections(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]EligibleElection, 0, len(elections))
	for _, election := range elections {
		voted, err := uc.Ledger.HasSubmission(ctx, voterKey, election.ElectionID)
		if err != nil {
			return nil, err
		}
		if voted {
			continue
		}

		rule, err := uc.Elections.GetRule(ctx, election.ElectionID)
		if err != nil {
			// Missing rule is a configuration error; surface it instead of
			// silently hiding the election.
			logger.Error("eligibility rule lookup failed",
				"event", "eligibility_rule_lookup_failed",
				"module", "election-core/eligibility-service",
				"layer", "application",
				"election_id", election.ElectionID,
				"error", err.Error(),
			)
			return nil, err
		}
		if !services.Allows(rule, attrs) {
			continue
		}

		candidates, err := uc.Elections.ListCandidates(ctx, election.ElectionID)
		if err != nil {
			return nil, err
		}
		items = append(items, EligibleElection{
			Election:   election,
			Candidates: candidates,
		})
	}

	logger.Info("eligible elections listed",
		"event", "eligibility_list_succeeded",
		"module", "election-core/eligibility-service",
		"layer", "application",
		"eligible_count", len(items),
	)
	return items, nil
}

// IsEligible evaluates the single-election predicate, including the
// prior-submission exclusion.
func (uc EligibilityUseCase) IsEligible(ctx context.Context, voterKey string, electionID int64) (bool, error) {
	voted, err := uc.Ledger.HasSubmission(ctx, voterKey, electionID)
	if err != nil {
		return false, err
	}
	if voted {
		return false, nil
	}
	return uc.RuleAllows(ctx, voterKey, electionID)
}

// RuleAllows evaluates only the rule predicate, without the prior-submission
// exclusion. Ballot submission uses it so that a prior vote surfaces as
// "already voted" rather than "not eligible".
func (uc EligibilityUseCase) RuleAllows(ctx context.Context, voterKey string, electionID int64) (bool, error) {
	attrs, err := uc.Voters.GetVoterAttributes(ctx, voterKey)
	if err != nil {
		return false, err
	}
	rule, err := uc.Elections.GetRule(ctx, electionID)
	if err != nil {
		return false, err
	}
	return services.Allows(rule, attrs), nil
}
