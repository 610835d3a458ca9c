package httpadapter

import (
	"context"
	"log/slog"

	"quorum/contexts/election-core/eligibility-service/application/queries"
	httptransport "quorum/contexts/election-core/eligibility-service/transport/http"
)

type Handler struct {
	Eligibility queries.EligibilityUseCase
	Logger      *slog.Logger
}

// ListElectionsHandler serializes the voter's eligible election set with
// nested candidates.
func (h Handler) ListElectionsHandler(ctx context.Context, voterKey string) (httptransport.ElectionListResponse, error) {
	eligible, err := h.Eligibility.ListEligibleElections(ctx, voterKey)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}

	items := make([]httptransport.ElectionItem, 0, len(eligible))
	for _, entry := range eligible {
		candidates := make([]httptransport.CandidateItem, 0, len(entry.Candidates))
		for _, candidate := range entry.Candidates {
			candidates = append(candidates, httptransport.CandidateItem{
				ID:                   candidate.CandidateID,
				Name:                 candidate.Name,
				Statement:            candidate.Statement,
				DisqualifiedStatus:   candidate.DisqualifiedStatus,
				DisqualifiedLink:     candidate.DisqualifiedLink,
				DisqualifiedMessage:  candidate.DisqualifiedMessage,
				RuleViolationMessage: candidate.RuleViolationMessage,
				RuleViolationLink:    candidate.RuleViolationLink,
			})
		}
		items = append(items, httptransport.ElectionItem{
			ID:             entry.Election.ElectionID,
			Name:           entry.Election.Name,
			SeatsAvailable: entry.Election.SeatsAvailable,
			Category:       string(entry.Election.Category),
			Candidates:     candidates,
		})
	}
	return httptransport.ElectionListResponse{Elections: items}, nil
}
