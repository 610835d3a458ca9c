package httpadapter

import (
	"context"
	"log/slog"
	"strconv"

	"quorum/contexts/election-core/ballot-service/application/commands"
	domainerrors "quorum/contexts/election-core/ballot-service/domain/errors"
	httptransport "quorum/contexts/election-core/ballot-service/transport/http"
)

type Handler struct {
	Submit commands.SubmitBallotUseCase
	Logger *slog.Logger
}

// SubmitBallotHandler translates the wire ranking into the command shape.
// Absent fields and non-numeric or non-positive rank keys are malformed.
func (h Handler) SubmitBallotHandler(
	ctx context.Context,
	voterKey string,
	request httptransport.SubmitBallotRequest,
) (httptransport.SubmitBallotResponse, error) {
	if request.ElectionID == nil || request.Ranking == nil {
		return httptransport.SubmitBallotResponse{}, domainerrors.ErrMalformedBallot
	}

	ranking := make(map[int]int64, len(request.Ranking))
	for rawRank, candidateID := range request.Ranking {
		rank, err := strconv.Atoi(rawRank)
		if err != nil || rank <= 0 {
			return httptransport.SubmitBallotResponse{}, domainerrors.ErrMalformedBallot
		}
		ranking[rank] = candidateID
	}

	result, err := h.Submit.SubmitBallot(ctx, commands.SubmitBallotCommand{
		VoterKey:   voterKey,
		ElectionID: *request.ElectionID,
		Ranking:    ranking,
	})
	if err != nil {
		return httptransport.SubmitBallotResponse{}, err
	}
	return httptransport.SubmitBallotResponse{
		SubmissionID: result.SubmissionID,
		ElectionID:   result.ElectionID,
		Spoiled:      result.Spoiled,
		BallotCount:  result.BallotCount,
	}, nil
}
