package httpadapter

import (
	"context"
	"log/slog"

	"quorum/contexts/voter-access/registry-service/application"
	httptransport "quorum/contexts/voter-access/registry-service/transport/http"
)

type Handler struct {
	Registry application.Service
	Logger   *slog.Logger
}

// CallbackHandler resolves an identity payload and mints a session token for
// the verified voter.
func (h Handler) CallbackHandler(
	ctx context.Context,
	payload map[string]string,
	verify bool,
) (httptransport.SessionResponse, error) {
	result, err := h.Registry.ResolveIdentity(ctx, payload, verify)
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	token, err := h.Registry.MintSession(result.VoterKey)
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return httptransport.SessionResponse{
		Token:    token,
		VoterKey: result.VoterKey,
		Outcome:  string(result.Outcome),
	}, nil
}

// SessionVoterHandler recovers the voter snapshot behind a session token.
func (h Handler) SessionVoterHandler(ctx context.Context, token string) (httptransport.VoterResponse, error) {
	voter, err := h.Registry.ResolveSession(ctx, token)
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return httptransport.VoterResponse{
		VoterKey:             voter.VoterKey,
		Discipline:           string(voter.Discipline),
		StudyYear:            voter.StudyYear,
		IsEngineeringStudent: voter.IsEngineeringStudent,
		IsPEY:                voter.IsPEY,
		EnrollmentStatus:     string(voter.EnrollmentStatus),
	}, nil
}
