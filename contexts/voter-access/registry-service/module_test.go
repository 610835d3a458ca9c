package registryservice

import (
	"context"
	"errors"
	"testing"

	domainerrors "quorum/contexts/voter-access/registry-service/domain/errors"
	"quorum/contexts/voter-access/registry-service/domain/services"
	"quorum/contexts/voter-access/registry-service/ports"
)

const (
	testSharedSecret  = "provider-shared-secret"
	testSessionSecret = "session-signing-secret"
)

func signedPayload(t *testing.T) map[string]string {
	t.Helper()
	payload := map[string]string{
		"isstudent":    "True",
		"isregistered": "True",
		"isundergrad":  "True",
		"primaryorg":   "APSE",
		"yofstudy":     "2",
		"campus":       "SG",
		"postcd":       "AEELEBASC",
		"attendance":   "FT",
		"assocorg":     "",
		"pid":          "voter-abc123",
	}
	fields, err := services.ExtractFields(payload)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	payload["hash"] = fields.Digest(testSharedSecret)
	return payload
}

func newTestModule(t *testing.T) Module {
	t.Helper()
	module, err := NewInMemoryModule(nil, testSharedSecret, testSessionSecret, nil)
	if err != nil {
		t.Fatalf("module build failed: %v", err)
	}
	return module
}

func TestCallbackResolveIsIdempotent(t *testing.T) {
	module := newTestModule(t)

	first, err := module.Handler.CallbackHandler(context.Background(), signedPayload(t), true)
	if err != nil {
		t.Fatalf("first callback failed: %v", err)
	}
	if first.Outcome != string(ports.UpsertOutcomeCreated) {
		t.Fatalf("expected created outcome, got %q", first.Outcome)
	}

	second, err := module.Handler.CallbackHandler(context.Background(), signedPayload(t), true)
	if err != nil {
		t.Fatalf("second callback failed: %v", err)
	}
	if second.Outcome != string(ports.UpsertOutcomeFound) {
		t.Fatalf("expected found outcome, got %q", second.Outcome)
	}
	if first.VoterKey != second.VoterKey {
		t.Fatalf("voter key changed between resolves: %q vs %q", first.VoterKey, second.VoterKey)
	}
}

func TestCallbackRejectsTamperedDigest(t *testing.T) {
	module := newTestModule(t)

	payload := signedPayload(t)
	payload["yofstudy"] = "4"
	if _, err := module.Handler.CallbackHandler(context.Background(), payload, true); !errors.Is(err, domainerrors.ErrTamperedIdentity) {
		t.Fatalf("expected tampered identity, got %v", err)
	}
}

func TestCallbackTreatsMissingDigestAsTampered(t *testing.T) {
	module := newTestModule(t)

	payload := signedPayload(t)
	delete(payload, "hash")
	if _, err := module.Handler.CallbackHandler(context.Background(), payload, true); !errors.Is(err, domainerrors.ErrTamperedIdentity) {
		t.Fatalf("expected tampered identity, got %v", err)
	}
}

func TestCallbackRejectsIneligibleIdentity(t *testing.T) {
	module := newTestModule(t)

	payload := map[string]string{
		"isstudent":    "False",
		"isregistered": "True",
		"isundergrad":  "True",
		"primaryorg":   "APSE",
		"yofstudy":     "2",
		"campus":       "SG",
		"postcd":       "AEELEBASC",
		"attendance":   "FT",
		"assocorg":     "",
		"pid":          "voter-xyz",
	}
	fields, _ := services.ExtractFields(payload)
	payload["hash"] = fields.Digest(testSharedSecret)

	if _, err := module.Handler.CallbackHandler(context.Background(), payload, true); !errors.Is(err, domainerrors.ErrIneligibleIdentity) {
		t.Fatalf("expected ineligible identity, got %v", err)
	}
}

func TestCallbackSkipsDigestWhenVerificationOff(t *testing.T) {
	module := newTestModule(t)

	payload := signedPayload(t)
	delete(payload, "hash")
	if _, err := module.Handler.CallbackHandler(context.Background(), payload, false); err != nil {
		t.Fatalf("expected bypass resolve to succeed, got %v", err)
	}
}

func TestSessionRoundTripRecoversVoter(t *testing.T) {
	module := newTestModule(t)

	session, err := module.Handler.CallbackHandler(context.Background(), signedPayload(t), true)
	if err != nil {
		t.Fatalf("callback failed: %v", err)
	}

	voter, err := module.Handler.SessionVoterHandler(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("session voter lookup failed: %v", err)
	}
	if voter.VoterKey != "voter-abc123" {
		t.Fatalf("unexpected voter key %q", voter.VoterKey)
	}
	if voter.Discipline != "ELE" || voter.StudyYear != 2 {
		t.Fatalf("unexpected voter snapshot: %+v", voter)
	}
	if voter.EnrollmentStatus != "full_time" {
		t.Fatalf("unexpected enrollment status %q", voter.EnrollmentStatus)
	}
}

func TestSessionRejectsForgedToken(t *testing.T) {
	module := newTestModule(t)

	if _, err := module.Handler.SessionVoterHandler(context.Background(), "dm90ZXI.bogus-mac"); !errors.Is(err, domainerrors.ErrInvalidSessionToken) {
		t.Fatalf("expected invalid session token, got %v", err)
	}
}
