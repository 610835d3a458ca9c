package services

import (
	"errors"
	"testing"
	"time"

	"quorum/contexts/voter-access/registry-service/domain/entities"
	domainerrors "quorum/contexts/voter-access/registry-service/domain/errors"
)

func validPayload() map[string]string {
	return map[string]string{
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
}

func TestExtractFieldsRejectsMissingKey(t *testing.T) {
	payload := validPayload()
	delete(payload, "postcd")

	if _, err := ExtractFields(payload); !errors.Is(err, domainerrors.ErrIncompleteIdentity) {
		t.Fatalf("expected incomplete identity, got %v", err)
	}
}

func TestDigestTamperDetection(t *testing.T) {
	fields, err := ExtractFields(validPayload())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	digest := fields.Digest("shared-secret")
	if !fields.VerifyDigest(digest, "shared-secret") {
		t.Fatalf("expected the recomputed digest to verify")
	}

	// Flipping any single character must break verification.
	for i := range digest {
		flipped := []byte(digest)
		if flipped[i] == 'a' {
			flipped[i] = 'b'
		} else {
			flipped[i] = 'a'
		}
		if fields.VerifyDigest(string(flipped), "shared-secret") {
			t.Fatalf("tampered digest verified at position %d", i)
		}
	}

	if fields.VerifyDigest(digest, "other-secret") {
		t.Fatalf("digest verified under the wrong secret")
	}
}

func TestDigestDependsOnEveryField(t *testing.T) {
	base, _ := ExtractFields(validPayload())
	baseline := base.Digest("shared-secret")

	for key := range validPayload() {
		payload := validPayload()
		payload[key] = payload[key] + "x"
		mutated, err := ExtractFields(payload)
		if err != nil {
			t.Fatalf("extract failed for %s: %v", key, err)
		}
		if mutated.Digest("shared-secret") == baseline {
			t.Fatalf("digest unchanged after mutating %s", key)
		}
	}
}

func TestIdentityEligibleGate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]string)
		want   bool
	}{
		{"baseline", func(map[string]string) {}, true},
		{"not a student", func(p map[string]string) { p["isstudent"] = "False" }, false},
		{"not registered", func(p map[string]string) { p["isregistered"] = "False" }, false},
		{"not undergrad", func(p map[string]string) { p["isundergrad"] = "False" }, false},
		{"other society", func(p map[string]string) { p["primaryorg"] = "ARTSC" }, false},
	}
	for _, tc := range cases {
		payload := validPayload()
		tc.mutate(payload)
		fields, err := ExtractFields(payload)
		if err != nil {
			t.Fatalf("%s: extract failed: %v", tc.name, err)
		}
		if got := fields.IdentityEligible(); got != tc.want {
			t.Fatalf("%s: eligible = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDeriveVoterAttributes(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	fields, _ := ExtractFields(validPayload())
	voter, err := fields.DeriveVoter(now)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	if voter.VoterKey != "voter-abc123" {
		t.Fatalf("unexpected voter key %q", voter.VoterKey)
	}
	if voter.Discipline != entities.DisciplineElectrical {
		t.Fatalf("expected ELE discipline from post code, got %q", voter.Discipline)
	}
	if voter.StudyYear != 2 {
		t.Fatalf("expected study year 2, got %d", voter.StudyYear)
	}
	if voter.EnrollmentStatus != entities.EnrollmentFullTime {
		t.Fatalf("expected full time enrollment, got %q", voter.EnrollmentStatus)
	}
	if voter.IsPEY {
		t.Fatalf("expected non-pey voter")
	}
}

func TestDeriveVoterYearDefaultsWhenBlank(t *testing.T) {
	payload := validPayload()
	payload["yofstudy"] = ""
	fields, _ := ExtractFields(payload)

	voter, err := fields.DeriveVoter(time.Now().UTC())
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	if voter.StudyYear != 3 {
		t.Fatalf("expected default study year 3, got %d", voter.StudyYear)
	}
}

func TestDeriveVoterWorkTermFlag(t *testing.T) {
	payload := validPayload()
	payload["assocorg"] = "AEPEY"
	fields, _ := ExtractFields(payload)

	voter, err := fields.DeriveVoter(time.Now().UTC())
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	if !voter.IsPEY {
		t.Fatalf("expected pey voter for AEPEY assoc org")
	}
}

func TestDeriveVoterRejectsShortPostCode(t *testing.T) {
	payload := validPayload()
	payload["postcd"] = "AE"
	fields, _ := ExtractFields(payload)

	if _, err := fields.DeriveVoter(time.Now().UTC()); !errors.Is(err, domainerrors.ErrIncompleteIdentity) {
		t.Fatalf("expected incomplete identity for short post code, got %v", err)
	}
}

func TestDeriveVoterRejectsNonNumericYear(t *testing.T) {
	payload := validPayload()
	payload["yofstudy"] = "two"
	fields, _ := ExtractFields(payload)

	if _, err := fields.DeriveVoter(time.Now().UTC()); !errors.Is(err, domainerrors.ErrIncompleteIdentity) {
		t.Fatalf("expected incomplete identity for non-numeric year, got %v", err)
	}
}
