package services

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"io"
	"strconv"
	"time"

	"quorum/contexts/voter-access/registry-service/domain/entities"
	domainerrors "quorum/contexts/voter-access/registry-service/domain/errors"
)

const (
	engineeringSocietyCode = "APSE"
	workTermOrgCode        = "AEPEY"
	fullTimeAttendanceCode = "FT"

	// StudyYear stored when the provider omits year-of-study.
	defaultStudyYear = 3
)

// PayloadFields is the decoded identity payload. Field order matters: the
// provider computes its digest over the concatenation of exactly these ten
// values, in this order, followed by the shared secret.
type PayloadFields struct {
	IsStudent    string
	IsRegistered string
	IsUndergrad  string
	PrimaryOrg   string
	YearOfStudy  string
	Campus       string
	PostCode     string
	Attendance   string
	AssocOrg     string
	SubjectID    string
}

// ExtractFields pulls the ten required fields out of a flat payload mapping.
// Any missing key fails the whole payload.
func ExtractFields(payload map[string]string) (PayloadFields, error) {
	fields := PayloadFields{}
	for _, bind := range []struct {
		key string
		dst *string
	}{
		{"isstudent", &fields.IsStudent},
		{"isregistered", &fields.IsRegistered},
		{"isundergrad", &fields.IsUndergrad},
		{"primaryorg", &fields.PrimaryOrg},
		{"yofstudy", &fields.YearOfStudy},
		{"campus", &fields.Campus},
		{"postcd", &fields.PostCode},
		{"attendance", &fields.Attendance},
		{"assocorg", &fields.AssocOrg},
		{"pid", &fields.SubjectID},
	} {
		value, ok := payload[bind.key]
		if !ok {
			return PayloadFields{}, domainerrors.ErrIncompleteIdentity
		}
		*bind.dst = value
	}
	return fields, nil
}

// Digest recomputes the provider's keyed digest. md5 is what the provider
// signs with; the algorithm and concatenation order are fixed for interop.
func (f PayloadFields) Digest(secret string) string {
	h := md5.New()
	for _, value := range []string{
		f.IsStudent,
		f.IsRegistered,
		f.IsUndergrad,
		f.PrimaryOrg,
		f.YearOfStudy,
		f.Campus,
		f.PostCode,
		f.Attendance,
		f.AssocOrg,
		f.SubjectID,
		secret,
	} {
		_, _ = io.WriteString(h, value)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyDigest compares a supplied digest against the recomputed one.
func (f PayloadFields) VerifyDigest(supplied string, secret string) bool {
	expected := f.Digest(secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) == 1
}

// IdentityEligible is the identity-level gate, distinct from per-election
// eligibility: enrolled undergrad student whose primary org is the
// engineering society.
func (f PayloadFields) IdentityEligible() bool {
	return f.IsStudent == "True" &&
		f.IsRegistered == "True" &&
		f.IsUndergrad == "True" &&
		f.PrimaryOrg == engineeringSocietyCode
}

// DeriveVoter maps payload fields onto the stored attribute snapshot.
func (f PayloadFields) DeriveVoter(now time.Time) (entities.Voter, error) {
	if len(f.PostCode) < 5 {
		return entities.Voter{}, domainerrors.ErrIncompleteIdentity
	}

	studyYear := defaultStudyYear
	if f.YearOfStudy != "" {
		parsed, err := strconv.Atoi(f.YearOfStudy)
		if err != nil {
			return entities.Voter{}, domainerrors.ErrIncompleteIdentity
		}
		studyYear = parsed
	}

	status := entities.EnrollmentPartTime
	if f.Attendance == fullTimeAttendanceCode {
		status = entities.EnrollmentFullTime
	}

	return entities.Voter{
		VoterKey:             f.SubjectID,
		Discipline:           entities.Discipline(f.PostCode[2:5]),
		StudyYear:            studyYear,
		IsEngineeringStudent: f.PrimaryOrg == engineeringSocietyCode,
		IsPEY:                f.AssocOrg == workTermOrgCode,
		EnrollmentStatus:     status,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}
