package services

import (
	"testing"

	"quorum/contexts/election-core/eligibility-service/domain/entities"
)

func electricalYearTwoRule() entities.EligibilityRule {
	return entities.EligibilityRule{
		EleEligible:    true,
		Year2Eligible:  true,
		StatusEligible: entities.StatusFullTime,
	}
}

func TestAllowsMatchingVoter(t *testing.T) {
	attrs := entities.VoterAttributes{
		Discipline:       "ELE",
		StudyYear:        2,
		EnrollmentStatus: "full_time",
	}
	if !Allows(electricalYearTwoRule(), attrs) {
		t.Fatalf("expected year-2 full-time ELE voter to pass")
	}
}

func TestAllowsIsPureOverAttributes(t *testing.T) {
	rule := electricalYearTwoRule()
	cases := []struct {
		name  string
		attrs entities.VoterAttributes
		want  bool
	}{
		{"baseline", entities.VoterAttributes{Discipline: "ELE", StudyYear: 2, EnrollmentStatus: "full_time"}, true},
		{"wrong discipline", entities.VoterAttributes{Discipline: "MEC", StudyYear: 2, EnrollmentStatus: "full_time"}, false},
		{"unknown discipline", entities.VoterAttributes{Discipline: "XYZ", StudyYear: 2, EnrollmentStatus: "full_time"}, false},
		{"wrong year", entities.VoterAttributes{Discipline: "ELE", StudyYear: 3, EnrollmentStatus: "full_time"}, false},
		{"year out of range", entities.VoterAttributes{Discipline: "ELE", StudyYear: 7, EnrollmentStatus: "full_time"}, false},
		{"part time against full time rule", entities.VoterAttributes{Discipline: "ELE", StudyYear: 2, EnrollmentStatus: "part_time"}, false},
	}
	for _, tc := range cases {
		if got := Allows(rule, tc.attrs); got != tc.want {
			t.Fatalf("%s: allows = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAllowsWorkTermBranchSkipsYear(t *testing.T) {
	rule := electricalYearTwoRule()
	rule.PEYEligible = true

	// Work-term voters are judged on the PEY flag only; their recorded study
	// year must not matter.
	pey := entities.VoterAttributes{
		Discipline:       "ELE",
		StudyYear:        4,
		IsPEY:            true,
		EnrollmentStatus: "full_time",
	}
	if !Allows(rule, pey) {
		t.Fatalf("expected pey voter to pass despite ineligible year")
	}

	rule.PEYEligible = false
	if Allows(rule, pey) {
		t.Fatalf("expected pey voter to fail when the rule excludes work terms")
	}
}

func TestAllowsYearBranchSkipsWorkTermFlag(t *testing.T) {
	rule := electricalYearTwoRule()
	rule.PEYEligible = false

	attrs := entities.VoterAttributes{
		Discipline:       "ELE",
		StudyYear:        2,
		IsPEY:            false,
		EnrollmentStatus: "full_time",
	}
	if !Allows(rule, attrs) {
		t.Fatalf("expected non-pey voter to pass on the year flag alone")
	}
}

func TestStatusEligibleCombinedRule(t *testing.T) {
	rule := entities.EligibilityRule{StatusEligible: entities.StatusFullAndPartTime}
	if !StatusEligible(rule, "full_time") || !StatusEligible(rule, "part_time") {
		t.Fatalf("expected combined status rule to accept both enrollments")
	}

	rule.StatusEligible = entities.StatusPartTime
	if StatusEligible(rule, "full_time") {
		t.Fatalf("expected part-time rule to reject full-time voters")
	}
}

func TestDisciplineEligibleCoversEveryFlag(t *testing.T) {
	flags := map[string]func(*entities.EligibilityRule){
		"ENG": func(r *entities.EligibilityRule) { r.EngEligible = true },
		"CHE": func(r *entities.EligibilityRule) { r.CheEligible = true },
		"CIV": func(r *entities.EligibilityRule) { r.CivEligible = true },
		"ELE": func(r *entities.EligibilityRule) { r.EleEligible = true },
		"CPE": func(r *entities.EligibilityRule) { r.CpeEligible = true },
		"ESC": func(r *entities.EligibilityRule) { r.EscEligible = true },
		"IND": func(r *entities.EligibilityRule) { r.IndEligible = true },
		"LME": func(r *entities.EligibilityRule) { r.LmeEligible = true },
		"MEC": func(r *entities.EligibilityRule) { r.MecEligible = true },
		"MMS": func(r *entities.EligibilityRule) { r.MmsEligible = true },
	}
	for code, set := range flags {
		var rule entities.EligibilityRule
		if DisciplineEligible(rule, code) {
			t.Fatalf("%s eligible with all flags off", code)
		}
		set(&rule)
		if !DisciplineEligible(rule, code) {
			t.Fatalf("%s not eligible with its flag on", code)
		}
	}
}
