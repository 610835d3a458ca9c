package eligibilityservice

import (
	"context"
	"errors"
	"testing"

	"quorum/contexts/election-core/eligibility-service/domain/entities"
	domainerrors "quorum/contexts/election-core/eligibility-service/domain/errors"
)

func seedOfficerElection(module Module) {
	module.Store.SetElection(
		entities.Election{
			ElectionID:     1,
			Name:           "VP Communications",
			SeatsAvailable: 1,
			Category:       entities.CategoryOfficer,
			SessionID:      10,
		},
		entities.EligibilityRule{
			EngEligible:    true,
			CheEligible:    true,
			CivEligible:    true,
			EleEligible:    true,
			CpeEligible:    true,
			EscEligible:    true,
			IndEligible:    true,
			LmeEligible:    true,
			MecEligible:    true,
			MmsEligible:    true,
			Year1Eligible:  true,
			Year2Eligible:  true,
			Year3Eligible:  true,
			Year4Eligible:  true,
			PEYEligible:    true,
			StatusEligible: entities.StatusFullAndPartTime,
		},
		[]entities.Candidate{
			{CandidateID: 100, ElectionID: 1, Name: "Alex Finch"},
			{CandidateID: 101, ElectionID: 1, Name: "Robin Vale"},
		},
	)
}

func seedDisciplineClubElection(module Module) {
	module.Store.SetElection(
		entities.Election{
			ElectionID:     2,
			Name:           "ECE Club Chair",
			SeatsAvailable: 1,
			Category:       entities.CategoryDiscipline,
			SessionID:      10,
		},
		entities.EligibilityRule{
			EleEligible:    true,
			CpeEligible:    true,
			Year2Eligible:  true,
			Year3Eligible:  true,
			StatusEligible: entities.StatusFullTime,
		},
		[]entities.Candidate{{CandidateID: 200, ElectionID: 2, Name: "Sam Ode"}},
	)
}

func TestListEligibleElectionsFiltersByRule(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedOfficerElection(module)
	seedDisciplineClubElection(module)
	module.Store.SetVoter(entities.VoterAttributes{
		VoterKey:         "voter-1",
		Discipline:       "ELE",
		StudyYear:        2,
		EnrollmentStatus: "full_time",
	})

	resp, err := module.Handler.ListElectionsHandler(context.Background(), "voter-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(resp.Elections) != 2 {
		t.Fatalf("expected both elections, got %d", len(resp.Elections))
	}
	if len(resp.Elections[0].Candidates) != 2 {
		t.Fatalf("expected nested candidates, got %d", len(resp.Elections[0].Candidates))
	}
}

func TestListEligibleElectionsRespectsEnrollmentStatus(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedDisciplineClubElection(module)
	module.Store.SetVoter(entities.VoterAttributes{
		VoterKey:         "voter-1",
		Discipline:       "ELE",
		StudyYear:        2,
		EnrollmentStatus: "part_time",
	})

	resp, err := module.Handler.ListElectionsHandler(context.Background(), "voter-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(resp.Elections) != 0 {
		t.Fatalf("expected no elections for part-time voter, got %d", len(resp.Elections))
	}
}

func TestListEligibleElectionsExcludesVotedElections(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedOfficerElection(module)
	module.Store.SetVoter(entities.VoterAttributes{
		VoterKey:         "voter-1",
		Discipline:       "MEC",
		StudyYear:        3,
		EnrollmentStatus: "full_time",
	})
	module.Store.SetSubmission("voter-1", 1)

	resp, err := module.Handler.ListElectionsHandler(context.Background(), "voter-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(resp.Elections) != 0 {
		t.Fatalf("expected voted election to be excluded, got %d", len(resp.Elections))
	}
}

func TestListEligibleElectionsSurfacesMissingRule(t *testing.T) {
	module := NewInMemoryModule(nil)
	module.Store.SetElectionWithoutRule(entities.Election{
		ElectionID: 3,
		Name:       "Broken Election",
		Category:   entities.CategoryOther,
	})
	module.Store.SetVoter(entities.VoterAttributes{
		VoterKey:         "voter-1",
		Discipline:       "ELE",
		StudyYear:        2,
		EnrollmentStatus: "full_time",
	})

	if _, err := module.Handler.ListElectionsHandler(context.Background(), "voter-1"); !errors.Is(err, domainerrors.ErrRuleMissing) {
		t.Fatalf("expected rule missing, got %v", err)
	}
}

func TestListEligibleElectionsUnknownVoter(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedOfficerElection(module)

	if _, err := module.Handler.ListElectionsHandler(context.Background(), "ghost"); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected voter not found, got %v", err)
	}
}

func TestIsEligibleIncludesExclusionButRuleAllowsDoesNot(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedOfficerElection(module)
	module.Store.SetVoter(entities.VoterAttributes{
		VoterKey:         "voter-1",
		Discipline:       "CIV",
		StudyYear:        4,
		EnrollmentStatus: "full_time",
	})
	module.Store.SetSubmission("voter-1", 1)

	eligible, err := module.Eligibility.IsEligible(context.Background(), "voter-1", 1)
	if err != nil {
		t.Fatalf("is eligible failed: %v", err)
	}
	if eligible {
		t.Fatalf("expected prior submission to make the voter ineligible")
	}

	allowed, err := module.Eligibility.RuleAllows(context.Background(), "voter-1", 1)
	if err != nil {
		t.Fatalf("rule allows failed: %v", err)
	}
	if !allowed {
		t.Fatalf("expected the rule predicate to still pass after voting")
	}
}

func TestIsEligiblePeyVoterOnYearRestrictedElection(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedDisciplineClubElection(module)
	module.Store.SetVoter(entities.VoterAttributes{
		VoterKey:         "voter-pey",
		Discipline:       "ELE",
		StudyYear:        3,
		IsPEY:            true,
		EnrollmentStatus: "full_time",
	})

	// The club rule has no PEY flag, so the work-term voter fails even though
	// their study year would qualify.
	eligible, err := module.Eligibility.IsEligible(context.Background(), "voter-pey", 2)
	if err != nil {
		t.Fatalf("is eligible failed: %v", err)
	}
	if eligible {
		t.Fatalf("expected pey voter to be ineligible on a year-only rule")
	}
}
