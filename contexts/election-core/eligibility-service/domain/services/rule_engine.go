package services

import "quorum/contexts/election-core/eligibility-service/domain/entities"

// DisciplineEligible maps a discipline code onto its rule flag with an
// explicit switch; unknown codes are never eligible.
func DisciplineEligible(rule entities.EligibilityRule, discipline string) bool {
	switch discipline {
	case "ENG":
		return rule.EngEligible
	case "CHE":
		return rule.CheEligible
	case "CIV":
		return rule.CivEligible
	case "ELE":
		return rule.EleEligible
	case "CPE":
		return rule.CpeEligible
	case "ESC":
		return rule.EscEligible
	case "IND":
		return rule.IndEligible
	case "LME":
		return rule.LmeEligible
	case "MEC":
		return rule.MecEligible
	case "MMS":
		return rule.MmsEligible
	default:
		return false
	}
}

func YearEligible(rule entities.EligibilityRule, year int) bool {
	switch year {
	case 1:
		return rule.Year1Eligible
	case 2:
		return rule.Year2Eligible
	case 3:
		return rule.Year3Eligible
	case 4:
		return rule.Year4Eligible
	default:
		return false
	}
}

func StatusEligible(rule entities.EligibilityRule, status string) bool {
	return string(rule.StatusEligible) == status ||
		rule.StatusEligible == entities.StatusFullAndPartTime
}

// Allows evaluates the rule against a voter's attributes. Work-term voters
// are checked on the PEY flag and never on study year; everyone else is
// checked on the exact study-year flag and never on PEY. That branch is a
// business rule, not an oversight.
func Allows(rule entities.EligibilityRule, attrs entities.VoterAttributes) bool {
	if !StatusEligible(rule, attrs.EnrollmentStatus) {
		return false
	}
	if attrs.IsPEY {
		if !rule.PEYEligible {
			return false
		}
	} else if !YearEligible(rule, attrs.StudyYear) {
		return false
	}
	return DisciplineEligible(rule, attrs.Discipline)
}
