package entities

import "time"

// Discipline is the 3-character program code sliced out of the provider's
// POSt code. Unknown codes are stored as-is; they simply never match an
// election rule.
type Discipline string

const (
	DisciplineTrackOne   Discipline = "ENG"
	DisciplineChemical   Discipline = "CHE"
	DisciplineCivil      Discipline = "CIV"
	DisciplineElectrical Discipline = "ELE"
	DisciplineComputer   Discipline = "CPE"
	DisciplineEngSci     Discipline = "ESC"
	DisciplineIndustrial Discipline = "IND"
	DisciplineMineral    Discipline = "LME"
	DisciplineMechanical Discipline = "MEC"
	DisciplineMaterials  Discipline = "MMS"
)

type EnrollmentStatus string

const (
	EnrollmentFullTime EnrollmentStatus = "full_time"
	EnrollmentPartTime EnrollmentStatus = "part_time"
)

// Voter is the attribute snapshot for one verified voter. The identity
// provider is the source of truth: every attribute is overwritten on each
// successful verification.
type Voter struct {
	VoterKey             string
	Discipline           Discipline
	StudyYear            int
	IsEngineeringStudent bool
	IsPEY                bool
	EnrollmentStatus     EnrollmentStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
