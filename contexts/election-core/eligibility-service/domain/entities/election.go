package entities

import "time"

type Category string

const (
	CategoryReferenda     Category = "referenda"
	CategoryOfficer       Category = "officer"
	CategoryBoard         Category = "board_of_directors"
	CategoryDiscipline    Category = "discipline_club"
	CategoryClassRep      Category = "class_representative"
	CategoryOther         Category = "other"
)

// ElectionSession is the time-boxed voting window an election belongs to.
type ElectionSession struct {
	SessionID int64
	Name      string
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Election struct {
	ElectionID     int64
	Name           string
	SeatsAvailable int
	Category       Category
	SessionID      int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type StatusEligibility string

const (
	StatusFullTime        StatusEligibility = "full_time"
	StatusPartTime        StatusEligibility = "part_time"
	StatusFullAndPartTime StatusEligibility = "full_and_part_time"
)

// EligibilityRule is the per-election predicate over voter attributes.
// Exactly one rule exists per election; a missing rule is a configuration
// error, never a voter-facing one.
type EligibilityRule struct {
	ElectionID int64

	EngEligible bool
	CheEligible bool
	CivEligible bool
	EleEligible bool
	CpeEligible bool
	EscEligible bool
	IndEligible bool
	LmeEligible bool
	MecEligible bool
	MmsEligible bool

	Year1Eligible bool
	Year2Eligible bool
	Year3Eligible bool
	Year4Eligible bool

	PEYEligible    bool
	StatusEligible StatusEligibility

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Candidate disqualification metadata is display-only: a disqualified
// candidate may still legally receive ranked votes.
type Candidate struct {
	CandidateID          int64
	ElectionID           int64
	Name                 string
	Statement            string
	DisqualifiedStatus   bool
	DisqualifiedLink     string
	DisqualifiedMessage  string
	RuleViolationMessage string
	RuleViolationLink    string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
