package entities

// VoterAttributes is the cross-context projection of a voter's snapshot.
// Eligibility depends on these four attributes and nothing else.
type VoterAttributes struct {
	VoterKey         string
	Discipline       string
	StudyYear        int
	IsPEY            bool
	EnrollmentStatus string
}
