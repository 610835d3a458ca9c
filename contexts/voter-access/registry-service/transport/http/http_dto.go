package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SessionResponse struct {
	Token    string `json:"token"`
	VoterKey string `json:"voter_key"`
	Outcome  string `json:"outcome"`
}

type VoterResponse struct {
	VoterKey             string `json:"voter_key"`
	Discipline           string `json:"discipline"`
	StudyYear            int    `json:"study_year"`
	IsEngineeringStudent bool   `json:"is_engineering_student"`
	IsPEY                bool   `json:"is_pey"`
	EnrollmentStatus     string `json:"enrollment_status"`
}
