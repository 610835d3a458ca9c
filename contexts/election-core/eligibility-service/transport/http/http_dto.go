package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CandidateItem struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	Statement            string `json:"statement,omitempty"`
	DisqualifiedStatus   bool   `json:"disqualified_status"`
	DisqualifiedLink     string `json:"disqualified_link,omitempty"`
	DisqualifiedMessage  string `json:"disqualified_message,omitempty"`
	RuleViolationMessage string `json:"rule_violation_message,omitempty"`
	RuleViolationLink    string `json:"rule_violation_link,omitempty"`
}

type ElectionItem struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	SeatsAvailable int             `json:"seats_available"`
	Category       string          `json:"category"`
	Candidates     []CandidateItem `json:"candidates"`
}

type ElectionListResponse struct {
	Elections []ElectionItem `json:"elections"`
}
