package errors

import "errors"

var (
	ErrElectionNotFound = errors.New("election not found")
	ErrVoterNotFound    = errors.New("voter not found")
	ErrRuleMissing      = errors.New("election has no eligibility rule configured")
)
