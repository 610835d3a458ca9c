package errors

import "errors"

var (
	ErrMalformedBallot  = errors.New("ballot payload is malformed")
	ErrElectionNotFound = errors.New("election not found")
	ErrNotEligible      = errors.New("voter is not eligible to vote in this election")
	ErrAlreadyVoted     = errors.New("voter has already voted in this election")
	ErrInvalidCandidate = errors.New("candidate does not exist in chosen election")
	ErrSubmissionFailed = errors.New("failed to submit ballot")
)
