package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"quorum/contexts/election-core/eligibility-service/domain/entities"
	domainerrors "quorum/contexts/election-core/eligibility-service/domain/errors"
)

type Store struct {
	mu sync.RWMutex

	elections   map[int64]entities.Election
	rules       map[int64]entities.EligibilityRule
	candidates  map[int64][]entities.Candidate
	voters      map[string]entities.VoterAttributes
	submissions map[string]bool
}

func NewStore() *Store {
	return &Store{
		elections:   make(map[int64]entities.Election),
		rules:       make(map[int64]entities.EligibilityRule),
		candidates:  make(map[int64][]entities.Candidate),
		voters:      make(map[string]entities.VoterAttributes),
		submissions: make(map[string]bool),
	}
}

func (s *Store) SetElection(election entities.Election, rule entities.EligibilityRule, candidates []entities.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[election.ElectionID] = election
	rule.ElectionID = election.ElectionID
	s.rules[election.ElectionID] = rule
	s.candidates[election.ElectionID] = append([]entities.Candidate(nil), candidates...)
}

// SetElectionWithoutRule seeds a misconfigured election for rule-missing
// paths.
func (s *Store) SetElectionWithoutRule(election entities.Election) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[election.ElectionID] = election
}

func (s *Store) SetVoter(attrs entities.VoterAttributes) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[attrs.VoterKey] = attrs
}

func (s *Store) SetSubmission(voterKey string, electionID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[submissionKey(voterKey, electionID)] = true
}

func (s *Store) ListElections(_ context.Context) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Election, 0, len(s.elections))
	for _, election := range s.elections {
		items = append(items, election)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ElectionID < items[j].ElectionID
	})
	return items, nil
}

func (s *Store) GetElection(_ context.Context, electionID int64) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[electionID]
	if !ok {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return election, nil
}

func (s *Store) GetRule(_ context.Context, electionID int64) (entities.EligibilityRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rule, ok := s.rules[electionID]
	if !ok {
		return entities.EligibilityRule{}, domainerrors.ErrRuleMissing
	}
	return rule, nil
}

func (s *Store) ListCandidates(_ context.Context, electionID int64) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Candidate(nil), s.candidates[electionID]...), nil
}

func (s *Store) GetVoterAttributes(_ context.Context, voterKey string) (entities.VoterAttributes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attrs, ok := s.voters[voterKey]
	if !ok {
		return entities.VoterAttributes{}, domainerrors.ErrVoterNotFound
	}
	return attrs, nil
}

func (s *Store) HasSubmission(_ context.Context, voterKey string, electionID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submissions[submissionKey(voterKey, electionID)], nil
}

func submissionKey(voterKey string, electionID int64) string {
	return fmt.Sprintf("%s/%d", voterKey, electionID)
}
