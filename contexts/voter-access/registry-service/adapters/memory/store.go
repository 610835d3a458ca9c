package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"quorum/contexts/voter-access/registry-service/domain/entities"
	domainerrors "quorum/contexts/voter-access/registry-service/domain/errors"
	"quorum/contexts/voter-access/registry-service/ports"
)

type Store struct {
	mu     sync.RWMutex
	voters map[string]entities.Voter
}

func NewStore(seed []entities.Voter) *Store {
	voters := make(map[string]entities.Voter, len(seed))
	for _, voter := range seed {
		voters[voter.VoterKey] = voter
	}
	return &Store{voters: voters}
}

func (s *Store) UpsertVoter(_ context.Context, voter entities.Voter) (ports.UpsertOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(voter.VoterKey)
	existing, found := s.voters[key]
	if found {
		voter.CreatedAt = existing.CreatedAt
		s.voters[key] = voter
		return ports.UpsertOutcomeFound, nil
	}
	s.voters[key] = voter
	return ports.UpsertOutcomeCreated, nil
}

func (s *Store) GetVoter(_ context.Context, voterKey string) (entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[strings.TrimSpace(voterKey)]
	if !ok {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	return voter, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
