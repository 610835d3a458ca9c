package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"quorum/contexts/election-core/ballot-service/domain/entities"
	domainerrors "quorum/contexts/election-core/ballot-service/domain/errors"
	"quorum/contexts/election-core/ballot-service/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store keeps submissions, ballots, and the outbox behind one mutex, so the
// check-then-insert sequence inside CreateSubmission is serialized the same
// way the postgres unique constraint serializes it.
type Store struct {
	mu sync.RWMutex

	submissions map[string]entities.BallotSubmission
	ballots     map[string][]entities.Ballot
	outbox      map[string]outboxRecord

	elections  map[int64]ports.ElectionProjection
	candidates map[int64][]int64
}

func NewStore() *Store {
	return &Store{
		submissions: make(map[string]entities.BallotSubmission),
		ballots:     make(map[string][]entities.Ballot),
		outbox:      make(map[string]outboxRecord),
		elections:   make(map[int64]ports.ElectionProjection),
		candidates:  make(map[int64][]int64),
	}
}

func (s *Store) SetElection(projection ports.ElectionProjection, candidateIDs []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[projection.ElectionID] = projection
	s.candidates[projection.ElectionID] = append([]int64(nil), candidateIDs...)
}

func (s *Store) HasSubmission(_ context.Context, voterKey string, electionID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, found := s.submissions[pairKey(voterKey, electionID)]
	return found, nil
}

func (s *Store) CreateSubmission(
	_ context.Context,
	submission entities.BallotSubmission,
	ballots []entities.Ballot,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(submission.VoterKey, submission.ElectionID)
	if _, found := s.submissions[key]; found {
		return domainerrors.ErrAlreadyVoted
	}
	s.submissions[key] = submission
	s.ballots[key] = append([]entities.Ballot(nil), ballots...)
	return nil
}

func (s *Store) ListBallots(_ context.Context, voterKey string, electionID int64) ([]entities.Ballot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := append([]entities.Ballot(nil), s.ballots[pairKey(voterKey, electionID)]...)
	sort.Slice(items, func(i, j int) bool {
		left, right := items[i].Rank, items[j].Rank
		if left == nil || right == nil {
			return right == nil && left != nil
		}
		return *left < *right
	})
	return items, nil
}

func (s *Store) GetElection(_ context.Context, electionID int64) (ports.ElectionProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projection, ok := s.elections[electionID]
	if !ok {
		return ports.ElectionProjection{}, domainerrors.ErrElectionNotFound
	}
	return projection, nil
}

func (s *Store) ListCandidateIDs(_ context.Context, electionID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int64(nil), s.candidates[electionID]...), nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	outboxID := envelope.EventID
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    envelope.OccurredAt.UTC(),
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.OutboxMessage, 0)
	for _, record := range s.outbox {
		if record.published {
			continue
		}
		items = append(items, record.message)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.outbox[outboxID]
	if !ok {
		return domainerrors.ErrSubmissionFailed
	}
	record.published = true
	s.outbox[outboxID] = record
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func pairKey(voterKey string, electionID int64) string {
	return fmt.Sprintf("%s/%d", voterKey, electionID)
}
