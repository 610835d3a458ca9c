package commands

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"quorum/contexts/election-core/ballot-service/domain/entities"
	"quorum/contexts/election-core/ballot-service/ports"

	contractsv1 "quorum/contracts/gen/events/v1"
)

// appendBallotEvent records a ballot.accepted audit event for the outbox
// relay. Outbox is optional for pure read/test wiring, so nil is a no-op.
func (uc SubmitBallotUseCase) appendBallotEvent(
	ctx context.Context,
	submission entities.BallotSubmission,
	ballotCount int,
	occurredAt time.Time,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(contractsv1.BallotAcceptedData{
		SubmissionID: submission.SubmissionID,
		ElectionID:   submission.ElectionID,
		Spoiled:      submission.Spoiled,
		BallotCount:  ballotCount,
		OccurredAt:   occurredAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:          eventID,
		EventType:        contractsv1.EventTypeBallotAccepted,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "ballot-service",
		SchemaVersion:    1,
		PartitionKeyPath: "election_id",
		PartitionKey:     strconv.FormatInt(submission.ElectionID, 10),
		Data:             data,
	})
}
