package eventsourcing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrConcurrencyConflict = errors.New("aggregate was modified concurrently")

const uniqueViolation = pq.ErrorCode("23505")

type storedEvent struct {
	AggregateID uuid.UUID `db:"aggregate_id"`
	Sequence    int       `db:"sequence"`
	EventType   string    `db:"event_type"`
	Payload     []byte    `db:"payload"`
	RecordedAt  time.Time `db:"recorded_at"`
}

type EventStore struct {
	db       *sql.DB
	registry *EventRegistry
}

func NewEventStore(db *sql.DB, registry *EventRegistry) *EventStore {
	return &EventStore{db: db, registry: registry}
}

func (s *EventStore) Load(ctx context.Context, aggregateID uuid.UUID) ([]Envelope, error) {
	const query = `
		SELECT
			aggregate_id, sequence, event_type, payload, recorded_at
		FROM
			event_store
		WHERE
			aggregate_id = $1
		ORDER BY
			sequence;`

	rows, err := tql.Query[storedEvent](ctx, s.db, query, aggregateID)
	if err != nil {
		return nil, err
	}

	envelopes := make([]Envelope, 0, len(rows))
	for _, row := range rows {
		event, err := s.registry.Decode(row.EventType, row.Payload)
		if err != nil {
			return nil, err
		}

		envelopes = append(envelopes, Envelope{
			AggregateID: row.AggregateID,
			Sequence:    row.Sequence,
			Event:       event,
			RecordedAt:  row.RecordedAt,
		})
	}

	return envelopes, nil
}

// Append records events after the expectedSequence of the aggregate's stream.
// Another writer having appended in between results in ErrConcurrencyConflict.
func (s *EventStore) Append(
	ctx context.Context,
	aggregateID uuid.UUID,
	expectedSequence int,
	events []DomainEvent,
) ([]Envelope, error) {
	now := time.Now().UTC()
	envelopes := make([]Envelope, 0, len(events))

	txFn := func(ctx context.Context, tx *sql.Tx) error {
		const stmt = `
			INSERT INTO event_store (aggregate_id, sequence, event_type, payload)
			VALUES ($1, $2, $3, $4);`

		for i, event := range events {
			payload, err := s.registry.Encode(event)
			if err != nil {
				return err
			}

			sequence := expectedSequence + i + 1
			if _, err := tql.Exec(ctx, tx, stmt, aggregateID, sequence, event.EventType(), payload); err != nil {
				return err
			}

			envelopes = append(envelopes, Envelope{
				AggregateID: aggregateID,
				Sequence:    sequence,
				Event:       event,
				RecordedAt:  now,
			})
		}

		return nil
	}

	err := core.Tx(ctx, s.db, txFn)

	var pqErr *pq.Error
	switch {
	case errors.As(err, &pqErr) && pqErr.Code == uniqueViolation:
		return nil, fmt.Errorf("aggregate %s: %w", aggregateID.String(), ErrConcurrencyConflict)
	case err != nil:
		return nil, err
	}

	return envelopes, nil
}
