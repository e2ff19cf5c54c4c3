package persistence

import (
	"context"
	"testing"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/eventsourcing"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/product"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	streams map[uuid.UUID][]eventsourcing.Envelope
}

func newMemoryStore() *memoryStore {
	return &memoryStore{streams: make(map[uuid.UUID][]eventsourcing.Envelope)}
}

func (s *memoryStore) Load(_ context.Context, aggregateID uuid.UUID) ([]eventsourcing.Envelope, error) {
	return s.streams[aggregateID], nil
}

func (s *memoryStore) Append(
	_ context.Context,
	aggregateID uuid.UUID,
	expectedSequence int,
	events []eventsourcing.DomainEvent,
) ([]eventsourcing.Envelope, error) {
	if len(s.streams[aggregateID]) != expectedSequence {
		return nil, eventsourcing.ErrConcurrencyConflict
	}

	var appended []eventsourcing.Envelope
	for i, event := range events {
		appended = append(appended, eventsourcing.Envelope{
			AggregateID: aggregateID,
			Sequence:    expectedSequence + i + 1,
			Event:       event,
		})
	}
	s.streams[aggregateID] = append(s.streams[aggregateID], appended...)

	return appended, nil
}

type recordingPublisher struct {
	published []eventsourcing.Envelope
}

func (p *recordingPublisher) Publish(_ context.Context, envelopes ...eventsourcing.Envelope) error {
	p.published = append(p.published, envelopes...)
	return nil
}

type fixedFinder struct {
	id *domain.ProductDraftID
}

func (f fixedFinder) FindActualDraftID(context.Context, uuid.UUID) (*domain.ProductDraftID, error) {
	return f.id, nil
}

func Test_DraftRepository_Saves_Publishes_And_Loads_Draft(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := newMemoryStore()
	publisher := &recordingPublisher{}
	repository := NewEventSourcedDraftRepository(store, publisher)

	p := &product.Product{ID: uuid.New(), Values: product.Values{"name": {"EN": "Lamp"}}}
	draft := domain.NewProductDraft(domain.NewProductDraftID(), p)
	require.NoError(t, draft.ChangeValue("name", "PL", "Lampa"))

	// Act
	err := repository.Save(ctx, draft)
	require.NoError(t, err)
	loaded, loadErr := repository.Load(ctx, draft.ID())

	// Assert
	require.NoError(t, loadErr)
	require.Len(t, publisher.published, 2)
	require.Equal(t, 2, draft.Version())
	require.Empty(t, draft.Changes())
	require.Equal(t, 2, loaded.Version())
	require.Equal(t, draft.Values(), loaded.Values())
}

func Test_DraftRepository_Save_Without_Changes_Does_Nothing(t *testing.T) {
	// Arrange
	ctx := context.Background()
	publisher := &recordingPublisher{}
	repository := NewEventSourcedDraftRepository(newMemoryStore(), publisher)

	draft := domain.NewProductDraft(domain.NewProductDraftID(), &product.Product{ID: uuid.New()})
	require.NoError(t, repository.Save(ctx, draft))
	publisher.published = nil

	// Act
	err := repository.Save(ctx, draft)

	// Assert
	require.NoError(t, err)
	require.Empty(t, publisher.published)
}

func Test_DraftRepository_Load_Of_Unknown_Draft_Is_Not_Found(t *testing.T) {
	// Arrange
	repository := NewEventSourcedDraftRepository(newMemoryStore(), &recordingPublisher{})

	// Act
	_, err := repository.Load(context.Background(), domain.NewProductDraftID())

	// Assert
	require.ErrorIs(t, err, core.ErrNotFound)
}

func Test_DraftProvider_Without_Open_Draft_Is_Not_Found(t *testing.T) {
	// Arrange
	provider := NewDraftProvider(fixedFinder{}, NewEventSourcedDraftRepository(newMemoryStore(), &recordingPublisher{}))

	// Act
	_, err := provider.Provide(context.Background(), &product.Product{ID: uuid.New()})

	// Assert
	require.ErrorIs(t, err, core.ErrNotFound)
}

func Test_DraftProvider_Loads_Open_Draft(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repository := NewEventSourcedDraftRepository(newMemoryStore(), &recordingPublisher{})
	p := &product.Product{ID: uuid.New()}
	draft := domain.NewProductDraft(domain.NewProductDraftID(), p)
	require.NoError(t, repository.Save(ctx, draft))

	id := draft.ID()
	provider := NewDraftProvider(fixedFinder{id: &id}, repository)

	// Act
	provided, err := provider.Provide(ctx, p)

	// Assert
	require.NoError(t, err)
	require.Equal(t, id, provided.ID())
}

func Test_DraftQuery_GetDraftView_Returns_Nil_For_Missing_Draft(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM\\s+designer.draft\\s").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "type", "applied"}))

	query := NewDraftQuery(sqlx.NewDb(db, "postgres"))

	// Act
	view, err := query.GetDraftView(context.Background(), domain.NewProductDraftID(), "EN")

	// Assert
	require.NoError(t, err)
	require.Nil(t, view)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_DraftQuery_GetDraftView_Collects_Values_In_Language(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := domain.NewProductDraftID()
	productID := uuid.New()
	elementID := uuid.New()

	mock.ExpectQuery("FROM\\s+designer.draft\\s").
		WithArgs(id.UUID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "type", "applied"}).
			AddRow(id.String(), productID.String(), "SIMPLE", false))
	mock.ExpectQuery("FROM\\s+designer.draft_value").
		WithArgs(id.UUID, "EN").
		WillReturnRows(sqlmock.NewRows([]string{"element_id", "value"}).
			AddRow(elementID.String(), "Lamp"))

	query := NewDraftQuery(sqlx.NewDb(db, "postgres"))

	// Act
	view, err := query.GetDraftView(context.Background(), id, "EN")

	// Assert
	require.NoError(t, err)
	require.Equal(t, productID, view.ProductID)
	require.Equal(t, map[string]string{elementID.String(): "Lamp"}, view.Attributes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_DraftQuery_FindActualDraftID_Returns_Open_Draft(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	productID := uuid.New()
	draftID := uuid.New()

	mock.ExpectQuery(`applied = false\s+ORDER BY\s+id\s+LIMIT 1`).
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(draftID.String()))

	query := NewDraftQuery(sqlx.NewDb(db, "postgres"))

	// Act
	id, err := query.FindActualDraftID(context.Background(), productID)

	// Assert
	require.NoError(t, err)
	require.Equal(t, draftID, id.UUID)
}
