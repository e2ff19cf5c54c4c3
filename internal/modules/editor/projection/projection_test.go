package projection

import (
	"context"
	"errors"
	"testing"

	attributedomain "github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/eventsourcing"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/product"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func Test_ValueRemovedProjector_Supports_Only_Value_Removed(t *testing.T) {
	// Arrange
	projector := NewProductDraftValueRemovedEventProjector(nil)

	// Act & Assert
	require.True(t, projector.Supports(domain.ProductDraftValueRemoved{AttributeCode: "color"}))
	require.False(t, projector.Supports(domain.ProductDraftValueAdded{AttributeCode: "color"}))
	require.False(t, projector.Supports(domain.ProductDraftValueChanged{AttributeCode: "color"}))
	require.False(t, projector.Supports(domain.ProductDraftApplied{}))
}

func Test_ValueRemovedProjector_Deletes_Draft_Element_Rows(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	draftID := uuid.New()
	elementID := attributedomain.AttributeIDFromKey("color")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM\\s+designer.draft_value").
		WithArgs(draftID, elementID.UUID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	projector := NewProductDraftValueRemovedEventProjector(db)

	// Act
	err = projector.Project(context.Background(), draftID, domain.ProductDraftValueRemoved{AttributeCode: "color"})

	// Assert
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_ValueRemovedProjector_Deleting_Nothing_Is_Not_An_Error(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM\\s+designer.draft_value").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	projector := NewProductDraftValueRemovedEventProjector(db)

	// Act
	err = projector.Project(context.Background(), uuid.New(), domain.ProductDraftValueRemoved{AttributeCode: "color"})

	// Assert
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_ValueRemovedProjector_Rolls_Back_And_Wraps_Event_On_Failure(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cause := errors.New("connection reset")
	event := domain.ProductDraftValueRemoved{AttributeCode: "color"}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM\\s+designer.draft_value").WillReturnError(cause)
	mock.ExpectRollback()

	projector := NewProductDraftValueRemovedEventProjector(db)

	// Act
	err = projector.Project(context.Background(), uuid.New(), event)

	// Assert
	var projectorErr *eventsourcing.ProjectorError
	require.ErrorAs(t, err, &projectorErr)
	require.Equal(t, event, projectorErr.Event)
	require.ErrorIs(t, err, cause)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_ValueRemovedProjector_Rejects_Other_Events(t *testing.T) {
	// Arrange
	projector := NewProductDraftValueRemovedEventProjector(nil)

	// Act
	err := projector.Project(context.Background(), uuid.New(), domain.ProductDraftApplied{})

	// Assert
	var unsupportedErr *eventsourcing.UnsupportedEventError
	require.ErrorAs(t, err, &unsupportedErr)
}

func Test_ValueChangedProjector_Replaces_Translations(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	draftID := uuid.New()
	elementID := attributedomain.AttributeIDFromKey("color")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM\\s+designer.draft_value").
		WithArgs(draftID, elementID.UUID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO designer.draft_value").
		WithArgs(draftID, elementID.UUID, "EN", "Red").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	projector := NewProductDraftValueChangedEventProjector(db)
	event := domain.ProductDraftValueChanged{
		AttributeCode: "color",
		From:          map[core.Language]string{"EN": "Blue"},
		To:            map[core.Language]string{"EN": "Red"},
	}

	// Act
	err = projector.Project(context.Background(), draftID, event)

	// Assert
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_CreatedProjector_Inserts_Draft_And_Values(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	draftID := uuid.New()
	productID := uuid.New()
	elementID := attributedomain.AttributeIDFromKey("name")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO designer.draft ").
		WithArgs(draftID, productID, "SIMPLE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM\\s+designer.draft_value").
		WithArgs(draftID, elementID.UUID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO designer.draft_value").
		WithArgs(draftID, elementID.UUID, "EN", "Lamp").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	projector := NewProductDraftCreatedEventProjector(db)
	event := domain.ProductDraftCreated{
		ID:        domain.ProductDraftID{UUID: draftID},
		ProductID: productID,
		Type:      "SIMPLE",
		Values:    product.Values{"name": {"EN": "Lamp"}},
	}

	// Act
	err = projector.Project(context.Background(), draftID, event)

	// Assert
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_AppliedProjector_Marks_Draft_Applied(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	draftID := uuid.New()
	mock.ExpectExec("UPDATE\\s+designer.draft").
		WithArgs(draftID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	projector := NewProductDraftAppliedEventProjector(db)

	// Act
	err = projector.Project(context.Background(), draftID, domain.ProductDraftApplied{ProductID: uuid.New()})

	// Assert
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_Projectors_Cover_Every_Draft_Event(t *testing.T) {
	// Arrange
	events := []eventsourcing.DomainEvent{
		domain.ProductDraftCreated{},
		domain.ProductDraftValueAdded{},
		domain.ProductDraftValueChanged{},
		domain.ProductDraftValueRemoved{},
		domain.ProductDraftApplied{},
	}

	// Act
	projectors := Projectors(nil)

	// Assert
	for _, event := range events {
		supported := 0
		for _, projector := range projectors {
			if projector.Supports(event) {
				supported++
			}
		}
		require.Equal(t, 1, supported, event.EventType())
	}
}
