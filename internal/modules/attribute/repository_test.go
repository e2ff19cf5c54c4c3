package attribute

import (
	"context"
	"testing"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "code", "type", "multilingual", "labels", "parameters", "options"}

func newRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(sqlx.NewDb(db, "postgres")), mock
}

func Test_Load_Maps_Attribute_Row(t *testing.T) {
	// Arrange
	repository, mock := newRepository(t)
	id := domain.AttributeIDFromKey("color")

	mock.ExpectQuery("FROM\\s+attribute").
		WithArgs(id.UUID).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			id.String(), "color", "SELECT", true,
			[]byte(`{"EN":"Color","PL":"Kolor"}`), []byte(`{}`), []byte(`["red","blue"]`),
		))

	// Act
	attribute, err := repository.Load(context.Background(), id)

	// Assert
	require.NoError(t, err)
	require.Equal(t, id, attribute.ID)
	require.Equal(t, domain.SelectType, attribute.Type)
	require.True(t, attribute.Multilingual)
	require.Equal(t, "Kolor", attribute.Label("PL"))
	require.Equal(t, []string{"red", "blue"}, attribute.Options)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_Load_Returns_Not_Found(t *testing.T) {
	// Arrange
	repository, mock := newRepository(t)
	id := domain.AttributeIDFromKey("missing")

	mock.ExpectQuery("FROM\\s+attribute").
		WithArgs(id.UUID).
		WillReturnRows(sqlmock.NewRows(columns))

	// Act
	_, err := repository.Load(context.Background(), id)

	// Assert
	require.ErrorIs(t, err, core.ErrNotFound)
}
