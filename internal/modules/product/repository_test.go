package product

import (
	"context"
	"testing"

	attributedomain "github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) (*ProductRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewProductRepository(sqlx.NewDb(db, "postgres")), mock
}

func Test_LoadProduct_Loads_Values_By_Attribute_Code(t *testing.T) {
	// Arrange
	repository, mock := newRepository(t)
	id := uuid.New()
	templateID := uuid.New()

	mock.ExpectQuery("FROM\\s+product\\s+WHERE").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sku", "type", "template_id"}).
			AddRow(id.String(), "SKU-1", "SIMPLE-PRODUCT", templateID.String()))

	mock.ExpectQuery("FROM\\s+product_value").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"code", "language", "value"}).
			AddRow("color", "EN", "Blue").
			AddRow("color", "PL", "Niebieski"))

	// Act
	product, err := repository.LoadProduct(context.Background(), id)

	// Assert
	require.NoError(t, err)
	require.Equal(t, "SKU-1", product.SKU)
	require.Equal(t, templateID, product.TemplateID)
	require.Equal(t, "Niebieski", product.Values["color"]["PL"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_LoadProduct_Returns_Not_Found(t *testing.T) {
	// Arrange
	repository, mock := newRepository(t)
	id := uuid.New()

	mock.ExpectQuery("FROM\\s+product\\s+WHERE").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sku", "type", "template_id"}))

	// Act
	_, err := repository.LoadProduct(context.Background(), id)

	// Assert
	require.ErrorIs(t, err, core.ErrNotFound)
}

func Test_SaveProduct_Replaces_Values_In_Transaction(t *testing.T) {
	// Arrange
	repository, mock := newRepository(t)
	product := &Product{
		ID:         uuid.New(),
		SKU:        "SKU-1",
		Type:       "SIMPLE-PRODUCT",
		TemplateID: uuid.New(),
		Values:     Values{"color": {"EN": "Blue"}},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO product ").
		WithArgs(product.ID, product.SKU, product.Type, product.TemplateID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM\\s+product_value").
		WithArgs(product.ID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO product_value").
		WithArgs(product.ID, attributedomain.AttributeIDFromKey("color").UUID, "EN", "Blue").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := repository.SaveProduct(context.Background(), product)

	// Assert
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
