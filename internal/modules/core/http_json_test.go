package core

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_WriteError_Maps_Errors_To_Status_Codes(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"command error", NewCommandError(http.StatusConflict, errors.New("conflict")), http.StatusConflict},
		{"validation error", NewValidationError("invalid").Add("value", "bad"), http.StatusBadRequest},
		{"not found", fmt.Errorf("draft %s: %w", "x", ErrNotFound), http.StatusNotFound},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			// Act
			WriteError(w, r, c.err)

			// Assert
			require.Equal(t, c.status, w.Code)
			require.Contains(t, w.Body.String(), fmt.Sprintf(`"code":%d`, c.status))
		})
	}
}

func Test_WriteError_Keeps_Validation_Fields_Inside_Command_Error(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	err := NewCommandError(http.StatusBadRequest, NewValidationError("invalid").Add("product_id", "required"))

	// Act
	WriteError(w, r, err)

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"code":400,"message":"invalid","errors":{"product_id":["required"]}}`, w.Body.String())
}

func Test_WriteBadRequest_Renders_Plain_Error_With_Status_Code(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/", nil)

	// Act
	WriteBadRequest(w, r, errors.New("unexpected EOF"))

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"code":400,"message":"unexpected EOF"}`, w.Body.String())
}

func Test_WriteCreated_Returns_Id_And_Location(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	// Act
	WriteCreated(w, r, "abc", "/products/abc")

	// Assert
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "/products/abc", w.Header().Get("Location"))
	require.JSONEq(t, `{"id":"abc"}`, w.Body.String())
}
