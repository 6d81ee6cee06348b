package errors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAPIErrorMessage(t *testing.T) {
	err := ValidationError("INVALID_TIER", "Tier must be between 1 and 3")
	assert.Equal(t, "Tier must be between 1 and 3 (INVALID_TIER)", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)

	err.Details = "got 9"
	assert.Equal(t, "Tier must be between 1 and 3: got 9 (INVALID_TIER)", err.Error())
}

func TestGetAPIErrorUnwrapsChains(t *testing.T) {
	inner := NotFoundError("company")
	wrapped := fmt.Errorf("loading detail: %w", inner)

	assert.True(t, IsAPIError(wrapped))
	apiErr := GetAPIError(wrapped)
	require.NotNil(t, apiErr)
	assert.Equal(t, ErrorTypeNotFound, apiErr.Type)
	assert.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)

	assert.False(t, IsAPIError(fmt.Errorf("plain failure")))
	assert.Nil(t, GetAPIError(fmt.Errorf("plain failure")))
}

func TestHandleDatabaseError(t *testing.T) {
	assert.Nil(t, HandleDatabaseError(nil, "company"))

	notFound := HandleDatabaseError(gorm.ErrRecordNotFound, "company")
	require.NotNil(t, notFound)
	assert.Equal(t, ErrorTypeNotFound, notFound.Type)

	noRows := HandleDatabaseError(sql.ErrNoRows, "company")
	require.NotNil(t, noRows)
	assert.Equal(t, ErrorTypeNotFound, noRows.Type)

	cause := fmt.Errorf("connection reset")
	dbErr := HandleDatabaseError(cause, "company rows")
	require.NotNil(t, dbErr)
	assert.Equal(t, ErrorTypeDatabase, dbErr.Type)
	assert.Equal(t, cause, dbErr.Unwrap())
}
