package validation_test

import (
	"testing"

	domainerrors "github.com/shopsavvy/catalog-server/internal/errors"
	"github.com/shopsavvy/catalog-server/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	Name     string `json:"name" validate:"required"`
	PageSize int    `json:"page_size" validate:"gte=1,lte=100"`
	Mode     string `json:"mode" validate:"oneof=relevance price_asc price_desc"`
}

func TestValidator_Success(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRequest{Name: "wrench", PageSize: 12, Mode: "relevance"})
	assert.NoError(t, err)
}

func TestValidator_FieldErrorsUseJSONNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRequest{Name: "", PageSize: 500, Mode: "popularity"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "page_size")
	assert.Contains(t, details, "mode")
	assert.Equal(t, "is required", details["name"])
}
