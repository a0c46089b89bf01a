package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCode(t *testing.T) {
	base := QuotaExceeded("storage is full")
	wrapped := Wrap(base, "failed to save sheet")

	assert.True(t, IsQuotaExceeded(wrapped))
	assert.Equal(t, "failed to save sheet: storage is full", wrapped.Error())
}

func TestWrapWithCodeOverridesCode(t *testing.T) {
	cause := fmt.Errorf("unexpected end of JSON input")
	wrapped := WrapWithCode(cause, CodeCorruptedSave, "sheet record is corrupted")

	assert.True(t, IsCorruptedSave(wrapped))
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, WrapWithCode(nil, CodeInternal, "nothing"))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeValidation, GetCode(Validation("name is required")))
	assert.Equal(t, CodeUnknown, GetCode(fmt.Errorf("plain error")))
	assert.Equal(t, CodeUnknown, GetCode(nil))
}

func TestWithMeta(t *testing.T) {
	err := NotFoundf("sheet with ID '%s' not found", "abc").WithMeta("sheet_id", "abc")

	assert.True(t, IsNotFound(err))
	assert.Equal(t, "abc", err.Meta["sheet_id"])
}
