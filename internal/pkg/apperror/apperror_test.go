package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	errMissing := New(KindNotFound, "thing not found")

	assert.Equal(t, KindNotFound, KindOf(errMissing))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("lookup: %w", errMissing)))
	assert.Equal(t, KindInternal, KindOf(errors.New("connection refused")))
	assert.Equal(t, "thing not found", errMissing.Error())
}

type fieldErrors []string

func (fieldErrors) Error() string   { return "invalid fields" }
func (fieldErrors) ErrorKind() Kind { return KindInvalidInput }

func TestKindOf_Classifier(t *testing.T) {
	assert.Equal(t, KindInvalidInput, KindOf(fieldErrors{"name"}))
	assert.Equal(t, KindInvalidInput, KindOf(fmt.Errorf("create: %w", fieldErrors{"email"})))
}

func TestSentinelIdentity(t *testing.T) {
	a := New(KindConflict, "duplicate")
	b := New(KindConflict, "duplicate")

	assert.True(t, errors.Is(fmt.Errorf("wrap: %w", a), a))
	assert.False(t, errors.Is(a, b))
}
