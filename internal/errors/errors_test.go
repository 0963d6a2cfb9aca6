package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := IterationLimitExceeded(10, 50)
	wrapped := Wrap(base, "trial 3 failed")

	assert.Equal(t, CodeIterationLimitExceeded, GetCode(wrapped))
	assert.True(t, HasCode(wrapped, CodeIterationLimitExceeded))
	assert.Contains(t, wrapped.Error(), "10 iterations")
	assert.Contains(t, wrapped.Error(), "50 toys")
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrapf(fmt.Errorf("disk full"), "writing %s", "histogram.png")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "writing histogram.png: disk full", wrapped.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestHasCodeThroughForeignWrapper(t *testing.T) {
	err := fmt.Errorf("run aborted: %w", InvalidInputf("toy count must be >= 1, got %d", 0))

	assert.True(t, HasCode(err, CodeInvalidInput))
	assert.False(t, HasCode(err, CodeRenderFailed))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, CodeUnknown, GetCode(fmt.Errorf("plain")))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeRenderFailed, fmt.Errorf("permission denied"))

	assert.Equal(t, CodeRenderFailed, GetCode(err))
	assert.Nil(t, WithCode(CodeRenderFailed, nil))
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(InvalidInput("bad")))
	assert.True(t, IsAppError(fmt.Errorf("run aborted: %w", RenderFailed("histogram.png", fmt.Errorf("denied")))))
	assert.False(t, IsAppError(fmt.Errorf("unknown flag: --nope")))
	assert.False(t, IsAppError(nil))
}
