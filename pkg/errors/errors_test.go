// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, code matching and exit codes

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "source root missing",
			wantStr: "[NOT_FOUND] source root missing",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "duration must be positive",
			wantStr: "[INVALID_INPUT] duration must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	base := stderrors.New("permission denied")

	err := errors.Wrapf(base, errors.ErrPermission, "cannot write %s", "/etc/tlp.d/x.conf")
	require.NotNil(t, err)
	assert.Equal(t, "[PERMISSION] cannot write /etc/tlp.d/x.conf: permission denied", err.Error())
	assert.True(t, stderrors.Is(err, base))

	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "nothing"))
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New(errors.ErrNotRunning, "timer is not running"))

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrNotRunning, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrNoTimer, "")))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotRunning))
	assert.Equal(t, errors.ErrNotRunning, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrFileAccess, "stat failed").WithDetail("path", "/tmp/x")
	assert.Equal(t, "/tmp/x", errors.GetErrorDetails(err)["path"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, errors.ExitCode(nil))
	assert.Equal(t, 0, errors.ExitCode(errors.New(errors.ErrCancelled, "menu dismissed")))
	assert.Equal(t, 1, errors.ExitCode(errors.New(errors.ErrInvalidInput, "bad duration")))
	assert.Equal(t, 1, errors.ExitCode(stderrors.New("boom")))
}
