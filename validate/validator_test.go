package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Pass(t *testing.T) {
	v := New("sh", []string{"-c", "echo conformant #"}, nil)

	result, err := v.Validate(context.Background(), "/tmp/doc.json")
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Contains(t, result.Output, "conformant")
}

func TestValidate_FailureIsResultNotError(t *testing.T) {
	v := New("sh", []string{"-c", "echo 'constraint violation' >&2; exit 1 #"}, nil)

	result, err := v.Validate(context.Background(), "/tmp/doc.json")
	require.NoError(t, err, "non-zero exit is a result, not an error")
	assert.False(t, result.Passed)
	assert.Contains(t, result.Output, "constraint violation")
}

func TestValidate_MissingCommand(t *testing.T) {
	v := New("ucograph-validator-that-does-not-exist", nil, nil)

	_, err := v.Validate(context.Background(), "/tmp/doc.json")
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	v := New("", nil, nil)
	assert.Equal(t, DefaultCommand, v.command)
}
