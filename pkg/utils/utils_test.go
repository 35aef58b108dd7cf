package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	assert.Error(t, ValidateStruct(context.Background(), &sample{}))
	assert.NoError(t, ValidateStruct(context.Background(), &sample{Name: "x"}))
}

// TestCheckCPUUsageDisabled verifies a zero limit always admits work.
func TestCheckCPUUsageDisabled(t *testing.T) {
	ok, usage, err := CheckCPUUsage(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, usage)
}

func TestFreeDiskBytes(t *testing.T) {
	free, err := FreeDiskBytes(t.TempDir())
	require.NoError(t, err)
	assert.Positive(t, free)
}
