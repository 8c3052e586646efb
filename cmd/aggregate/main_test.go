package main

import (
	"testing"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFlags(t *testing.T) {
	policy, err := validateFlags("strict", 15, 8)
	require.NoError(t, err)
	assert.Equal(t, domain.DatePolicyStrict, policy)

	for _, top := range []int{1, 100} {
		_, err := validateFlags("skip", top, 8)
		assert.NoError(t, err, "top=%d", top)
	}
}

func TestValidateFlags_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		policy string
		top    int
		bins   int
		want   string
	}{
		{"zero top", "skip", 0, 8, "-top must be between 1 and 100, got 0"},
		{"negative top", "skip", -3, 8, "-top must be between 1 and 100, got -3"},
		{"top over cap", "skip", 101, 8, "-top must be between 1 and 100, got 101"},
		{"bins", "skip", 15, 2, "-bins must be between 3 and 9, got 2"},
		{"policy", "lenient", 15, 8, "lenient"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateFlags(tt.policy, tt.top, tt.bins)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
