package version

import (
	"testing"

	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckVersionCompatibility(t *testing.T) {
	tests := []struct {
		name          string
		engineVersion string
		configVersion string
		expectError   bool
		errorContains string
	}{
		{
			name:          "exact match",
			engineVersion: "1.2.0",
			configVersion: "1.2.0",
		},
		{
			name:          "config patch higher",
			engineVersion: "1.2.0",
			configVersion: "1.2.5",
		},
		{
			name:          "engine minor higher",
			engineVersion: "1.3.0",
			configVersion: "1.2.0",
		},
		{
			name:          "v prefix on both",
			engineVersion: "v1.0.0",
			configVersion: "v1.0.3",
		},
		{
			name:          "empty config version",
			engineVersion: "1.0.0",
			configVersion: "",
		},
		{
			name:          "development engine",
			engineVersion: "main",
			configVersion: "9.9.9",
		},
		{
			name:          "config minor higher",
			engineVersion: "1.2.0",
			configVersion: "1.3.0",
			expectError:   true,
			errorContains: "minor version mismatch",
		},
		{
			name:          "major differs",
			engineVersion: "2.0.0",
			configVersion: "1.2.0",
			expectError:   true,
			errorContains: "major version mismatch",
		},
		{
			name:          "invalid config version",
			engineVersion: "1.0.0",
			configVersion: "latest",
			expectError:   true,
			errorContains: "invalid version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVersionCompatibility(tt.engineVersion, tt.configVersion)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	v, err := Parse("v1.4.2")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v.Major())
	assert.Equal(t, uint64(4), v.Minor())

	_, err = Parse("not-a-version")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidVersion))
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
	_, err := Parse(GetVersion())
	assert.NoError(t, err)
}
