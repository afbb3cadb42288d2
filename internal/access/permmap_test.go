package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPermissionMap(t *testing.T) {
	testCases := []struct {
		name          string
		input         []GrantRow
		expectedPaths []string
	}{
		{
			name:          "empty input yields empty map",
			input:         nil,
			expectedPaths: []string{},
		},
		{
			name: "row without MenuURL is skipped",
			input: []GrantRow{
				{FieldMenuID: 10, FieldMenuName: "Setup", "CanView": 1},
				{FieldMenuURL: "/plots", "CanView": 1},
			},
			expectedPaths: []string{"/plots"},
		},
		{
			name: "keys keep insertion order",
			input: []GrantRow{
				{FieldMenuURL: "/dashboard", "CanView": 1},
				{FieldMenuURL: "/plots", "CanView": 1},
				{FieldMenuURL: "/expenses", "CanView": 1},
			},
			expectedPaths: []string{"/dashboard", "/plots", "/expenses"},
		},
		{
			name: "duplicate URL overwrites without duplicating the key",
			input: []GrantRow{
				{FieldMenuURL: "/plots", "CanView": 0},
				{FieldMenuURL: "/plots", "CanView": 1},
			},
			expectedPaths: []string{"/plots"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := BuildPermissionMap(tc.input)

			assert.Equal(t, tc.expectedPaths, m.Paths())
			assert.Equal(t, len(tc.expectedPaths), m.Len())
		})
	}
}

func TestBuildPermissionMap_IdentityFieldsAreNotActions(t *testing.T) {
	m := BuildPermissionMap([]GrantRow{
		{
			FieldMenuURL:      "/plots",
			FieldRoleID:       2,
			FieldRoleName:     "Administrator",
			FieldMenuID:       5,
			FieldMenuName:     "Plots",
			FieldParentMenuID: 0,
			"CanView":         1,
			"CanAdd":          0,
		},
	})

	actions := m.Actions("/plots")
	require.NotNil(t, actions)

	assert.Equal(t, map[string]bool{"CanView": true, "CanAdd": false}, actions)
}

// Rebuilding from the same snapshot must produce an equal map, key order
// included.
func TestBuildPermissionMap_Idempotent(t *testing.T) {
	grants := []GrantRow{
		{FieldMenuURL: "/dashboard", "CanView": 1, "CanAdd": 0},
		{FieldMenuURL: "/plots", "CanView": 1, "CanAdd": 1, "CanDelete": 0},
		{FieldMenuURL: "/rate-plans", "CanView": 1, "CanGeneratePaymentPlan": 1},
	}

	first := BuildPermissionMap(grants)
	second := BuildPermissionMap(grants)

	assert.Equal(t, first, second)
}

func TestBuildPermissionMap_ValueCoercion(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		expected bool
	}{
		{name: "int one", value: 1, expected: true},
		{name: "int zero", value: 0, expected: false},
		{name: "int64 one", value: int64(1), expected: true},
		{name: "uint8 one", value: uint8(1), expected: true},
		{name: "float64 one from JSON", value: float64(1), expected: true},
		{name: "bool true", value: true, expected: true},
		{name: "bool false", value: false, expected: false},
		{name: "int two is not granted", value: 2, expected: false},
		{name: "string is not granted", value: "1", expected: false},
		{name: "nil is not granted", value: nil, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := BuildPermissionMap([]GrantRow{
				{FieldMenuURL: "/plots", "CanView": tc.value},
			})

			assert.Equal(t, tc.expected, m.Has("/plots", "CanView"))
		})
	}
}
