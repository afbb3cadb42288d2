package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMenuTree(t *testing.T) {
	testCases := []struct {
		name     string
		input    []MenuRecord
		expected []MenuItem
	}{
		{
			name:     "empty input",
			input:    nil,
			expected: []MenuItem{},
		},
		{
			name: "single top-level item",
			input: []MenuRecord{
				{MenuID: 1, ParentMenuID: 0, MenuName: "Dashboard", MenuURL: "/dashboard", Icon: "fa-home"},
			},
			expected: []MenuItem{
				{Path: "/dashboard", Title: "Dashboard", Icon: "fa-home", Permission: ActionView},
			},
		},
		{
			name: "parent with children",
			input: []MenuRecord{
				{MenuID: 1, ParentMenuID: 0, MenuName: "System Management", MenuURL: "/system-management"},
				{MenuID: 2, ParentMenuID: 1, MenuName: "Users", MenuURL: "/system-management?tab=users"},
				{MenuID: 3, ParentMenuID: 1, MenuName: "Roles-Permissions", MenuURL: "/system-management?tab=roles"},
			},
			expected: []MenuItem{
				{
					Path:       "/system-management",
					Title:      "System Management",
					Permission: ActionView,
					SubItems: []SubMenuItem{
						{Path: "/system-management?tab=users", Title: "Users", Permission: ActionView},
						{Path: "/system-management?tab=roles", Title: "Roles-Permissions", Permission: ActionView},
					},
				},
			},
		},
		{
			name: "orphan child is dropped",
			input: []MenuRecord{
				{MenuID: 1, ParentMenuID: 0, MenuName: "Admin", MenuURL: "/admin"},
				{MenuID: 2, ParentMenuID: 1, MenuName: "Users", MenuURL: "/admin?tab=users"},
				{MenuID: 3, ParentMenuID: 99, MenuName: "Orphan", MenuURL: "/x"},
			},
			expected: []MenuItem{
				{
					Path:       "/admin",
					Title:      "Admin",
					Permission: ActionView,
					SubItems: []SubMenuItem{
						{Path: "/admin?tab=users", Title: "Users", Permission: ActionView},
					},
				},
			},
		},
		{
			name: "siblings sorted by position, input order preserved on ties",
			input: []MenuRecord{
				{MenuID: 1, ParentMenuID: 0, MenuName: "Second", MenuURL: "/second", Position: 2},
				{MenuID: 2, ParentMenuID: 0, MenuName: "First", MenuURL: "/first", Position: 1},
				{MenuID: 3, ParentMenuID: 0, MenuName: "Tie A", MenuURL: "/tie-a", Position: 3},
				{MenuID: 4, ParentMenuID: 0, MenuName: "Tie B", MenuURL: "/tie-b", Position: 3},
			},
			expected: []MenuItem{
				{Path: "/first", Title: "First", Permission: ActionView},
				{Path: "/second", Title: "Second", Permission: ActionView},
				{Path: "/tie-a", Title: "Tie A", Permission: ActionView},
				{Path: "/tie-b", Title: "Tie B", Permission: ActionView},
			},
		},
		{
			name: "container parent without URL keeps its children",
			input: []MenuRecord{
				{MenuID: 10, ParentMenuID: 0, MenuName: "Setup", MenuURL: ""},
				{MenuID: 11, ParentMenuID: 10, MenuName: "Floors", MenuURL: "/floors"},
			},
			expected: []MenuItem{
				{
					Path:       "",
					Title:      "Setup",
					Permission: ActionView,
					SubItems: []SubMenuItem{
						{Path: "/floors", Title: "Floors", Permission: ActionView},
					},
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree := BuildMenuTree(tc.input)

			require.Len(t, tree, len(tc.expected))
			assert.Equal(t, tc.expected, tree)
		})
	}
}

func TestBuildMenuTree_ChildrenSortedByPosition(t *testing.T) {
	tree := BuildMenuTree([]MenuRecord{
		{MenuID: 1, ParentMenuID: 0, MenuName: "Panel", MenuURL: "/management-panel"},
		{MenuID: 2, ParentMenuID: 1, MenuName: "Fee Plan", MenuURL: "/management-panel?tab=fee-plan", Position: 2},
		{MenuID: 3, ParentMenuID: 1, MenuName: "Houses", MenuURL: "/management-panel?tab=houses", Position: 1},
	})

	require.Len(t, tree, 1)
	require.Len(t, tree[0].SubItems, 2)
	assert.Equal(t, "Houses", tree[0].SubItems[0].Title)
	assert.Equal(t, "Fee Plan", tree[0].SubItems[1].Title)
}

func TestBuildMenuTree_EveryItemTaggedWithView(t *testing.T) {
	tree := BuildMenuTree([]MenuRecord{
		{MenuID: 1, ParentMenuID: 0, MenuName: "Expenses", MenuURL: "/expenses"},
		{MenuID: 2, ParentMenuID: 1, MenuName: "Monthly", MenuURL: "/expenses?tab=monthly"},
	})

	require.Len(t, tree, 1)
	assert.Equal(t, ActionView, tree[0].Permission)

	for _, sub := range tree[0].SubItems {
		assert.Equal(t, ActionView, sub.Permission)
	}
}
