package access

// PermissionMap is the derived per-session lookup from menu URL to the set
// of actions the role may perform there. Keys keep their insertion order
// because the resolver's prefix fallback walks them first-match-wins; a
// plain Go map would make that tie-break nondeterministic.
type PermissionMap struct {
	keys  []string
	perms map[string]map[string]bool
}

// NewPermissionMap returns an empty map; all lookups against it deny.
func NewPermissionMap() *PermissionMap {
	return &PermissionMap{
		perms: make(map[string]map[string]bool),
	}
}

// BuildPermissionMap converts the flat grant rows for a role into a
// PermissionMap. Rows without a MenuURL are skipped (pure container menus
// have no checkable path). Every non-identity column on a row becomes an
// action entry; a later row for the same URL overwrites the earlier one.
// Building is idempotent: the same input always yields an equal map.
func BuildPermissionMap(flatGrants []GrantRow) *PermissionMap {
	m := NewPermissionMap()

	for _, row := range flatGrants {
		menuURL, _ := row[FieldMenuURL].(string)
		if menuURL == "" {
			continue
		}

		actions := make(map[string]bool, len(row))

		for field, value := range row {
			if isReservedField(field) {
				continue
			}

			actions[field] = truthy(value)
		}

		m.set(menuURL, actions)
	}

	return m
}

// set records the action set for a path, keeping first-insertion key order
// when a path is written more than once.
func (m *PermissionMap) set(path string, actions map[string]bool) {
	if _, exists := m.perms[path]; !exists {
		m.keys = append(m.keys, path)
	}

	m.perms[path] = actions
}

// Len returns the number of paths in the map.
func (m *PermissionMap) Len() int {
	return len(m.keys)
}

// Paths returns the map's keys in insertion order.
func (m *PermissionMap) Paths() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)

	return out
}

// Actions returns the action set recorded for an exact path, or nil.
func (m *PermissionMap) Actions(path string) map[string]bool {
	return m.perms[path]
}

// truthy reports whether a grant row column counts as granted. The flattened
// SQL result delivers action columns as numbers (1/0), but JSON decoding and
// test fixtures may carry them as float64 or bool.
func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v == 1
	case int8:
		return v == 1
	case int16:
		return v == 1
	case int32:
		return v == 1
	case int64:
		return v == 1
	case uint:
		return v == 1
	case uint8:
		return v == 1
	case uint16:
		return v == 1
	case uint32:
		return v == 1
	case uint64:
		return v == 1
	case float32:
		return v == 1
	case float64:
		return v == 1
	default:
		return false
	}
}
