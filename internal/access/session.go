package access

// Session bundles everything permission-related that is derived for one
// login: the flat snapshots and the structures built from them. It replaces
// any ambient global state; the web layer stores one Session per login and
// hands it to whoever needs a decision.
type Session struct {
	// Menus is the flat menu snapshot the tree was built from.
	Menus []MenuRecord `json:"Menus"`
	// Grants is the flat grant snapshot the permission map was built from.
	Grants []GrantRow `json:"Grants"`
	// MenuTree is the derived two-level sidebar tree.
	MenuTree []MenuItem `json:"MenuTree"`

	perms *PermissionMap
}

// NewSession builds a Session from the full flat snapshots fetched at login.
// Both derived structures are built here, in one shot, so a caller can never
// observe a session with a tree but no map or vice versa.
func NewSession(menus []MenuRecord, grants []GrantRow) *Session {
	return &Session{
		Menus:    menus,
		Grants:   grants,
		MenuTree: BuildMenuTree(menus),
		perms:    BuildPermissionMap(grants),
	}
}

// Permissions returns the session's permission map, rebuilding it from the
// stored grant snapshot if the session was restored from serialized form.
func (s *Session) Permissions() *PermissionMap {
	if s == nil {
		return nil
	}

	if s.perms == nil {
		s.perms = BuildPermissionMap(s.Grants)
	}

	return s.perms
}

// Has resolves an action at a request path against the session's map.
// A nil session denies everything.
func (s *Session) Has(requestPath, actionName string) bool {
	if s == nil {
		return false
	}

	return s.Permissions().Has(requestPath, actionName)
}

// PermissionsByPath flattens the map into the wire shape the SPA consumes:
// path -> action -> bool, matching the login response contract.
func (s *Session) PermissionsByPath() map[string]map[string]bool {
	perms := s.Permissions()
	if perms == nil {
		return map[string]map[string]bool{}
	}

	out := make(map[string]map[string]bool, perms.Len())

	for _, path := range perms.Paths() {
		actions := perms.Actions(path)

		entry := make(map[string]bool, len(actions))
		for name, allowed := range actions {
			entry[name] = allowed
		}

		out[path] = entry
	}

	return out
}
