// Package access implements the role/menu/action permission core.
//
// The server stores grants as flat (RoleID, MenuID, ActionID) rows. At login
// time the flat snapshot for the authenticated role is turned into two derived,
// read-only structures: a two-level MenuTree for sidebar rendering and a
// PermissionMap keyed by menu URL for permission resolution. Both are rebuilt
// from the full snapshot on every login and on every permission save; they are
// never patched in place.
//
// Resolution is strictly default-deny: an unknown path, an unknown action or
// an empty map all resolve to false, never to an error.
package access
