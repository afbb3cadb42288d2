package access

import "sort"

// BuildMenuTree converts the flat menu snapshot into the two-level sidebar
// tree. Records with ParentMenuID == TopLevelParentID become top-level items
// in input order; every other record is attached to the parent whose MenuID
// matches its ParentMenuID. Siblings are stable-sorted by Position, so rows
// without an explicit Position keep their input order.
//
// A child whose ParentMenuID matches no parent is silently dropped. That is
// long-standing reference behavior the rest of the app depends on; dangling
// parent references are a data problem, not an error here.
//
// Every emitted item carries Permission fixed to ActionView. Finer-grained
// checks are the resolver's job, not the tree's.
func BuildMenuTree(flatMenus []MenuRecord) []MenuItem {
	var (
		parents  []MenuRecord
		children []MenuRecord
	)

	for _, r := range flatMenus {
		if r.ParentMenuID == TopLevelParentID {
			parents = append(parents, r)
		} else {
			children = append(children, r)
		}
	}

	sort.SliceStable(parents, func(i, j int) bool {
		return parents[i].Position < parents[j].Position
	})
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Position < children[j].Position
	})

	tree := make([]MenuItem, 0, len(parents))

	for _, p := range parents {
		item := MenuItem{
			Path:       p.MenuURL,
			Title:      p.MenuName,
			Icon:       p.Icon,
			Permission: ActionView,
		}

		for _, c := range children {
			if c.ParentMenuID != p.MenuID {
				continue
			}

			item.SubItems = append(item.SubItems, SubMenuItem{
				Path:       c.MenuURL,
				Title:      c.MenuName,
				Icon:       c.Icon,
				Permission: ActionView,
			})
		}

		tree = append(tree, item)
	}

	return tree
}
