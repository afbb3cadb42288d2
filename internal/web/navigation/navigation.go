// Package navigation provides sidebar view state for the menu tree.
//
// Highlighting which sidebar entry is active is pure UI state: it compares
// paths and the tab query parameter. It deliberately knows nothing about
// permissions; the tree it decorates was already filtered by the access
// layer.
package navigation

import (
	"net/url"
	"strings"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/access"
)

// TabParam is the query parameter sub-items use to address a screen tab.
const TabParam = "tab"

// Entry is a sidebar entry decorated with active state.
type Entry struct {
	Path     string  `json:"Path"`
	Title    string  `json:"Title"`
	Icon     string  `json:"Icon"`
	Active   bool    `json:"Active"`
	SubItems []Entry `json:"SubItems,omitempty"`
}

// Tab extracts the tab query parameter from a URL, or "" if absent.
func Tab(rawURL string) string {
	_, query, found := strings.Cut(rawURL, "?")
	if !found {
		return ""
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return ""
	}

	return values.Get(TabParam)
}

// IsActive reports whether a sidebar item addressed by itemURL matches the
// current location: same base path and, for tabbed sub-items, the same tab.
func IsActive(currentURL, itemURL string) bool {
	if access.NormalizePath(currentURL) != access.NormalizePath(itemURL) {
		return false
	}

	return Tab(currentURL) == Tab(itemURL)
}

// Decorate converts the session's menu tree into sidebar entries with active
// flags for the current location. A parent is active when it or any of its
// sub-items is.
func Decorate(tree []access.MenuItem, currentURL string) []Entry {
	entries := make([]Entry, 0, len(tree))

	for _, item := range tree {
		entry := Entry{
			Path:   item.Path,
			Title:  item.Title,
			Icon:   item.Icon,
			Active: IsActive(currentURL, item.Path),
		}

		for _, sub := range item.SubItems {
			subEntry := Entry{
				Path:   sub.Path,
				Title:  sub.Title,
				Icon:   sub.Icon,
				Active: IsActive(currentURL, sub.Path),
			}

			if subEntry.Active {
				entry.Active = true
			}

			entry.SubItems = append(entry.SubItems, subEntry)
		}

		entries = append(entries, entry)
	}

	return entries
}
