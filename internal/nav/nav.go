// Package nav resolves which dashboard tab is current and where fragment
// links point.
package nav

import "strings"

// Link is a navigation entry shown as a tab.
type Link struct {
	Title  string
	Href   string
	Anchor string
}

// IsCurrent reports whether href names the current path exactly.
func IsCurrent(href, path string) bool {
	return href != "" && href == path
}

// Current returns the index of the link matching path, or -1.
func Current(links []Link, path string) int {
	for i, l := range links {
		if IsCurrent(l.Href, path) {
			return i
		}
	}
	return -1
}

// Anchor returns the fragment target of a same-page link. Links that do not
// start with '#' are not intercepted.
func Anchor(href string) (string, bool) {
	if !strings.HasPrefix(href, "#") {
		return "", false
	}
	target := strings.TrimPrefix(href, "#")
	if target == "" {
		return "", false
	}
	return target, true
}

// Resolve maps href to a link index. Fragment hrefs match a link's Anchor,
// anything else must match a link's Href exactly. Unknown targets give -1.
func Resolve(links []Link, href string) int {
	if target, ok := Anchor(href); ok {
		for i, l := range links {
			if l.Anchor == target {
				return i
			}
		}
		return -1
	}
	return Current(links, href)
}
