package segtrie

import (
	"sort"
	"strings"
)

type segmentKind int

const (
	segmentStatic segmentKind = iota
	segmentParam
	segmentWildcard
)

type routePart struct {
	text string
	kind segmentKind
}

func sortRoutesBySpecificity(routes []Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		return compareRouteSpecificity(routes[i], routes[j]) > 0
	})
}

// compareRouteSpecificity returns a positive value when left should be
// listed before right. Positions are compared left to right: static
// beats param beats wildcard, static text breaks ties lexically, and a
// longer route beats its own prefix.
func compareRouteSpecificity(left, right Route) int {
	minLen := len(left.parts)
	if len(right.parts) < minLen {
		minLen = len(right.parts)
	}

	for i := 0; i < minLen; i++ {
		l := left.parts[i]
		r := right.parts[i]

		if l.kind != r.kind {
			return compareSegmentKind(l.kind, r.kind)
		}

		if c := strings.Compare(l.text, r.text); c != 0 {
			return -c
		}
	}

	if len(left.parts) != len(right.parts) {
		if len(left.parts) > len(right.parts) {
			return 1
		}
		return -1
	}

	return 0
}

func compareSegmentKind(left, right segmentKind) int {
	switch {
	case left == right:
		return 0
	case left < right:
		return 1
	default:
		return -1
	}
}
