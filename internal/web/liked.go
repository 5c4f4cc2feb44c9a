package web

import (
	"sort"
	"strconv"
	"strings"
)

// LikedCookie lists the recipe ids the browser marked as liked
const LikedCookie = "recipe_liked"

// maxLiked bounds the cookie so it stays well under browser size limits
const maxLiked = 200

// likedSet is the parsed form of the liked cookie
type likedSet map[int]bool

func parseLiked(raw string) likedSet {
	set := make(likedSet)
	for _, part := range strings.Split(raw, ".") {
		if id, err := strconv.Atoi(part); err == nil && id > 0 {
			set[id] = true
		}
	}
	return set
}

// toggle flips membership of id and reports whether it is now liked
func (s likedSet) toggle(id int) bool {
	if s[id] {
		delete(s, id)
		return false
	}
	s[id] = true
	return true
}

func (s likedSet) String() string {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	if len(ids) > maxLiked {
		ids = ids[len(ids)-maxLiked:]
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ".")
}
