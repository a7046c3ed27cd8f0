package sync

import (
	"path/filepath"
	"sort"
	"strings"
)

// PathSet is an unordered set of relative paths.
type PathSet map[string]struct{}

// NewPathSet returns a set holding paths.
func NewPathSet(paths ...string) PathSet {
	s := make(PathSet, len(paths))
	s.AddAll(paths)
	return s
}

func (s PathSet) Add(path string) {
	s[path] = struct{}{}
}

// AddAll adds every path of paths.
func (s PathSet) AddAll(paths []string) {
	for _, p := range paths {
		s.Add(p)
	}
}

func (s PathSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Minus returns the paths of s that are not in other.
func (s PathSet) Minus(other PathSet) PathSet {
	out := PathSet{}
	for p := range s {
		if !other.Contains(p) {
			out.Add(p)
		}
	}
	return out
}

// Intersect returns the paths present in both sets.
func (s PathSet) Intersect(other PathSet) PathSet {
	out := PathSet{}
	for p := range s {
		if other.Contains(p) {
			out.Add(p)
		}
	}
	return out
}

// Union returns the paths present in either set.
func (s PathSet) Union(other PathSet) PathSet {
	out := make(PathSet, len(s)+len(other))
	for p := range s {
		out.Add(p)
	}
	for p := range other {
		out.Add(p)
	}
	return out
}

// Sorted returns the paths in lexical order.
func (s PathSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// ByDepth returns the paths ordered by segment count, shallowest first.
// Paths of equal depth are in lexical order.
func (s PathSet) ByDepth() []string {
	out := s.Sorted()
	sort.SliceStable(out, func(i, j int) bool {
		return depth(out[i]) < depth(out[j])
	})
	return out
}

// depth is the number of segments of a relative path.
func depth(rel string) int {
	return strings.Count(filepath.Clean(rel), string(filepath.Separator)) + 1
}

// isWithin reports whether path lies strictly below ancestor. The check is
// done on whole path segments: "folder1" does not contain "folder10/x".
func isWithin(ancestor, path string) bool {
	rel, err := filepath.Rel(ancestor, path)
	if err != nil || rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// isAtOrWithin reports whether path equals ancestor or lies below it.
func isAtOrWithin(ancestor, path string) bool {
	return filepath.Clean(ancestor) == filepath.Clean(path) || isWithin(ancestor, path)
}

// underAny reports whether path is at or below one of roots.
func underAny(roots PathSet, path string) bool {
	for root := range roots {
		if isAtOrWithin(root, path) {
			return true
		}
	}
	return false
}

// cascade returns folder followed by every path of candidates below it, in
// lexical order.
func cascade(folder string, candidates []string) []string {
	out := []string{folder}
	for _, p := range candidates {
		if isWithin(folder, p) {
			out = append(out, p)
		}
	}
	return out
}
