// Package cycle implements a single generic depth-first cycle search reused
// across the three reference graphs that can legitimately contain cycles
// before detection: gates, parameters, and named event-tree branches.
package cycle

// Mark is a node's traversal state during a DFS pass.
type Mark int

const (
	Clear Mark = iota
	InProgress
	Done
)

// Node is anything the detector can walk: something with successors and a
// mutable mark slot for cycle bookkeeping.
type Node[T any] interface {
	Successors() []T
	Mark() Mark
	SetMark(Mark)
}

// Detect runs a DFS from start, returning the cycle (start of the loop
// through back to itself) if one is reachable. Marks are left at Done on
// success; callers that run one Detect per top-level node in a set should
// reset marks to Clear before the set, not between individual calls,
// matching the "no element is reachable in more than one cycle-detector
// pass" idempotence property.
func Detect[T Node[T]](start T) ([]T, bool) {
	var path []T
	var found []T
	var walk func(n T) bool
	walk = func(n T) bool {
		switch n.Mark() {
		case Done:
			return false
		case InProgress:
			// Back edge found: the cycle is the suffix of path from the
			// first occurrence of n back to n itself.
			for i, p := range path {
				if any(p) == any(n) {
					found = append(append([]T{}, path[i:]...), n)
					return true
				}
			}
			found = []T{n, n}
			return true
		}
		n.SetMark(InProgress)
		path = append(path, n)
		for _, succ := range n.Successors() {
			if walk(succ) {
				return true
			}
		}
		path = path[:len(path)-1]
		n.SetMark(Done)
		return false
	}
	if walk(start) {
		return found, true
	}
	return nil, false
}

// DetectAll runs Detect over every node in nodes (resetting no marks
// itself — callers reset the whole node set to Clear first) and returns the
// first cycle found, if any.
func DetectAll[T Node[T]](nodes []T) ([]T, bool) {
	for _, n := range nodes {
		if n.Mark() == Done {
			continue
		}
		if c, ok := Detect(n); ok {
			return c, true
		}
	}
	return nil, false
}

// Print renders a cycle as a human-readable "A -> B -> C -> A" chain, given
// a function to name each node.
func Print[T any](cycle []T, name func(T) string) string {
	s := ""
	for i, n := range cycle {
		if i > 0 {
			s += " -> "
		}
		s += name(n)
	}
	return s
}
