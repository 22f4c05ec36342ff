package core

import "sort"

// Checker decides whether an occupied lattice connects its top row to its
// bottom row through 4-adjacent occupied cells.
type Checker interface {
	Name() string
	Spans(g *ByteGrid) bool
}

// Factory constructs a Checker.
type Factory func() Checker

var checkers = map[string]Factory{}

// Register adds a checker factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	checkers[name] = f
}

// Checkers exposes the registry of available checker factories.
func Checkers() map[string]Factory {
	return checkers
}

// CheckerNames returns the registered checker names in sorted order.
func CheckerNames() []string {
	names := make([]string, 0, len(checkers))
	for name := range checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
