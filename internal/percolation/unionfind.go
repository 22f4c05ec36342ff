package percolation

// labelSet is a disjoint-set over provisional cluster labels. Index 0 is a
// reserved sentinel for unoccupied sites; real labels start at 1.
type labelSet struct {
	parent []int // equals the label itself at roots
	size   []int // only meaningful at roots: sites in the cluster
}

func newLabelSet(capacity int) *labelSet {
	return &labelSet{
		parent: make([]int, 1, capacity+1),
		size:   make([]int, 1, capacity+1),
	}
}

// add allocates a new root label holding one site.
func (s *labelSet) add() int {
	label := len(s.parent)
	s.parent = append(s.parent, label)
	s.size = append(s.size, 1)
	return label
}

// find returns the root of label and points every label on the walked path
// directly at it.
func (s *labelSet) find(label int) int {
	root := label
	for s.parent[root] != root {
		root = s.parent[root]
	}
	for s.parent[label] != root {
		label, s.parent[label] = s.parent[label], root
	}
	return root
}

// union merges the clusters rooted at a and b. The numerically smaller root
// survives and absorbs the other's size. Returns the surviving root.
func (s *labelSet) union(a, b int) int {
	a, b = s.find(a), s.find(b)
	if a == b {
		return a
	}
	if b < a {
		a, b = b, a
	}
	s.parent[b] = a
	s.size[a] += s.size[b]
	s.size[b] = 0
	return a
}

// grow adds n sites to the cluster containing label.
func (s *labelSet) grow(label, n int) {
	s.size[s.find(label)] += n
}

// roots calls fn for every root label in ascending order.
func (s *labelSet) roots(fn func(label, size int)) {
	for label := 1; label < len(s.parent); label++ {
		if s.parent[label] == label {
			fn(label, s.size[label])
		}
	}
}
