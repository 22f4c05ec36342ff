package percolation

import "sort"

// Distribution maps a cluster size to the number of clusters of that size.
type Distribution map[int]int

// Add records one cluster of the given size. Non-positive sizes are ignored.
func (d Distribution) Add(size int) {
	if size <= 0 {
		return
	}
	d[size]++
}

// Merge adds every count in other into d.
func (d Distribution) Merge(other Distribution) {
	for size, n := range other {
		if size > 0 && n > 0 {
			d[size] += n
		}
	}
}

// Max returns the largest size with a positive count, or 0 when empty.
func (d Distribution) Max() int {
	m := 0
	for size, n := range d {
		if n > 0 && size > m {
			m = size
		}
	}
	return m
}

// Total returns the number of sites covered, the sum of size × count.
func (d Distribution) Total() int {
	total := 0
	for size, n := range d {
		total += size * n
	}
	return total
}

// Clusters returns the number of clusters recorded.
func (d Distribution) Clusters() int {
	total := 0
	for _, n := range d {
		total += n
	}
	return total
}

// Sizes returns the recorded sizes with a positive count in ascending order.
func (d Distribution) Sizes() []int {
	sizes := make([]int, 0, len(d))
	for size, n := range d {
		if n > 0 {
			sizes = append(sizes, size)
		}
	}
	sort.Ints(sizes)
	return sizes
}
