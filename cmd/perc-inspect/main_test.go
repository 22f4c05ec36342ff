package main

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"percolate/internal/percolation"
)

func TestReportScenario(t *testing.T) {
	g, err := readLattice(strings.NewReader("1 0 1\n\n1 1 0\n0 1 1\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report(&buf, g))

	want := `size:      3
occupied:  6
spans:     true
burn time: 3
clusters:  2
largest:   5 (label 1)

labels:
1 . 2
1 1 .
. 1 1

sizes:
1  1
5  1
`
	assert.Equal(t, want, buf.String())
}

func TestReadLatticeRejectsBadInput(t *testing.T) {
	_, err := readLattice(strings.NewReader("1 0\n1 x\n"))
	assert.ErrorContains(t, err, `line 2: "x"`)
	assert.ErrorIs(t, err, strconv.ErrSyntax)

	_, err = readLattice(strings.NewReader("1 0 1\n1 1\n"))
	assert.ErrorIs(t, err, percolation.ErrNotSquare)

	_, err = readLattice(strings.NewReader("1 2\n0 0\n"))
	assert.ErrorIs(t, err, percolation.ErrNotBinary)
}
