package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	icore "percolate/internal/core"
	"percolate/internal/output"
	"percolate/internal/percolation"
	"percolate/pkg/core"
)

func main() {
	latticePath := flag.String("lattice", "", "file of whitespace separated 0/1 rows; generated when empty")
	size := flag.Int("L", 10, "lattice size when generating")
	p := flag.Float64("p", 0.59, "occupation probability when generating")
	seed := flag.Int64("seed", 1337, "RNG seed when generating")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Str("service", "perc-inspect").Logger()

	var (
		g   *icore.ByteGrid
		err error
	)
	if *latticePath != "" {
		g, err = readLatticeFile(*latticePath)
	} else {
		g, err = percolation.Generate(*size, *p, core.NewRNG(*seed))
	}
	if err != nil {
		logger.Error().Err(err).Msg("load lattice")
		os.Exit(1)
	}

	if err := report(os.Stdout, g); err != nil {
		logger.Error().Err(err).Msg("write report")
		os.Exit(1)
	}
}

func readLatticeFile(path string) (*icore.ByteGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLattice(f)
}

// readLattice parses one lattice row per non-blank line.
func readLattice(r io.Reader) (*icore.ByteGrid, error) {
	var rows [][]int
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q is not a site value: %w", line, f, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return percolation.FromRows(rows)
}

func report(w io.Writer, g *icore.ByteGrid) error {
	burn := percolation.Burn(g)
	clusters := percolation.Label(g, percolation.LabelOptions{Resolve: true})

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "size:      %d\n", g.W)
	fmt.Fprintf(bw, "occupied:  %d\n", g.Count(1))
	fmt.Fprintf(bw, "spans:     %t\n", burn.Spans)
	if burn.Spans {
		fmt.Fprintf(bw, "burn time: %d\n", burn.Steps)
	}
	fmt.Fprintf(bw, "clusters:  %d\n", clusters.Count)
	fmt.Fprintf(bw, "largest:   %d (label %d)\n", clusters.Largest, clusters.LargestLabel)

	width := len(strconv.Itoa(g.W * g.H))
	fmt.Fprintln(bw, "\nlabels:")
	for y := 0; y < g.H; y++ {
		for x, l := range clusters.Labels.Row(y) {
			if x > 0 {
				bw.WriteByte(' ')
			}
			if l == 0 {
				fmt.Fprintf(bw, "%*s", width, ".")
				continue
			}
			fmt.Fprintf(bw, "%*d", width, l)
		}
		bw.WriteByte('\n')
	}

	fmt.Fprintln(bw, "\nsizes:")
	if err := output.FormatDistribution(bw, clusters.Sizes); err != nil {
		return err
	}
	return bw.Flush()
}
