// Package config reads the sweep parameter file and the runtime settings
// that surround it.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"percolate/internal/core"
)

// ErrMalformedParams indicates a parameter file that does not hold the five
// sweep values in order.
var ErrMalformedParams = errors.New("config: malformed parameter file")

// DefaultParamsFile is the parameter file read when none is named.
const DefaultParamsFile = "perc-ini.txt"

// Params are the five sweep values of a parameter file.
type Params struct {
	L      int
	Trials int
	P0     float64
	PK     float64
	DP     float64
}

// paramFields names the parameter file lines in order.
var paramFields = [...]string{"L", "T", "p0", "pk", "dp"}

// ReadParams parses the parameter file at path.
func ReadParams(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, fmt.Errorf("open parameter file: %w", err)
	}
	defer f.Close()
	p, err := ParseParams(f)
	if err != nil {
		return Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseParams reads L, T, p0, pk and dp from the first field of five
// consecutive lines. Text after the first field is ignored, so lines may
// carry a trailing description.
func ParseParams(r io.Reader) (Params, error) {
	var fields [len(paramFields)]string
	sc := bufio.NewScanner(r)
	n := 0
	for n < len(fields) && sc.Scan() {
		parts := strings.Fields(sc.Text())
		if len(parts) == 0 {
			return Params{}, fmt.Errorf("%w: line %d (%s) is empty", ErrMalformedParams, n+1, paramFields[n])
		}
		fields[n] = parts[0]
		n++
	}
	if err := sc.Err(); err != nil {
		return Params{}, fmt.Errorf("read parameters: %w", err)
	}
	if n < len(fields) {
		return Params{}, fmt.Errorf("%w: missing line %d (%s)", ErrMalformedParams, n+1, paramFields[n])
	}
	return parseFields(fields)
}

// parseFields converts the five raw values, in file order, into Params.
func parseFields(fields [len(paramFields)]string) (Params, error) {
	var p Params
	var err error
	if p.L, err = parseInt(fields[0], 0); err != nil {
		return Params{}, err
	}
	if p.Trials, err = parseInt(fields[1], 1); err != nil {
		return Params{}, err
	}
	if p.P0, err = parseFloat(fields[2], 2); err != nil {
		return Params{}, err
	}
	if p.PK, err = parseFloat(fields[3], 3); err != nil {
		return Params{}, err
	}
	if p.DP, err = parseFloat(fields[4], 4); err != nil {
		return Params{}, err
	}
	return p, nil
}

func parseInt(s string, line int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d (%s): %q is not an integer", ErrMalformedParams, line+1, paramFields[line], s)
	}
	return v, nil
}

func parseFloat(s string, line int) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d (%s): %q is not a number", ErrMalformedParams, line+1, paramFields[line], s)
	}
	return v, nil
}

// ParamsFromSnapshot recovers the sweep values recorded in a run manifest's
// parameter snapshot.
func ParamsFromSnapshot(snap core.ParameterSnapshot) (Params, error) {
	var fields [len(paramFields)]string
	for i, key := range paramFields {
		p, ok := snap.Lookup(key)
		if !ok {
			return Params{}, fmt.Errorf("%w: snapshot has no %s", ErrMalformedParams, key)
		}
		fields[i] = p.Value
	}
	return parseFields(fields)
}
