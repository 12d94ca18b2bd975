package instanceio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
)

// lineReader yields non-blank lines with their 1-based source line number,
// skipping lines classified as empty: length <= 2 whose first rune is
// neither a letter nor a digit.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{sc: bufio.NewScanner(r)}
}

func isSkippable(line string) bool {
	if len(line) > 2 {
		return false
	}
	if line == "" {
		return true
	}
	r := []rune(line)[0]
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// next returns the next non-skippable line, or ok=false at EOF.
func (lr *lineReader) next() (string, bool) {
	for lr.sc.Scan() {
		lr.line++
		text := lr.sc.Text()
		if isSkippable(text) {
			continue
		}
		return text, true
	}
	return "", false
}

// ParseFile opens path and parses it as a PFSP-WT instance.
func ParseFile(path string) (*flowshop.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a PFSP-WT instance from r in the Taillard-style format: an
// n/m header, n rows of machine/time pairs, a "Reldue" marker, then n rows
// of due-date/weight tuples.
func Parse(r io.Reader) (*flowshop.Instance, error) {
	lr := newLineReader(r)

	header, ok := lr.next()
	if !ok {
		return nil, &ParseError{Line: lr.line, Err: ErrMissingHeader}
	}
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return nil, &ParseError{Line: lr.line, Err: ErrMissingHeader}
	}
	n, err1 := strconv.Atoi(fields[0])
	m, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || n <= 0 || m <= 0 {
		return nil, &ParseError{Line: lr.line, Err: ErrMissingHeader}
	}

	procTimes := make([]int, n*m)
	for j := 0; j < n; j++ {
		row, ok := lr.next()
		if !ok {
			return nil, &ParseError{Line: lr.line, Err: ErrUnexpectedEOF}
		}
		toks := strings.Fields(row)
		if len(toks) < 2*m {
			return nil, &ParseError{Line: lr.line, Err: ErrMalformedRow}
		}
		for k := 0; k < m; k++ {
			p, err := strconv.Atoi(toks[2*k+1])
			if err != nil {
				return nil, &ParseError{Line: lr.line, Err: ErrMalformedRow}
			}
			procTimes[j*m+k] = p
		}
	}

	reldue, ok := lr.next()
	if !ok {
		return nil, &ParseError{Line: lr.line, Err: ErrMissingReldue}
	}
	if len(reldue) < 6 || reldue[:6] != "Reldue" {
		return nil, &ParseError{Line: lr.line, Err: ErrMissingReldue}
	}

	dueDates := make([]int, n)
	weights := make([]float64, n)
	for j := 0; j < n; j++ {
		row, ok := lr.next()
		if !ok {
			return nil, &ParseError{Line: lr.line, Err: ErrUnexpectedEOF}
		}
		toks := strings.Fields(row)
		if len(toks) < 4 {
			return nil, &ParseError{Line: lr.line, Err: ErrMalformedRow}
		}
		d, err := strconv.Atoi(toks[1])
		if err != nil {
			return nil, &ParseError{Line: lr.line, Err: ErrMalformedRow}
		}
		w, err := strconv.ParseFloat(toks[3], 64)
		if err != nil {
			return nil, &ParseError{Line: lr.line, Err: ErrMalformedRow}
		}
		dueDates[j] = d
		weights[j] = w
	}

	if err := lr.sc.Err(); err != nil {
		return nil, err
	}

	return flowshop.NewInstance(n, m, procTimes, dueDates, weights)
}
