package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/mem/cache"
)

// Errors wrapped by FormatError.
var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrMalformedLine    = errors.New("malformed line")
)

// A FormatError reports a trace line that cannot be parsed.
type FormatError struct {
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("trace line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ParseLine parses a line in the form of "<op> 0x<hex address> [ignored]",
// where op is "l" for a load or "s" for a store.
func ParseLine(line string) (cache.Access, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || len(fields) > 3 {
		return cache.Access{}, ErrMalformedLine
	}

	var access cache.Access

	switch fields[0] {
	case "l":
		access.Kind = cache.Load
	case "s":
		access.Kind = cache.Store
	default:
		return cache.Access{}, ErrInvalidOperation
	}

	addr, found := strings.CutPrefix(fields[1], "0x")
	if !found || addr == "" {
		return cache.Access{}, ErrInvalidAddress
	}

	value, err := strconv.ParseUint(addr, 16, 32)
	if err != nil {
		return cache.Access{}, ErrInvalidAddress
	}

	access.Address = uint32(value)

	return access, nil
}

// A Reader reads accesses from a trace, one line at a time. Blank lines are
// skipped.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a Reader.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &Reader{scanner: scanner}
}

// Line returns the number of the last line read, starting from 1.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next access. It returns io.EOF at the end of the trace.
func (r *Reader) Next() (cache.Access, error) {
	for r.scanner.Scan() {
		r.line++

		text := r.scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		access, err := ParseLine(text)
		if err != nil {
			return cache.Access{}, &FormatError{Line: r.line, Text: text, Err: err}
		}

		return access, nil
	}

	if err := r.scanner.Err(); err != nil {
		return cache.Access{}, fmt.Errorf("reading trace: %w", err)
	}

	return cache.Access{}, io.EOF
}

// ReadAll reads the whole trace. Nothing is returned if any line is invalid.
func ReadAll(r io.Reader) ([]cache.Access, error) {
	reader := NewReader(r)
	accesses := []cache.Access{}

	for {
		access, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return accesses, nil
		}

		if err != nil {
			return nil, err
		}

		accesses = append(accesses, access)
	}
}
