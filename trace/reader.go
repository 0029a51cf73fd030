// Package trace reads memory access traces.
//
// A trace is a text file with one access per line: a discriminator
// character ('I' for an instruction fetch, 'D' for a data access) followed by
// a hexadecimal address, for example
//
//	I 4005d0
//	D 7ffc1e38
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/cache"
)

var (
	// ErrMalformedRecord is returned for a line that is not a valid access.
	ErrMalformedRecord = errors.New("malformed trace record")

	// ErrInputUnavailable is returned when the trace cannot be opened or read.
	ErrInputUnavailable = errors.New("trace input unavailable")
)

// Reader decodes accesses from a trace, one at a time.
type Reader struct {
	scanner        *bufio.Scanner
	closer         io.Closer
	line           int
	zeroTerminates bool
	done           bool
}

// An Option configures a Reader.
type Option func(*Reader)

// WithZeroAddressAsData makes a record with address 0 a normal access. By
// default such a record ends the trace, as the classic trace format used
// address 0 as its end marker.
func WithZeroAddressAsData() Option {
	return func(r *Reader) {
		r.zeroTerminates = false
	}
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader, opts ...Option) *Reader {
	reader := &Reader{
		scanner:        bufio.NewScanner(r),
		zeroTerminates: true,
	}

	for _, opt := range opts {
		opt(reader)
	}

	return reader
}

// Open opens the trace file at path.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}

	r := NewReader(f, opts...)
	r.closer = f

	return r, nil
}

// Close closes the underlying file, if the Reader opened one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer.Close()
}

// Line returns the number of the last line read.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next access, or io.EOF once the trace is exhausted.
func (r *Reader) Next() (cache.Access, error) {
	if r.done {
		return cache.Access{}, io.EOF
	}

	for r.scanner.Scan() {
		r.line++

		text := strings.TrimSpace(r.scanner.Text())
		if text == "" {
			continue
		}

		access, err := ParseRecord(text)
		if err != nil {
			return cache.Access{}, fmt.Errorf("line %d: %w", r.line, err)
		}

		if r.zeroTerminates && access.Address == 0 {
			r.done = true
			return cache.Access{}, io.EOF
		}

		return access, nil
	}

	r.done = true

	err := r.scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		return cache.Access{}, fmt.Errorf("line %d: %w: record too long",
			r.line+1, ErrMalformedRecord)
	}

	if err != nil {
		return cache.Access{}, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}

	return cache.Access{}, io.EOF
}

// ParseRecord decodes a single trace record such as "D 7ffc1e38".
func ParseRecord(text string) (cache.Access, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return cache.Access{}, fmt.Errorf("%w: %q", ErrMalformedRecord, text)
	}

	var access cache.Access

	switch fields[0] {
	case "I":
		access.Kind = cache.Instruction
	case "D":
		access.Kind = cache.Data
	default:
		return cache.Access{}, fmt.Errorf("%w: unknown access type %q",
			ErrMalformedRecord, fields[0])
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(fields[1], "0x"), "0X")

	addr, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return cache.Access{}, fmt.Errorf("%w: bad address %q",
			ErrMalformedRecord, fields[1])
	}

	access.Address = uint32(addr)

	return access, nil
}
