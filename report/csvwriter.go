package report

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cachesim/cache"
)

// CSVAccessWriter is a hook that records every resolved access into a CSV
// file.
type CSVAccessWriter struct {
	path string
	file *os.File
	buf  *bufio.Writer

	records    []cache.AccessRecord
	bufferSize int
	seq        uint64
}

// NewCSVAccessWriter creates a new CSVAccessWriter. An empty path selects a
// generated file name.
func NewCSVAccessWriter(path string) *CSVAccessWriter {
	return &CSVAccessWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Path returns the name of the CSV file.
func (w *CSVAccessWriter) Path() string {
	return w.path
}

// Init creates the CSV file. It fails if the file already exists. The file is
// flushed and closed when the program exits through atexit.
func (w *CSVAccessWriter) Init() error {
	if w.path == "" {
		w.path = "cachesim_trace_" + xid.New().String() + ".csv"
	}

	if _, err := os.Stat(w.path); err == nil {
		return fmt.Errorf("file %s already exists", w.path)
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create access dump: %w", err)
	}

	w.file = file
	w.buf = bufio.NewWriter(file)

	fmt.Fprintf(w.buf, "Seq, Kind, Address, Tag, Index, Hit, Evicted\n")

	atexit.Register(func() {
		_ = w.Close()
	})

	return nil
}

// Func implements sim.Hook.
func (w *CSVAccessWriter) Func(ctx sim.HookCtx) {
	if ctx.Pos != cache.HookPosAfterAccess {
		return
	}

	rec, ok := ctx.Detail.(cache.AccessRecord)
	if !ok {
		return
	}

	w.records = append(w.records, rec)
	if len(w.records) >= w.bufferSize {
		w.Flush()
	}
}

// Flush writes the buffered records to the file.
func (w *CSVAccessWriter) Flush() {
	if w.buf == nil {
		return
	}

	for _, rec := range w.records {
		w.seq++
		fmt.Fprintf(w.buf, "%d, %s, 0x%x, 0x%x, %d, %t, %t\n",
			w.seq,
			rec.Access.Kind,
			rec.Access.Address,
			rec.Tag,
			rec.Index,
			rec.Hit,
			rec.Evicted,
		)
	}

	w.records = nil
}

// Close flushes the pending records and closes the file. Calling Close more
// than once is safe.
func (w *CSVAccessWriter) Close() error {
	if w.file == nil {
		return nil
	}

	w.Flush()

	if err := w.buf.Flush(); err != nil {
		return err
	}

	err := w.file.Close()
	w.file = nil
	w.buf = nil

	return err
}
