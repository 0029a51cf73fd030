package cache

import (
	"errors"
	"io"
)

// An AccessSource yields accesses in trace order. Next returns io.EOF once the
// sequence is exhausted.
type AccessSource interface {
	Next() (Access, error)
}

// A Checker inspects every resolved access. Returning an error stops the run.
type Checker interface {
	Check(rec AccessRecord) error
}

// Run feeds every access from src into e, in order, until src is exhausted.
// The first error from src or from a checker aborts the run.
func Run(e *Engine, src AccessSource, checkers ...Checker) error {
	for {
		access, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		rec := e.Access(access)

		for _, c := range checkers {
			if err := c.Check(rec); err != nil {
				return err
			}
		}
	}
}
