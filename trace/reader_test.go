package trace_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/trace"
)

func readAll(r *trace.Reader) ([]cache.Access, error) {
	var accesses []cache.Access
	for {
		a, err := r.Next()
		if errors.Is(err, io.EOF) {
			return accesses, nil
		}
		if err != nil {
			return accesses, err
		}
		accesses = append(accesses, a)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

var _ = Describe("Reader", func() {
	It("should decode instruction and data records", func() {
		r := trace.NewReader(strings.NewReader("I 4005d0\nD 7ffc1e38\n"))

		accesses, err := readAll(r)
		Expect(err).NotTo(HaveOccurred())
		Expect(accesses).To(Equal([]cache.Access{
			{Address: 0x4005d0, Kind: cache.Instruction},
			{Address: 0x7ffc1e38, Kind: cache.Data},
		}))
	})

	It("should accept a 0x prefix and skip blank lines", func() {
		r := trace.NewReader(strings.NewReader("\nD 0x40\n\n  I 0XFF  \n"))

		accesses, err := readAll(r)
		Expect(err).NotTo(HaveOccurred())
		Expect(accesses).To(Equal([]cache.Access{
			{Address: 0x40, Kind: cache.Data},
			{Address: 0xFF, Kind: cache.Instruction},
		}))
	})

	It("should keep returning EOF after the end", func() {
		r := trace.NewReader(strings.NewReader("D 40\n"))

		_, err := r.Next()
		Expect(err).NotTo(HaveOccurred())

		_, err = r.Next()
		Expect(err).To(MatchError(io.EOF))
		_, err = r.Next()
		Expect(err).To(MatchError(io.EOF))
	})

	Describe("address 0", func() {
		It("should end the trace by default", func() {
			r := trace.NewReader(strings.NewReader("D 40\nI 0\nD 80\n"))

			accesses, err := readAll(r)
			Expect(err).NotTo(HaveOccurred())
			Expect(accesses).To(HaveLen(1))
		})

		It("should be an access with WithZeroAddressAsData", func() {
			r := trace.NewReader(strings.NewReader("D 40\nI 0\nD 80\n"),
				trace.WithZeroAddressAsData())

			accesses, err := readAll(r)
			Expect(err).NotTo(HaveOccurred())
			Expect(accesses).To(HaveLen(3))
			Expect(accesses[1]).To(Equal(cache.Access{Address: 0, Kind: cache.Instruction}))
		})
	})

	Describe("malformed records", func() {
		It("should reject an unknown access type", func() {
			r := trace.NewReader(strings.NewReader("D 40\nX 80\n"))

			_, err := readAll(r)
			Expect(err).To(MatchError(trace.ErrMalformedRecord))
			Expect(err.Error()).To(ContainSubstring("line 2"))
			Expect(r.Line()).To(Equal(2))
		})

		It("should reject a bad address", func() {
			_, err := trace.ParseRecord("D xyz")
			Expect(err).To(MatchError(trace.ErrMalformedRecord))

			_, err = trace.ParseRecord("D 1ffffffff")
			Expect(err).To(MatchError(trace.ErrMalformedRecord))
		})

		It("should reject a record with missing fields", func() {
			_, err := trace.ParseRecord("D")
			Expect(err).To(MatchError(trace.ErrMalformedRecord))
		})
	})

	Describe("input", func() {
		It("should open a trace file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "mem_trace.txt")
			Expect(os.WriteFile(path, []byte("I 1000\nD 2000\n"), 0644)).To(Succeed())

			r, err := trace.Open(path)
			Expect(err).NotTo(HaveOccurred())
			defer func() { _ = r.Close() }()

			accesses, err := readAll(r)
			Expect(err).NotTo(HaveOccurred())
			Expect(accesses).To(HaveLen(2))
		})

		It("should fail on a missing file", func() {
			_, err := trace.Open(filepath.Join(GinkgoT().TempDir(), "missing.txt"))
			Expect(err).To(MatchError(trace.ErrInputUnavailable))
		})

		It("should treat an overlong line as a malformed record", func() {
			long := "D " + strings.Repeat("0", 70*1024) + "40\n"
			r := trace.NewReader(strings.NewReader("D 40\n" + long))

			_, err := readAll(r)
			Expect(err).To(MatchError(trace.ErrMalformedRecord))
			Expect(errors.Is(err, trace.ErrInputUnavailable)).To(BeFalse())
			Expect(err.Error()).To(ContainSubstring("line 2"))
		})

		It("should report read failures", func() {
			r := trace.NewReader(failingReader{})

			_, err := r.Next()
			Expect(err).To(MatchError(trace.ErrInputUnavailable))
		})

		It("should be safe to close a reader it did not open", func() {
			Expect(trace.NewReader(strings.NewReader("")).Close()).To(Succeed())
		})
	})
})
