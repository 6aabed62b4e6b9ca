package fasta

// Package fasta wraps the bíogo FASTA reader and writer for the record
// shape the pipeline works with: ID = first whitespace-delimited header
// token, sequence lines concatenated. Files are memory-mapped for
// reading; the per-species corpora can be large.

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	bfasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/edsrzf/mmap-go"
)

// Record is a single FASTA record.
type Record struct {
	ID       string
	Desc     string
	Sequence string
}

// Parse reads protein FASTA records from r.
func Parse(r io.Reader) ([]Record, error) {
	t := linear.NewSeq("", nil, alphabet.Protein)
	sc := seqio.NewScanner(bfasta.NewReader(r, t))
	var records []Record
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		records = append(records, Record{
			ID:       s.Name(),
			Desc:     s.Description(),
			Sequence: s.Seq.String(),
		})
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	return records, nil
}

// ParseFile memory-maps path and parses it. mmap refuses zero-length
// files, so those fall back to a plain read.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		data, rerr := io.ReadAll(f)
		if rerr != nil {
			return nil, fmt.Errorf("read %s: %w", path, rerr)
		}
		return Parse(bytes.NewReader(data))
	}
	defer m.Unmap()
	return Parse(bytes.NewReader(m))
}

// Writer emits protein FASTA records wrapped at 60 columns.
type Writer struct {
	w *bfasta.Writer
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bfasta.NewWriter(w, 60)}
}

// Write emits one record with the given header ID and sequence.
func (w *Writer) Write(id, sequence string) error {
	s := linear.NewSeq(id, alphabet.BytesToLetters([]byte(sequence)), alphabet.Protein)
	_, err := w.w.Write(s)
	return err
}
