// Package fasta provides a streaming reader for FASTA and bare protein sequence files
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one sequence entry
type Record struct {
	ID          string
	Description string
	Sequence    string
}

// Reader provides streaming access to FASTA files. Text before the first
// header is returned as a record with an empty ID, so a bare sequence file
// reads as a single record.
type Reader struct {
	scanner *bufio.Scanner
	lineNum int
	pending string // header line read ahead of the next record
	current *Record
	err     error
}

// NewReader creates a new FASTA reader
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	// long single-line sequences
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &Reader{scanner: scanner}
}

// Next advances to the next record. Returns false when no more records or error.
func (r *Reader) Next() bool {
	r.current = nil

	rec, err := r.readRecord()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return false
	}

	r.current = rec
	return true
}

// Record returns the current record
func (r *Reader) Record() *Record {
	return r.current
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) readRecord() (*Record, error) {
	var rec *Record
	var seq strings.Builder

	if r.pending != "" {
		rec = parseHeader(r.pending)
		r.pending = ""
	}

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())

		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, ">") {
			if rec != nil || seq.Len() > 0 {
				r.pending = line
				break
			}
			rec = parseHeader(line)
			continue
		}

		if rec == nil {
			rec = &Record{}
		}
		seq.WriteString(line)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, io.EOF
	}

	rec.Sequence = seq.String()
	return rec, nil
}

func parseHeader(line string) *Record {
	header := strings.TrimSpace(strings.TrimPrefix(line, ">"))
	rec := &Record{}
	if idx := strings.IndexAny(header, " \t"); idx >= 0 {
		rec.ID = header[:idx]
		rec.Description = strings.TrimSpace(header[idx+1:])
	} else {
		rec.ID = header
	}
	return rec
}

// ReadFirst returns the first record of a file
func ReadFirst(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sequence file: %w", err)
	}
	defer f.Close()

	r := NewReader(f)
	if !r.Next() {
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}
		return nil, fmt.Errorf("no sequence found in %s", path)
	}
	return r.Record(), nil
}
