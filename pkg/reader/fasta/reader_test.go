package fasta

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReaderMultipleRecords(t *testing.T) {
	input := `>sp|P02769|ALBU_BOVIN Serum albumin
MKWVTFISLL
LLFSSAYSRG

; comment
>lyso
KVFGRCELAA
`
	r := NewReader(strings.NewReader(input))

	var records []*Record
	for r.Next() {
		records = append(records, r.Record())
	}
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("read %d records, want 2", len(records))
	}

	if records[0].ID != "sp|P02769|ALBU_BOVIN" {
		t.Errorf("ID = %q", records[0].ID)
	}
	if records[0].Description != "Serum albumin" {
		t.Errorf("Description = %q", records[0].Description)
	}
	if records[0].Sequence != "MKWVTFISLLLLFSSAYSRG" {
		t.Errorf("Sequence = %q", records[0].Sequence)
	}
	if records[1].ID != "lyso" || records[1].Sequence != "KVFGRCELAA" {
		t.Errorf("second record = %+v", records[1])
	}
}

func TestReaderBareSequence(t *testing.T) {
	r := NewReader(strings.NewReader("ACDE\nFGHI\n"))
	if !r.Next() {
		t.Fatalf("expected a record, err=%v", r.Err())
	}
	if r.Record().ID != "" || r.Record().Sequence != "ACDEFGHI" {
		t.Errorf("record = %+v", r.Record())
	}
	if r.Next() {
		t.Error("expected a single record")
	}
}

func TestReaderEmpty(t *testing.T) {
	r := NewReader(strings.NewReader("\n\n"))
	if r.Next() {
		t.Error("expected no records")
	}
	if r.Err() != nil {
		t.Errorf("unexpected error: %v", r.Err())
	}
}

func TestReadFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.fasta")
	if err := os.WriteFile(path, []byte(">a\nAAA\n>b\nCCC\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec, err := ReadFirst(path)
	if err != nil {
		t.Fatalf("ReadFirst() error: %v", err)
	}
	if rec.ID != "a" || rec.Sequence != "AAA" {
		t.Errorf("record = %+v", rec)
	}

	empty := filepath.Join(t.TempDir(), "empty.fasta")
	os.WriteFile(empty, nil, 0o644)
	if _, err := ReadFirst(empty); err == nil {
		t.Error("expected error for empty file")
	}
}
