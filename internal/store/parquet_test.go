package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"FXArchive/internal/model"
)

func TestParquetStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usdjpy.parquet")
	s := NewParquetStore(path)
	want := testSeries(t)

	if err := s.Write(want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("round trip mismatch: got %v, want %v", got, want)
	}
}

func TestParquetStore_RoundTripEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	s := NewParquetStore(path)

	if err := s.Write(model.Series{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty series, got %d candles", len(got))
	}
}

func TestParquetStore_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "usdjpy.parquet")
	s := NewParquetStore(path)

	if err := s.Write(testSeries(t)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file at %s: %v", path, err)
	}
}

func TestParquetStore_ReadMissing(t *testing.T) {
	s := NewParquetStore(filepath.Join(t.TempDir(), "nope.parquet"))
	if _, err := s.Read(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestParquetStore_ReadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.parquet")
	if err := os.WriteFile(path, []byte("this is not a parquet file"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := NewParquetStore(path).Read(); !errors.Is(err, ErrMalformedFile) {
		t.Errorf("expected ErrMalformedFile, got %v", err)
	}
}
