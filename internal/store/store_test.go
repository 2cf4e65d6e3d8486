package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T, s Store) {
	t.Helper()

	if _, ok, err := s.Get(8); err != nil || ok {
		t.Fatalf("Get(8) on empty store = ok %v, err %v", ok, err)
	}

	a := Cell{0xD6, 0xFF, 0xFF, 0xFF}
	b := Cell{0, 0, 0x18, 0x41}
	if err := s.Put(8, a); err != nil {
		t.Fatalf("Put(8) error = %v", err)
	}
	if err := s.Put(0, b); err != nil {
		t.Fatalf("Put(0) error = %v", err)
	}
	if err := s.Put(8, b); err != nil {
		t.Fatalf("Put(8) overwrite error = %v", err)
	}

	got, ok, err := s.Get(8)
	if err != nil || !ok {
		t.Fatalf("Get(8) = ok %v, err %v", ok, err)
	}
	if got != b {
		t.Errorf("Get(8) = %v, want %v", got, b)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Address != 0 || entries[1].Address != 8 {
		t.Errorf("List() = %v", entries)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	testStore(t, m)
	if m.Puts() != 3 {
		t.Errorf("Puts() = %d, want 3", m.Puts())
	}
	m.Close()
	if err := m.Put(0, Cell{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Put after Close = %v, want ErrClosed", err)
	}
}

func TestEEPROM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nv", "eeprom.bin")
	e, err := OpenEEPROM(path, DefaultEEPROMSize)
	if err != nil {
		t.Fatalf("OpenEEPROM() error = %v", err)
	}
	testStore(t, e)

	if err := e.Put(1022, Cell{}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Put past end = %v, want ErrOutOfRange", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != DefaultEEPROMSize {
		t.Errorf("image size = %d, want %d", info.Size(), DefaultEEPROMSize)
	}

	reopened, err := OpenEEPROM(path, DefaultEEPROMSize)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()
	got, ok, err := reopened.Get(8)
	if err != nil || !ok || got != (Cell{0, 0, 0x18, 0x41}) {
		t.Errorf("after reopen Get(8) = %v, %v, %v", got, ok, err)
	}
}

func TestEEPROMExtendsShortImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3, 4}, 0644); err != nil {
		t.Fatal(err)
	}
	e, err := OpenEEPROM(path, 64)
	if err != nil {
		t.Fatalf("OpenEEPROM() error = %v", err)
	}
	defer e.Close()

	if c, ok, _ := e.Get(0); !ok || c != (Cell{1, 2, 3, 4}) {
		t.Errorf("Get(0) = %v, %v", c, ok)
	}
	if _, ok, _ := e.Get(4); ok {
		t.Error("Get(4) found a value in the erased tail")
	}
	entries, _ := e.List()
	if len(entries) != 1 {
		t.Errorf("List() = %v", entries)
	}
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cells.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	testStore(t, s)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()
	if _, ok, err := reopened.Get(0); err != nil || !ok {
		t.Errorf("after reopen Get(0) = %v, %v", ok, err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		kind    string
		path    string
		wantErr bool
	}{
		{"memory", "", false},
		{"", "", false},
		{"EEPROM", filepath.Join(dir, "a.bin"), false},
		{"sqlite", filepath.Join(dir, "a.db"), false},
		{"eeprom", "", true},
		{"flash", "x", true},
	}
	for _, tt := range tests {
		s, err := Open(tt.kind, tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("Open(%q, %q) error = %v, wantErr %v", tt.kind, tt.path, err, tt.wantErr)
			continue
		}
		if s != nil {
			s.Close()
		}
	}
}
