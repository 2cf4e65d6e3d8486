package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// DefaultEEPROMSize matches the 1 KiB EEPROM of the reference board.
const DefaultEEPROMSize = 1024

// erased is the value of a never-written byte.
const erased = 0xFF

// EEPROM stores cells in a fixed-size binary image file. Cells live at their
// byte offset; a cell whose bytes are all 0xFF reads as not stored.
type EEPROM struct {
	mu    sync.Mutex
	path  string
	file  *os.File
	image []byte
}

// OpenEEPROM opens or creates the image at path. A new image is filled with
// 0xFF. An existing image shorter than size is extended with 0xFF.
func OpenEEPROM(path string, size int) (*EEPROM, error) {
	if path == "" {
		return nil, errors.New("eeprom image path is required")
	}
	if size <= 0 || size > 1<<16 {
		return nil, fmt.Errorf("invalid eeprom size %d", size)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open eeprom image: %w", err)
	}

	image := bytes.Repeat([]byte{erased}, size)
	n, err := io.ReadFull(f, image)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		f.Close()
		return nil, fmt.Errorf("failed to read eeprom image: %w", err)
	}
	if n < size {
		if _, err := f.WriteAt(image[n:], int64(n)); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to initialize eeprom image: %w", err)
		}
	}
	return &EEPROM{path: path, file: f, image: image}, nil
}

// Size returns the image size in bytes.
func (e *EEPROM) Size() int { return len(e.image) }

func (e *EEPROM) Put(addr uint16, cell Cell) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.file == nil {
		return ErrClosed
	}
	off := int(addr)
	if off+CellSize > len(e.image) {
		return fmt.Errorf("cell at %d: %w", addr, ErrOutOfRange)
	}
	copy(e.image[off:], cell[:])
	if _, err := e.file.WriteAt(cell[:], int64(off)); err != nil {
		return fmt.Errorf("failed to write cell at %d: %w", addr, err)
	}
	return nil
}

func (e *EEPROM) Get(addr uint16) (Cell, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var c Cell
	if e.file == nil {
		return c, false, ErrClosed
	}
	off := int(addr)
	if off+CellSize > len(e.image) {
		return c, false, fmt.Errorf("cell at %d: %w", addr, ErrOutOfRange)
	}
	copy(c[:], e.image[off:off+CellSize])
	return c, !isErased(c), nil
}

// List returns the non-erased cells at 4-byte aligned offsets.
func (e *EEPROM) List() ([]Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.file == nil {
		return nil, ErrClosed
	}
	var out []Entry
	for off := 0; off+CellSize <= len(e.image); off += CellSize {
		var c Cell
		copy(c[:], e.image[off:off+CellSize])
		if !isErased(c) {
			out = append(out, Entry{Address: uint16(off), Cell: c})
		}
	}
	return out, nil
}

func (e *EEPROM) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.file == nil {
		return nil
	}
	err := e.file.Close()
	e.file = nil
	if err != nil {
		return fmt.Errorf("failed to close eeprom image: %w", err)
	}
	return nil
}

func isErased(c Cell) bool {
	for _, b := range c {
		if b != erased {
			return false
		}
	}
	return true
}
