package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// CellSize is the number of bytes in one stored value.
const CellSize = 4

// Cell is one stored value.
type Cell = [CellSize]byte

// Entry pairs an address with its cell.
type Entry struct {
	Address uint16
	Cell    Cell
}

// Store is the persistent key-value store contract.
type Store interface {
	// Put writes a cell at addr.
	Put(addr uint16, cell Cell) error
	// Get reads the cell at addr. ok is false when nothing was stored there.
	Get(addr uint16) (cell Cell, ok bool, err error)
	// List returns every stored cell ordered by address.
	List() ([]Entry, error)
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindMemory = "memory"
	KindEEPROM = "eeprom"
	KindSQLite = "sqlite"
)

var (
	// ErrOutOfRange is returned when a cell does not fit the store.
	ErrOutOfRange = errors.New("address out of range")
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store closed")
)

// Open creates a store of the given kind. path is ignored for memory stores.
func Open(kind, path string) (Store, error) {
	switch strings.ToLower(kind) {
	case KindMemory, "":
		return NewMemory(), nil
	case KindEEPROM:
		e, err := OpenEEPROM(path, DefaultEEPROMSize)
		if err != nil {
			return nil, err
		}
		return e, nil
	case KindSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store kind %q (want %s, %s or %s)", kind, KindMemory, KindEEPROM, KindSQLite)
	}
}

// Memory is an in-process store.
type Memory struct {
	mu     sync.Mutex
	cells  map[uint16]Cell
	puts   int
	closed bool
}

// NewMemory returns an empty memory store.
func NewMemory() *Memory {
	return &Memory{cells: make(map[uint16]Cell)}
}

func (m *Memory) Put(addr uint16, cell Cell) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.cells[addr] = cell
	m.puts++
	return nil
}

func (m *Memory) Get(addr uint16) (Cell, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Cell{}, false, ErrClosed
	}
	c, ok := m.cells[addr]
	return c, ok, nil
}

func (m *Memory) List() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make([]Entry, 0, len(m.cells))
	for a, c := range m.cells {
		out = append(out, Entry{Address: a, Cell: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out, nil
}

// Puts returns the number of successful writes.
func (m *Memory) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
