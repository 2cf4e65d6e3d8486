// Package store keeps edited values across restarts.
//
// Values are 4-byte cells addressed by a fixed numeric address, the layout an
// EEPROM-backed device uses for long and float variables. Three backends
// implement Store: Memory for tests, EEPROM for a raw image file that can be
// flashed or inspected, and SQLite for a database file.
package store
