// Package numedit runs the modal keypad screen used to edit a fixed-width
// numeric field.
//
// A session takes over the display and the touch sensor until the user
// accepts with OK or leaves with Cancel. The screen shows the field as a row
// of character cells above a 3x4 or 4x3 keypad, depending on orientation.
// Touching a cell selects it; a key is written into the selected cell when
// the finger lifts, so sliding off a key commits nothing. The decimal point
// cell is never selectable.
//
// On OK the field text is compacted, parsed and compared with the linked
// value. Only a changed value is written back, persisted through the bridge
// and copied into the mirror text.
package numedit
