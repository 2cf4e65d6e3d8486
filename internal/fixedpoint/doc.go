// Package fixedpoint formats and parses the fixed-width numeric fields edited
// on the keypad screen.
//
// A Field describes the text shape: integer digits, decimal digits and an
// optional sign slot. Values are carried as a Number, which is an int32 for
// fields without decimals and a float32 otherwise, mirroring the variables a
// device links to its editors through a Link.
package fixedpoint
