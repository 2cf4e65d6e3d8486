// Package widget renders touchscreen widgets and tracks their press and
// release state.
//
// Configuration and state are split. Descriptors are immutable value types
// registered once in a Registry and addressed by Handle; lookups return
// copies. Each widget instance owns its runtime Flags.
//
// Three kinds implement Widget:
//
//   - Label draws a static, centered label and ignores touches.
//   - Clickable changes color while pressed and runs its Action once per
//     accepted release. With the OnOff flag it toggles on each release and
//     may show a different variable text per state.
//   - NumericEditor displays a linked number and, when released, opens the
//     modal keypad editor from package numedit.
//
// The interaction contract is poll driven. The caller's loop calls Click on
// every widget for each new press and Release on every widget for each
// release. A widget enters the pressed state when a press lands inside it
// and leaves it either on Release (the action commits) or when a later press
// lands outside it.
package widget
