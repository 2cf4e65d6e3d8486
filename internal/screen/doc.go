// Package screen loads screen definitions from YAML and builds them into
// widgets.
//
// A screen file names the display size and lists widgets in drawing order:
//
//	name: demo
//	display:
//	  width: 320
//	  height: 480
//	widgets:
//	  - name: setpoint
//	    kind: numeric
//	    x: 10
//	    y: 60
//	    w: 300
//	    h: 40
//	    label: "Setpoint:"
//	    digits: 3
//	    decimals: 1
//	    signed: true
//	    address: 0
//	    ok: ok
//	    cancel: cancel
//
// Validate reports every problem it finds rather than stopping at the first.
// Problems whose message starts with "warning:" do not prevent a build.
package screen
