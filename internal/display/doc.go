// Package display defines the display driver contract used by the widget
// engine, the text metrics of the panel's built-in font, and two drivers:
// an in-memory framebuffer and a call recorder.
//
// The engine never draws pixels itself. It fills rectangles, draws single
// characters and prints strings through the Display interface, using the
// classic 5x7 character cell scaled by an integer font size:
//
//	width of n characters at size f = (n-1)*f + n*f*CharWidthFactor
//
// Colors are RGB565, the native format of small SPI TFT panels.
package display
