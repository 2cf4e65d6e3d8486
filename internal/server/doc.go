// Package server serves a touchgui panel to web browsers.
//
// The server mirrors a display.Framebuffer to every connected browser and
// feeds their touches back into the widget engine, so a screen can be
// operated from a phone or a desktop without the physical panel.
//
// # Routes
//
//   - GET /: the panel page, a canvas client for the protocol package
//   - GET /ws: the WebSocket carrying drawing frames and touch messages
//   - GET /status: JSON with the panel name, size and connected clients
//
// # Connection Lifecycle
//
//  1. The browser upgrades /ws and is assigned a UUID
//  2. The server queues a hello frame and a blit replay of the current frame
//  3. Every later fill and character is broadcast as it is drawn
//  4. Touch messages from the browser go to the touch sink
//  5. On disconnect a held touch is released
//
// Queued frames are coalesced into one binary message followed by a flush
// frame. A client whose queue overflows is dropped; it reconnects and gets
// a fresh replay.
//
// # Usage Example
//
//	fb := display.NewFramebuffer(320, 480)
//	queue := touch.NewQueue(0)
//
//	srv, err := server.New(&server.Config{Port: 8080, Name: "demo"}, fb, queue)
//	if err != nil {
//	    return err
//	}
//	go eng.Run(ctx)
//	return srv.Start(ctx)
//
// # Graceful Shutdown
//
// Start returns after SIGINT, SIGTERM or cancellation of its context. Shutdown
// stops observing the framebuffer, sends a close frame to every client and
// waits up to ten seconds for the connections to drain.
//
// # Thread Safety
//
// The framebuffer observer, the HTTP handlers and the per-client write
// pumps run concurrently; the client set is guarded by a mutex. Drawing is
// expected from a single goroutine, which keeps the replay and the
// broadcast stream consistent.
package server
