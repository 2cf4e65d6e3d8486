// Package discovery advertises and finds touchgui panels with mDNS.
//
// A panel served by "touchgui serve" registers itself as a "_touchgui._tcp"
// service so phones and other hosts can find it without knowing its
// address. "touchgui scan" browses for those registrations.
//
// # TXT Records
//
//   - path: page path, always "/"
//   - screen: name of the loaded screen
//   - size: panel size as WIDTHxHEIGHT
//   - version: touchgui version
//
// # Usage Example
//
//	adv, err := discovery.Advertise(ctx, "kitchen", 8080, "screen=demo", "size=320x480")
//	if err != nil {
//	    return err
//	}
//	defer adv.Shutdown()
//
//	panels, err := discovery.ScanForPanels(3 * time.Second)
//	for _, p := range panels {
//	    fmt.Println(p.Name, p.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Panels must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple scans can run
// simultaneously without interference.
package discovery
