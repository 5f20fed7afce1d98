// Package discovery provides mDNS-based discovery of zwave-js servers.
//
// A zwave-js-server advertises itself with the "_zwave-js-server._tcp"
// service type. Its TXT record carries the Z-Wave network home id, which lets
// the dashboard pick the server for a specific network.
//
// # Discovery Process
//
//  1. Broadcasts mDNS queries on the local network
//  2. Listens for zwave-js-server advertisements
//  3. Collects hostname, address, port and home id
//  4. Returns the servers found when the timeout expires
//
// # Usage Example
//
//	servers, err := discovery.ScanForServers(5 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range servers {
//	    fmt.Println(s.String(), s.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Servers must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can run
// simultaneously without interference.
package discovery
