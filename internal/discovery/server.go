package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Server represents a zwave-js-server instance discovered on the network
type Server struct {
	// Name is the mDNS instance name (e.g., "zwave-js-server")
	Name string

	// Hostname is the mDNS hostname (e.g., "hassio.local.")
	Hostname string

	// IP is the IPv4 address when one was advertised (e.g., "192.168.4.16")
	IP string

	// Port is the WebSocket port (typically 3000)
	Port int

	// HomeID is the Z-Wave network home id from the TXT record, 0 if absent
	HomeID uint32

	// Metadata contains the raw mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the server was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the server
func (s *Server) String() string {
	if s.HomeID != 0 {
		return fmt.Sprintf("zwave-js-server %s (%s) at %s:%d home 0x%08x", s.Name, s.Hostname, s.IP, s.Port, s.HomeID)
	}
	return fmt.Sprintf("zwave-js-server %s (%s) at %s:%d", s.Name, s.Hostname, s.IP, s.Port)
}

// URL returns the WebSocket URL of the server
func (s *Server) URL() string {
	return "ws://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Server) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
