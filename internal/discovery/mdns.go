package discovery

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/buzzdavidson/ozwcommander/internal/logging"
)

const (
	// ServiceType is the mDNS service type advertised by zwave-js-server
	ServiceType = "_zwave-js-server._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for server discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is the default zwave-js-server WebSocket port
	DefaultPort = 3000

	// homeIDKey is the TXT record key carrying the network home id
	homeIDKey = "homeId"
)

// Scanner handles mDNS server discovery
type Scanner struct {
	// Timeout is the maximum time to wait for server discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForServers discovers all zwave-js servers on the local network until
// the scanner timeout or ctx ends.
func (s *Scanner) ScanForServers(ctx context.Context) ([]*Server, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	var (
		mu      sync.Mutex
		servers = make([]*Server, 0)
		seen    = make(map[string]bool)
		done    = make(chan struct{})
	)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		defer close(done)
		for entry := range entries {
			server := parseServiceEntry(entry)
			if server == nil {
				continue
			}
			mu.Lock()
			if !seen[server.URL()] {
				seen[server.URL()] = true
				servers = append(servers, server)
				logging.Debug("Discovered zwave-js server", zap.String("server", server.String()))
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	// The resolver closes entries once the browse context ends.
	select {
	case <-done:
	case <-time.After(time.Second):
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]*Server(nil), servers...), nil
}

// WaitForServer waits for the server managing homeID. A homeID of 0 accepts
// the first server found.
func (s *Scanner) WaitForServer(ctx context.Context, homeID uint32) (*Server, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Server, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			server := parseServiceEntry(entry)
			if server != nil && Matches(server, homeID) {
				select {
				case found <- server:
				default:
				}
				cancel()
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case server := <-found:
		return server, nil
	case <-ctx.Done():
		// A match may have cancelled the context.
		select {
		case server := <-found:
			return server, nil
		default:
		}
		if homeID != 0 {
			return nil, fmt.Errorf("zwave-js server for home 0x%08x not found within timeout", homeID)
		}
		return nil, fmt.Errorf("no zwave-js server found within timeout")
	}
}

// Matches reports whether server manages homeID; 0 matches any server.
func Matches(server *Server, homeID uint32) bool {
	return homeID == 0 || server.HomeID == homeID
}

// parseServiceEntry converts a zeroconf service entry to a Server.
// Returns nil if the entry has no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Server {
	if entry == nil {
		return nil
	}

	// Get IP address (prefer IPv4)
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}

	// Fallback to IPv6 if no IPv4
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}

	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// TXT records are in "key=value" format
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Server{
		Name:         entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		HomeID:       parseHomeID(metadata[homeIDKey]),
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// parseHomeID accepts decimal or 0x-prefixed hex; anything else is 0.
func parseHomeID(v string) uint32 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	id, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return 0
	}
	return uint32(id)
}

// ScanForServers is a convenience function to scan with a custom timeout
func ScanForServers(timeout time.Duration) ([]*Server, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForServers(context.Background())
}
