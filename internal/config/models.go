package config

import (
	"strconv"
	"time"
)

// CurrentVersion is the settings file format version.
const CurrentVersion = 1

// Driver kinds.
const (
	DriverSimulator = "simulator"
	DriverZWaveJS   = "zwavejs"
)

// Settings represents the entire user configuration file.
type Settings struct {
	Version   int                   `yaml:"version" toml:"version"`
	Driver    Driver                `yaml:"driver" toml:"driver"`
	UI        UI                    `yaml:"ui" toml:"ui"`
	Discovery Discovery             `yaml:"discovery" toml:"discovery"`
	Nodes     map[string]*NodeLabel `yaml:"nodes,omitempty" toml:"nodes,omitempty"` // Keyed by decimal node ID
}

// Driver selects and configures the Z-Wave driver.
type Driver struct {
	Kind      string `yaml:"kind" toml:"kind"`                                 // "simulator" or "zwavejs"
	Device    string `yaml:"device,omitempty" toml:"device,omitempty"`         // Controller serial device, e.g. /dev/ttyUSB0
	ConfigDir string `yaml:"config_dir,omitempty" toml:"config_dir,omitempty"` // Device database directory
	ServerURL string `yaml:"server_url,omitempty" toml:"server_url,omitempty"` // zwave-js-server WebSocket URL
}

// UI holds dashboard timing preferences.
type UI struct {
	AlertSeconds       float64 `yaml:"alert_seconds" toml:"alert_seconds"`               // How long each alert stays on the banner
	InitTimeoutSeconds float64 `yaml:"init_timeout_seconds" toml:"init_timeout_seconds"` // Driver readiness deadline
}

// Discovery holds mDNS preferences.
type Discovery struct {
	AutoDiscover   bool `yaml:"auto_discover" toml:"auto_discover"`     // Browse for a server when none is configured
	TimeoutSeconds int  `yaml:"timeout_seconds" toml:"timeout_seconds"` // mDNS browse timeout
}

// NodeLabel is a user-defined name and location for a node. Labels fill in
// whatever the driver leaves blank.
type NodeLabel struct {
	Name     string `yaml:"name,omitempty" toml:"name,omitempty"`
	Location string `yaml:"location,omitempty" toml:"location,omitempty"`
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	s := &Settings{
		Version:   CurrentVersion,
		Discovery: Discovery{AutoDiscover: true},
	}
	s.applyDefaults()
	return s
}

func (s *Settings) applyDefaults() {
	if s.Driver.Kind == "" {
		s.Driver.Kind = DriverSimulator
	}
	if s.UI.AlertSeconds <= 0 {
		s.UI.AlertSeconds = 1
	}
	if s.UI.InitTimeoutSeconds <= 0 {
		s.UI.InitTimeoutSeconds = 3
	}
	if s.Discovery.TimeoutSeconds <= 0 {
		s.Discovery.TimeoutSeconds = 5
	}
	if s.Nodes == nil {
		s.Nodes = make(map[string]*NodeLabel)
	}
}

// AlertDuration returns how long an alert is displayed.
func (s *Settings) AlertDuration() time.Duration {
	return seconds(s.UI.AlertSeconds)
}

// InitTimeout returns how long to wait for the driver before complaining.
func (s *Settings) InitTimeout() time.Duration {
	return seconds(s.UI.InitTimeoutSeconds)
}

// DiscoveryTimeout returns the mDNS browse timeout.
func (s *Settings) DiscoveryTimeout() time.Duration {
	return time.Duration(s.Discovery.TimeoutSeconds) * time.Second
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

// NodeLabel returns the label stored for a node, or nil.
func (s *Settings) NodeLabel(id int) *NodeLabel {
	return s.Nodes[strconv.Itoa(id)]
}

// SetNodeLabel sets or updates the label for a node.
func (s *Settings) SetNodeLabel(id int, name, location string) {
	if s.Nodes == nil {
		s.Nodes = make(map[string]*NodeLabel)
	}
	s.Nodes[strconv.Itoa(id)] = &NodeLabel{Name: name, Location: location}
}
