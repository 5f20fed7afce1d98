package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "ozw-commander") {
		t.Errorf("GetConfigDir() = %v, should contain 'ozw-commander'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") && os.Getenv("XDG_CONFIG_HOME") == "" {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigDir_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if configDir != filepath.Join("/tmp/xdg", "ozw-commander") {
		t.Errorf("GetConfigDir() = %v", configDir)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewSettings(t *testing.T) {
	s := NewSettings()

	if s.Version != 1 {
		t.Errorf("Version = %v, want 1", s.Version)
	}
	if s.Driver.Kind != DriverSimulator {
		t.Errorf("Driver.Kind = %q, want %q", s.Driver.Kind, DriverSimulator)
	}
	if s.AlertDuration() != time.Second {
		t.Errorf("AlertDuration() = %v, want 1s", s.AlertDuration())
	}
	if s.InitTimeout() != 3*time.Second {
		t.Errorf("InitTimeout() = %v, want 3s", s.InitTimeout())
	}
	if !s.Discovery.AutoDiscover {
		t.Error("Discovery.AutoDiscover should be true by default")
	}
	if s.DiscoveryTimeout() != 5*time.Second {
		t.Errorf("DiscoveryTimeout() = %v, want 5s", s.DiscoveryTimeout())
	}
	if s.Nodes == nil {
		t.Error("Nodes should not be nil")
	}
}

func TestNodeLabels(t *testing.T) {
	s := NewSettings()

	if s.NodeLabel(3) != nil {
		t.Fatal("NodeLabel(3) should be nil before it is set")
	}

	s.SetNodeLabel(3, "TV", "Living Room")
	label := s.NodeLabel(3)
	if label == nil {
		t.Fatal("NodeLabel(3) should exist after SetNodeLabel()")
	}
	if label.Name != "TV" || label.Location != "Living Room" {
		t.Errorf("NodeLabel(3) = %+v", label)
	}

	var empty Settings
	empty.SetNodeLabel(1, "Controller", "")
	if empty.NodeLabel(1) == nil {
		t.Error("SetNodeLabel() should initialize the map")
	}
}

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	s, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.Driver.Kind != DriverSimulator {
		t.Errorf("Driver.Kind = %q", s.Driver.Kind)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `version: 1
driver:
  kind: zwavejs
  server_url: ws://10.0.0.5:3000
ui:
  alert_seconds: 2.5
discovery:
  auto_discover: false
nodes:
  "3":
    name: TV
    location: Living Room
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if s.Driver.Kind != DriverZWaveJS || s.Driver.ServerURL != "ws://10.0.0.5:3000" {
		t.Errorf("Driver = %+v", s.Driver)
	}
	if s.AlertDuration() != 2500*time.Millisecond {
		t.Errorf("AlertDuration() = %v", s.AlertDuration())
	}
	// Unset fields keep their defaults.
	if s.InitTimeout() != 3*time.Second {
		t.Errorf("InitTimeout() = %v", s.InitTimeout())
	}
	if s.Discovery.AutoDiscover {
		t.Error("AutoDiscover should honour an explicit false")
	}
	if label := s.NodeLabel(3); label == nil || label.Name != "TV" {
		t.Errorf("NodeLabel(3) = %+v", label)
	}
}

func TestLoadFile_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `version = 1

[driver]
kind = "simulator"
device = "/dev/ttyUSB0"

[ui]
init_timeout_seconds = 10.0

[nodes.7]
name = "Bedroom Lamp"
location = "Master Bed"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.Driver.Device != "/dev/ttyUSB0" {
		t.Errorf("Driver.Device = %q", s.Driver.Device)
	}
	if s.InitTimeout() != 10*time.Second {
		t.Errorf("InitTimeout() = %v", s.InitTimeout())
	}
	if label := s.NodeLabel(7); label == nil || label.Location != "Master Bed" {
		t.Errorf("NodeLabel(7) = %+v", label)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "bad version", file: "config.yaml", content: "version: 2\n"},
		{name: "bad kind", file: "config.yaml", content: "version: 1\ndriver:\n  kind: serial\n"},
		{name: "bad yaml", file: "config.yaml", content: "version: [\n"},
		{name: "bad toml", file: "config.toml", content: "version = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("LoadFile() should fail")
			}
		})
	}
}

func TestSaveFile_RoundTrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			s := NewSettings()
			s.Driver.Kind = DriverZWaveJS
			s.Driver.ServerURL = "ws://zwave.local:3000"
			s.SetNodeLabel(2, "Sconce 1", "Living Room")

			if err := s.SaveFile(path); err != nil {
				t.Fatalf("SaveFile() error = %v", err)
			}
			if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
				t.Error("temporary file should be renamed away")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(string(data), "# ozw-commander configuration file") {
				t.Error("saved file should start with the header comment")
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if loaded.Driver.ServerURL != s.Driver.ServerURL {
				t.Errorf("ServerURL = %q", loaded.Driver.ServerURL)
			}
			if label := loaded.NodeLabel(2); label == nil || label.Name != "Sconce 1" {
				t.Errorf("NodeLabel(2) = %+v", label)
			}
		})
	}
}

func TestLoad_UsesXDGConfigHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	s := NewSettings()
	s.Driver.Device = "/dev/ttyACM0"
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if loaded.Driver.Device != "/dev/ttyACM0" {
		t.Errorf("Driver.Device = %q", loaded.Driver.Device)
	}
}
