// Package config provides user configuration management for ozw-commander.
//
// This package manages a settings file that selects the Z-Wave driver, tunes
// dashboard timing and stores user-defined node names and locations. The file
// is YAML by default; a path ending in .toml is read and written as TOML.
//
// # Configuration File Location
//
// The default configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/ozw-commander/config.yaml or $HOME/.config/ozw-commander/config.yaml
//   - macOS: $HOME/.config/ozw-commander/config.yaml
//   - Windows: %LOCALAPPDATA%\ozw-commander\config.yaml
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	settings.Driver.Kind = config.DriverZWaveJS
//	settings.Driver.ServerURL = "ws://192.168.1.20:3000"
//	settings.SetNodeLabel(3, "TV", "Living Room")
//
//	// Save changes atomically
//	if err := settings.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// Missing fields keep their defaults: the simulator driver, one second alerts,
// a three second driver readiness deadline and a five second mDNS browse.
//
// # Thread Safety
//
// The global settings use sync.Once for safe initialization across goroutines.
// File writes are protected by a mutex to ensure atomic writes.
package config
