package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/buzzdavidson/ozwcommander/internal/config"
	"github.com/buzzdavidson/ozwcommander/internal/discovery"
	"github.com/buzzdavidson/ozwcommander/internal/driver"
	"github.com/buzzdavidson/ozwcommander/internal/logging"
	"github.com/buzzdavidson/ozwcommander/internal/tui"
	"github.com/buzzdavidson/ozwcommander/internal/ui"
	"github.com/buzzdavidson/ozwcommander/internal/version"
)

// Global flags
var (
	configPath  string
	driverKind  string
	devicePath  string
	deviceDir   string
	serverURL   string
	simulate    bool
	logLevel    string
	logFile     string
	scanTimeout int
	forceInit   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); empty disables logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default: "+logging.DefaultLogFile+" in the config dir)")

	rootCmd.Flags().StringVar(&driverKind, "driver", "", "Driver kind (simulator, zwavejs)")
	rootCmd.Flags().StringVar(&devicePath, "device", "", "Controller serial device, e.g. /dev/ttyUSB0")
	rootCmd.Flags().StringVar(&deviceDir, "config-dir", "", "Z-Wave device database directory")
	rootCmd.Flags().StringVar(&serverURL, "server", "", "zwave-js-server WebSocket URL (skips discovery)")
	rootCmd.Flags().BoolVar(&simulate, "simulate", false, "Use the built-in simulated network")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

// runDashboard loads settings, connects the driver and runs the dashboard
// until the user quits.
func runDashboard(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal() {
		return errors.New("the dashboard needs a terminal; use 'ozw-commander scan' or 'ozw-commander config' for scripted use")
	}
	if w, h, ok := ui.GetTerminalSize(); ok && !ui.FitsDashboard(w, h) {
		return fmt.Errorf("terminal is %dx%d; the dashboard needs at least %dx%d", w, h, ui.MinDashboardWidth, ui.MinDashboardHeight)
	}

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	settings, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	applyFlags(cmd, settings)

	if err := initLogging(path); err != nil {
		return err
	}
	defer logging.Sync()
	logging.Info("Starting "+version.Banner(), zap.String("config", path), zap.String("driver", settings.Driver.Kind))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := resolveServer(ctx, settings); err != nil {
		return err
	}

	drv, err := driver.New(settings.Driver)
	if err != nil {
		return err
	}

	c := tui.New(ctx, tui.Options{
		Driver:     drv,
		Settings:   settings,
		ConfigPath: path,
	})
	defer c.Shutdown()

	program := tea.NewProgram(c, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logging.Error("Dashboard exited with error", zap.Error(err))
		return fmt.Errorf("dashboard failed: %w", err)
	}
	logging.Info("Dashboard closed")
	return nil
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

// applyFlags overrides settings with the driver flags the user passed.
func applyFlags(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("driver") {
		s.Driver.Kind = driverKind
	}
	if flags.Changed("device") {
		s.Driver.Device = devicePath
	}
	if flags.Changed("config-dir") {
		s.Driver.ConfigDir = deviceDir
	}
	if flags.Changed("server") {
		s.Driver.ServerURL = serverURL
		if !flags.Changed("driver") {
			s.Driver.Kind = config.DriverZWaveJS
		}
	}
	if simulate {
		s.Driver.Kind = config.DriverSimulator
	}
}

// initLogging writes the log next to the settings file unless --log-file
// names another place. The terminal belongs to the dashboard.
func initLogging(settingsPath string) error {
	path := logFile
	if path == "" {
		path = filepath.Join(filepath.Dir(settingsPath), logging.DefaultLogFile)
	}
	if err := logging.Initialize(logLevel, path); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

// resolveServer fills in the server URL from mDNS when the zwavejs driver
// has none configured.
func resolveServer(ctx context.Context, s *config.Settings) error {
	if s.Driver.Kind != config.DriverZWaveJS || s.Driver.ServerURL != "" {
		return nil
	}
	if !s.Discovery.AutoDiscover {
		return errors.New("zwavejs driver has no server URL and discovery is disabled; pass --server")
	}

	scanner := discovery.NewScanner()
	scanner.Timeout = s.DiscoveryTimeout()
	fmt.Printf("Looking for a zwave-js server (timeout: %s)...\n", scanner.Timeout)

	server, err := scanner.WaitForServer(ctx, 0)
	if err != nil {
		return fmt.Errorf("server discovery failed: %w", err)
	}
	logging.Info("Discovered zwave-js server", zap.String("server", server.String()))
	s.Driver.ServerURL = server.URL()
	return nil
}

// scanCmd discovers zwave-js servers on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for zwave-js servers on the network",
	Long: `Scan for zwave-js-server instances using mDNS/DNS-SD discovery.

Lists every server that answers with its address and, when advertised,
the home id of the Z-Wave network it manages.`,
	Example: `  # Scan for 5 seconds (default)
  ozw-commander scan

  # Longer scan for slow networks
  ozw-commander scan --timeout 15`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", int(discovery.DefaultScanTimeout/time.Second), "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	timeout := time.Duration(scanTimeout) * time.Second
	fmt.Println(ui.NewHeader("Server Scan", "ozw-commander scan",
		ui.Param{Key: "Service", Value: discovery.ServiceType},
		ui.Param{Key: "Timeout", Value: timeout.String()},
	).Render())

	servers, err := discovery.ScanForServers(timeout)
	if err != nil {
		fmt.Println(ui.NewFailureResult("Scan failed", err,
			"Check that multicast traffic is allowed on this network",
		).Render())
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(servers) == 0 {
		fmt.Println(ui.NewWarningResult("No servers found",
			"Ensure zwave-js-server is running with mDNS enabled",
			"Try increasing --timeout for slower networks",
			"Use --server to give the WebSocket URL directly",
		).Render())
		return nil
	}

	result := ui.NewSuccessResult(fmt.Sprintf("Found %d server(s)", len(servers)))
	for i, s := range servers {
		value := s.URL()
		if s.HomeID != 0 {
			value += fmt.Sprintf(" (home 0x%08x)", s.HomeID)
		}
		result.AddDetail(fmt.Sprintf("%d. %s", i+1, s.Name), value)
	}
	fmt.Println(result.Render())
	fmt.Println("Use 'ozw-commander --server <url>' to open the dashboard")
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the settings file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with default values",
	Example: `  ozw-commander config init
  ozw-commander config init --config ./commander.toml --force`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing settings file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists; pass --force to overwrite", path)
	}

	if err := config.NewSettings().SaveFile(path); err != nil {
		fmt.Println(ui.NewFailureResult("Could not write settings", err).Render())
		return err
	}
	fmt.Println(ui.NewSuccessResult("Settings written", ui.Param{Key: "Path", Value: path}).Render())
	return nil
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		settings, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		fmt.Printf("# %s\n%s", path, out)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}
