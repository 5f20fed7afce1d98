// Package logging provides structured logging for ozw-commander.
//
// This package wraps a global zap logger with convenience functions for the
// logging patterns used by the dashboard, the timer service and the driver
// clients.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Driver notifications, timer lifecycle, WebSocket frames
//   - Info: Commands issued, driver connection state
//   - Warn: Unhandled commands, driver not initialized, dropped events
//   - Error: Failed driver commands, timer callback failures
//
// # Structured Logging
//
// All log functions use structured fields:
//
//	logging.Warn("No handler for command",
//	    zap.String("command", "Add"),
//	)
//
// # Specialized Logging
//
//	logging.LogDriverEvent("node_ready", zap.Int("node_id", 4))
//	logging.LogTimer("alert", "fired", time.Second)
//	logging.LogCommand("Refresh", 4)
//	logging.LogWebSocketMessage(remoteAddr, "received", msgType, payload)
//
// # Configuration
//
// The terminal is owned by the dashboard, so the logger writes to a file:
//
//	if err := logging.Initialize("debug", "/tmp/ozw-commander.log"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// When no level is given and OZW_LOG_LEVEL is unset the logger is a no-op.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. Initialize and
// SetLogger must be called before other goroutines start logging.
package logging
