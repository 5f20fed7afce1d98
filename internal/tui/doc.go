// Package tui implements the ozw-commander dashboard.
//
// The dashboard is a full-screen Bubble Tea program. Its model, Commander,
// owns every piece of screen state: the layout, the virtual panes, the
// navigation state machine, the alert queue and the active dialog. Bubble Tea
// calls Update and View on one goroutine, so none of that state is locked.
//
// # Screen
//
// The screen is split into four bands, computed by the layout package from
// the terminal size:
//
//	HomeSeer Z-Troller on /dev/ttyUSB0                 Installer Library
//	Home ID 0x003d8522                               Version Z-Wave 2.78
//	7 Registered Nodes (2 Sleeping)
//	 ID  Name          Location      Type                   State ...
//	 1   Controller                  Remote Controller      OK
//	>2   Sconce 1      Living Room   Multilevel Switch      [|||| ]
//	 Info  Config  Values  Classes  Groups
//	 Name:         Sconce 1
//	A Add B About D Delete R Refresh S Setup + Increase ...
//
// The device list and the detail view are drawn into off-screen panes and
// copied through their scroll windows. Alerts replace the menu bar while
// they are displayed; dialogs are drawn last, centered over everything.
//
// # Events
//
// The driver reports from its own goroutines and timers fire on theirs.
// Neither touches the model: both post events to a dispatch.Queue and the
// model receives them one at a time as messages through
// dispatch.Dispatcher.Wait, re-issuing that command after each event.
// Driver commands such as Refresh or On run as tea.Cmds and report back with
// a message.
//
// # Keys
//
//   - ↑/↓ move the selection in list mode and scroll the detail view in
//     detail mode
//   - ←/→ change the sort column in list mode and the tab in detail mode
//   - Tab switches between list and detail mode
//   - Enter or Esc close a dialog
//   - letters and digits run the commands shown on the menu bar; commands
//     without a handler raise an alert naming them
//   - ctrl+c quits
//
// # Usage
//
//	c := tui.New(ctx, tui.Options{Driver: drv, Settings: settings})
//	program := tea.NewProgram(c, tea.WithAltScreen())
//	_, err := program.Run()
//	c.Shutdown()
package tui
