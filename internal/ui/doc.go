// Package ui renders the output of ozw-commander's one-shot commands.
//
// The dashboard itself lives in package tui. Commands such as scan and
// config init print a header, do their work and finish with a result box,
// then exit. Nothing here reads the keyboard.
//
// Example:
//
//	fmt.Println(ui.NewHeader("Server Scan", "ozw-commander scan",
//	    ui.Param{Key: "Timeout", Value: "5s"}).Render())
//	fmt.Println(ui.NewSuccessResult("Found 1 server",
//	    ui.Param{Key: "URL", Value: "ws://192.168.4.16:3000"}).Render())
//
// The helpers in styles.go also answer whether stdout is a terminal and how
// large it is; the dashboard command uses them before taking over the screen.
package ui
