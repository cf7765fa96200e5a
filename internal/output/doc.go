// Package output provides structured output handling for the marks CLI.
//
// Every command writes through a Printer, which renders either styled text
// for people or JSON for scripts and editor integrations:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "toggled 3 lines", "changed": 3})
//	printer.Error(err)
//
// # JSON Mode
//
//	// Success: {"message": "...", ...} or any value passed to WriteJSON
//	// Error:   {"error": "message", "code": N}
//
// # Styling
//
// Human output uses lipgloss styles that are cleared when output is not a
// terminal or when --color never is given. Week listings use Divider to draw
// the boundary between two ISO weeks.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: User error (bad args, unknown marker, missing file)
//	output.ExitSystemError // 2: System error (I/O failure)
//	output.ExitConflict    // 3: Conflict (settings file already exists)
package output
