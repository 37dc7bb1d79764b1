// Package errors provides structured, actionable error messages for the
// dashboard CLI and server.
//
// Each error has a unique code (e.g., "E120") that maps to a short message,
// a detailed explanation and a documentation URL:
//
//	E120-E149  configuration and CLI
//	E200-E299  page rendering
//	E300-E399  static export
//
// # Usage
//
//	err := errors.New(errors.CodeInvalidPort).
//	    WithLocation("dashboard.json", 0).
//	    WithSuggestion("Set server.port to a value between 1 and 65535")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E121: Invalid port
//	//
//	//   dashboard.json
//	//
//	//   The server port must be between 1 and 65535.
//	//
//	//   Hint: Set server.port to a value between 1 and 65535
//	//
//	//   Learn more: https://dashboard.dev/docs/errors/E121
package errors
