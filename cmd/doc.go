// Package cmd implements the CLI commands for the cmdtree application.
//
// # Architecture
//
// This package is organized into the following files:
//
//   - root.go: Main entry point, App struct, cobra command setup and flags
//   - config_cmd.go: config init and config show
//   - version.go: version command
//
// The interpreter itself lives in internal/shell; this package only
// layers configuration, builds the logger and decides between batch and
// interactive runs.
//
// # Run order
//
// A root invocation runs, in order:
//   - startup scripts from the config file
//   - scripts given as arguments
//   - each -c command
//   - an interactive session, when no scripts or commands were given or
//     when -i is set
//
// The first negative status stops the run and exits with code 1.
//
// # Usage
//
//	// Main entry point
//	func main() {
//	    cmd.Execute()
//	}
package cmd
