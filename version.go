// Package stackforge holds metadata shared by the CLI and its commands.
package stackforge

// Version is the current stackforge release version.
var Version = "0.3.0"
