// Package cli defines the Cobra command tree for the modforge CLI. Each file
// registers one command (generate, validate, init, version) with the root
// command. Commands resolve configuration, delegate to internal packages for
// the work and only handle flag parsing and output formatting.
package cli
