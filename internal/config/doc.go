// Package config loads modforge settings from modforge.yaml, MODFORGE_*
// environment variables (optionally seeded from a .env file) and command-line
// flags bound by the CLI. It resolves them into a typed Settings value holding
// the source root, manifest and definitions paths and the default dependency
// lists applied to every module.
package config
