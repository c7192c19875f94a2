// Package errors provides classified errors for modforge. Every failure that
// reaches the command line carries a category (validation, schema, not_found,
// filesystem, config, internal) so the CLI can choose an exit code and print a
// single message naming the offending module, field or path.
package errors
