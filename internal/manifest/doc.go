// Package manifest reads, validates and updates the plugin manifest: the JSON
// document whose "Modules" array registers every module of the plugin with
// the host build system. Documents keep their key order and any fields this
// tool does not own, so rewriting a manifest only changes what an upsert
// actually touched.
package manifest
