// Package scaffold renders and writes the boilerplate files of a plugin
// module: the build rules file at the module root, the module interface
// header under Public/ and its implementation under Private/. Templates are
// embedded in the binary. Writing is a full overwrite, so re-running produces
// identical files and discards hand edits to these three files.
package scaffold
