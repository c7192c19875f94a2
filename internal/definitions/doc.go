// Package definitions holds the module definition table that drives a
// modforge run. A table is read from a YAML document whose "modules" mapping
// lists one positional entry per module:
//
//	modules:
//	  ISMRuntimePools:   [true, "", [], []]
//	  ISMRuntimeEditor:  [false, "Editor tooling", [UnrealEd], [Slate]]
//
// The four fields are IsRuntime, Description, PublicDependencies and
// PrivateDependencies. The table is validated as a whole when it is built, so
// a malformed entry aborts the run before any file is touched.
package definitions
