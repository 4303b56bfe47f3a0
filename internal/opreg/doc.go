// Package opreg is the operation-schema registry for the synthetic ops the
// rewrite passes introduce. Downstream tooling refuses a graph containing
// an op it has no schema for, and an execution environment without a native
// kernel needs a callable stand-in, so the driver registers both before it
// hands a rewritten graph anywhere. The rewrite passes themselves never
// touch the registry.
package opreg
