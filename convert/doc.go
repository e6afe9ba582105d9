// Package convert holds the type tags attached to fetched column values,
// the Converter contract, and the Registry that decides which converter,
// if any, applies to a given field and value.
//
// A Registry keeps two indexes:
//   - by (source tag, target tag) pair, consulted only for autoApply converters
//   - by converter ID, consulted when a field names its converter explicitly
//
// Explicit selection always wins over a pair match.
package convert
