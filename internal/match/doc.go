// Package match ranks identifiers by similarity so that diagnostics can
// suggest the name a user most likely meant.
package match
