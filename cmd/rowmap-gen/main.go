// Command rowmap-gen emits row mapping schemas for Go struct types.
//
// It loads the given packages, selects structs carrying rowmap tags or
// //rowmap: directives (plus any listed in an overrides file) and writes
// one <pkg>_rowmap.go file per package.
package main

func main() {
	Execute()
}
