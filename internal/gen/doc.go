// Package gen emits schema builder code for analyzed struct types.
//
// One file per package is generated. For every selected struct it declares
// a package-level schema instance built with rowmapper/schema and an
// accessor function returning it:
//
//	var rowmapCustomer = buildCustomerSchema()
//
//	func CustomerSchema() *schema.Schema[Customer] { return rowmapCustomer }
//
// Generation uses text/template + go/format. Generated files carry a
// //go:build !rowmapgen constraint so the analyzer never loads them.
package gen
