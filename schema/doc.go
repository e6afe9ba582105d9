// Package schema is the descriptor table for destination types.
//
// A Schema lists, for one Go struct type, every mappable field together with
// an accessor, its declared type tag and its metadata: a column-name
// override, an ignore marker, an explicit converter and a suppress-warning
// flag. Ancestors are declared with Embed and contribute their fields to the
// child.
//
// A Resolver turns a Schema into a FieldMap (column name to binding) using a
// naming strategy, and caches the result per Schema for its lifetime.
//
// Schemas are usually generated by rowmap-gen, but can be written by hand:
//
//	var userSchema = func() *schema.Schema[User] {
//		s := schema.New[User]("User")
//		schema.Field(s, "ID", func(u *User) *int64 { return &u.ID })
//		schema.Field(s, "Email", func(u *User) *string { return &u.Email }, schema.Column("mail"))
//		return s
//	}()
package schema
