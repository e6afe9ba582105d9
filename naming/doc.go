// Package naming provides field-to-column naming strategies.
//
// A Strategy is a pure function from a declared field name to the column
// name the row source is expected to carry. Strategies are interchangeable:
//   - Identity: the field name as is
//   - LowerUnderscore: "firstName" -> "first_name"
//   - LowerDashes: "birthDate" -> "birth-date"
//
// The lower strategies split before every capital, so acronyms come apart
// ("userID" -> "user_i_d"). Give such fields an explicit column name.
package naming
