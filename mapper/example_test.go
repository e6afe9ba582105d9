package mapper_test

import (
	"fmt"

	"rowmapper/logging"
	"rowmapper/mapper"
	"rowmapper/naming"
	"rowmapper/schema"
	"rowmapper/source/memrows"
)

type Account struct {
	ID        int64
	FirstName string
	Email     string
}

func accountSchema() *schema.Schema[Account] {
	s := schema.New[Account]("Account")
	schema.Field(s, "ID", func(a *Account) *int64 { return &a.ID }, schema.Column("id"))
	schema.Field(s, "FirstName", func(a *Account) *string { return &a.FirstName })
	schema.Field(s, "Email", func(a *Account) *string { return &a.Email }, schema.Column("mail"))

	return s
}

func ExampleMap() {
	m := mapper.New(mapper.Config{Naming: naming.LowerUnderscore, Logger: logging.Nop()})

	rows := memrows.New([]string{"id", "first_name", "mail"},
		[]any{int64(1), "Ada", "ada@example.com"},
		[]any{int64(2), "Grace", "grace@example.com"},
	)

	accounts, err := mapper.Map(m, rows, accountSchema())
	if err != nil {
		panic(err)
	}

	for _, a := range accounts {
		fmt.Printf("%d %s %s\n", a.ID, a.FirstName, a.Email)
	}
	// Output:
	// 1 Ada ada@example.com
	// 2 Grace grace@example.com
}
