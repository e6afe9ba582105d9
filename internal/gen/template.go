package gen

import (
	"text/template"
)

type fileData struct {
	PackageName  string
	Comments     bool
	ImportGroups [][]importSpec
	Schemas      []schemaData
}

type schemaData struct {
	Type     string // struct name
	Func     string // exported accessor, e.g. CustomerSchema
	Var      string // package-level instance
	Builder  string // build function
	Pkg      string // local name of the schema package
	Suppress bool
	Fields   []fieldData
}

type fieldData struct {
	Kind    string // field, nullable or embed
	Name    string
	Elem    string // value type; pointee for nullable and pointer embeds
	Parent  string // parent schema accessor for embeds
	Pointer bool   // pointer embed
	Options []string
}

var fileTemplate = template.Must(template.New("rowmap").Parse(`// Code generated by rowmap-gen. DO NOT EDIT.

//go:build !rowmapgen

package {{.PackageName}}

import (
{{range $i, $group := .ImportGroups}}{{if $i}}
{{end}}{{range $group}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}{{end}})

var (
{{range .Schemas}}	{{.Var}} = {{.Builder}}()
{{end}})
{{range $s := .Schemas}}
{{if $.Comments}}// {{$s.Func}} returns the row mapping schema of {{$s.Type}}.
{{end}}func {{$s.Func}}() *{{$s.Pkg}}.Schema[{{$s.Type}}] {
	return {{$s.Var}}
}

func {{$s.Builder}}() *{{$s.Pkg}}.Schema[{{$s.Type}}] {
	s := {{$s.Pkg}}.New[{{$s.Type}}]("{{$s.Type}}"){{if $s.Suppress}}.SuppressWarnings(){{end}}
{{range $s.Fields}}{{if eq .Kind "embed"}}{{if .Pointer}}	{{$s.Pkg}}.Embed(s, {{.Parent}}(), func(t *{{$s.Type}}) *{{.Elem}} {
		if t.{{.Name}} == nil {
			t.{{.Name}} = new({{.Elem}})
		}

		return t.{{.Name}}
	})
{{else}}	{{$s.Pkg}}.Embed(s, {{.Parent}}(), func(t *{{$s.Type}}) *{{.Elem}} { return &t.{{.Name}} })
{{end}}{{else if eq .Kind "nullable"}}	{{$s.Pkg}}.Nullable(s, "{{.Name}}", func(t *{{$s.Type}}) **{{.Elem}} { return &t.{{.Name}} }{{range .Options}}, {{.}}{{end}})
{{else}}	{{$s.Pkg}}.Field(s, "{{.Name}}", func(t *{{$s.Type}}) *{{.Elem}} { return &t.{{.Name}} }{{range .Options}}, {{.}}{{end}})
{{end}}{{end}}
	return s
}
{{end}}`))
