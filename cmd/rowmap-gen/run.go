package main

import (
	"fmt"

	"rowmapper/internal/analyze"
	"rowmapper/internal/diagnostic"
	"rowmapper/internal/gen"
	"rowmapper/internal/mapping"
	"rowmapper/logging"
	"rowmapper/naming"
)

// options drive one analysis and generation run.
type options struct {
	Patterns   []string
	Dir        string
	Naming     string
	Overrides  string
	Converters []string
	DebugDir   string
	Comments   bool
}

// result is the outcome of a run. Files is empty when generation failed.
type result struct {
	Files    []gen.GeneratedFile
	Diags    *diagnostic.Diagnostics
	Packages int
	Types    int
}

// run loads the packages, applies overrides, checks them and generates the
// schema files in memory.
func run(opts options, log logging.Logger) (*result, error) {
	log = logging.OrDefault(log)

	strategy, err := naming.Parse(opts.Naming)
	if err != nil {
		return nil, err
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	analyzer := analyze.NewAnalyzer()
	analyzer.Dir = opts.Dir

	pkgs, err := analyzer.LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	res := &result{Diags: &diagnostic.Diagnostics{}, Packages: len(pkgs)}
	res.Diags.Merge(analyzer.Diagnostics())

	log.Info("packages loaded", "count", len(pkgs), "patterns", patterns)

	if opts.Overrides != "" {
		f, err := mapping.LoadFile(opts.Overrides)
		if err != nil {
			return nil, err
		}

		res.Diags.Merge(mapping.Validate(f, pkgs))
		mapping.Apply(f, pkgs)

		log.Info("overrides applied", "file", opts.Overrides, "types", len(f.Types))
	}

	res.Diags.Merge(mapping.Check(pkgs, strategy, opts.Converters...))

	for _, p := range pkgs {
		selected := p.Selected()
		res.Types += len(selected)

		for _, s := range selected {
			log.Debug("type selected", "package", p.Path, "type", s.ID.Name, "suppress", s.Suppress)
		}
	}

	g := gen.NewGenerator(gen.GeneratorConfig{
		GenerateComments: opts.Comments,
		DebugDir:         opts.DebugDir,
	})

	files, genErr := g.Generate(pkgs...)
	res.Diags.Merge(g.Diagnostics())

	if genErr != nil {
		return res, fmt.Errorf("generate: %w", genErr)
	}

	res.Files = files

	return res, nil
}
