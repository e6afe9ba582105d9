package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rowmapper/internal/gen"
	"rowmapper/logging"
)

func init() {
	flags := genCmd.Flags()
	flags.String("output", "", "write all files to this directory instead of next to each package")
	flags.String("debug-dir", "", "directory for sources that fail to format")
	flags.Bool("comments", true, "emit doc comments on schema accessors")
	flags.Bool("dry-run", false, "print generated files instead of writing them")

	for _, name := range []string{"output", "debug-dir", "comments"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(genCmd)
}

var genCmd = &cobra.Command{
	Use:   "gen [packages]",
	Short: "Generate <pkg>_rowmap.go schema files",
	Example: `  rowmap-gen gen ./store ./warehouse
  rowmap-gen gen --overrides rowmap.yaml --naming lower_underscore ./...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(os.Stderr, viper.GetString("log-level"))

		res, err := run(optionsFromViper(args), log)
		if res != nil {
			_ = res.Diags.Write(cmd.ErrOrStderr())
		}

		if err != nil {
			return err
		}

		if res.Diags.HasErrors() {
			return fmt.Errorf("%d error(s), nothing written", len(res.Diags.Errors))
		}

		if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
			for _, f := range res.Files {
				fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s\n", f.Filename, f.Content)
			}

			return nil
		}

		written, err := gen.WriteFiles(res.Files, viper.GetString("output"))
		for _, path := range written {
			log.Info("file written", "path", path)
		}

		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) written for %d type(s)\n", len(written), res.Types)

		return nil
	},
}

func optionsFromViper(args []string) options {
	return options{
		Patterns:   args,
		Naming:     viper.GetString("naming"),
		Overrides:  viper.GetString("overrides"),
		Converters: viper.GetStringSlice("converters"),
		DebugDir:   viper.GetString("debug-dir"),
		Comments:   viper.GetBool("comments"),
	}
}
