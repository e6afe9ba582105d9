package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rowmapper/logging"
)

func init() {
	checkCmd.Flags().Bool("strict", false, "fail on warnings too")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Report mapping problems without writing files",
	Long: `Reports column collisions, unknown override targets with suggestions,
unknown converters and embedded structs of other packages. Exits non-zero
when errors are found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(os.Stderr, viper.GetString("log-level"))

		res, err := run(optionsFromViper(args), log)
		if res != nil {
			_ = res.Diags.Write(cmd.OutOrStdout())
		}

		if err != nil {
			return err
		}

		if res.Diags.HasErrors() {
			return fmt.Errorf("check failed: %d error(s)", len(res.Diags.Errors))
		}

		if strict, _ := cmd.Flags().GetBool("strict"); strict && len(res.Diags.Warnings) > 0 {
			return fmt.Errorf("check failed: %d warning(s)", len(res.Diags.Warnings))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d type(s) in %d package(s)\n", res.Types, res.Packages)

		return nil
	},
}
