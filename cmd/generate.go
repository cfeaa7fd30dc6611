package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/settingsgen/codegen"
)

func newGenerateCmd(a *app) *cobra.Command {
	var header string

	cmd := &cobra.Command{
		Use:   "generate <jsonFile> <namespace> [outputDir]",
		Short: "Generate the catalog and accessor for one settings file",
		Long: `Generate writes the key catalog and the typed accessor for jsonFile.
Output goes to outputDir, or next to jsonFile when omitted. The last
segment of namespace becomes the Go package name.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonPath, namespace := args[0], args[1]
			outputDir := ""
			if len(args) == 3 {
				outputDir = args[2]
			}

			note := a.cfg.HeaderNote
			if cmd.Flags().Changed("header") {
				note = header
			}

			gen := codegen.New(
				codegen.WithFileNames(a.cfg.CatalogFile, a.cfg.AccessorFile),
				codegen.WithHeaderNote(note),
			)
			written, err := gen.GenerateFile(jsonPath, namespace, outputDir)
			if err != nil {
				return err
			}

			a.logger.Debug("generated settings code", "input", jsonPath, "namespace", namespace)
			for _, path := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&header, "header", "", "Note emitted under the generated-code header")
	return cmd
}
