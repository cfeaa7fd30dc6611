package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentic-research/settingsgen/internal/toolserver"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator as an MCP tool over stdio",
		Long: `Serve speaks the Model Context Protocol on stdin/stdout and offers one
tool, generate_settings, which returns both artifacts without writing files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := toolserver.New(version, a.cfg.CatalogFile, a.cfg.AccessorFile, a.logger)
			a.logger.Info("serving MCP on stdio", "tool", toolserver.ToolName)
			return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
