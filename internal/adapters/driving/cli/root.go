// Package cli implements the docchat command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services are injected by main before Execute.
var (
	ingestService   driving.IngestService
	documentService driving.DocumentService
	chatService     driving.ChatService
)

// Persistent flags.
var (
	verboseFlag bool
	ownerFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with your documents",
	Long: `docchat ingests PDF documents into a vector index and answers
questions grounded in their content. Documents are isolated per owner.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&ownerFlag, "owner", "u", "default", "owner id scoping every operation")
}

// SetServices injects the driving services. Must be called before Execute.
func SetServices(ingest driving.IngestService, documents driving.DocumentService, chat driving.ChatService) {
	ingestService = ingest
	documentService = documents
	chatService = chat
}

// SetVersion overrides the displayed version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
