package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	records, err := documentService.List(context.Background(), ownerFlag)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if listJSON {
		return outputListJSON(cmd, records)
	}

	if len(records) == 0 {
		cmd.Println("No documents uploaded.")
		return nil
	}

	cmd.Println("Documents:")
	for _, r := range records {
		cmd.Printf("  %s  %s  (%d chunks, %s)\n",
			r.ID, r.OriginalFilename, r.ChunkCount, r.UploadedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func outputListJSON(cmd *cobra.Command, records []domain.DocumentRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
