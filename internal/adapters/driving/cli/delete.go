package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [doc-id]...",
	Short: "Delete uploaded documents",
	Long: `Removes documents from the catalog and deletes their vectors from
the index. Vector cleanup is best-effort: if the index is unreachable
the documents are still removed from the catalog.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	count, err := documentService.DeleteDocuments(context.Background(), ownerFlag, args)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	cmd.Printf("Deleted %d document(s)\n", count)
	return nil
}
