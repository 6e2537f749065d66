package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Ingest a PDF document",
	Long: `Extracts text from the file, splits it into chunks, embeds each
chunk and writes the vectors to the index. The document appears in
'docchat list' only after the whole pipeline has succeeded.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	record, err := ingestService.Ingest(context.Background(), ownerFlag, filepath.Base(path), data)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Uploaded %s (%d chunks, id %s)\n", record.OriginalFilename, record.ChunkCount, record.ID)
	return nil
}
