package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

var documentsJSON bool

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "Inspect extracted tax documents",
	Long:    `Commands for listing and inspecting the extracted tax documents.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List extracted documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show one document's extracted fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsShow,
}

func init() {
	documentsListCmd.Flags().BoolVar(&documentsJSON, "json", false, "output documents as JSON")
	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsShowCmd)
	rootCmd.AddCommand(documentsCmd)
}

// documentJSON is the --json shape of a document.
type documentJSON struct {
	ID           string         `json:"id"`
	DocumentType string         `json:"documentType"`
	Extracted    map[string]any `json:"extracted"`
	CreatedAt    *time.Time     `json:"createdAt,omitempty"`
}

func toDocumentJSON(doc *domain.Document) documentJSON {
	out := documentJSON{
		ID:           doc.ID,
		DocumentType: doc.DocumentType,
		Extracted:    doc.ExtractedOrEmpty(),
	}
	if !doc.CreatedAt.IsZero() {
		created := doc.CreatedAt
		out.CreatedAt = &created
	}
	return out
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if deskService == nil {
		return fmt.Errorf("desk: %w", errNotConfigured)
	}

	docs, err := deskService.Load(cmd.Context())
	if err != nil {
		printNotice(cmd, domain.Notice{Kind: domain.NoticeError, Text: domain.TextLoadFailed})
		return err
	}

	if documentsJSON {
		out := make([]documentJSON, 0, len(docs))
		for i := range docs {
			out = append(out, toDocumentJSON(&docs[i]))
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No reports found.")
		return nil
	}

	cmd.Printf("Extracted Documents (%d)\n\n", len(docs))
	for i := range docs {
		doc := &docs[i]
		cmd.Printf("  %s  %-12s %d fields  %s\n", doc.ID, doc.TypeLabel(), len(doc.Extracted), uploadedOn(doc))
	}
	return nil
}

func runDocumentsShow(cmd *cobra.Command, args []string) error {
	if deskService == nil {
		return fmt.Errorf("desk: %w", errNotConfigured)
	}

	docs, err := deskService.Load(cmd.Context())
	if err != nil {
		printNotice(cmd, domain.Notice{Kind: domain.NoticeError, Text: domain.TextLoadFailed})
		return err
	}

	var doc *domain.Document
	for i := range docs {
		if docs[i].ID == args[0] {
			doc = &docs[i]
			break
		}
	}
	if doc == nil {
		return fmt.Errorf("document %q: %w", args[0], domain.ErrNotFound)
	}

	cmd.Printf("Document: %s\n", doc.ID)
	cmd.Printf("Type: %s\n", doc.TypeLabel())
	cmd.Printf("Uploaded on: %s\n", uploadedOn(doc))
	cmd.Println()

	if !doc.HasExtracted() {
		cmd.Println("No extracted data available.")
		return nil
	}
	for _, f := range doc.Fields() {
		cmd.Printf("  %s: %s\n", f.Key, f.Value)
	}
	return nil
}

// uploadedOn formats a document's upload date.
func uploadedOn(doc *domain.Document) string {
	if doc.CreatedAt.IsZero() {
		return "unknown"
	}
	return doc.CreatedAt.Format("2006-01-02")
}
