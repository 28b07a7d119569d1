package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/extractors"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Extract text and basic info from a CV",
	Long: `Parse a PDF, Word or plain-text CV and print the candidate's name, email
and phone number followed by the normalised text. Nothing is stored.

The MIME type is detected from the file content and extension unless
--mime-type is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a CV's size and type without parsing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var (
	parseMIMEType string
	parseJSON     bool
	parseTextOnly bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseMIMEType, "mime-type", "m", "", "Declared MIME type (default: detected)")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print the result as JSON")
	parseCmd.Flags().BoolVar(&parseTextOnly, "text", false, "Print only the normalised text")
	validateCmd.Flags().StringVarP(&parseMIMEType, "mime-type", "m", "", "Declared MIME type (default: detected)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	svc, err := requireServices(cmd)
	if err != nil {
		return err
	}

	doc, err := readDocument(args[0], parseMIMEType, svc.MaxFileSize)
	if err != nil {
		return err
	}

	parsed, err := svc.Parser.Parse(cmd.Context(), doc)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	switch {
	case parseJSON:
		return writeJSON(cmd, parsed)
	case parseTextOnly:
		cmd.Println(parsed.Text)
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Println(st.Title.Render(doc.Filename))
	cmd.Println(st.field("Type", parsed.DocumentType.String()))
	cmd.Println(st.field("Name", parsed.BasicInfo.Name))
	cmd.Println(st.field("Email", parsed.BasicInfo.Email))
	cmd.Println(st.field("Phone", parsed.BasicInfo.Phone))
	if parsed.Degraded {
		cmd.Println(st.Warning.Render("Text could not be extracted; showing a placeholder."))
	}
	cmd.Println()
	cmd.Println(parsed.Text)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	svc, err := requireServices(cmd)
	if err != nil {
		return err
	}

	doc, err := readDocument(args[0], parseMIMEType, svc.MaxFileSize)
	if err != nil {
		return err
	}

	st := newStyles(cmd.OutOrStdout())
	result, err := svc.Parser.Validate(doc)
	if err != nil {
		cmd.Printf("%s %s: %s\n", st.Error.Render("Rejected"), doc.Filename, result.Reason)
		return fmt.Errorf("validation failed: %w", err)
	}

	cmd.Printf("%s %s (%s, %d bytes)\n", st.Success.Render("Valid"), doc.Filename, domain.BaseMIMEType(doc.MIMEType), doc.ByteSize())
	return nil
}

// readDocument loads a file as a SourceDocument, detecting its MIME type
// when mimeType is empty. A file larger than maxSize is not read: the
// document carries only its size so validation rejects it as oversize.
// A non-positive maxSize disables the check.
func readDocument(path, mimeType string, maxSize int64) (*domain.SourceDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	name := filepath.Base(path)
	var data []byte
	if maxSize <= 0 || info.Size() <= maxSize {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	if mimeType == "" {
		mimeType = extractors.DetectMIMEType(name, data)
	}

	return &domain.SourceDocument{
		Filename: name,
		MIMEType: mimeType,
		Content:  data,
		Size:     info.Size(),
	}, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
