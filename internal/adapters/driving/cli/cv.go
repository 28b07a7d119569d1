package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Manage stored CVs",
	Long:  `Ingest, list, view, analyse or delete parsed CVs.`,
}

var cvIngestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Parse and store CVs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCVIngest,
}

var cvListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored CVs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCVList,
}

var cvGetCmd = &cobra.Command{
	Use:   "get [cv-id]",
	Short: "Show a stored CV",
	Args:  cobra.ExactArgs(1),
	RunE:  runCVGet,
}

var cvDeleteCmd = &cobra.Command{
	Use:   "delete [cv-id]",
	Short: "Delete a stored CV",
	Args:  cobra.ExactArgs(1),
	RunE:  runCVDelete,
}

var cvAnalyseCmd = &cobra.Command{
	Use:   "analyse [cv-id]",
	Short: "Request an LLM review of a stored CV",
	Long: `Send a stored CV to the configured LLM provider for recruiter-style feedback.
The review is saved with the CV.

Requires analysis.provider and analysis.api_key (or ANTHROPIC_API_KEY).`,
	Args: cobra.ExactArgs(1),
	RunE: runCVAnalyse,
}

var (
	cvListLimit  int
	cvListOffset int
	cvGetJSON    bool
	cvGetText    bool
)

func init() {
	cvListCmd.Flags().IntVarP(&cvListLimit, "limit", "n", 20, "Maximum number of CVs to list")
	cvListCmd.Flags().IntVar(&cvListOffset, "offset", 0, "Number of CVs to skip")
	cvGetCmd.Flags().BoolVar(&cvGetJSON, "json", false, "Print the CV as JSON")
	cvGetCmd.Flags().BoolVar(&cvGetText, "text", false, "Print the full text")

	cvCmd.AddCommand(cvIngestCmd)
	cvCmd.AddCommand(cvListCmd)
	cvCmd.AddCommand(cvGetCmd)
	cvCmd.AddCommand(cvDeleteCmd)
	cvCmd.AddCommand(cvAnalyseCmd)
	rootCmd.AddCommand(cvCmd)
}

func runCVIngest(cmd *cobra.Command, args []string) error {
	svc, err := requireServices(cmd)
	if err != nil {
		return err
	}

	st := newStyles(cmd.OutOrStdout())
	var failed int
	for _, path := range args {
		doc, err := readDocument(path, "", svc.MaxFileSize)
		if err == nil {
			var cv *domain.CV
			cv, err = svc.CV.Ingest(cmd.Context(), doc)
			if err == nil {
				cmd.Printf("%s %s -> %s\n", st.Success.Render("Stored"), path, cv.ID)
				continue
			}
		}
		failed++
		cmd.Printf("%s %s: %v\n", st.Error.Render("Failed"), path, err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func runCVList(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices(cmd)
	if err != nil {
		return err
	}

	cvs, err := svc.CV.List(cmd.Context(), cvListLimit, cvListOffset)
	if err != nil {
		return fmt.Errorf("failed to list CVs: %w", err)
	}

	if len(cvs) == 0 {
		cmd.Println("No CVs stored.")
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	for i := range cvs {
		cmd.Printf("%s  %s\n", cvs[i].ID, st.Title.Render(cvs[i].Filename))
		cmd.Printf("    %s  %s  %s\n",
			orMuted(st, cvs[i].BasicInfo.Name),
			orMuted(st, cvs[i].BasicInfo.Email),
			st.Muted.Render(cvs[i].CreatedAt.Format("2006-01-02 15:04")))
	}

	cmd.Printf("\nTotal: %d CVs\n", len(cvs))
	return nil
}

func runCVGet(cmd *cobra.Command, args []string) error {
	svc, err := requireServices(cmd)
	if err != nil {
		return err
	}

	cv, err := svc.CV.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get CV: %w", err)
	}

	if cvGetJSON {
		return writeJSON(cmd, cv)
	}

	printCV(cmd, cv, cvGetText)
	return nil
}

func runCVDelete(cmd *cobra.Command, args []string) error {
	svc, err := requireServices(cmd)
	if err != nil {
		return err
	}

	if err := svc.CV.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete CV: %w", err)
	}

	cmd.Printf("CV %s deleted.\n", args[0])
	return nil
}

func runCVAnalyse(cmd *cobra.Command, args []string) error {
	svc, err := requireServices(cmd)
	if err != nil {
		return err
	}

	cmd.Printf("Analysing CV %s...\n", args[0])
	cv, err := svc.CV.Analyse(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrAnalyserUnavailable) {
		return fmt.Errorf("%w: run 'cvkit config set analysis.api_key' to configure one", err)
	}
	if err != nil {
		return fmt.Errorf("failed to analyse CV: %w", err)
	}

	printCV(cmd, cv, false)
	return nil
}

func printCV(cmd *cobra.Command, cv *domain.CV, withText bool) {
	st := newStyles(cmd.OutOrStdout())

	cmd.Println(st.Title.Render("CV: " + cv.ID))
	cmd.Println(st.field("File", cv.Filename))
	cmd.Println(st.field("Type", cv.DocumentType.String()))
	cmd.Println(st.field("Name", cv.BasicInfo.Name))
	cmd.Println(st.field("Email", cv.BasicInfo.Email))
	cmd.Println(st.field("Phone", cv.BasicInfo.Phone))
	cmd.Println(st.field("Created", cv.CreatedAt.Format("2006-01-02 15:04:05")))
	if cv.Degraded {
		cmd.Println(st.Warning.Render("Text could not be extracted from this file."))
	}

	if cv.Analysis != nil {
		cmd.Println()
		cmd.Println(st.Title.Render("Review (" + cv.Analysis.Model + ")"))
		cmd.Println(cv.Analysis.Summary)
	}

	if withText {
		cmd.Println()
		cmd.Println(cv.Text)
	}
}

func orMuted(st *styles, v string) string {
	if v == "" {
		return st.Muted.Render("-")
	}
	return v
}
