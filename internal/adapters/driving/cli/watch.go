package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvkit/internal/adapters/driving/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest CVs dropped into a folder",
	Long: `Watch a folder and parse and store every CV written to it.

Hidden files and sub-folders are ignored. Files whose content was already
stored are not stored twice. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var watchExisting bool

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "Ingest files already in the folder first")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	svc, err := requireServices(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	w := watch.NewWithMaxFileSize(args[0], svc.CV, svc.MaxFileSize)
	defer w.Close()

	if watchExisting {
		results, err := w.Scan(ctx)
		if err != nil {
			return err
		}
		for _, res := range results {
			printWatchResult(cmd, res)
		}
	}

	results, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s for CVs. Press Ctrl+C to stop.\n", w.Dir())
	for res := range results {
		printWatchResult(cmd, res)
	}
	return nil
}

func printWatchResult(cmd *cobra.Command, res watch.Result) {
	st := newStyles(cmd.OutOrStdout())
	if res.Err != nil {
		cmd.Printf("%s %s: %v\n", st.Error.Render("Failed"), res.Path, res.Err)
		return
	}
	name := res.CV.BasicInfo.Name
	if name == "" {
		name = "unknown candidate"
	}
	cmd.Printf("%s %s -> %s (%s)\n", st.Success.Render("Stored"), res.Path, res.CV.ID, name)
}
