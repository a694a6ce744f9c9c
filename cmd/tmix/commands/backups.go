package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-mixer/internal/storage"
)

// backups [file]: list the backups taken of file, or of every file
func backupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backups [file]",
		Short: "List the backups taken before each save",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bm, err := storage.NewBackupManager()
			if err != nil {
				return err
			}
			var file string
			if len(args) > 0 {
				file = args[0]
			}
			backups, err := bm.FindBackupsForFile(file)
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tTRACKS\tFILE\tBACKUP")
			for _, b := range backups {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
					b.Timestamp.Format("2006-01-02 15:04:05"), b.Tracks, b.OriginalFile, b.FilePath)
			}
			return w.Flush()
		},
	}
}
