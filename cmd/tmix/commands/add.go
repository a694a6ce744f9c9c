package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-mixer/internal/socket"
)

// add [track...]: push "Artist - Title" tracks into the catalog of the
// running instance. Without arguments tracks are read from stdin, one per
// line.
func addCmd() *cobra.Command {
	var kind, label, query string

	cmd := &cobra.Command{
		Use:   "add [\"Artist - Title\"...]",
		Short: "Push tracks into the search or unselected dialog of a running tmix",
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := args
			if len(texts) == 0 {
				var err error
				if texts, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			if len(texts) == 0 {
				return fmt.Errorf("no tracks given")
			}

			client, err := connect()
			if err != nil {
				return err
			}
			resp, err := client.SendAddTracks(kind, label, query, texts)
			if err != nil {
				return fmt.Errorf("failed to send tracks: %w", err)
			}
			if !resp.Success {
				return fmt.Errorf("server error: %s", resp.Message)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent %d tracks\n", len(texts))
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "search", "catalog the tracks go to: search or unselected")
	cmd.Flags().StringVar(&label, "label", "", "name of the set the tracks belong to")
	cmd.Flags().StringVar(&query, "query", "", "query the tracks were found with")
	return cmd
}

// list: print the playlist of the running instance
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the playlist of a running tmix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connect()
			if err != nil {
				return err
			}
			resp, err := client.SendList()
			if err != nil {
				return fmt.Errorf("failed to list: %w", err)
			}
			if !resp.Success {
				return fmt.Errorf("server error: %s", resp.Message)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Message)
			for _, line := range resp.Lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func connect() (*socket.Client, error) {
	socketPath, _, err := socket.FindRunningInstance()
	if err != nil {
		return nil, err
	}
	return socket.NewClient(socketPath)
}

func readLines(f io.Reader) ([]string, error) {
	if file, ok := f.(*os.File); ok {
		if info, err := file.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			// nothing piped in
			return nil, nil
		}
	}
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
