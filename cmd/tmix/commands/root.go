package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-mixer/internal/app"
	"github.com/pstuifzand/tui-mixer/internal/config"
	"github.com/pstuifzand/tui-mixer/internal/history"
	"github.com/pstuifzand/tui-mixer/internal/socket"
	"github.com/pstuifzand/tui-mixer/internal/storage"
)

var (
	configPath string
	logPath    string
	debug      bool
)

// Execute runs the tmix command line
func Execute() error {
	root := &cobra.Command{
		Use:   "tmix [file]",
		Short: "Arrange a playlist by dragging tracks",
		Long: `tmix edits a playlist in the terminal. Tracks are reordered by dragging
them with the mouse or by grabbing them with space, and added by dragging
them in from the search and unselected dialogs. Other programs push
candidate tracks into a running instance with "tmix add".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runEditor,
	}

	root.Flags().BoolVar(&debug, "debug", false, "show key events in the status line")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/tui-mixer/config.toml)")
	root.PersistentFlags().StringVar(&logPath, "log", "tmix.log", "log file")

	root.AddCommand(addCmd(), listCmd(), backupsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// openLog sends the standard logger to the log file. The terminal belongs to
// the editor while it runs.
func openLog() (*os.File, error) {
	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, err
	}
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	return logFile, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	logFile, err := openLog()
	if err != nil {
		return err
	}
	defer logFile.Close()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	opts := app.Options{FilePath: filePath, Config: cfg}

	if h, err := history.NewManager(); err != nil {
		log.Printf("Warning: history disabled: %v", err)
	} else {
		opts.History = h
	}
	if b, err := storage.NewBackupManager(); err != nil {
		log.Printf("Warning: backups disabled: %v", err)
	} else {
		opts.Backups = b
	}

	// The socket lets "tmix add" push tracks into this instance
	if server, err := socket.NewServer(os.Getpid()); err != nil {
		log.Printf("Warning: failed to start socket server: %v", err)
	} else {
		server.Start()
		defer server.Stop()
		opts.Socket = server
	}

	application, err := app.New(opts)
	if err != nil {
		return err
	}
	if debug {
		application.SetDebugMode(true)
	}

	if err := application.Run(); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}
