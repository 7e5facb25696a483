package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/regcat/regcat/internal/server"
	"github.com/regcat/regcat/pkg/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve [catalog-file]",
	Short: "Serve the catalog lookup API over HTTP",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := catalogPath(args, 0)
		listenAddr, _ := cmd.Flags().GetString("listen")
		if listenAddr == "" {
			listenAddr = viper.GetString("server.listen")
		}
		noReload, _ := cmd.Flags().GetBool("no-reload")

		store, err := storage.Load(path)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}

		srv := server.New(store)

		if !noReload {
			stop, err := srv.WatchCatalog(path)
			if err != nil {
				return fmt.Errorf("watching catalog: %w", err)
			}
			defer stop()
		}

		return srv.Start(listenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "HTTP listen address (default from config, :3000)")
	serveCmd.Flags().Bool("no-reload", false, "Disable automatic reload when the catalog file changes")
}
