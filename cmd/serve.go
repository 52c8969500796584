package cmd

import (
	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/web"
	"github.com/spf13/cobra"
)

var (
	addr    string
	origins []string
)

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", constants.GetAddr(), "address to listen on")
	serveCmd.Flags().StringSliceVar(&origins, "origins", constants.GetCORSOrigins(), "allowed CORS origins")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the fretboard page",
	Long:  `Serves the fretboard page. Every browser gets its own board.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		server, err := web.NewServer(c, web.WithOrigins(origins))
		if err != nil {
			return err
		}
		return server.Start(addr)
	},
}
