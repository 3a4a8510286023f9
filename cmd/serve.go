package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/httpapi"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scan and scoring HTTP API",
	Long: `Expose the scanner over HTTP. POST /api/scan runs the cascade for a
query, POST /api/score returns an asset's score card, and callers are
quota-limited per day by the X-Caller header.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		srv := httpapi.New(newController(cfg, log), newScorer(cfg, log), log)
		httpSrv := &http.Server{
			Addr:              flagAddr,
			Handler:           srv.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		fmt.Printf("Listening on %s\n", flagAddr)
		return httpSrv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8090", "listen address")
}
