package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/beamcalc/internal/server"
	"github.com/alexiusacademia/beamcalc/internal/store"
)

var (
	serveAddr    string
	serveNoStore bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API server",
	Long: `Serve the calculator over HTTP.

Routes:
  GET  /healthz
  GET  /api/materials
  POST /api/sample      beam and load -> shear and moment diagram
  POST /api/evaluate    peak forces and section -> stresses and safety factor
  POST /api/analyze     full case -> report (?save=true stores it)
  GET  /api/history     saved analyses (?limit=N)
  GET  /api/history/{id}

Requests under /api are rate limited per client by BEAMCALC_RATE_LIMIT
and BEAMCALC_RATE_BURST.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default from BEAMCALC_ADDR or :8080)")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "Disable the history database")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.Addr
	}

	var st *store.Store
	if !serveNoStore {
		var err error
		st, err = store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.NewRouter(cfg, st),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
