package main

import (
	"github.com/spf13/cobra"

	"github.com/grenas405/meta-documentation/internal/webserver"
	"github.com/grenas405/meta-documentation/internal/workspace"
)

func newServeCommand() *cobra.Command {
	var (
		port      int
		noBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only decision-log dashboard",
		Long: `Serve a read-only dashboard for the workspace decision log.

The server binds to loopback only and exposes:
  GET /api/health          health check
  GET /api/decisions       record list (sortable with ?sort= and ?order=)
  GET /api/decisions/{id}  one record with parsed sections
  GET /api/summary         status counts plus the checklist outcome

The dashboard opens in the default browser unless --no-browser is set.
Stop with Ctrl+C; the server shuts down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wsCtx, cfg, err := requireDecisionLog()
			if err != nil {
				return err
			}
			checklistPath, err := workspace.FindChecklist(wsCtx, "", cfg.Paths.Checklist)
			if err != nil {
				return err
			}

			if port == 0 {
				port = cfg.Server.Port
			}
			if !noBrowser && cfg.Server.NoBrowser != nil {
				noBrowser = *cfg.Server.NoBrowser
			}

			srv, err := webserver.New(webserver.Config{
				Port:          port,
				DecisionsDir:  wsCtx.DecisionsDir,
				ChecklistPath: checklistPath,
				NoBrowser:     noBrowser,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from .metadoc.yaml)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the dashboard in a browser")

	return cmd
}
