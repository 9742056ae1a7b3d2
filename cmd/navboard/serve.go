package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"navboard/internal/chart"
	"navboard/internal/config"
	"navboard/internal/content"
	"navboard/internal/logger"
	"navboard/internal/portfolio"
	"navboard/internal/server"
	"navboard/internal/source"
	"navboard/internal/storage"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	// Ensure parent directory for the DB exists
	_ = os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755)
	db, err := storage.OpenSQLite("file:" + cfg.DBPath + "?_fk=1")
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info().Str("path", cfg.DBPath).Msg("db: opened sqlite")
	if err := storage.InitSchema(db); err != nil {
		return err
	}
	logger.Info().Msg("db: schema ensured (views table)")

	site, err := content.Load(cfg.ContentPath)
	if err != nil {
		return err
	}

	src := source.New(cfg.NavSource, cfg.FetchTimeout)
	view := portfolio.NewView(src, chart.NewRenderer(cfg.ChartWidth, cfg.ChartHeight), portfolio.Options{
		Range:           cfg.Range,
		BenchmarkFactor: cfg.BenchmarkFactor,
	})
	defer view.Close()
	view.Load(ctx)
	logger.Info().Str("source", src.String()).Msg("nav: load started")

	router, err := server.NewRouter(server.Deps{
		View:    view,
		Content: site,
		Store:   storage.NewStore(db),
		Range:   cfg.Range,
	})
	if err != nil {
		return err
	}
	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("http: listening")
	if err := server.ListenAndServe(addr, router); err != nil {
		logger.Error().Err(err).Msg("server error")
		return err
	}
	return nil
}
