package main

import (
	"context"
	"fmt"
	"os"

	"github.com/GIVandez/plot-twister/internal/api"
	"github.com/GIVandez/plot-twister/internal/cli"
	"github.com/GIVandez/plot-twister/internal/config"
	"github.com/GIVandez/plot-twister/internal/db"
	"github.com/GIVandez/plot-twister/internal/imagestore"
	"github.com/GIVandez/plot-twister/internal/repository"
	"github.com/GIVandez/plot-twister/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(cli.ConfigPathFromArgs(os.Args[1:]))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := config.NewLogger(cfg, os.Stderr)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	pageRepo := repository.NewSQLitePageRepo(database)
	frameRepo := repository.NewSQLiteFrameRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	images := imagestore.New(cfg.UploadDir, cfg.MaxUploadBytes)
	reorderPolicy, deletePolicy, err := cfg.Policies()
	if err != nil {
		return err
	}

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(logger)
	}

	// Wire services
	projects := service.NewProjectService(projectRepo, uow, images, observer)
	pages := service.NewPageService(pageRepo, uow, observer)
	frames := service.NewFrameService(frameRepo, uow, images,
		service.WithReorderPolicy(reorderPolicy),
		service.WithDeletePolicy(deletePolicy),
		service.WithFrameObserver(observer),
	)

	app := &cli.App{
		Projects: projects,
		Pages:    pages,
		Frames:   frames,
		Serve: func(ctx context.Context) error {
			logger.Info("serving storyboards", "db", cfg.DBPath, "uploads", cfg.UploadDir)
			return api.NewServer(cfg, projects, pages, frames, logger).Run(ctx)
		},
	}

	// Detect interactive terminal for confirmation prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
