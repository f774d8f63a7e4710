package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/noah-isme/act-survey-api/internal/config"
	"github.com/noah-isme/act-survey-api/internal/database"
	"github.com/noah-isme/act-survey-api/internal/export"
	"github.com/noah-isme/act-survey-api/internal/repository"
	"github.com/noah-isme/act-survey-api/internal/service"
)

func main() {
	outDir := flag.String("out", ".", "directory the workbook is written to")
	flag.Parse()

	if err := run(*outDir); err != nil {
		color.Red("export failed: %v", err)
		os.Exit(1)
	}
}

func run(outDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	reports := service.NewReportService(repository.NewResponseRepository(db), nil, 0, logger)
	rows, err := reports.Export(ctx)
	if err != nil {
		return err
	}

	workbook, err := export.WriteXLSX(rows)
	if err != nil {
		return err
	}

	path := filepath.Join(outDir, export.FileName(time.Now()))
	if err := os.WriteFile(path, workbook, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	color.Green("exported %d responses to %s", len(rows), path)
	return nil
}
