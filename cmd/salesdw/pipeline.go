// Run orchestration: acquire the raw CSV, build the star schema, replace the
// destination tables, execute the reporting query. One synchronous pass, one
// attempt per external operation; any failure propagates to main.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"salesdw/internal/config"
	"salesdw/internal/dataset"
	"salesdw/internal/datasource/httpds"
	"salesdw/internal/kaggle"
	"salesdw/internal/metrics"
	"salesdw/internal/report"
	"salesdw/internal/star"
	"salesdw/internal/storage/sqlite"
)

// Function variables used to introduce test seams. In production these point
// to real implementations; tests override them.
var (
	fetchDatasetFn = fetchDataset
	openRepoFn     = sqlite.Open
)

// fetchDataset resolves credentials, downloads the configured dataset
// archive into workDir, and returns the path of the expected CSV file.
func fetchDataset(ctx context.Context, cfg config.Run, workDir string) (string, error) {
	creds, err := kaggle.CredentialsFromEnv()
	if err != nil {
		return "", err
	}

	client := kaggle.NewClient(creds, httpds.Config{
		Timeout:    time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.HTTP.MaxRetries,
	})
	return client.FetchFile(ctx, cfg.Source.Kaggle.Dataset, cfg.Source.Kaggle.File, workDir)
}

// run executes the whole pipeline for cfg, writing the rendered report to
// out.
func run(ctx context.Context, cfg config.Run, out io.Writer) error {
	step := func(name string, fn func() error) error {
		start := time.Now()
		err := fn()
		metrics.RecordStep(cfg.Job, name, err, time.Since(start))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}

	// 1) Acquire the raw CSV.
	var csvPath string
	switch cfg.Source.Kind {
	case "file":
		csvPath = cfg.Source.File.Path

	case "kaggle":
		workDir, err := os.MkdirTemp("", "salesdw-")
		if err != nil {
			return fmt.Errorf("create work dir: %w", err)
		}
		defer os.RemoveAll(workDir)

		if err := step("download", func() error {
			p, err := fetchDatasetFn(ctx, cfg, workDir)
			csvPath = p
			return err
		}); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unsupported source.kind=%s", cfg.Source.Kind)
	}

	// 2) Parse.
	var sales []dataset.Sale
	if err := step("parse", func() error {
		f, err := os.Open(csvPath)
		if err != nil {
			return err
		}
		defer f.Close()
		sales, err = dataset.ParseCSV(f)
		return err
	}); err != nil {
		return err
	}
	metrics.RecordRows(cfg.Job, "parsed", int64(len(sales)))
	log.Printf("parsed %s: rows=%d", csvPath, len(sales))

	// 3) Transform.
	var (
		dates    []star.DateRow
		products []star.ProductRow
		facts    []star.FactRow
		stats    star.FactStats
	)
	if err := step("transform", func() error {
		var err error
		dates, err = star.BuildDateDimension(sales)
		if err != nil {
			return err
		}
		products = star.BuildProductDimension(sales)
		facts, stats = star.BuildFactTable(sales, dates, products)
		return nil
	}); err != nil {
		return err
	}
	metrics.RecordRows(cfg.Job, "dim_date", int64(len(dates)))
	metrics.RecordRows(cfg.Job, "dim_product", int64(len(products)))
	metrics.RecordRows(cfg.Job, "facts", int64(len(facts)))
	metrics.RecordRows(cfg.Job, "dropped", int64(stats.Dropped))
	metrics.RecordRows(cfg.Job, "shared_product_rows", int64(stats.SharedProductRows))

	log.Printf("star schema: dim_date=%d dim_product=%d facts=%d", len(dates), len(products), len(facts))
	if d := stats.Diagnostic(); d != "" {
		log.Printf("data quality: %s", d)
	}

	// 4) Load.
	repo, closeRepo, err := openRepoFn(ctx, cfg.Storage.DB.Path)
	if err != nil {
		return err
	}
	defer closeRepo()

	if err := step("load", func() error {
		return star.Load(ctx, repo, dates, products, facts)
	}); err != nil {
		return err
	}

	// 5) Report.
	return step("report", func() error {
		query, err := report.ReadQuery(cfg.Report.Path)
		if err != nil {
			return err
		}
		res, err := report.Run(ctx, repo, query)
		if err != nil {
			return err
		}
		return report.Render(out, res)
	})
}
