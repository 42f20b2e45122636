package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"salesdw/internal/config"
	"salesdw/internal/storage/sqlite"
)

const fixtureHeader = "Invoice ID,Branch,City,Customer type,Gender,Product line,Unit price,Quantity,Tax 5%,Total,Date,Time,Payment,cogs,gross margin percentage,gross income,Rating"

var fixtureRows = []string{
	"750-67-8428,A,Yangon,Member,Female,Health and beauty,74.69,7,26.1415,548.9715,1/5/2019,13:08,Ewallet,522.83,4.761904762,26.1415,9.1",
	"226-31-3081,C,Naypyitaw,Normal,Female,Health and beauty,74.69,5,3.82,80.22,3/8/2019,10:29,Cash,76.4,4.761904762,3.82,9.6",
	"631-41-3108,A,Yangon,Normal,Male,Electronic accessories,15.28,7,16.2155,340.5255,3/8/2019,10:29,Credit card,324.31,4.761904762,16.2155,7.4",
}

func writeFixtures(tb testing.TB) (csvPath, reportPath string) {
	tb.Helper()
	dir := tb.TempDir()

	csvPath = filepath.Join(dir, "sales.csv")
	content := fixtureHeader + "\n" + strings.Join(fixtureRows, "\n") + "\n"
	if err := os.WriteFile(csvPath, []byte(content), 0o644); err != nil {
		tb.Fatalf("write csv fixture: %v", err)
	}

	reportPath = filepath.Join(dir, "report.sql")
	const query = `SELECT p.product_line, SUM(f.total) AS total_sales
FROM fact_sales f JOIN dim_product p ON p.product_id = f.product_id
GROUP BY p.product_line ORDER BY p.product_line`
	if err := os.WriteFile(reportPath, []byte(query), 0o644); err != nil {
		tb.Fatalf("write report fixture: %v", err)
	}
	return csvPath, reportPath
}

func fileRunConfig(tb testing.TB) config.Run {
	tb.Helper()
	csvPath, reportPath := writeFixtures(tb)
	return config.Run{
		Job:     "test_sales",
		Source:  config.Source{Kind: "file", File: config.SourceFile{Path: csvPath}},
		Storage: config.Storage{DB: config.DBConfig{Path: filepath.Join(tb.TempDir(), "sales.db")}},
		Report:  config.Report{Path: reportPath},
	}
}

func tableCount(tb testing.TB, dbPath, table string) int {
	tb.Helper()
	repo, closeFn, err := sqlite.Open(context.Background(), dbPath)
	if err != nil {
		tb.Fatalf("open %s: %v", dbPath, err)
	}
	defer closeFn()

	res, err := repo.Query(context.Background(), "SELECT COUNT(*) FROM "+table)
	if err != nil {
		tb.Fatalf("count %s: %v", table, err)
	}
	return int(res.Rows[0][0].(int64))
}

func TestRunFileSourceEndToEnd(t *testing.T) {
	cfg := fileRunConfig(t)

	var out strings.Builder
	if err := run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	// Three raw rows, two distinct (Date, Time) pairs, two distinct
	// (product line, unit price) pairs.
	if n := tableCount(t, cfg.Storage.DB.Path, "dim_date"); n != 2 {
		t.Errorf("dim_date rows = %d, want 2", n)
	}
	if n := tableCount(t, cfg.Storage.DB.Path, "dim_product"); n != 2 {
		t.Errorf("dim_product rows = %d, want 2", n)
	}
	if n := tableCount(t, cfg.Storage.DB.Path, "fact_sales"); n != 3 {
		t.Errorf("fact_sales rows = %d, want 3", n)
	}

	report := out.String()
	for _, want := range []string{"product_line", "Health and beauty", "Electronic accessories", "629.1915", "(2 rows)"} {
		if !strings.Contains(report, want) {
			t.Errorf("report output missing %q:\n%s", want, report)
		}
	}
}

func TestRunIsRepeatable(t *testing.T) {
	cfg := fileRunConfig(t)

	for i := 0; i < 2; i++ {
		var out strings.Builder
		if err := run(context.Background(), cfg, &out); err != nil {
			t.Fatalf("run #%d: %v", i+1, err)
		}
	}

	// Replace semantics: a second run leaves identical row counts.
	if n := tableCount(t, cfg.Storage.DB.Path, "fact_sales"); n != 3 {
		t.Fatalf("fact_sales rows after rerun = %d, want 3", n)
	}
}

func TestRunKaggleSourceUsesFetchSeam(t *testing.T) {
	csvPath, reportPath := writeFixtures(t)

	orig := fetchDatasetFn
	t.Cleanup(func() { fetchDatasetFn = orig })

	var gotDataset string
	fetchDatasetFn = func(ctx context.Context, cfg config.Run, workDir string) (string, error) {
		gotDataset = cfg.Source.Kaggle.Dataset
		return csvPath, nil
	}

	cfg := config.Run{
		Job: "test_sales",
		Source: config.Source{
			Kind:   "kaggle",
			Kaggle: config.SourceKaggle{Dataset: "aungpyaeap/supermarket-sales", File: "sales.csv"},
		},
		Storage: config.Storage{DB: config.DBConfig{Path: filepath.Join(t.TempDir(), "sales.db")}},
		Report:  config.Report{Path: reportPath},
	}

	var out strings.Builder
	if err := run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if gotDataset != "aungpyaeap/supermarket-sales" {
		t.Fatalf("fetch seam saw dataset %q", gotDataset)
	}
}

func TestRunKaggleSourceFetchFailureIsFatal(t *testing.T) {
	_, reportPath := writeFixtures(t)

	orig := fetchDatasetFn
	t.Cleanup(func() { fetchDatasetFn = orig })
	fetchDatasetFn = func(ctx context.Context, cfg config.Run, workDir string) (string, error) {
		return "", fmt.Errorf("file %q not found in dataset", cfg.Source.Kaggle.File)
	}

	cfg := config.Run{
		Job: "test_sales",
		Source: config.Source{
			Kind:   "kaggle",
			Kaggle: config.SourceKaggle{Dataset: "owner/ds", File: "absent.csv"},
		},
		Storage: config.Storage{DB: config.DBConfig{Path: filepath.Join(t.TempDir(), "sales.db")}},
		Report:  config.Report{Path: reportPath},
	}

	err := run(context.Background(), cfg, &strings.Builder{})
	if err == nil {
		t.Fatal("want error when the expected file is missing")
	}
	if !strings.Contains(err.Error(), "download") {
		t.Errorf("error %q should be attributed to the download step", err)
	}
}

func TestRunUnsupportedSourceKind(t *testing.T) {
	cfg := fileRunConfig(t)
	cfg.Source.Kind = "ftp"

	if err := run(context.Background(), cfg, &strings.Builder{}); err == nil {
		t.Fatal("want error for unsupported source kind")
	}
}

func TestRunMalformedCSVIsFatal(t *testing.T) {
	cfg := fileRunConfig(t)

	// Corrupt the date column of one row.
	raw, err := os.ReadFile(cfg.Source.File.Path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	bad := strings.Replace(string(raw), "1/5/2019", "2019-01-05", 1)
	if err := os.WriteFile(cfg.Source.File.Path, []byte(bad), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	err = run(context.Background(), cfg, &strings.Builder{})
	if err == nil {
		t.Fatal("want error for malformed date")
	}
	if !strings.Contains(err.Error(), "transform") {
		t.Errorf("error %q should be attributed to the transform step", err)
	}
}
