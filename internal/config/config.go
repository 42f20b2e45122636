// Package config defines the JSON-serializable run configuration for the
// sales warehouse loader. It is intentionally small, explicit, and
// dependency-free: runs are described by a single JSON file decoded with the
// standard library, and validation is a separate static pass that returns
// issues rather than mutating the config.
//
// Example (configs/supermarket.json):
//
//	{
//	  "job": "supermarket_sales",
//	  "source": {
//	    "kind": "kaggle",
//	    "kaggle": {
//	      "dataset": "aungpyaeap/supermarket-sales",
//	      "file": "supermarket_sales - Sheet1.csv"
//	    }
//	  },
//	  "storage": { "db": { "path": "supermarket_sales.db" } },
//	  "report":  { "path": "configs/report.sql" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Run is the top-level object decoded from a run config file.
type Run struct {
	// Job names the run; it labels metrics and log lines.
	Job string `json:"job"`

	// Source describes where the raw CSV comes from.
	Source Source `json:"source"`

	// Storage describes the destination database.
	Storage Storage `json:"storage"`

	// Report points at the SQL file executed after the load.
	Report Report `json:"report"`

	// HTTP tunes the dataset-host client. Zero values get client defaults.
	HTTP HTTP `json:"http"`
}

// Source identifies the data source. Kind selects the implementation:
// "kaggle" downloads from the dataset host, "file" reads a local CSV.
type Source struct {
	Kind   string       `json:"kind"`
	Kaggle SourceKaggle `json:"kaggle"`
	File   SourceFile   `json:"file"`
}

// SourceKaggle holds options for the "kaggle" source kind.
type SourceKaggle struct {
	// Dataset is the dataset reference, e.g. "aungpyaeap/supermarket-sales".
	Dataset string `json:"dataset"`

	// File is the expected CSV file name inside the dataset archive.
	File string `json:"file"`
}

// SourceFile holds options for the "file" source kind.
type SourceFile struct {
	Path string `json:"path"`
}

// Storage describes the persistence sink.
type Storage struct {
	DB DBConfig `json:"db"`
}

// DBConfig configures the embedded database.
type DBConfig struct {
	// Path is the database file path (or a driver DSN; ":memory:" works in
	// tests).
	Path string `json:"path"`
}

// Report configures the reporting step.
type Report struct {
	// Path is a text file containing one SQL statement, read verbatim and
	// executed unmodified.
	Path string `json:"path"`
}

// HTTP tunes the dataset-host HTTP client.
type HTTP struct {
	TimeoutSeconds int `json:"timeout_seconds"`
	MaxRetries     int `json:"max_retries"`
}

// Load decodes a Run from the JSON file at path.
func Load(path string) (Run, error) {
	f, err := os.Open(path)
	if err != nil {
		return Run{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	var r Run
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Run{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return r, nil
}
