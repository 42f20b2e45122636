// Package kaggle fetches a dataset archive from the Kaggle public API and
// extracts the expected file from it.
//
// The API contract is small: GET /api/v1/datasets/download/<owner>/<dataset>
// with HTTP basic auth returns a zip archive of the dataset's files.
// Credentials come from the KAGGLE_USERNAME / KAGGLE_KEY environment
// variables; either missing is a hard configuration error surfaced before
// any network activity.
package kaggle

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/xxh3"

	"salesdw/internal/datasource/httpds"
)

// DefaultBaseURL is the production API endpoint. Tests point BaseURL at an
// httptest server.
const DefaultBaseURL = "https://www.kaggle.com/api/v1"

// ErrMissingCredentials reports absent environment credentials.
var ErrMissingCredentials = errors.New("kaggle: KAGGLE_USERNAME or KAGGLE_KEY not set")

// Credentials authenticate against the dataset host API.
type Credentials struct {
	Username string
	Key      string
}

// CredentialsFromEnv reads KAGGLE_USERNAME and KAGGLE_KEY. Both must be
// non-empty.
func CredentialsFromEnv() (Credentials, error) {
	c := Credentials{
		Username: os.Getenv("KAGGLE_USERNAME"),
		Key:      os.Getenv("KAGGLE_KEY"),
	}
	if c.Username == "" || c.Key == "" {
		return Credentials{}, ErrMissingCredentials
	}
	return c, nil
}

// Client downloads dataset archives.
type Client struct {
	BaseURL string
	http    *httpds.Client
}

// NewClient builds a Client around the retrying HTTP datasource. The
// credentials ride on every request as basic auth.
func NewClient(creds Credentials, cfg httpds.Config) *Client {
	cfg.Username = creds.Username
	cfg.Password = creds.Key
	return &Client{
		BaseURL: DefaultBaseURL,
		http:    httpds.NewClient(cfg),
	}
}

// DownloadDataset fetches the archive for ref (e.g.
// "aungpyaeap/supermarket-sales") into destDir and returns the archive path.
// The downloaded bytes are checksummed (xxh3) and logged for traceability;
// the checksum is diagnostic only.
func (c *Client) DownloadDataset(ctx context.Context, ref, destDir string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", fmt.Errorf("kaggle: dataset ref must not be empty")
	}

	url := fmt.Sprintf("%s/datasets/download/%s", strings.TrimRight(c.BaseURL, "/"), ref)
	resp, err := c.http.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("kaggle: download %s: %w", ref, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("kaggle: download %s: unexpected status %s", ref, resp.Status)
	}

	archivePath := filepath.Join(destDir, archiveName(ref))
	f, err := os.Create(archivePath)
	if err != nil {
		return "", fmt.Errorf("kaggle: create archive file: %w", err)
	}

	h := xxh3.New()
	n, err := io.Copy(io.MultiWriter(f, h), resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("kaggle: save archive: %w", err)
	}

	log.Printf("downloaded %s: bytes=%d xxh3=%016x", ref, n, h.Sum64())
	return archivePath, nil
}

// archiveName derives a filesystem-safe archive name from the dataset ref:
// "owner/dataset" -> "owner_dataset.zip".
func archiveName(ref string) string {
	return strings.ReplaceAll(strings.Trim(ref, "/"), "/", "_") + ".zip"
}

// ExtractArchive unpacks every regular file in the zip at archivePath flat
// into destDir (the dataset archives have no directory structure worth
// preserving) and returns the extracted file names.
func ExtractArchive(archivePath, destDir string) ([]string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("kaggle: open archive: %w", err)
	}
	defer zr.Close()

	var names []string
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(zf.Name)
		if err := extractOne(zf, filepath.Join(destDir, name)); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func extractOne(zf *zip.File, dest string) error {
	rc, err := zf.Open()
	if err != nil {
		return fmt.Errorf("kaggle: open archive entry %s: %w", zf.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("kaggle: create %s: %w", dest, err)
	}
	_, err = io.Copy(out, rc)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("kaggle: extract %s: %w", zf.Name, err)
	}
	return nil
}

// FetchFile downloads ref's archive into workDir, extracts it, and returns
// the path of fileName inside the extracted set. A dataset that does not
// contain fileName is an error (the caller treats it as fatal).
func (c *Client) FetchFile(ctx context.Context, ref, fileName, workDir string) (string, error) {
	archivePath, err := c.DownloadDataset(ctx, ref, workDir)
	if err != nil {
		return "", err
	}

	names, err := ExtractArchive(archivePath, workDir)
	if err != nil {
		return "", err
	}

	for _, n := range names {
		if n == fileName {
			return filepath.Join(workDir, n), nil
		}
	}
	return "", fmt.Errorf("kaggle: file %q not found in dataset %q (archive has: %s)",
		fileName, ref, strings.Join(names, ", "))
}
