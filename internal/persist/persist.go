// Package persist writes raw artifacts and normalized tables to the output layout.
package persist

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"spcuadros/internal/config"
	"spcuadros/internal/models"
)

// bom marks CSV output as UTF-8 for spreadsheet tools.
var bom = []byte{0xEF, 0xBB, 0xBF}

// Options controls naming and file extensions.
type Options struct {
	RawExt        string
	MaxNameLength int
	TitleSelector string
}

// OptionsFromConfig picks the persistence settings out of the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		RawExt:        cfg.Output.RawExt,
		MaxNameLength: cfg.Output.MaxNameLength,
		TitleSelector: cfg.Extraction.TitleSelector,
	}
}

// Persister writes into one raw directory and one normalized directory.
type Persister struct {
	rawDir        string
	normalizedDir string
	opts          Options
}

// New creates a persister. Directories are created on first write.
func New(rawDir, normalizedDir string, opts Options) *Persister {
	if opts.RawExt == "" {
		opts.RawExt = "html"
	}
	if opts.TitleSelector == "" {
		opts.TitleSelector = "h3"
	}

	return &Persister{
		rawDir:        rawDir,
		normalizedDir: normalizedDir,
		opts:          opts,
	}
}

// Name derives the file stem for an artifact.
func (p *Persister) Name(art *models.RawArtifact) string {
	return DeriveName(art.Text, p.opts.TitleSelector, art.Ref, p.opts.MaxNameLength)
}

// RawPath returns where the raw artifact named name is written.
func (p *Persister) RawPath(name string) string {
	return filepath.Join(p.rawDir, name+"."+p.opts.RawExt)
}

// CSVPath returns where the normalized table named name is written.
func (p *Persister) CSVPath(name string) string {
	return filepath.Join(p.normalizedDir, name+".csv")
}

// WriteRaw writes the decoded text verbatim, overwriting any previous file.
func (p *Persister) WriteRaw(name, text string) (string, error) {
	path := p.RawPath(name)
	if err := writeFile(path, []byte(text)); err != nil {
		return "", err
	}

	return path, nil
}

// WriteTable writes t as BOM-prefixed, comma-delimited CSV with a header row.
func (p *Persister) WriteTable(name string, t *models.Table) (string, error) {
	data, err := EncodeCSV(t)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := p.CSVPath(name)
	if err := writeFile(path, data); err != nil {
		return "", err
	}

	return path, nil
}

// EncodeCSV renders t the way WriteTable stores it. Missing values are empty.
func EncodeCSV(t *models.Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(bom)

	w := csv.NewWriter(&buf)
	if err := w.WriteAll(t.Records()); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// RemoveTable deletes the normalized table named name, if there is one.
func (p *Persister) RemoveTable(name string) error {
	path := p.CSVPath(name)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}

// writeFile replaces path with data through a temp file in the same
// directory, so readers never see a partial file.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
