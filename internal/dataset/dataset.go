// Package dataset loads DVI observations, socioeconomic samples and region
// metadata from the JSON files written by the data pipeline.
package dataset

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/eastside-atlas/velocity/schema"
)

// File names inside a dataset directory.
const (
	DviFile     = "dvi_raw.json"
	SocioFile   = "socioeconomic.json"
	RegionsFile = "regions.json"
)

// EmbeddedSource is the source label of the built-in dataset.
const EmbeddedSource = "embedded"

//go:embed data/*.json
var embeddedFS embed.FS

// Default returns the built-in dataset.
func Default() (*schema.Dataset, error) {
	sub, err := fs.Sub(embeddedFS, "data")
	if err != nil {
		return nil, err
	}
	return load(sub)
}

// Load reads a dataset directory. Each file is optional, but at least one of
// the DVI and socioeconomic files must be present.
func Load(dir string) (*schema.Dataset, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", dir)
	}
	return load(os.DirFS(dir))
}

// LoadOrDefault loads dir, or the built-in dataset when dir is empty.
// It also returns the source label used for run bookkeeping.
func LoadOrDefault(dir string) (*schema.Dataset, string, error) {
	if dir == "" {
		ds, err := Default()
		return ds, EmbeddedSource, err
	}
	ds, err := Load(dir)
	return ds, dir, err
}

func load(fsys fs.FS) (*schema.Dataset, error) {
	ds := &schema.Dataset{}

	foundDvi, err := readJSON(fsys, DviFile, &ds.Observations)
	if err != nil {
		return nil, err
	}
	foundSocio, err := readJSON(fsys, SocioFile, &ds.Samples)
	if err != nil {
		return nil, err
	}
	if !foundDvi && !foundSocio {
		return nil, fmt.Errorf("no %s or %s found in data directory", DviFile, SocioFile)
	}
	if _, err := readJSON(fsys, RegionsFile, &ds.Regions); err != nil {
		return nil, err
	}

	for i, r := range ds.Regions {
		if r.Name == "" {
			return nil, fmt.Errorf("%s: region %d has no region_name", RegionsFile, i)
		}
	}
	return ds, nil
}

// readJSON decodes name into v. A missing file is not an error; found reports
// whether the file existed.
func readJSON(fsys fs.FS, name string, v any) (found bool, err error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return true, nil
}
