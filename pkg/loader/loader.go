package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"casevis/pkg/model"
)

// Collection file names, fixed external contract with the data generator.
const (
	CasesFile         = "cases.json"
	LocationsFile     = "locations.json"
	EventsFile        = "events.json"
	IndividualsFile   = "individuals.json"
	RelationshipsFile = "relationships.json"
)

// LoadDataset reads the five collection files from dataDir concurrently and
// joins them before returning. If any single read or decode fails, the whole
// load fails; there is no retry and no partial dataset.
func LoadDataset(dataDir string) (*model.Dataset, error) {
	if dataDir == "" {
		var err error
		dataDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
	}

	var ds model.Dataset
	var g errgroup.Group
	g.Go(func() error { return readCollection(dataDir, CasesFile, &ds.Cases) })
	g.Go(func() error { return readCollection(dataDir, LocationsFile, &ds.Locations) })
	g.Go(func() error { return readCollection(dataDir, EventsFile, &ds.Events) })
	g.Go(func() error { return readCollection(dataDir, IndividualsFile, &ds.Individuals) })
	g.Go(func() error { return readCollection(dataDir, RelationshipsFile, &ds.Relationships) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ds, nil
}

// readCollection decodes a single JSON array file into out, which must be a
// pointer to a slice of one of the model entity types.
func readCollection(dataDir, name string, out any) error {
	path := filepath.Join(dataDir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
