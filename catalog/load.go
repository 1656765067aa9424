package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/seriesgenius/seriesgenius/filesystem"
	"github.com/seriesgenius/seriesgenius/log"
	"github.com/seriesgenius/seriesgenius/where"
)

// Load reads the catalog at path. An empty path means where.Catalog().
// When the file does not exist the sample catalog is returned.
func Load(path string) (*Catalog, error) {
	if path == "" {
		path = where.Catalog()
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Infof("catalog %s not found, using sample catalog", path)
			return Sample(), nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	items, err := Decode(data)
	if err != nil {
		return nil, err
	}

	return New(items)
}

// Decode parses a catalog document. Both a bare array of items and an
// object with an "items" field are accepted.
func Decode(data []byte) ([]*Item, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var items []*Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		return items, nil
	}

	var document struct {
		Items []*Item `json:"items"`
	}
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	return document.Items, nil
}

// Save writes the catalog items as indented JSON to path.
func Save(path string, c *Catalog) error {
	data, err := json.MarshalIndent(c.Items(), "", "  ")
	if err != nil {
		return err
	}

	if err := filesystem.API().WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
