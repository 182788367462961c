package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/valence/pkg/domain"
	"gopkg.in/yaml.v3"
)

// ReadDocument loads a standalone document file. Files ending in .json are
// decoded as JSON, everything else as YAML. A missing id is taken from the
// file name.
func ReadDocument(path string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc domain.Document
	if isJSON(path) {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if doc.ID == "" {
		base := filepath.Base(path)
		doc.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if doc.Nodes == nil {
		doc.Nodes = []domain.Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []domain.Edge{}
	}
	return doc, nil
}

// WriteDocument writes doc to path atomically, in JSON or YAML by extension.
func WriteDocument(path string, doc domain.Document) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = yaml.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure directory: %w", err)
	}
	return writeAtomic(dir, path, data)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
