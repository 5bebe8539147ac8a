package curriculum

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Loader interface {
	Load(ctx context.Context, path string) (Catalog, error)
}

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// Load reads the catalog at path, or the built-in one when path is empty.
func (l *FSLoader) Load(ctx context.Context, path string) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return Catalog{}, err
	}
	if path == "" {
		c, err := Parse(defaultCatalog)
		if err != nil {
			return Catalog{}, fmt.Errorf("built-in catalog: %w", err)
		}
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	c, err := Parse(b)
	if err != nil {
		return Catalog{}, fmt.Errorf("load catalog %s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// Default returns the built-in catalog.
func Default() Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates a catalog document. Unknown fields are errors.
func Parse(b []byte) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return c, fmt.Errorf("parse: empty document")
		}
		return c, fmt.Errorf("parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("validate: %w", err)
	}
	return c, nil
}
