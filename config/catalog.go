package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// Catalog lists the named areas to walk, in order, and the shorthand codes
// accepted by manual area tagging.
type Catalog struct {
	Areas []string          `json:"areas"`
	Codes map[string]string `json:"codes"`
}

// DefaultCatalog is used when no catalog file exists.
func DefaultCatalog() Catalog {
	return Catalog{
		Areas: []string{"Campustown", "Champaign", "Urbana", "Downtown Champaign", "Downtown Urbana"},
		Codes: map[string]string{
			"ct": "Campustown",
			"du": "Downtown Urbana",
			"dc": "Downtown Champaign",
			"u":  "Urbana",
			"c":  "Champaign",
			"o":  "Other",
		},
	}
}

// Lookup resolves a shorthand code to its area name.
func (c Catalog) Lookup(code string) (string, bool) {
	area, ok := c.Codes[strings.TrimSpace(code)]
	return area, ok
}

// localCatalogPath returns the per-machine override next to path:
// areas.json5 becomes areas.local.json5.
func localCatalogPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

// decodeCatalog parses the JSON5 catalog at path into cat. A missing or
// empty file leaves cat untouched and reports found as false.
func decodeCatalog(path string, cat *Catalog) (found bool, err error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json5.Unmarshal(raw, cat); err != nil {
		return false, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return true, nil
}

// ReadCatalog loads the area catalog at path, with the .local override
// merged over it, filling anything both leave out from DefaultCatalog. When
// neither file exists the defaults are returned.
func ReadCatalog(path string) (Catalog, error) {
	var cat Catalog
	found, err := decodeCatalog(path, &cat)
	if err != nil {
		return Catalog{}, err
	}

	var local Catalog
	foundLocal, err := decodeCatalog(localCatalogPath(path), &local)
	if err != nil {
		return Catalog{}, err
	}
	if foundLocal {
		// Codes merge key by key; a non-empty local area list replaces the base.
		if err := mergo.Merge(&cat, local, mergo.WithOverride); err != nil {
			return Catalog{}, err
		}
	}
	if !found && !foundLocal {
		return DefaultCatalog(), nil
	}

	def := DefaultCatalog()
	if len(cat.Areas) == 0 {
		cat.Areas = def.Areas
	}
	if len(cat.Codes) == 0 {
		cat.Codes = def.Codes
	}
	return cat, nil
}
