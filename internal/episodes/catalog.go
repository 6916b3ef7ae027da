// ============================================================================
// boundary - Fehlergrenzen fuer mDW-Oberflaechen
// ============================================================================
//
// Package:     episodes
// Description: Episode catalog rendered by the demo page
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package episodes

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	bderror "github.com/msto63/boundary/foundation/core/error"
	"gopkg.in/yaml.v3"
)

//go:embed episodes.yaml
var defaultCatalog []byte

// Episode is one entry of the listing
type Episode struct {
	ID      int    `yaml:"id"`
	Name    string `yaml:"name"`
	AirDate string `yaml:"air_date"`
	Code    string `yaml:"episode"`
}

// Catalog is an ordered episode list
type Catalog struct {
	Title    string    `yaml:"title"`
	Episodes []Episode `yaml:"episodes"`
}

// Load decodes and validates a YAML catalog
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, bderror.Wrap(err, "failed to parse episode catalog").
			WithCode(bderror.CodeInvalidInput)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Title == "" {
		c.Title = "Episodes"
	}
	return &c, nil
}

// Default returns the embedded catalog
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("embedded episode catalog is invalid: %v", err))
	}
	return c
}

// Validate checks that every episode has a name and a unique ID
func (c *Catalog) Validate() error {
	seen := make(map[int]bool, len(c.Episodes))
	for i, ep := range c.Episodes {
		if strings.TrimSpace(ep.Name) == "" {
			return bderror.New(fmt.Sprintf("episode %d has no name", i)).
				WithCode(bderror.CodeInvalidInput).
				WithDetail("index", i)
		}
		if seen[ep.ID] {
			return bderror.New(fmt.Sprintf("duplicate episode id %d", ep.ID)).
				WithCode(bderror.CodeInvalidInput).
				WithDetail("id", ep.ID)
		}
		seen[ep.ID] = true
	}
	return nil
}

// Find returns the episode with id
func (c *Catalog) Find(id int) (Episode, bool) {
	for _, ep := range c.Episodes {
		if ep.ID == id {
			return ep, true
		}
	}
	return Episode{}, false
}

// Len returns the number of episodes
func (c *Catalog) Len() int {
	return len(c.Episodes)
}
