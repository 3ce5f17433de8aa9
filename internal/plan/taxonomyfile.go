// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/place-scout/pkg/types"
)

// LoadTaxonomy reads a YAML taxonomy file. Lists the file leaves out keep
// their DefaultTaxonomy values, so a file can override just the tiers.
func LoadTaxonomy(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("reading taxonomy file: %w", err)
	}
	var file Taxonomy
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Taxonomy{}, fmt.Errorf("parsing taxonomy file: %w", err)
	}

	tax := DefaultTaxonomy()
	overlay(&tax.Tier1, file.Tier1)
	overlay(&tax.Tier2, file.Tier2)
	overlay(&tax.Tier3, file.Tier3)
	overlay(&tax.StrongKeywords, file.StrongKeywords)
	overlay(&tax.FallbackKeywords, file.FallbackKeywords)
	overlay(&tax.BookingTokens, file.BookingTokens)

	if len(Plan(tax)) == 0 {
		return Taxonomy{}, fmt.Errorf("taxonomy %s yields no queries", path)
	}
	return tax, nil
}

func overlay(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = src
	}
}

// PlanFile is the on-disk representation of a planned query set, written by
// the plan command so the operator can review what a run will issue.
type PlanFile struct {
	Taxonomy  Taxonomy      `yaml:"taxonomy"`
	Queries   []types.Query `yaml:"queries"`
	Total     int           `yaml:"total"`
	Timestamp time.Time     `yaml:"timestamp"`
}

// WritePlanFile saves the taxonomy and its planned queries to a YAML file.
func WritePlanFile(path string, tax Taxonomy) error {
	queries := Plan(tax)
	pf := PlanFile{
		Taxonomy:  tax,
		Queries:   queries,
		Total:     len(queries),
		Timestamp: time.Now(),
	}
	data, err := yaml.Marshal(&pf)
	if err != nil {
		return fmt.Errorf("marshaling plan file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadPlanFile loads a previously saved plan file.
func ReadPlanFile(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	var pf PlanFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &pf, nil
}
