// Package importer reads batch import files. A record carries name,
// category, quantity, price and unit; custom fields are not supported.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rl1809/stockroom/internal/core/domain"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

type record struct {
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
	Quantity int    `yaml:"quantity" json:"quantity"`
	Price    price  `yaml:"price" json:"price"`
	Unit     string `yaml:"unit" json:"unit"`
}

// price accepts both numbers and quoted strings without going through float64.
type price struct {
	decimal.Decimal
}

func (p *price) UnmarshalYAML(node *yaml.Node) error {
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid price %q: %w", node.Line, node.Value, err)
	}
	p.Decimal = d
	return nil
}

func (p *price) UnmarshalJSON(b []byte) error {
	return p.Decimal.UnmarshalJSON(b)
}

// LoadFile picks the format from the file extension (.yaml, .yml or .json).
func LoadFile(path string) ([]domain.ImportRecord, error) {
	format, err := formatFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	records, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Decode reads a list of records in the given format.
func Decode(r io.Reader, format Format) ([]domain.ImportRecord, error) {
	var raw []record
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}

	records := make([]domain.ImportRecord, 0, len(raw))
	for _, rec := range raw {
		records = append(records, domain.ImportRecord{
			Name:     rec.Name,
			Category: rec.Category,
			Quantity: rec.Quantity,
			Price:    rec.Price.Decimal,
			Unit:     rec.Unit,
		})
	}
	return records, nil
}

func formatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown import file type %q", filepath.Ext(path))
}
