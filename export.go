package pricelist

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/aerissecure/pricelist/xlsx"
)

var notePattern = regexp.MustCompile(`(?i)^Note\s*[–\-—]`)

// Catalog is the structured form of a price list, as published to the web
// price page.
type Catalog struct {
	Title       string      `json:"title" yaml:"title"`
	LastUpdated string      `json:"lastUpdated" yaml:"lastUpdated"`
	Categories  []*Category `json:"categories" yaml:"categories"`
}

type Category struct {
	Name     string            `json:"name" yaml:"name"`
	Sections []*CatalogSection `json:"sections" yaml:"sections"`
}

type CatalogSection struct {
	Name  string   `json:"name" yaml:"name"`
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Items []Item   `json:"items" yaml:"items"`
}

// Item is one priced line. Unit holds the factor column as a number or text,
// or nil when blank.
type Item struct {
	Cost        float64     `json:"cost" yaml:"cost"`
	Unit        interface{} `json:"unit" yaml:"unit"`
	Description string      `json:"description" yaml:"description"`
}

// BuildCatalog walks the rows below the header and groups items into
// categories and sections. A row without cost and factor is a category when
// its label is one of categories, and a section otherwise. A zero cost or
// factor counts as missing.
func BuildCatalog(sheet *xlsx.Sheet, categories []string, title string) *Catalog {
	upper := cases.Upper(language.Und)
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[upper.String(strings.TrimSpace(c))] = true
	}

	cat := &Catalog{Title: title, Categories: []*Category{}}
	var (
		category *Category
		section  *CatalogSection
	)
	for row := NewLocator(sheet).HeaderRow() + 1; row <= sheet.MaxRow; row++ {
		cost := sheet.Cell(row, xlsx.ColCost).Effective()
		unit := sheet.Cell(row, xlsx.ColFactor).Effective()
		desc := strings.TrimSpace(sheet.Cell(row, xlsx.ColLabel).Effective().String())
		if desc == "" {
			continue
		}

		switch {
		case strings.Contains(desc, "Last Updated"):
			cat.LastUpdated = desc
		case notePattern.MatchString(desc):
			if section != nil {
				section.Notes = append(section.Notes, desc)
			}
		case cost.IsFalsy() && unit.IsFalsy() && known[upper.String(desc)]:
			category = &Category{Name: desc, Sections: []*CatalogSection{}}
			cat.Categories = append(cat.Categories, category)
			section = nil
		case cost.IsFalsy() && unit.IsFalsy():
			if category == nil {
				category = &Category{Name: desc, Sections: []*CatalogSection{}}
				cat.Categories = append(cat.Categories, category)
				continue
			}
			section = &CatalogSection{Name: desc, Items: []Item{}}
			category.Sections = append(category.Sections, section)
		default:
			if section == nil {
				if category == nil {
					category = &Category{Name: "Miscellaneous", Sections: []*CatalogSection{}}
					cat.Categories = append(cat.Categories, category)
				}
				section = &CatalogSection{Name: "Items", Items: []Item{}}
				category.Sections = append(category.Sections, section)
			}
			section.Items = append(section.Items, newItem(cost, unit, desc))
		}
	}
	return cat
}

func newItem(cost, unit xlsx.Value, desc string) Item {
	it := Item{Description: desc}
	if cost.Kind == xlsx.Number {
		it.Cost = cost.Number
	}
	if unit.IsFalsy() {
		return it
	}
	switch unit.Kind {
	case xlsx.Number:
		it.Unit = unit.Number
	case xlsx.String, xlsx.Error:
		if s := strings.TrimSpace(unit.Text); s != "" {
			it.Unit = s
		}
	case xlsx.Bool:
		it.Unit = unit.Bool
	}
	return it
}

// Format is a catalog serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Write encodes the catalog to w.
func (c *Catalog) Write(w io.Writer, f Format) error {
	switch f {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(c), "encode json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return errors.Wrap(enc.Close(), "encode yaml")
	}
	return errors.Errorf("unknown format %q", f)
}
