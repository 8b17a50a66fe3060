package pricelist

import (
	_ "embed"
	"encoding/hex"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed default_manifest.yaml
var defaultManifest []byte

// ErrInvalidDirective is returned for manifest entries that are neither a
// phase nor a section.
var ErrInvalidDirective = errors.New("invalid directive")

// Directive is one entry of a region's ordering: a Phase or a Section.
type Directive interface {
	directive()
	String() string
}

// Phase is a synthetic header row grouping the sections that follow it.
type Phase struct {
	Name string
}

// Section copies the rows of a named source section.
type Section struct {
	Name string
}

func (Phase) directive()   {}
func (Section) directive() {}

func (p Phase) String() string   { return "phase " + p.Name }
func (s Section) String() string { return "section " + s.Name }

// Directives is an ordered directive list. In YAML each entry is a mapping
// with exactly one of the keys "phase" or "section".
type Directives []Directive

func (d *Directives) UnmarshalYAML(node *yaml.Node) error {
	var raw []struct {
		Phase   string `yaml:"phase"`
		Section string `yaml:"section"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	out := make(Directives, 0, len(raw))
	for i, r := range raw {
		phase, section := strings.TrimSpace(r.Phase), strings.TrimSpace(r.Section)
		switch {
		case phase != "" && section == "":
			out = append(out, Phase{Name: phase})
		case section != "" && phase == "":
			out = append(out, Section{Name: section})
		default:
			return errors.Wrapf(ErrInvalidDirective, "entry %d: want exactly one of phase or section", i+1)
		}
	}
	*d = out
	return nil
}

func (d Directives) MarshalYAML() (interface{}, error) {
	out := make([]map[string]string, 0, len(d))
	for _, dir := range d {
		switch v := dir.(type) {
		case Phase:
			out = append(out, map[string]string{"phase": v.Name})
		case Section:
			out = append(out, map[string]string{"section": v.Name})
		}
	}
	return out, nil
}

// Region is a top-level category of the price list and the order its content
// is emitted in.
//
// Phase headers are styled after the region's category row. When that row is
// missing, the first row found among PhaseFallback is used instead; with no
// row at all the region's phase headers are skipped.
type Region struct {
	Category      string     `yaml:"category"`
	PhaseColor    string     `yaml:"phase_color"` // RRGGBB fill of phase headers
	PhaseFallback []string   `yaml:"phase_fallback,omitempty"`
	Directives    Directives `yaml:"directives"`
}

// Manifest is the static configuration of a reorganization run.
type Manifest struct {
	Source        string   `yaml:"source"`
	Output        string   `yaml:"output"`
	Sheet         string   `yaml:"sheet"`
	Title         string   `yaml:"title"`
	CatalogTitle  string   `yaml:"catalog_title"`
	MinLabelWidth float64  `yaml:"min_label_width"`
	Regions       []Region `yaml:"regions"`
}

// Categories returns the category labels of all regions, in order.
func (m *Manifest) Categories() []string {
	out := make([]string, 0, len(m.Regions))
	for _, r := range m.Regions {
		out = append(out, r.Category)
	}
	return out
}

// DefaultManifest returns the built-in manifest.
func DefaultManifest() *Manifest {
	m, err := ParseManifest(defaultManifest)
	if err != nil {
		panic(errors.Wrap(err, "built-in manifest"))
	}
	return m
}

// LoadManifest reads a manifest from a YAML file.
func LoadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read manifest %q", path)
	}
	m, err := ParseManifest(b)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest %q", path)
	}
	return m, nil
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(b []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.MinLabelWidth <= 0 {
		m.MinLabelWidth = 60
	}
	return &m, nil
}

// Validate checks that the title is a usable sheet name and that every region
// names a category and a usable color.
func (m *Manifest) Validate() error {
	if len(m.Regions) == 0 {
		return errors.New("manifest has no regions")
	}
	if err := validSheetTitle(m.Title); err != nil {
		return errors.Wrapf(err, "title %q", m.Title)
	}
	for i, r := range m.Regions {
		if strings.TrimSpace(r.Category) == "" {
			return errors.Errorf("region %d: missing category", i+1)
		}
		if c := strings.TrimPrefix(r.PhaseColor, "#"); len(c) != 6 || !isHex(c) {
			return errors.Errorf("region %q: phase_color %q is not RRGGBB", r.Category, r.PhaseColor)
		}
	}
	return nil
}

func isHex(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil
}

// maxSheetTitle is the longest worksheet name Excel accepts.
const maxSheetTitle = 31

func validSheetTitle(title string) error {
	if n := utf8.RuneCountInString(title); n > maxSheetTitle {
		return errors.Errorf("sheet title has %d characters, at most %d allowed", n, maxSheetTitle)
	}
	if i := strings.IndexAny(title, `[]:*?/\`); i >= 0 {
		return errors.Errorf("sheet title contains %q", title[i])
	}
	if strings.HasPrefix(title, "'") || strings.HasSuffix(title, "'") {
		return errors.New("sheet title starts or ends with an apostrophe")
	}
	return nil
}
