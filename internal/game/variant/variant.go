// Package variant loads simulation variant definitions from YAML and provides
// the built-in variant set.
package variant

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LegoCylon/automagic/internal/game/life"
)

// ErrVariantNotFound is returned by Lookup when no variant has the given name.
var ErrVariantNotFound = errors.New("variant not found")

// yamlVariantFile is the top-level YAML structure for variant files.
type yamlVariantFile struct {
	Variants []yamlVariant `yaml:"variants"`
}

// yamlVariant is the YAML representation of a variant.
type yamlVariant struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Players     *int     `yaml:"players"`
	Spells      []string `yaml:"spells"`
}

// Builtins returns the four variants profiled by default, in profiling order.
func Builtins() []life.Variant {
	return []life.Variant{
		{Name: "V0", Description: "heal and hurt", Spells: []string{"heal", "hurt"}, Players: 1},
		{Name: "V1", Description: "adds maim", Spells: []string{"heal", "hurt", "maim"}, Players: 1},
		{Name: "V2", Description: "adds rend", Spells: []string{"heal", "hurt", "maim", "rend"}, Players: 1},
		{Name: "V3", Description: "four players, heal and hurt", Spells: []string{"heal", "hurt"}, Players: 4},
	}
}

// LoadFromFile reads and validates a variant YAML file.
//
// Precondition: path must point to a readable YAML file.
// Postcondition: Returns validated variants or a non-nil error.
func LoadFromFile(path string) ([]life.Variant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading variant file %s: %w", path, err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses and validates variants from YAML bytes.
//
// Postcondition: Returns at least one variant with unique names, or an error.
func LoadFromBytes(data []byte) ([]life.Variant, error) {
	var file yamlVariantFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing variant YAML: %w", err)
	}
	if len(file.Variants) == 0 {
		return nil, errors.New("variant file defines no variants")
	}

	seen := make(map[string]bool, len(file.Variants))
	out := make([]life.Variant, 0, len(file.Variants))
	for i, yv := range file.Variants {
		v := convertYAMLVariant(yv)
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("validating variant %d (%q): %w", i, v.Name, err)
		}
		if seen[v.Name] {
			return nil, fmt.Errorf("duplicate variant name %q", v.Name)
		}
		seen[v.Name] = true
		out = append(out, v)
	}
	return out, nil
}

// LoadFromDir loads every *.yaml or *.yml file in dir, in directory order.
//
// Postcondition: Returns all variants with names unique across files, or the
// first error encountered.
func LoadFromDir(dir string) ([]life.Variant, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading variant directory %s: %w", dir, err)
	}

	var all []life.Variant
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		vs, err := LoadFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loading variants from %s: %w", name, err)
		}
		for _, v := range vs {
			if prev, dup := seen[v.Name]; dup {
				return nil, fmt.Errorf("variant %q defined in both %s and %s", v.Name, prev, name)
			}
			seen[v.Name] = name
			all = append(all, v)
		}
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no variant files found in %s", dir)
	}
	return all, nil
}

// Load reads variants from path, which may be a file or a directory. An empty
// path yields Builtins.
func Load(path string) ([]life.Variant, error) {
	if path == "" {
		return Builtins(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat variant path %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadFromDir(path)
	}
	return LoadFromFile(path)
}

// Lookup returns the variant called name.
func Lookup(variants []life.Variant, name string) (life.Variant, error) {
	for _, v := range variants {
		if v.Name == name {
			return v, nil
		}
	}
	return life.Variant{}, fmt.Errorf("%w: %q", ErrVariantNotFound, name)
}

// Select returns the variants named in names, in that order. An empty names
// slice selects every variant.
func Select(variants []life.Variant, names []string) ([]life.Variant, error) {
	if len(names) == 0 {
		return variants, nil
	}
	out := make([]life.Variant, 0, len(names))
	for _, n := range names {
		v, err := Lookup(variants, n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func convertYAMLVariant(yv yamlVariant) life.Variant {
	spells := make([]string, 0, len(yv.Spells))
	for _, s := range yv.Spells {
		spells = append(spells, strings.ToLower(strings.TrimSpace(s)))
	}
	players := 1
	if yv.Players != nil {
		players = *yv.Players
	}
	return life.Variant{
		Name:        strings.TrimSpace(yv.Name),
		Description: strings.TrimSpace(yv.Description),
		Spells:      spells,
		Players:     players,
	}
}
