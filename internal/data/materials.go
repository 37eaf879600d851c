package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Material is a named surface preset applied to shapes at spawn time.
type Material struct {
	Name       string  `yaml:"name"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Density    float64 `yaml:"density"`
}

type materialFile struct {
	Materials []Material `yaml:"materials"`
}

// MaterialTable holds all material presets indexed by name.
type MaterialTable struct {
	byName map[string]Material
}

// LoadMaterials reads material presets from a YAML file.
func LoadMaterials(path string) (*MaterialTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read materials %s: %w", path, err)
	}
	var file materialFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse materials %s: %w", path, err)
	}
	t := &MaterialTable{byName: make(map[string]Material, len(file.Materials))}
	for _, m := range file.Materials {
		if m.Name == "" {
			return nil, fmt.Errorf("materials %s: entry without a name", path)
		}
		t.byName[m.Name] = m
	}
	return t, nil
}

// EmptyMaterials returns a table with no presets; lookups all miss.
func EmptyMaterials() *MaterialTable {
	return &MaterialTable{byName: map[string]Material{}}
}

func (t *MaterialTable) Get(name string) (Material, bool) {
	m, ok := t.byName[name]
	return m, ok
}

func (t *MaterialTable) Count() int { return len(t.byName) }
