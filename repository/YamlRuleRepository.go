package repository

import (
	"fmt"
	"io"
	"os"

	"feasibility/models"

	"gopkg.in/yaml.v3"
)

// LoadYAMLRuleSet reads one rule set revision from a YAML file.
func LoadYAMLRuleSet(path string) (models.RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.RuleSet{}, fmt.Errorf("opening rule file: %w", err)
	}
	defer f.Close()
	return ReadYAMLRuleSet(f)
}

func ReadYAMLRuleSet(r io.Reader) (models.RuleSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var rs models.RuleSet
	if err := dec.Decode(&rs); err != nil {
		return models.RuleSet{}, fmt.Errorf("parsing rule YAML: %w", err)
	}
	return rs.WithDefaults(), nil
}

func WriteYAMLRuleSet(w io.Writer, rs models.RuleSet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rs); err != nil {
		return fmt.Errorf("encoding rule YAML: %w", err)
	}
	return enc.Close()
}
