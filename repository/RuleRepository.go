package repository

import (
	"fmt"
	"path/filepath"
	"strings"

	"feasibility/models"
)

// LoadRuleFile picks the YAML or Excel reader from the file extension.
func LoadRuleFile(path string) (models.RuleSet, error) {
	var (
		rs  models.RuleSet
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		rs, err = LoadYAMLRuleSet(path)
	case ".xlsx":
		rs, err = LoadExcelRuleSet(path)
	default:
		return rs, fmt.Errorf("unsupported rule file type %q (want .yaml, .yml or .xlsx)", filepath.Ext(path))
	}
	if err != nil {
		return rs, err
	}
	if rs.Revision == "" {
		rs.Revision = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return rs, nil
}
