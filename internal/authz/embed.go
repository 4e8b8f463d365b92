package authz

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
)

//go:embed rules.yaml
var defaultRules []byte

// DefaultRules returns the rule table compiled into the binary.
func DefaultRules() (*RuleTable, error) {
	return LoadRules(bytes.NewReader(defaultRules))
}

// RulesFromFile loads a rule table from an external YAML file, falling back
// to the embedded table when path is empty.
func RulesFromFile(path string) (*RuleTable, error) {
	if path == "" {
		return DefaultRules()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rule table %s: %w", path, err)
	}
	defer f.Close()
	return LoadRules(f)
}
