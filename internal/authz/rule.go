package authz

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Action is the access level an endpoint rule demands. The minimal decision
// collapses to module possession, but FULL must stay strictly more permissive
// than the narrower actions.
type Action string

const (
	ActionRead   Action = "READ"
	ActionWrite  Action = "WRITE"
	ActionDelete Action = "DELETE"
	ActionFull   Action = "FULL"
)

// Covers reports whether holding a grants access demanded as required.
func (a Action) Covers(required Action) bool {
	if required == "" || a == required {
		return true
	}
	return a == ActionFull
}

// EndpointRule maps a method and path pattern to the module (and action)
// needed to call it. Pattern segments: literals match exactly, "*" matches
// exactly one segment, "**" matches zero or more trailing segments.
type EndpointRule struct {
	Method  string
	Pattern string
	Module  string
	Action  Action
	Public  bool
}

// Matches reports whether the rule applies to the given method and path.
func (r *EndpointRule) Matches(method, path string) bool {
	if !methodMatches(r.Method, method) {
		return false
	}
	return matchSegments(splitPath(r.Pattern), splitPath(path))
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, path []string) bool {
	for i, seg := range pattern {
		if seg == "**" {
			return true
		}
		if i >= len(path) {
			return false
		}
		if seg == "*" || seg == path[i] {
			continue
		}
		return false
	}
	return len(pattern) == len(path)
}

// RuleTable is an ordered endpoint rule list. First match wins, so specific
// patterns must be registered before broader catch-alls. Built once at
// startup and read-only afterwards, which makes unsynchronized concurrent
// reads safe.
type RuleTable struct {
	rules []EndpointRule
}

func NewRuleTable(rules []EndpointRule) *RuleTable {
	copied := make([]EndpointRule, len(rules))
	copy(copied, rules)
	return &RuleTable{rules: copied}
}

// Match returns the first rule matching the method and path, or nil when no
// rule applies. Callers must treat a nil result as fail closed.
func (t *RuleTable) Match(method, path string) *EndpointRule {
	for i := range t.rules {
		r := &t.rules[i]
		if !methodMatches(r.Method, method) {
			continue
		}
		if matchSegments(splitPath(r.Pattern), splitPath(path)) {
			matched := *r
			return &matched
		}
	}
	return nil
}

func methodMatches(ruleMethod, method string) bool {
	return ruleMethod == "" || ruleMethod == "*" || strings.EqualFold(ruleMethod, method)
}

// Len returns the number of registered rules.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

type ruleFile struct {
	Rules []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	Pattern string `yaml:"pattern"`
	Module  string `yaml:"module"`
	Action  string `yaml:"action"`
	Public  bool   `yaml:"public"`
}

// LoadRules parses a YAML rule table. Pattern strings may carry a "METHOD:"
// prefix to scope the rule to one HTTP verb; without it the rule applies to
// every verb.
func LoadRules(r io.Reader) (*RuleTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading rule table: %w", err)
	}

	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rule table: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rule table is empty")
	}

	rules := make([]EndpointRule, 0, len(f.Rules))
	for i, entry := range f.Rules {
		rule, err := parseRule(entry)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return NewRuleTable(rules), nil
}

func parseRule(entry ruleEntry) (EndpointRule, error) {
	pattern := strings.TrimSpace(entry.Pattern)
	if pattern == "" {
		return EndpointRule{}, fmt.Errorf("pattern is required")
	}

	method := "*"
	if idx := strings.Index(pattern, ":"); idx > 0 && !strings.Contains(pattern[:idx], "/") {
		method = strings.ToUpper(pattern[:idx])
		pattern = pattern[idx+1:]
	}
	if !strings.HasPrefix(pattern, "/") {
		return EndpointRule{}, fmt.Errorf("pattern %q must start with /", pattern)
	}

	action := Action(strings.ToUpper(strings.TrimSpace(entry.Action)))
	switch action {
	case "", ActionRead, ActionWrite, ActionDelete, ActionFull:
	default:
		return EndpointRule{}, fmt.Errorf("unknown action %q", entry.Action)
	}

	if !entry.Public && entry.Module == "" {
		return EndpointRule{}, fmt.Errorf("pattern %q: non-public rule needs a module", pattern)
	}

	return EndpointRule{
		Method:  method,
		Pattern: pattern,
		Module:  strings.ToUpper(strings.TrimSpace(entry.Module)),
		Action:  action,
		Public:  entry.Public,
	}, nil
}
