package authz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleTable_Match_FirstMatchWins(t *testing.T) {
	table := NewRuleTable([]EndpointRule{
		{Method: "*", Pattern: "/api/stores/*/copypoints/**", Module: "COPYPOINT_MANAGEMENT"},
		{Method: "*", Pattern: "/api/stores/**", Module: "STORE_MANAGEMENT"},
	})

	rule := table.Match("GET", "/api/stores/5/copypoints/12")
	require.NotNil(t, rule)
	assert.Equal(t, "COPYPOINT_MANAGEMENT", rule.Module)

	rule = table.Match("GET", "/api/stores/5/settings")
	require.NotNil(t, rule)
	assert.Equal(t, "STORE_MANAGEMENT", rule.Module)
}

func TestRuleTable_Match_MethodScoping(t *testing.T) {
	table := NewRuleTable([]EndpointRule{
		{Method: "GET", Pattern: "/api/payment-methods", Public: true},
		{Method: "*", Pattern: "/api/payment-methods", Module: "STORE_MANAGEMENT"},
	})

	rule := table.Match("GET", "/api/payment-methods")
	require.NotNil(t, rule)
	assert.True(t, rule.Public)

	rule = table.Match("POST", "/api/payment-methods")
	require.NotNil(t, rule)
	assert.False(t, rule.Public)
	assert.Equal(t, "STORE_MANAGEMENT", rule.Module)
}

func TestRuleTable_Match_NoRule(t *testing.T) {
	table := NewRuleTable([]EndpointRule{
		{Method: "*", Pattern: "/api/stores/**", Module: "STORE_MANAGEMENT"},
	})
	assert.Nil(t, table.Match("GET", "/api/widgets/99"))
}

func TestMatchSegments(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/api/stores", "/api/stores", true},
		{"/api/stores", "/api/stores/5", false},
		{"/api/stores/*", "/api/stores/5", true},
		{"/api/stores/*", "/api/stores/5/copypoints", false},
		{"/api/stores/**", "/api/stores", true},
		{"/api/stores/**", "/api/stores/5/copypoints/12", true},
		{"/api/stores/*/copypoints/*", "/api/stores/5/copypoints/12", true},
		{"/api/stores/*/copypoints/*", "/api/stores/5/copypoints", false},
		{"/**", "/anything/at/all", true},
		{"/**", "/", true},
	}
	for _, tt := range tests {
		got := matchSegments(splitPath(tt.pattern), splitPath(tt.path))
		assert.Equal(t, tt.want, got, "pattern %s against %s", tt.pattern, tt.path)
	}
}

func TestLoadRules_MethodPrefix(t *testing.T) {
	table, err := LoadRules(strings.NewReader(`
rules:
  - pattern: "POST:/api/auth/sign-in"
    public: true
  - pattern: "/api/stores/*/reports/**"
    module: reports
    action: read
`))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	rule := table.Match("POST", "/api/auth/sign-in")
	require.NotNil(t, rule)
	assert.True(t, rule.Public)
	assert.Nil(t, table.Match("GET", "/api/auth/sign-in"))

	rule = table.Match("DELETE", "/api/stores/5/reports/daily")
	require.NotNil(t, rule)
	assert.Equal(t, "REPORTS", rule.Module)
	assert.Equal(t, ActionRead, rule.Action)
}

func TestLoadRules_RejectsNonPublicRuleWithoutModule(t *testing.T) {
	_, err := LoadRules(strings.NewReader(`
rules:
  - pattern: "/api/stores/**"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a module")
}

func TestLoadRules_RejectsUnknownAction(t *testing.T) {
	_, err := LoadRules(strings.NewReader(`
rules:
  - pattern: "/api/stores/**"
    module: SALES
    action: EXECUTE
`))
	require.Error(t, err)
}

func TestLoadRules_Empty(t *testing.T) {
	_, err := LoadRules(strings.NewReader("rules: []\n"))
	require.Error(t, err)
}

func TestDefaultRules(t *testing.T) {
	table, err := DefaultRules()
	require.NoError(t, err)
	assert.Greater(t, table.Len(), 0)

	// The fixed public-exempt list must be present in the embedded table.
	public := []struct{ method, path string }{
		{"POST", "/api/auth/sign-in"},
		{"POST", "/api/auth/sign-up"},
		{"GET", "/api/auth/my-profile"},
		{"POST", "/api/auth/logout"},
		{"GET", "/api/payment-methods"},
		{"POST", "/api/users"},
		{"POST", "/api/stores"},
		{"GET", "/api/stores"},
	}
	for _, p := range public {
		rule := table.Match(p.method, p.path)
		require.NotNil(t, rule, "%s %s", p.method, p.path)
		assert.True(t, rule.Public, "%s %s", p.method, p.path)
	}
}

func TestAction_Covers(t *testing.T) {
	assert.True(t, ActionFull.Covers(ActionRead))
	assert.True(t, ActionFull.Covers(ActionWrite))
	assert.True(t, ActionFull.Covers(ActionDelete))
	assert.True(t, ActionRead.Covers(ActionRead))
	assert.False(t, ActionRead.Covers(ActionWrite))
	assert.False(t, ActionWrite.Covers(ActionDelete))
	assert.True(t, ActionRead.Covers(""))
}

func TestEndpointRule_Matches(t *testing.T) {
	rule := EndpointRule{Method: "GET", Pattern: "/api/stores/*"}
	assert.True(t, rule.Matches("GET", "/api/stores/5"))
	assert.False(t, rule.Matches("POST", "/api/stores/5"))
	assert.False(t, rule.Matches("GET", "/api/stores/5/extra"))
}
