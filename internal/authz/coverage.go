package authz

import (
	"fmt"
	"strings"
)

// Route is one registered HTTP route, as reported by the router.
type Route struct {
	Method  string
	Pattern string
}

// CheckCoverage cross-references the router's route table against the rule
// table. Every route must be matched by some rule; a gap means the endpoint
// would be unreachable by any identity at runtime, which is a configuration
// defect surfaced at startup rather than request time.
func (t *RuleTable) CheckCoverage(routes []Route) error {
	var uncovered []string
	for _, route := range routes {
		probe := probePath(route.Pattern)
		if t.Match(route.Method, probe) == nil {
			uncovered = append(uncovered, fmt.Sprintf("%s %s", route.Method, route.Pattern))
		}
	}
	if len(uncovered) > 0 {
		return fmt.Errorf("endpoint rule table does not cover: %s", strings.Join(uncovered, ", "))
	}
	return nil
}

// probePath converts a chi route pattern into a concrete sample path so it
// can be run through the matcher. Path parameters become numeric segments,
// matching how tenant ids appear in real requests.
func probePath(pattern string) string {
	segments := splitPath(pattern)
	for i, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			segments[i] = "1"
		} else if seg == "*" {
			segments[i] = "probe"
		}
	}
	return "/" + strings.Join(segments, "/")
}
