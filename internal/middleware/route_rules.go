package middleware

import (
	"strings"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
)

// RouteRule declares that requests matching PathPattern and Method require a
// bearer credential carrying one of Roles. A rule with no roles is inert.
type RouteRule struct {
	// PathPattern matches the request path exactly, or as a prefix when it
	// ends with "*".
	PathPattern string
	// Method matches case-insensitively; "*" matches every method.
	Method string
	Roles  []domain.Role
}

// Matches reports whether the rule applies to the given path and method.
func (r RouteRule) Matches(path string, method string) bool {
	if len(r.Roles) == 0 {
		return false
	}
	if r.Method != "*" && !strings.EqualFold(r.Method, method) {
		return false
	}
	if strings.HasSuffix(r.PathPattern, "*") {
		return strings.HasPrefix(path, strings.TrimSuffix(r.PathPattern, "*"))
	}
	return path == r.PathPattern
}

// Allows reports whether the role satisfies the rule.
func (r RouteRule) Allows(role domain.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// matchRule returns the first rule applying to the request, if any.
func matchRule(rules []RouteRule, path string, method string) (RouteRule, bool) {
	for _, rule := range rules {
		if rule.Matches(path, method) {
			return rule, true
		}
	}
	return RouteRule{}, false
}
