package auth

import (
	"net/http"
	"strings"
)

// Rule is a static authorization entry: a URL pattern, an optional HTTP
// method, and the authorities allowed through. Patterns are ant-style:
// "*" matches one path segment, a trailing "**" matches any remainder.
type Rule struct {
	Pattern     string
	Method      string
	Authorities []string
	Public      bool
}

// Decision is the outcome of evaluating a request against the rule table.
type Decision int

const (
	Allow Decision = iota
	// DenyUnauthenticated: no principal on a non-public route (401-class).
	DenyUnauthenticated
	// DenyForbidden: authenticated but lacking every required authority
	// (403-class).
	DenyForbidden
)

// Policy is an immutable ordered rule table, built once at startup and
// evaluated fresh per request. Method-specific rules are checked before
// blanket pattern rules; the first match decides. Requests matching no rule
// must be authenticated but need no particular authority.
type Policy struct {
	methodRules  []Rule
	patternRules []Rule
}

func NewPolicy(rules ...Rule) *Policy {
	p := &Policy{}
	for _, r := range rules {
		r.Authorities = append([]string(nil), r.Authorities...)
		if r.Method != "" {
			r.Method = strings.ToUpper(r.Method)
			p.methodRules = append(p.methodRules, r)
		} else {
			p.patternRules = append(p.patternRules, r)
		}
	}
	return p
}

// Decide evaluates a request. principal is nil when the token verifier
// established no identity.
func (p *Policy) Decide(method, path string, principal *Principal) Decision {
	method = strings.ToUpper(method)
	for _, r := range p.methodRules {
		if r.Method == method && matchPattern(r.Pattern, path) {
			return decide(r, principal)
		}
	}
	for _, r := range p.patternRules {
		if matchPattern(r.Pattern, path) {
			return decide(r, principal)
		}
	}
	if principal == nil {
		return DenyUnauthenticated
	}
	return Allow
}

func decide(r Rule, principal *Principal) Decision {
	if r.Public {
		return Allow
	}
	if principal == nil {
		return DenyUnauthenticated
	}
	if len(r.Authorities) == 0 {
		return Allow
	}
	// OR semantics: any one matching authority suffices.
	if principal.HasAny(r.Authorities...) {
		return Allow
	}
	return DenyForbidden
}

// PolicyErrorHandler writes the response for a denied request.
type PolicyErrorHandler func(http.ResponseWriter, *http.Request, Decision)

// Handler enforces the policy. It must run after the token verifier so the
// principal, when present, is already in the request context.
func (p *Policy) Handler(next http.Handler, onDeny ...PolicyErrorHandler) http.Handler {
	handler := defaultPolicyErrorHandler
	if len(onDeny) > 0 && onDeny[0] != nil {
		handler = onDeny[0]
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var principal *Principal
		if p2, ok := PrincipalFromContext(r.Context()); ok {
			principal = &p2
		}
		if d := p.Decide(r.Method, r.URL.Path, principal); d != Allow {
			handler(w, r, d)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func defaultPolicyErrorHandler(w http.ResponseWriter, _ *http.Request, d Decision) {
	if d == DenyForbidden {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func matchPattern(pattern, path string) bool {
	if pattern == path {
		return true
	}
	patSegs := splitPath(pattern)
	pathSegs := splitPath(path)

	for i, seg := range patSegs {
		if seg == "**" {
			// Only supported as the trailing segment.
			return i == len(patSegs)-1
		}
		if i >= len(pathSegs) {
			return false
		}
		if seg != "*" && seg != pathSegs[i] {
			return false
		}
	}
	return len(patSegs) == len(pathSegs)
}

func splitPath(s string) []string {
	s = strings.Trim(s, "/")
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}
