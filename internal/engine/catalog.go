package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/koustreak/dbspec/internal/errs"
)

// Params are the values a message template can reference: named groups
// captured from the driver message, layered over connection context.
type Params map[string]string

// Template keys shared by all catalogs.
const (
	KeyHostname = "hostname"
	KeyPort     = "port"
	KeyUsername = "username"
	KeyDatabase = "database"
)

// Get returns the value for key, or "" when absent.
func (p Params) Get(key string) string {
	return p[key]
}

// Port parses the port parameter. ok is false when it is missing or not an
// integer.
func (p Params) Port() (port int, ok bool) {
	v, found := p[KeyPort]
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// PortText renders the port parameter for a message. Digits too large for an
// int are kept as captured rather than collapsing to 0; a missing or
// non-numeric port renders as 0.
func (p Params) PortText() string {
	if n, ok := p.Port(); ok {
		return strconv.Itoa(n)
	}
	v := p[KeyPort]
	if v == "" || strings.Trim(v, "0123456789") != "" {
		return "0"
	}
	if v = strings.TrimLeft(v, "0"); v == "" {
		return "0"
	}
	return v
}

// merge returns a fresh map with over taking precedence over base.
func merge(base, over Params) Params {
	out := make(Params, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Template renders a user-facing message from params.
type Template func(Params) string

// Rule is one catalog entry.
type Rule struct {
	Pattern *regexp.Regexp
	Type    errs.ErrorType
	Message Template
	Invalid []string
	Issues  []int // nil means the default codes for Type
}

// Catalog is an ordered, read-only list of rules for one engine.
// The first rule whose pattern matches decides the diagnosis.
type Catalog struct {
	engineName string
	rules      []Rule
}

// NewCatalog builds a catalog. Rules keep the order given.
func NewCatalog(engineName string, rules ...Rule) *Catalog {
	cp := make([]Rule, len(rules))
	copy(cp, rules)
	return &Catalog{engineName: engineName, rules: cp}
}

// EngineName is the display name stamped on every produced error.
func (c *Catalog) EngineName() string {
	return c.engineName
}

// Rules returns a copy of the rules in priority order.
func (c *Catalog) Rules() []Rule {
	cp := make([]Rule, len(c.rules))
	copy(cp, c.rules)
	return cp
}

// Extract matches raw against the catalog and returns at most one error.
// It returns nil when no rule matches.
func (c *Catalog) Extract(raw string, connParams Params) []errs.Error {
	for _, r := range c.rules {
		loc := r.Pattern.FindStringSubmatchIndex(raw)
		if loc == nil {
			continue
		}
		params := merge(connParams, captured(r.Pattern, raw, loc))
		return []errs.Error{*c.build(r, params)}
	}
	return nil
}

func (c *Catalog) build(r Rule, params Params) *errs.Error {
	extra := errs.Extra{EngineName: c.engineName}
	if len(r.Invalid) > 0 {
		extra.Invalid = append([]string(nil), r.Invalid...)
	}
	if r.Issues != nil {
		extra.IssueCodes = errs.Issues(r.Issues...)
	}
	return errs.New(r.Type, r.Message(params), extra)
}

func captured(re *regexp.Regexp, raw string, loc []int) Params {
	out := make(Params)
	for i, name := range re.SubexpNames() {
		// Unmatched optional groups must not shadow context values.
		if name == "" || loc[2*i] < 0 {
			continue
		}
		out[name] = raw[loc[2*i]:loc[2*i+1]]
	}
	return out
}
