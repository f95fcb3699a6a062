// Package validation applies named rule sets to submitted attribute maps and
// reports field-scoped failures as values. Supported rules: required, max:N,
// email, boolean, confirmed, unique:<table>,<column> and
// uniquepair:<table>,<column>,<scope-column>.
package validation

import "strings"

// RuleSet maps an input field name to its ordered rule expressions.
type RuleSet map[string][]string

// Clone returns a deep copy so derived rule sets can be edited freely.
func (rs RuleSet) Clone() RuleSet {
	out := make(RuleSet, len(rs))
	for field, rules := range rs {
		out[field] = append([]string(nil), rules...)
	}
	return out
}

// DropRule removes every rule on field whose name (the part before any colon)
// equals name. Removing the last rule removes the field entry.
func (rs RuleSet) DropRule(field, name string) {
	rules, ok := rs[field]
	if !ok {
		return
	}
	kept := rules[:0]
	for _, rule := range rules {
		if ruleName(rule) != name {
			kept = append(kept, rule)
		}
	}
	if len(kept) == 0 {
		delete(rs, field)
		return
	}
	rs[field] = kept
}

// ForUpdate derives partial-update rules: required is dropped for fields the
// client did not submit, since absent fields keep their stored values.
func (rs RuleSet) ForUpdate(attrs map[string]string) RuleSet {
	out := rs.Clone()
	for field := range out {
		if _, submitted := attrs[field]; !submitted {
			out.DropRule(field, "required")
		}
	}
	return out
}

func ruleName(rule string) string {
	if i := strings.IndexByte(rule, ':'); i >= 0 {
		return rule[:i]
	}
	return rule
}

func ruleParams(rule string) []string {
	i := strings.IndexByte(rule, ':')
	if i < 0 || i == len(rule)-1 {
		return nil
	}
	return strings.Split(rule[i+1:], ",")
}
