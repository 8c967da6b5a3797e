package text

import (
	"fmt"
	"regexp"
	"strconv"

	"gitlab.com/tozd/go/errors"
)

// patternFlags makes . match newlines and ^/$ match at line boundaries
const patternFlags = "(?ms)"

// RuleDefinitionError reports a malformed rule. It is raised at compile time,
// before any content is touched.
type RuleDefinitionError struct {
	Order  int
	Name   string
	Reason string
	Err    error
}

func (e *RuleDefinitionError) Error() string {
	msg := fmt.Sprintf("rule %d", e.Order)
	if e.Name != "" {
		msg += fmt.Sprintf(" (%s)", e.Name)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RuleDefinitionError) Unwrap() error {
	return e.Err
}

func definitionError(order int, def ReplacementRule, reason string, err error) error {
	return errors.WithStack(&RuleDefinitionError{
		Order:  order,
		Name:   def.Name,
		Reason: reason,
		Err:    err,
	})
}

// Compile validates a rule definition and builds a Rule at the given position
func Compile(order int, def ReplacementRule) (*Rule, error) {
	switch {
	case def.Literal != "" && def.Pattern != "":
		return nil, definitionError(order, def, "literal and pattern are mutually exclusive", nil)
	case def.Literal == "" && def.Pattern == "":
		return nil, definitionError(order, def, "literal or pattern is required", nil)
	}

	r := &Rule{
		order:   order,
		name:    def.Name,
		replace: def.Replace,
	}
	if r.name == "" {
		r.name = fmt.Sprintf("rule-%d", order)
	}

	if def.Literal != "" {
		r.mode = ModeLiteral
		r.literal = def.Literal
		return r, nil
	}

	re, err := regexp.Compile(patternFlags + def.Pattern)
	if err != nil {
		return nil, definitionError(order, def, "compiling pattern", err)
	}
	if err := checkTemplate(re, def.Replace); err != nil {
		return nil, definitionError(order, def, "checking replacement", err)
	}
	r.mode = ModePattern
	r.re = re
	return r, nil
}

// checkTemplate rejects references to groups the pattern does not define,
// which regexp would otherwise expand to an empty string.
func checkTemplate(re *regexp.Regexp, tmpl string) error {
	names := make(map[string]bool)
	for _, n := range re.SubexpNames() {
		if n != "" {
			names[n] = true
		}
	}
	for _, ref := range templateRefs(tmpl) {
		if num, err := strconv.Atoi(ref); err == nil {
			if num > re.NumSubexp() {
				return errors.Errorf("reference $%s but pattern has %d groups", ref, re.NumSubexp())
			}
			continue
		}
		if !names[ref] {
			return errors.Errorf("reference ${%s} to unknown group", ref)
		}
	}
	return nil
}

// templateRefs lists the group names referenced by a regexp.Expand template,
// following the same $name / ${name} / $$ rules.
func templateRefs(tmpl string) []string {
	var refs []string
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '$' || i+1 >= len(tmpl) {
			continue
		}
		rest := tmpl[i+1:]
		if rest[0] == '$' {
			i++
			continue
		}
		brace := rest[0] == '{'
		if brace {
			rest = rest[1:]
		}
		n := 0
		for n < len(rest) && isNameByte(rest[n]) {
			n++
		}
		if n == 0 {
			continue
		}
		if brace {
			if n >= len(rest) || rest[n] != '}' {
				continue
			}
			i += n + 2
		} else {
			i += n
		}
		refs = append(refs, rest[:n])
	}
	return refs
}

func isNameByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// SimpleTextReplacer implements TextReplacer by folding rules over content in order
type SimpleTextReplacer struct {
	rules []*Rule
}

// NewSimpleTextReplacer compiles defs in order. The first malformed definition
// is returned as a *RuleDefinitionError.
func NewSimpleTextReplacer(defs []ReplacementRule) (*SimpleTextReplacer, error) {
	rules := make([]*Rule, 0, len(defs))
	for i, def := range defs {
		r, err := Compile(i, def)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return &SimpleTextReplacer{rules: rules}, nil
}

// Rules returns the compiled rules in application order
func (r *SimpleTextReplacer) Rules() []*Rule {
	out := make([]*Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Apply runs every rule in order; each rule sees the previous rule's output.
func (r *SimpleTextReplacer) Apply(content string) *ReplacementResult {
	result := &ReplacementResult{
		OriginalContent: content,
		Counts:          make([]RuleCount, 0, len(r.rules)),
	}

	current := content
	for _, rule := range r.rules {
		var n int
		current, n = rule.Apply(current)
		result.ReplacementCount += n
		result.Counts = append(result.Counts, RuleCount{Rule: rule, Count: n})
	}

	result.ModifiedContent = current
	result.WasModified = current != content
	return result
}

// ValidateRules compiles every definition and reports the first error
func ValidateRules(defs []ReplacementRule) error {
	_, err := NewSimpleTextReplacer(defs)
	return err
}
