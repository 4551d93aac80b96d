// Package subst applies one regular-expression substitution across a list of files.
package subst

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrUnknownGroup is wrapped by a PatternError when the replacement template
// references a group the pattern does not define.
var ErrUnknownGroup = errors.New("unknown capture group")

// PatternError reports a rule that cannot be compiled. Nothing is read or
// written when Compile returns one.
type PatternError struct {
	Pattern  string
	Template string
	Err      error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid substitution rule %q -> %q: %v", e.Pattern, e.Template, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Rule is a compiled search pattern plus a replacement template.
//
// Templates use Go's regexp expansion syntax: $1 or ${1} for numbered
// groups, ${name} for named groups and $$ for a literal dollar sign.
type Rule struct {
	pattern  *regexp.Regexp
	template string
}

// Compile compiles pattern and checks every group reference in template
// against it.
func Compile(pattern, template string) (*Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Template: template, Err: err}
	}
	if err := validateTemplate(re, template); err != nil {
		return nil, &PatternError{Pattern: pattern, Template: template, Err: err}
	}
	return &Rule{pattern: re, template: template}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern, template string) *Rule {
	rule, err := Compile(pattern, template)
	if err != nil {
		panic(err)
	}
	return rule
}

// Pattern returns the compiled search expression.
func (r *Rule) Pattern() *regexp.Regexp { return r.pattern }

// Template returns the replacement template.
func (r *Rule) Template() string { return r.template }

func (r *Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.pattern, r.template)
}

// Replace returns content with every non-overlapping match expanded through
// the template, and the number of matches.
func (r *Rule) Replace(content string) (string, int) {
	matches := r.pattern.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return content, 0
	}
	return r.pattern.ReplaceAllString(content, r.template), len(matches)
}

// validateTemplate walks template the same way regexp.Expand does and
// rejects references that would silently expand to nothing.
func validateTemplate(re *regexp.Regexp, template string) error {
	names := make(map[string]bool)
	for _, name := range re.SubexpNames() {
		if name != "" {
			names[name] = true
		}
	}

	t := template
	for len(t) > 0 {
		i := strings.IndexByte(t, '$')
		if i < 0 {
			break
		}
		t = t[i+1:]
		if strings.HasPrefix(t, "$") {
			t = t[1:]
			continue
		}
		name, num, rest, ok := extractRef(t)
		if !ok {
			// A lone '$' is copied literally.
			continue
		}
		t = rest
		if num >= 0 {
			if num > re.NumSubexp() {
				return fmt.Errorf("%w: $%s but pattern has %d groups", ErrUnknownGroup, name, re.NumSubexp())
			}
			continue
		}
		if !names[name] {
			return fmt.Errorf("%w: %q (write ${N} to follow a group number with text)", ErrUnknownGroup, name)
		}
	}
	return nil
}

// extractRef parses a group reference following a '$': name or {name}.
// num is the group index, or -1 for a named reference.
func extractRef(str string) (name string, num int, rest string, ok bool) {
	if str == "" {
		return "", 0, "", false
	}
	brace := false
	if str[0] == '{' {
		brace = true
		str = str[1:]
	}
	i := 0
	for i < len(str) {
		r, size := utf8.DecodeRuneInString(str[i:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		i += size
	}
	if i == 0 {
		return "", 0, "", false
	}
	name = str[:i]
	if brace {
		if i >= len(str) || str[i] != '}' {
			return "", 0, "", false
		}
		i++
	}

	num = 0
	for j := 0; j < len(name); j++ {
		if name[j] < '0' || name[j] > '9' || num >= 1e8 {
			num = -1
			break
		}
		num = num*10 + int(name[j]-'0')
	}
	// Leading zeros make it a name, as in regexp.Expand.
	if name[0] == '0' && len(name) > 1 {
		num = -1
	}
	return name, num, str[i:], true
}
