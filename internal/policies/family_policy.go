package policies

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"python-versions/internal/ports"
	"python-versions/internal/types"
)

// DefaultFamilyRules is the ruleset used when no rules file is configured.
// Order matters: the first matching rule decides.
var DefaultFamilyRules = []types.FamilyRule{
	{Match: "python-rpm-macros", Family: "none"},
	{Match: "python-srpm-macros", Family: "none"},
	{Match: "deb:python-is-python3", Family: "3"},
	{Match: "deb:python-is-python2", Family: "2"},
	{Match: "rpm:python-unversioned-command", Family: "3"},
	{Match: "rpm:python(abi)", Version: "< 3", Family: "2"},
	{Match: "rpm:python(abi)", Version: ">= 3", Family: "3"},
	{Match: "/usr/bin/python", Family: "2"},
	{Match: "/usr/bin/python2*", Family: "2"},
	{Match: "/usr/bin/python3*", Family: "3"},
	{Match: "libpython2*", Family: "2"},
	{Match: "libpython3*", Family: "3"},
	{Match: "python2*", Family: "2"},
	{Match: "python3*", Family: "3"},
	{Match: "python", Family: "2"},
	{Match: "python-*", Family: "2"},
}

type FamilyPolicy struct {
	Rules          []types.FamilyRule
	compiled       []compiledRule
	exactByFormat  map[types.PackageFormat]map[string][]int
	exactAny       map[string][]int
	prefixByFormat map[types.PackageFormat][]prefixPattern
	prefixAny      []prefixPattern
	regexByFormat  map[types.PackageFormat][]regexPattern
	regexAny       []regexPattern
	wildByFormat   map[types.PackageFormat][]int
	wildAny        []int
}

type compiledRule struct {
	family     types.VersionFamily
	constraint *versionConstraint
}

func NewFamilyPolicy(rules []types.FamilyRule) (FamilyPolicy, error) {
	policy := FamilyPolicy{Rules: append([]types.FamilyRule(nil), rules...)}
	if err := policy.compile(); err != nil {
		return FamilyPolicy{}, err
	}
	return policy, nil
}

// MatchFamily classifies a requirement string. Alternatives of a Debian
// requirement group are tried in order; the first one matched by any rule
// decides. A "none" rule decides without a family.
func (p FamilyPolicy) MatchFamily(format types.PackageFormat, requirement string) (types.VersionFamily, bool) {
	for _, spec := range parseRequirement(format, requirement) {
		family, decided := p.matchSpec(format, spec)
		if !decided {
			continue
		}
		return family, family != types.FamilyNone
	}
	return types.FamilyNone, false
}

func (p FamilyPolicy) matchSpec(format types.PackageFormat, spec requirementSpec) (types.VersionFamily, bool) {
	for _, idx := range p.candidates(format, spec.Name) {
		rule := p.compiled[idx]
		if rule.constraint != nil && !rule.constraint.satisfies(format, spec.Version) {
			continue
		}
		return rule.family, true
	}
	return types.FamilyNone, false
}

// candidates returns the indexes of every rule whose pattern matches name,
// lowest index first.
func (p FamilyPolicy) candidates(format types.PackageFormat, name string) []int {
	var out []int
	out = append(out, p.exactByFormat[format][name]...)
	out = append(out, p.exactAny[name]...)
	for _, entry := range p.prefixByFormat[format] {
		if strings.HasPrefix(name, entry.prefix) {
			out = append(out, entry.ruleIndex)
		}
	}
	for _, entry := range p.prefixAny {
		if strings.HasPrefix(name, entry.prefix) {
			out = append(out, entry.ruleIndex)
		}
	}
	for _, entry := range p.regexByFormat[format] {
		if entry.re.MatchString(name) {
			out = append(out, entry.ruleIndex)
		}
	}
	for _, entry := range p.regexAny {
		if entry.re.MatchString(name) {
			out = append(out, entry.ruleIndex)
		}
	}
	out = append(out, p.wildByFormat[format]...)
	out = append(out, p.wildAny...)
	sort.Ints(out)
	return out
}

type prefixPattern struct {
	prefix    string
	ruleIndex int
}

type regexPattern struct {
	re        *regexp.Regexp
	ruleIndex int
}

type parsedPattern struct {
	format *types.PackageFormat
	kind   patternKind
	name   string
}

type patternKind int

const (
	patternExact patternKind = iota
	patternPrefix
	patternRegex
	patternWildcard
	patternInvalid
)

func (p *FamilyPolicy) compile() error {
	p.compiled = make([]compiledRule, 0, len(p.Rules))
	p.exactByFormat = map[types.PackageFormat]map[string][]int{}
	p.exactAny = map[string][]int{}
	p.prefixByFormat = map[types.PackageFormat][]prefixPattern{}
	p.regexByFormat = map[types.PackageFormat][]regexPattern{}
	p.wildByFormat = map[types.PackageFormat][]int{}
	for idx, rule := range p.Rules {
		family, err := ParseFamily(rule.Family)
		if err != nil {
			return err
		}
		constraint, err := parseVersionConstraint(rule.Version)
		if err != nil {
			return err
		}
		parsed, ok := parsePattern(rule.Match)
		if !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid rule pattern: %q", rule.Match))
		}
		p.compiled = append(p.compiled, compiledRule{family: family, constraint: constraint})
		switch parsed.kind {
		case patternWildcard:
			p.storeWildcard(parsed.format, idx)
		case patternExact:
			p.storeExact(parsed.format, parsed.name, idx)
		case patternPrefix:
			p.storePrefix(parsed.format, parsed.name, idx)
		case patternRegex:
			re, err := regexp.Compile(parsed.name)
			if err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid rule regexp: %q", rule.Match)).
					WithCause(err)
			}
			p.storeRegex(parsed.format, re, idx)
		}
	}
	return nil
}

func (p *FamilyPolicy) storeExact(format *types.PackageFormat, name string, index int) {
	if format == nil {
		p.exactAny[name] = append(p.exactAny[name], index)
		return
	}
	if p.exactByFormat[*format] == nil {
		p.exactByFormat[*format] = map[string][]int{}
	}
	p.exactByFormat[*format][name] = append(p.exactByFormat[*format][name], index)
}

func (p *FamilyPolicy) storePrefix(format *types.PackageFormat, prefix string, index int) {
	entry := prefixPattern{prefix: prefix, ruleIndex: index}
	if format == nil {
		p.prefixAny = append(p.prefixAny, entry)
		return
	}
	p.prefixByFormat[*format] = append(p.prefixByFormat[*format], entry)
}

func (p *FamilyPolicy) storeRegex(format *types.PackageFormat, re *regexp.Regexp, index int) {
	entry := regexPattern{re: re, ruleIndex: index}
	if format == nil {
		p.regexAny = append(p.regexAny, entry)
		return
	}
	p.regexByFormat[*format] = append(p.regexByFormat[*format], entry)
}

func (p *FamilyPolicy) storeWildcard(format *types.PackageFormat, index int) {
	if format == nil {
		p.wildAny = append(p.wildAny, index)
		return
	}
	p.wildByFormat[*format] = append(p.wildByFormat[*format], index)
}

// parsePattern accepts "[rpm:|deb:]" followed by "*", "prefix*",
// "re:<expr>" or an exact requirement name.
func parsePattern(pattern string) (parsedPattern, bool) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return parsedPattern{kind: patternInvalid}, false
	}
	var format *types.PackageFormat
	if before, after, ok := strings.Cut(trimmed, ":"); ok {
		if parsed, known := parseFormat(before); known {
			format = &parsed
			trimmed = strings.TrimSpace(after)
		}
	}
	if expr, ok := strings.CutPrefix(trimmed, "re:"); ok {
		if strings.TrimSpace(expr) == "" {
			return parsedPattern{kind: patternInvalid}, false
		}
		return parsedPattern{format: format, kind: patternRegex, name: expr}, true
	}
	name, kind := parseNamePattern(trimmed)
	if kind == patternInvalid {
		return parsedPattern{kind: patternInvalid}, false
	}
	return parsedPattern{format: format, kind: kind, name: name}, true
}

func parseFormat(token string) (types.PackageFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "rpm":
		return types.PackageFormatRPM, true
	case "deb", "apt":
		return types.PackageFormatDeb, true
	default:
		return "", false
	}
}

func parseNamePattern(value string) (string, patternKind) {
	pattern := strings.TrimSpace(value)
	if pattern == "" {
		return "", patternInvalid
	}
	if pattern == "*" {
		return "", patternWildcard
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.TrimSuffix(pattern, "*"), patternPrefix
	}
	return pattern, patternExact
}

// ParseFamily accepts "2", "3", "python2", "python3" and "none".
func ParseFamily(value string) (types.VersionFamily, error) {
	token := strings.ToLower(strings.TrimSpace(value))
	token = strings.TrimPrefix(token, "python")
	switch token {
	case "none", "ignore":
		return types.FamilyNone, nil
	}
	number, err := strconv.Atoi(token)
	if err == nil {
		family := types.VersionFamily(number)
		for _, known := range types.Families {
			if family == known {
				return family, nil
			}
		}
	}
	return types.FamilyNone, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unknown version family: %q", value))
}

var _ ports.FamilyMatcherPort = FamilyPolicy{}
