package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"

	"python-versions/internal/types"
)

// versionConstraint is a pre-parsed rule constraint such as "< 3". It
// holds both a Debian version and a PEP 440 specifier set so one rule can
// serve either package format.
type versionConstraint struct {
	op    types.ConstraintOp
	raw   string
	deb   debversion.Version
	debOK bool
	pep   pep440.Specifiers
	pepOK bool
}

func parseVersionConstraint(value string) (*versionConstraint, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	op, version := splitRuleRelation(trimmed)
	if version == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("version constraint has no version: %q", value))
	}
	constraint := &versionConstraint{op: op, raw: trimmed}
	if parsed, err := debversion.NewVersion(version); err == nil {
		constraint.deb = parsed
		constraint.debOK = true
	}
	if spec, err := pep440.NewSpecifiers(toPep440Spec(op, version)); err == nil {
		constraint.pep = spec
		constraint.pepOK = true
	}
	if !constraint.debOK && !constraint.pepOK {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version constraint: %q", value))
	}
	return constraint, nil
}

// splitRuleRelation splits "< 3" or ">=3" into operator and version. A bare
// version means equality.
func splitRuleRelation(value string) (types.ConstraintOp, string) {
	for _, token := range []string{">=", "<=", "==", "<<", ">>", "=", "<", ">"} {
		if rest, ok := strings.CutPrefix(value, token); ok {
			op := types.ConstraintOp(token)
			switch token {
			case "<<":
				op = types.ConstraintOpLt
			case ">>":
				op = types.ConstraintOpGt
			case "==":
				op = types.ConstraintOpEq
			}
			return op, strings.TrimSpace(rest)
		}
	}
	return types.ConstraintOpEq, value
}

// satisfies reports whether a requirement's version satisfies the
// constraint, using the comparison semantics of the package format.
// Unversioned requirements and unparsable versions never satisfy.
func (c *versionConstraint) satisfies(format types.PackageFormat, version string) bool {
	version = strings.TrimSpace(version)
	if version == "" {
		return false
	}
	switch format {
	case types.PackageFormatDeb:
		return c.satisfiesDeb(version)
	default:
		return c.satisfiesPep440(rpmUpstreamVersion(version))
	}
}

func (c *versionConstraint) satisfiesDeb(version string) bool {
	if !c.debOK {
		return false
	}
	v, err := debversion.NewVersion(version)
	if err != nil {
		return false
	}
	switch c.op {
	case types.ConstraintOpEq, types.ConstraintOpEq2:
		return v.Equal(c.deb)
	case types.ConstraintOpGte:
		return !v.LessThan(c.deb)
	case types.ConstraintOpLte:
		return !v.GreaterThan(c.deb)
	case types.ConstraintOpGt:
		return v.GreaterThan(c.deb)
	case types.ConstraintOpLt:
		return v.LessThan(c.deb)
	default:
		return false
	}
}

func (c *versionConstraint) satisfiesPep440(version string) bool {
	if !c.pepOK {
		return false
	}
	parsed, err := pep440.Parse(version)
	if err != nil {
		return false
	}
	return c.pep.Check(parsed)
}

// rpmUpstreamVersion drops the epoch and release from an RPM EVR string:
// "1:2.7.5-80.el7" becomes "2.7.5".
func rpmUpstreamVersion(evr string) string {
	version := evr
	if idx := strings.Index(version, ":"); idx >= 0 {
		version = version[idx+1:]
	}
	if idx := strings.LastIndex(version, "-"); idx >= 0 {
		version = version[:idx]
	}
	return version
}

// toPep440Spec converts an operator and version to a PEP 440 specifier
// string (e.g. "< 3", "== 2.7").
func toPep440Spec(op types.ConstraintOp, version string) string {
	token := string(op)
	switch op {
	case types.ConstraintOpEq, types.ConstraintOpEq2:
		token = "=="
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", token, version))
}
