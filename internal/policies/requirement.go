package policies

import (
	"strings"

	"python-versions/internal/types"
)

// requirementSpec is one parsed requirement alternative: a name with an
// optional version relation.
type requirementSpec struct {
	Name    string
	Op      types.ConstraintOp
	Version string
}

// parseRequirement splits a raw requirement string into the alternatives
// it offers. RPM requirements carry a single alternative; Debian
// requirement groups may offer several separated by "|".
func parseRequirement(format types.PackageFormat, raw string) []requirementSpec {
	switch format {
	case types.PackageFormatDeb:
		return parseDebAlternatives(raw)
	default:
		spec := parseRPMRequirement(raw)
		if spec.Name == "" {
			return nil
		}
		return []requirementSpec{spec}
	}
}

// parseRPMRequirement parses "name [op evr]" as printed by rpm -qR, e.g.
// "python(abi) = 3.6" or "libpython3.6m.so.1.0()(64bit)".
func parseRPMRequirement(value string) requirementSpec {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return requirementSpec{}
	}
	fields := strings.Fields(raw)
	if len(fields) >= 3 {
		if op, ok := rpmConstraintOp(fields[len(fields)-2]); ok {
			return requirementSpec{
				Name:    strings.Join(fields[:len(fields)-2], " "),
				Op:      op,
				Version: fields[len(fields)-1],
			}
		}
	}
	return requirementSpec{Name: raw}
}

func rpmConstraintOp(token string) (types.ConstraintOp, bool) {
	switch token {
	case "=", "==":
		return types.ConstraintOpEq, true
	case "<":
		return types.ConstraintOpLt, true
	case ">":
		return types.ConstraintOpGt, true
	case "<=":
		return types.ConstraintOpLte, true
	case ">=":
		return types.ConstraintOpGte, true
	default:
		return "", false
	}
}

// parseDebAlternatives splits a pipe-separated dependency group (e.g.
// "python3 | python3-minimal (>= 3.8)") into individual specs.
func parseDebAlternatives(group string) []requirementSpec {
	parts := strings.Split(group, "|")
	var out []requirementSpec
	for _, part := range parts {
		spec := parseDebRequirement(part)
		if spec.Name == "" {
			continue
		}
		out = append(out, spec)
	}
	return out
}

// parseDebRequirement parses a single Debian dependency token such as
// "python3:any (>= 3.8) [amd64]". Architecture qualifiers and filters are
// stripped.
func parseDebRequirement(value string) requirementSpec {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return requirementSpec{}
	}
	if idx := strings.Index(raw, "["); idx >= 0 {
		raw = strings.TrimSpace(raw[:idx])
	}
	name := raw
	constraintPart := ""
	if before, after, ok := strings.Cut(raw, "("); ok {
		name = strings.TrimSpace(before)
		constraintPart = strings.TrimSpace(after)
		if before, ok := strings.CutSuffix(constraintPart, ")"); ok {
			constraintPart = before
		}
	}
	name = normalizeDebName(name)
	if name == "" {
		return requirementSpec{}
	}
	op, version, ok := splitDebRelation(constraintPart)
	if !ok {
		return requirementSpec{Name: name}
	}
	return requirementSpec{Name: name, Op: op, Version: version}
}

// splitDebRelation accepts both "(>= 3.8)" and the compact "(>=3.8)" form.
func splitDebRelation(value string) (types.ConstraintOp, string, bool) {
	relation := strings.TrimSpace(value)
	if relation == "" {
		return "", "", false
	}
	for _, token := range []string{">=", "<=", "<<", ">>", "=", "<", ">"} {
		if rest, ok := strings.CutPrefix(relation, token); ok {
			version := strings.TrimSpace(rest)
			if version == "" {
				return "", "", false
			}
			op, _ := debConstraintOp(token)
			return op, version, true
		}
	}
	return "", "", false
}

// normalizeDebName strips architecture suffixes (":any", ":amd64").
func normalizeDebName(value string) string {
	name := strings.TrimSpace(value)
	if idx := strings.Index(name, ":"); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}
	return name
}

// debConstraintOp maps a Debian relation token to a ConstraintOp. The
// obsolete "<" and ">" relations mean "<=" and ">=".
func debConstraintOp(token string) (types.ConstraintOp, bool) {
	switch token {
	case ">=", ">":
		return types.ConstraintOpGte, true
	case "<=", "<":
		return types.ConstraintOpLte, true
	case "=":
		return types.ConstraintOpEq, true
	case "<<":
		return types.ConstraintOpLt, true
	case ">>":
		return types.ConstraintOpGt, true
	default:
		return "", false
	}
}
