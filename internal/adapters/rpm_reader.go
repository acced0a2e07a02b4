package adapters

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/cavaliergopher/rpm"

	"python-versions/internal/ports"
	"python-versions/internal/types"
)

// RPMSENSE comparison bits of a dependency's flags.
const (
	rpmSenseLess    = 1 << 1
	rpmSenseGreater = 1 << 2
	rpmSenseEqual   = 1 << 3
)

// RPMReaderAdapter reads the header of an RPM package. The payload is
// never decompressed.
type RPMReaderAdapter struct{}

func NewRPMReaderAdapter() RPMReaderAdapter {
	return RPMReaderAdapter{}
}

func (a RPMReaderAdapter) ReadPackage(path string) (types.PackageMetadata, error) {
	pkg, err := rpm.Open(path)
	if err != nil {
		return types.PackageMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read rpm header").
			WithCause(err)
	}
	name := strings.TrimSpace(pkg.Name())
	if name == "" {
		return types.PackageMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("rpm header has no package name")
	}
	requires := pkg.Requires()
	requirements := make([]string, 0, len(requires))
	for _, dep := range requires {
		requirements = append(requirements, formatRPMDependency(dep))
	}
	return types.PackageMetadata{
		Path:         path,
		Name:         name,
		Format:       types.PackageFormatRPM,
		Requirements: requirements,
	}, nil
}

// rpmDependency is the part of rpm.Dependency used to print a requirement.
type rpmDependency interface {
	Flags() int
	Name() string
	Epoch() int
	Version() string
	Release() string
}

// formatRPMDependency prints a requirement the way rpm -qR does:
// "python(abi) = 3.6".
func formatRPMDependency(dep rpmDependency) string {
	name := dep.Name()
	version := dep.Version()
	if version == "" {
		return name
	}
	evr := version
	if dep.Epoch() > 0 {
		evr = fmt.Sprintf("%d:%s", dep.Epoch(), evr)
	}
	if release := dep.Release(); release != "" {
		evr = fmt.Sprintf("%s-%s", evr, release)
	}
	op := rpmSenseOperator(dep.Flags())
	if op == "" {
		return name
	}
	return fmt.Sprintf("%s %s %s", name, op, evr)
}

func rpmSenseOperator(flags int) string {
	var op string
	if flags&rpmSenseLess != 0 {
		op += "<"
	}
	if flags&rpmSenseGreater != 0 {
		op += ">"
	}
	if flags&rpmSenseEqual != 0 {
		op += "="
	}
	return op
}

var _ ports.PackageReaderPort = RPMReaderAdapter{}
