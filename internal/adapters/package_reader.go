package adapters

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"python-versions/internal/ports"
	"python-versions/internal/types"
)

// PackageReaderAdapter dispatches to the RPM or Debian reader by file
// extension.
type PackageReaderAdapter struct {
	RPM ports.PackageReaderPort
	Deb ports.PackageReaderPort
}

func NewPackageReaderAdapter() PackageReaderAdapter {
	return PackageReaderAdapter{
		RPM: NewRPMReaderAdapter(),
		Deb: NewDebReaderAdapter(),
	}
}

func (a PackageReaderAdapter) ReadPackage(path string) (types.PackageMetadata, error) {
	format, ok := packageFormatForPath(path)
	if !ok {
		return types.PackageMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported package file: %s", filepath.Base(path)))
	}
	switch format {
	case types.PackageFormatDeb:
		return a.Deb.ReadPackage(path)
	default:
		return a.RPM.ReadPackage(path)
	}
}

func packageFormatForPath(path string) (types.PackageFormat, bool) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".rpm"):
		return types.PackageFormatRPM, true
	case strings.HasSuffix(lower, ".deb"):
		return types.PackageFormatDeb, true
	default:
		return "", false
	}
}

var _ ports.PackageReaderPort = PackageReaderAdapter{}
