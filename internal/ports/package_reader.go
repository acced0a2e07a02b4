package ports

import "python-versions/internal/types"

// PackageReaderPort reads declared runtime requirements from a package
// file without unpacking its payload.
type PackageReaderPort interface {
	ReadPackage(path string) (types.PackageMetadata, error)
}

// PackageFinderPort lists package files of a work directory, sorted by
// file name.
type PackageFinderPort interface {
	FindPackages(dir string) ([]string, error)
}
