package adapters

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"python-versions/internal/ports"
)

// WorkspaceAdapter lists the binary packages of a build work directory.
type WorkspaceAdapter struct{}

func NewWorkspaceAdapter() WorkspaceAdapter {
	return WorkspaceAdapter{}
}

// FindPackages returns the .rpm and .deb files directly inside dir,
// sorted by file name. Subdirectories and other files are ignored.
func (a WorkspaceAdapter) FindPackages(dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("work directory is empty")
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid work directory").
			WithCause(err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read work directory").
			WithCause(err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var paths []string
	for _, name := range names {
		path := filepath.Join(root, name)
		if _, ok := packageFormatForPath(name); !ok {
			log.Debug().Str("path", path).Msg("ignoring non-package file")
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

var _ ports.PackageFinderPort = WorkspaceAdapter{}
