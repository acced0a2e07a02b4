package adapters

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/blakesmith/ar"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"python-versions/internal/ports"
	"python-versions/internal/types"
)

const maxControlMember = 64 << 20

// DebReaderAdapter reads the control member of a Debian binary package.
// The data member is skipped without being decompressed.
type DebReaderAdapter struct{}

func NewDebReaderAdapter() DebReaderAdapter {
	return DebReaderAdapter{}
}

func (a DebReaderAdapter) ReadPackage(path string) (types.PackageMetadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return types.PackageMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open deb").
			WithCause(err)
	}
	defer file.Close()

	control, err := readDebControl(file)
	if err != nil {
		return types.PackageMetadata{}, err
	}
	name := strings.TrimSpace(control["Package"])
	if name == "" {
		return types.PackageMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("deb control has no Package field")
	}
	var requirements []string
	requirements = append(requirements, splitDebRelations(control["Pre-Depends"])...)
	requirements = append(requirements, splitDebRelations(control["Depends"])...)
	return types.PackageMetadata{
		Path:         path,
		Name:         name,
		Format:       types.PackageFormatDeb,
		Requirements: requirements,
	}, nil
}

// readDebControl walks the ar container until it finds control.tar[.*]
// and returns the fields of its control file.
func readDebControl(reader io.Reader) (map[string]string, error) {
	buffered := bufio.NewReader(reader)
	magic, err := buffered.Peek(len(ar.GLOBAL_HEADER))
	if err != nil || string(magic) != ar.GLOBAL_HEADER {
		return nil, invalidDeb("missing ar archive signature", err)
	}
	archive := ar.NewReader(buffered)
	for {
		hdr, err := archive.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, invalidDeb("deb has no control member", nil)
			}
			return nil, invalidDeb("truncated ar archive", err)
		}
		name := strings.TrimSuffix(strings.TrimSpace(hdr.Name), "/")
		if !strings.HasPrefix(name, "control.tar") {
			continue
		}
		if hdr.Size > maxControlMember {
			return nil, invalidDeb("control member too large", nil)
		}
		return readControlTar(name, archive)
	}
}

func readControlTar(member string, reader io.Reader) (map[string]string, error) {
	decompressed, closeFn, err := decompressControl(member, reader)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	archive := tar.NewReader(decompressed)
	for {
		hdr, err := archive.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, invalidDeb("control archive has no control file", nil)
			}
			return nil, invalidDeb("corrupt control archive", err)
		}
		if !hdr.FileInfo().Mode().IsRegular() || path.Clean(hdr.Name) != "control" {
			continue
		}
		data, err := io.ReadAll(archive)
		if err != nil {
			return nil, invalidDeb("failed to read control file", err)
		}
		return parseControlFields(data)
	}
}

func decompressControl(member string, reader io.Reader) (io.Reader, func(), error) {
	noop := func() {}
	switch path.Ext(member) {
	case ".tar":
		return reader, noop, nil
	case ".gz":
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, noop, invalidDeb("failed to read gzipped control member", err)
		}
		return gz, func() { _ = gz.Close() }, nil
	case ".xz":
		xzReader, err := xz.NewReader(reader)
		if err != nil {
			return nil, noop, invalidDeb("failed to read xz control member", err)
		}
		return xzReader, noop, nil
	case ".zst":
		decoder, err := zstd.NewReader(reader)
		if err != nil {
			return nil, noop, invalidDeb("failed to read zstd control member", err)
		}
		return decoder, decoder.Close, nil
	default:
		return nil, noop, invalidDeb(fmt.Sprintf("unsupported control member compression: %s", member), nil)
	}
}

// parseControlFields reads the first stanza of a control file, line by
// line like the apt Packages index parser. Folded continuation lines are
// joined with a single space.
func parseControlFields(data []byte) (map[string]string, error) {
	fields := map[string]string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	var current string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if len(fields) > 0 {
				break
			}
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if current == "" {
				return nil, invalidDeb("control continuation line without field", nil)
			}
			fields[current] = strings.TrimSpace(fields[current] + " " + strings.TrimSpace(line))
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, invalidDeb(fmt.Sprintf("malformed control line: %q", line), nil)
		}
		current = strings.TrimSpace(key)
		fields[current] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, invalidDeb("failed to scan control file", err)
	}
	return fields, nil
}

// splitDebRelations splits a Depends-style field into its comma separated
// groups; alternatives stay together.
func splitDebRelations(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func invalidDeb(msg string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
	if cause != nil {
		return builder.WithCause(cause)
	}
	return builder
}

var _ ports.PackageReaderPort = DebReaderAdapter{}
