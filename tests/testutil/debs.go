package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blakesmith/ar"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// DebControl renders a minimal control file for a binary package.
func DebControl(name string, depends string) string {
	control := fmt.Sprintf("Package: %s\nVersion: 1.0-1\nArchitecture: all\nMaintainer: Test <test@example.com>\n", name)
	if depends != "" {
		control += fmt.Sprintf("Depends: %s\n", depends)
	}
	return control + "Description: test package\n folded description line\n"
}

// WriteDeb writes a Debian binary package with the given control file to
// dir/fileName. compression is one of "", "gz", "xz" or "zst" and selects
// the control member suffix.
func WriteDeb(t *testing.T, dir string, fileName string, control string, compression string) string {
	t.Helper()
	controlTar := ControlTar(t, control)
	member := "control.tar"
	payload := controlTar
	if compression != "" {
		member += "." + compression
		payload = compress(t, controlTar, compression)
	}

	return WriteAr(t, dir, fileName,
		ArMember{Name: "debian-binary", Data: []byte("2.0\n")},
		ArMember{Name: member, Data: payload},
		ArMember{Name: "data.tar.xz", Data: []byte("not inspected")},
	)
}

// ArMember is one member of an ar archive fixture.
type ArMember struct {
	Name string
	Data []byte
}

// WriteAr writes an ar archive holding members to dir/fileName.
func WriteAr(t *testing.T, dir string, fileName string, members ...ArMember) string {
	t.Helper()
	var archive bytes.Buffer
	writer := ar.NewWriter(&archive)
	require.NoError(t, writer.WriteGlobalHeader())
	for _, member := range members {
		writeArMember(t, writer, member.Name, member.Data)
	}
	path := filepath.Join(dir, fileName)
	require.NoError(t, os.WriteFile(path, archive.Bytes(), 0644))
	return path
}

// ControlTar returns an uncompressed control.tar holding ./control.
func ControlTar(t *testing.T, control string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := tar.NewWriter(&buf)
	require.NoError(t, writer.WriteHeader(&tar.Header{Name: "./", Typeflag: tar.TypeDir, Mode: 0755}))
	require.NoError(t, writer.WriteHeader(&tar.Header{
		Name:     "./control",
		Typeflag: tar.TypeReg,
		Mode:     0644,
		Size:     int64(len(control)),
	}))
	_, err := writer.Write([]byte(control))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return buf.Bytes()
}

func compress(t *testing.T, data []byte, compression string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var writer io.WriteCloser
	var err error
	switch compression {
	case "gz":
		writer = gzip.NewWriter(&buf)
	case "xz":
		writer, err = xz.NewWriter(&buf)
	case "zst":
		writer, err = zstd.NewWriter(&buf)
	default:
		t.Fatalf("unknown compression %q", compression)
	}
	require.NoError(t, err)
	_, err = writer.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return buf.Bytes()
}

func writeArMember(t *testing.T, writer *ar.Writer, name string, data []byte) {
	t.Helper()
	require.NoError(t, writer.WriteHeader(&ar.Header{
		Name:    name,
		ModTime: time.Unix(0, 0),
		Mode:    0644,
		Size:    int64(len(data)),
	}))
	_, err := writer.Write(data)
	require.NoError(t, err)
}
