package ports

import "python-versions/internal/types"

type ArtifactPort interface {
	WriteArtifact(path string, text string) error
}

type ResultExportPort interface {
	Export(verdict types.BuildVerdict) ([]byte, error)
	Write(path string, data []byte) error
}

// SignerPort produces a detached signature next to a written artifact and
// returns the signature path.
type SignerPort interface {
	SignDetached(path string) (string, error)
}
