package app

import (
	"github.com/rs/zerolog/log"

	"python-versions/internal/adapters"
	"python-versions/internal/ports"
)

type Service struct {
	Finder      ports.PackageFinderPort
	Reader      ports.PackageReaderPort
	RulesSource ports.RulesSourcePort
	Artifacts   ports.ArtifactPort
	Exporter    ports.ResultExportPort
	// Signer is optional; a nil signer leaves artifacts unsigned.
	Signer   ports.SignerPort
	Observer ports.ObserverPort
}

func NewService() Service {
	return Service{
		Finder:      adapters.NewWorkspaceAdapter(),
		Reader:      adapters.NewPackageReaderAdapter(),
		RulesSource: adapters.NewRulesFileAdapter(),
		Artifacts:   adapters.NewArtifactFileAdapter(),
		Exporter:    adapters.NewResultsYAMLAdapter(),
		Observer:    adapters.NewLogObserverAdapter(log.Logger),
	}
}

// WithSigner returns a copy of the service that signs written artifacts
// with the armored private key at keyPath.
func (s Service) WithSigner(keyPath string, passphrase string) Service {
	s.Signer = adapters.NewGPGSignerAdapter(keyPath, passphrase)
	return s
}
