package adapters

import (
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"python-versions/internal/ports"
)

// GPGSignerAdapter writes ASCII-armored detached signatures with the first
// private key found in KeyPath.
type GPGSignerAdapter struct {
	KeyPath    string
	Passphrase string
}

func NewGPGSignerAdapter(keyPath string, passphrase string) GPGSignerAdapter {
	return GPGSignerAdapter{KeyPath: keyPath, Passphrase: passphrase}
}

func (s GPGSignerAdapter) SignDetached(path string) (string, error) {
	signer, err := s.loadSigner()
	if err != nil {
		return "", err
	}
	in, err := os.Open(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("artifact to sign not found").
			WithCause(err)
	}
	defer in.Close()

	sigPath := path + ".asc"
	out, err := os.Create(sigPath)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create signature file").
			WithCause(err)
	}
	if err := openpgp.ArmoredDetachSign(out, signer, in, nil); err != nil {
		_ = out.Close()
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to sign artifact").
			WithCause(err)
	}
	if err := out.Close(); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write signature file").
			WithCause(err)
	}
	return sigPath, nil
}

func (s GPGSignerAdapter) loadSigner() (*openpgp.Entity, error) {
	f, err := os.Open(s.KeyPath)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("signing key not found").
			WithCause(err)
	}
	defer f.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read signing key").
			WithCause(err)
	}
	for _, entity := range keyring {
		if entity.PrivateKey == nil {
			continue
		}
		if hasEncryptedKey(entity) {
			if s.Passphrase == "" {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("signing key is encrypted and no passphrase is set")
			}
			if err := entity.DecryptPrivateKeys([]byte(s.Passphrase)); err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("failed to unlock signing key").
					WithCause(err)
			}
		}
		return entity, nil
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("key file holds no private key")
}

// hasEncryptedKey reports whether the primary key or any subkey is still
// locked. Signing may pick a subkey, so all of them must be unlocked.
func hasEncryptedKey(entity *openpgp.Entity) bool {
	if entity.PrivateKey.Encrypted {
		return true
	}
	for _, sub := range entity.Subkeys {
		if sub.PrivateKey != nil && sub.PrivateKey.Encrypted {
			return true
		}
	}
	return false
}

var _ ports.SignerPort = GPGSignerAdapter{}
