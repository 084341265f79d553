// Package gpg produces detached signatures for built artifacts.
package gpg

import (
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Signer signs artifacts with an armored OpenPGP private key.
// ProtonMail's go-crypto is a maintained, modern fork of
// golang.org/x/crypto/openpgp; this is in external-adapters to isolate the
// dependency.
type Signer struct {
	entity *openpgp.Entity
}

// NewSigner loads an armored private key from keyPath. The passphrase may be
// empty for unprotected keys.
func NewSigner(keyPath, passphrase string) (*Signer, error) {
	//nolint:gosec // G304: the user names their own signing key
	file, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open signing key %s: %w", keyPath, err)
	}
	//nolint:errcheck // Defer close
	defer file.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key %s: %w", keyPath, err)
	}

	for _, entity := range keyring {
		if entity.PrivateKey == nil {
			continue
		}
		if entity.PrivateKey.Encrypted {
			if passphrase == "" {
				return nil, fmt.Errorf("signing key %s is passphrase-protected", keyPath)
			}
			if err := entity.PrivateKey.Decrypt([]byte(passphrase)); err != nil {
				return nil, fmt.Errorf("failed to unlock signing key: %w", err)
			}
		}
		return &Signer{entity: entity}, nil
	}

	return nil, fmt.Errorf("no private key found in %s", keyPath)
}

// SignArtifact writes an armored detached signature next to the artifact and
// returns the signature path.
func (s *Signer) SignArtifact(artifactPath string) (string, error) {
	//nolint:gosec // G304: signing the artifact the pipeline just built
	in, err := os.Open(artifactPath)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact %s: %w", artifactPath, err)
	}
	//nolint:errcheck // Defer close
	defer in.Close()

	sigPath := artifactPath + ".asc"
	out, err := os.Create(sigPath)
	if err != nil {
		return "", fmt.Errorf("failed to create signature file %s: %w", sigPath, err)
	}
	//nolint:errcheck // Defer close
	defer out.Close()

	if err := openpgp.ArmoredDetachSign(out, s.entity, in, nil); err != nil {
		return "", fmt.Errorf("failed to sign %s: %w", artifactPath, err)
	}
	return sigPath, nil
}
