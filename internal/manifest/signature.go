package manifest

import (
	"fmt"
	"os"

	"github.com/jedisct1/go-minisign"
)

// SignatureSuffix is appended to the manifest path to locate its detached
// minisign signature.
const SignatureSuffix = ".minisig"

// VerifySignature checks <path>.minisig against the manifest bytes using the
// minisign public key file at pubKeyPath.
func VerifySignature(path, pubKeyPath string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- manifest path is operator supplied
	if err != nil {
		return fmt.Errorf("read manifest %s: %w", path, err)
	}

	pubKey, err := minisign.NewPublicKeyFromFile(pubKeyPath)
	if err != nil {
		return fmt.Errorf("read minisign pubkey: %w", err)
	}

	sigPath := path + SignatureSuffix
	sig, err := minisign.NewSignatureFromFile(sigPath)
	if err != nil {
		return fmt.Errorf("read minisign signature %s: %w", sigPath, err)
	}

	valid, err := pubKey.Verify(data, sig)
	if err != nil {
		return fmt.Errorf("minisign: verify %s: %w", path, err)
	}
	if !valid {
		return fmt.Errorf("minisign: signature verification failed for %s", path)
	}
	return nil
}
