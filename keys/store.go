package keys

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// KeyStore is a simple local-first key store for producer signing keys.
//
// Features:
// - Ed25519 seeds only, stored as hex in 0600 files
// - Deterministic purpose subkeys (e.g. "manifest", "merkle-root")
// - No network, no external state
//
// The store never appears in consumer-facing artifacts; only derived public
// keys leave the producer machine.
type KeyStore struct {
	Directory string
}

type KeyEntry struct {
	Identifier string
	Purposes   []string
}

func DefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".rowseal", "keys"), nil
}

func Open(directory string) (*KeyStore, error) {
	if directory == "" {
		var err error
		directory, err = DefaultDirectory()
		if err != nil {
			return nil, err
		}
	}
	return &KeyStore{Directory: directory}, nil
}

func (ks *KeyStore) rootKeyPath(identifier string) string {
	return filepath.Join(ks.Directory, identifier, "root.key")
}

func (ks *KeyStore) purposeKeyPath(identifier, purpose string) string {
	return filepath.Join(ks.Directory, identifier, "purposes", purpose+".key")
}

func CheckKeyName(identifier string) error {
	if identifier == "" {
		return errors.New("identifier cannot be empty")
	}
	for _, char := range identifier {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in identifier", char)
	}
	return nil
}

func CheckPurpose(purpose string) error {
	if purpose == "" {
		return errors.New("purpose cannot be empty")
	}
	for _, char := range purpose {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in purpose", char)
	}
	return nil
}

func ParseSeedHex(seedHex string) ([]byte, error) {
	seedHex = strings.TrimSpace(seedHex)
	seedHex = strings.TrimPrefix(seedHex, "0x")
	data, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(data) != ed25519.SeedSize {
		return nil, fmt.Errorf("expected seed length of %d bytes, got %d", ed25519.SeedSize, len(data))
	}
	return data, nil
}

func (ks *KeyStore) saveSeedToFile(filePath string, seed []byte, overwrite bool) error {
	if len(seed) != ed25519.SeedSize {
		return fmt.Errorf("expected seed length of %d bytes", ed25519.SeedSize)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o700); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(filePath, flags, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.WriteString(hex.EncodeToString(seed) + "\n"); err != nil {
		return err
	}
	return file.Close()
}

func (ks *KeyStore) loadSeedFromFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseSeedHex(strings.TrimSpace(string(data)))
}

func (ks *KeyStore) InitializeRootKey(identifier string, seed []byte, overwrite bool) (signerKey string, filePath string, err error) {
	if err := CheckKeyName(identifier); err != nil {
		return "", "", err
	}
	filePath = ks.rootKeyPath(identifier)
	if err := ks.saveSeedToFile(filePath, seed, overwrite); err != nil {
		return "", "", err
	}
	return SignerKeyFromSeed(seed), filePath, nil
}

func (ks *KeyStore) DeriveKeyForPurpose(from, purpose string, overwrite bool) (signerKey string, filePath string, err error) {
	if err := CheckKeyName(from); err != nil {
		return "", "", err
	}
	if err := CheckPurpose(purpose); err != nil {
		return "", "", err
	}
	rootSeed, err := ks.loadSeedFromFile(ks.rootKeyPath(from))
	if err != nil {
		return "", "", err
	}
	purposeSeed, err := DerivePurposeSeed(rootSeed, purpose)
	if err != nil {
		return "", "", err
	}
	filePath = ks.purposeKeyPath(from, purpose)
	if err := ks.saveSeedToFile(filePath, purposeSeed, overwrite); err != nil {
		return "", "", err
	}
	return SignerKeyFromSeed(purposeSeed), filePath, nil
}

func (ks *KeyStore) ExportKey(identifier string, purpose string) (string, error) {
	if err := CheckKeyName(identifier); err != nil {
		return "", err
	}
	var seed []byte
	var err error
	if purpose == "" {
		seed, err = ks.loadSeedFromFile(ks.rootKeyPath(identifier))
	} else {
		if err := CheckPurpose(purpose); err != nil {
			return "", err
		}
		seed, err = ks.loadSeedFromFile(ks.purposeKeyPath(identifier, purpose))
	}
	if err != nil {
		return "", err
	}
	return SignerKeyFromSeed(seed), nil
}

// LoadSeed resolves a signing seed from the first of: an inline hex seed, a
// seed file path, or a named store entry (optionally purpose-scoped).
func (ks *KeyStore) LoadSeed(seedHex, signerName, signerPurpose, keyFile string) ([]byte, error) {
	if seedHex != "" {
		return ParseSeedHex(seedHex)
	}
	if keyFile != "" {
		return ks.loadSeedFromFile(keyFile)
	}
	if signerName != "" {
		if err := CheckKeyName(signerName); err != nil {
			return nil, err
		}
		if signerPurpose == "" {
			return ks.loadSeedFromFile(ks.rootKeyPath(signerName))
		}
		if err := CheckPurpose(signerPurpose); err != nil {
			return nil, err
		}
		return ks.loadSeedFromFile(ks.purposeKeyPath(signerName, signerPurpose))
	}
	return nil, errors.New("no signer provided")
}

func (ks *KeyStore) ListKeys() ([]KeyEntry, error) {
	entries, err := os.ReadDir(ks.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var identifiers []string
	for _, entry := range entries {
		if entry.IsDir() {
			identifiers = append(identifiers, entry.Name())
		}
	}
	sort.Strings(identifiers)

	var result []KeyEntry
	for _, identifier := range identifiers {
		purposesDir := filepath.Join(ks.Directory, identifier, "purposes")
		purposeEntries, perr := os.ReadDir(purposesDir)
		var purposes []string
		if perr == nil {
			for _, pe := range purposeEntries {
				if pe.IsDir() {
					continue
				}
				if strings.HasSuffix(pe.Name(), ".key") {
					purposes = append(purposes, strings.TrimSuffix(pe.Name(), ".key"))
				}
			}
			sort.Strings(purposes)
		}
		result = append(result, KeyEntry{Identifier: identifier, Purposes: purposes})
	}
	return result, nil
}
