package bip38

import (
	"golang.org/x/crypto/scrypt"
	"golang.org/x/text/unicode/norm"
)

// scrypt parameters are part of the BIP-38 format and must not change.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 8
	scryptKeyLen = 64

	// second, cheap round used by EC-multiplied keys, keyed by the passpoint
	pointScryptN = 1024
	pointScryptR = 1
	pointScryptP = 1

	prefactorLen = 32
)

// passphraseBytes returns the canonical encoding of a passphrase: NFC
// normalized UTF-8.
func passphraseBytes(passphrase string) []byte {
	return []byte(norm.NFC.String(passphrase))
}

// derivedKey is the 64 byte scrypt output split into its two halves.
type derivedKey struct {
	half1 []byte // XOR mask for the plaintext
	half2 []byte // AES-256 key
}

func splitDerived(buf []byte) derivedKey {
	return derivedKey{half1: buf[:32], half2: buf[32:64]}
}

// DeriveKey runs scrypt over the normalized passphrase and the 4 byte
// address hash salt, as used by non-EC-multiplied keys.
func DeriveKey(passphrase string, salt []byte) ([]byte, error) {
	if len(salt) != 4 {
		return nil, opError("derive", ErrInvalidLength)
	}
	buf, err := scrypt.Key(passphraseBytes(passphrase), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, opError("derive", err)
	}
	return buf, nil
}

func derivePrefactor(passphrase string, ownerSalt []byte) ([]byte, error) {
	buf, err := scrypt.Key(passphraseBytes(passphrase), ownerSalt, scryptN, scryptR, scryptP, prefactorLen)
	if err != nil {
		return nil, opError("derive", err)
	}
	return buf, nil
}

// derivePointKey derives the per-key AES material of an EC-multiplied key
// from its passpoint, address hash and owner entropy.
func derivePointKey(passPoint, addressHash, ownerEntropy []byte) ([]byte, error) {
	salt := make([]byte, 0, len(addressHash)+len(ownerEntropy))
	salt = append(salt, addressHash...)
	salt = append(salt, ownerEntropy...)
	buf, err := scrypt.Key(passPoint, salt, pointScryptN, pointScryptR, pointScryptP, scryptKeyLen)
	if err != nil {
		return nil, opError("derive", err)
	}
	return buf, nil
}
