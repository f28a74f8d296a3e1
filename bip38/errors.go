package bip38

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCharacter   = errors.New("invalid base58 character")
	ErrInvalidChecksum    = errors.New("invalid base58check checksum")
	ErrInvalidLength      = errors.New("invalid length")
	ErrUnsupportedVersion = errors.New("unsupported version prefix")
	ErrInvalidFlag        = errors.New("invalid flag byte")
	ErrInvalidBlockSize   = errors.New("invalid block size")
	ErrInvalidPoint       = errors.New("point is not on the secp256k1 curve")
	ErrInvalidScalar      = errors.New("scalar out of range")

	// ErrBadPassphrase is the only error a caller should answer by asking
	// for the passphrase again. Everything else means the input is broken.
	ErrBadPassphrase = errors.New("bad passphrase")
)

// KeyError records which step failed and why.
type KeyError struct {
	Op  string
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("bip38: %s: %v", e.Op, e.Err)
}

func (e *KeyError) Unwrap() error { return e.Err }

func opError(op string, err error) error {
	return &KeyError{Op: op, Err: err}
}

// IsBadPassphrase reports whether err was caused by a wrong passphrase.
func IsBadPassphrase(err error) bool {
	return errors.Is(err, ErrBadPassphrase)
}
