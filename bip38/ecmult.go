package bip38

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// scalarFromBytes reads a 32 byte big-endian value as a scalar modulo the
// secp256k1 group order. Zero is rejected.
func scalarFromBytes(b []byte) (*secp256k1.ModNScalar, error) {
	if len(b) != 32 {
		return nil, ErrInvalidLength
	}
	var s secp256k1.ModNScalar
	s.SetByteSlice(b)
	if s.IsZero() {
		return nil, ErrInvalidScalar
	}
	return &s, nil
}

// validPrivateKey reports whether b is a usable secp256k1 private key,
// i.e. 0 < b < n without reduction.
func validPrivateKey(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(b)
	return !overflow && !s.IsZero()
}

func ownerSalt(ownerEntropy []byte, hasLotSequence bool) []byte {
	if hasLotSequence {
		return ownerEntropy[:4]
	}
	return ownerEntropy
}

// DerivePassFactor computes the passfactor of an EC-multiplied key. With a
// lot/sequence number only the first four bytes of ownerEntropy salt the
// scrypt step and the result is hashed together with the full entropy.
func DerivePassFactor(passphrase string, ownerEntropy []byte, hasLotSequence bool) ([]byte, error) {
	if len(ownerEntropy) != 8 {
		return nil, opError("passfactor", ErrInvalidLength)
	}
	prefactor, err := derivePrefactor(passphrase, ownerSalt(ownerEntropy, hasLotSequence))
	if err != nil {
		return nil, err
	}
	if !hasLotSequence {
		return prefactor, nil
	}
	buf := make([]byte, 0, len(prefactor)+len(ownerEntropy))
	buf = append(buf, prefactor...)
	buf = append(buf, ownerEntropy...)
	clear(prefactor)
	passFactor := sha256Twice(buf)
	clear(buf)
	return passFactor, nil
}

// ComputePassPoint returns the compressed encoding of passFactor*G.
func ComputePassPoint(passFactor []byte) ([]byte, error) {
	k, err := scalarFromBytes(passFactor)
	if err != nil {
		return nil, opError("passpoint", err)
	}
	pub := secp256k1.NewPrivateKey(k).PubKey()
	if !pub.IsOnCurve() {
		return nil, opError("passpoint", ErrInvalidPoint)
	}
	return pub.SerializeCompressed(), nil
}

// DeriveFinalFactor hashes the 24 byte seedb into factorb.
func DeriveFinalFactor(seedB []byte) ([]byte, error) {
	if len(seedB) != 24 {
		return nil, opError("factorb", ErrInvalidLength)
	}
	return sha256Twice(seedB), nil
}

// RecoverPrivateKey multiplies passFactor and factorB modulo n.
func RecoverPrivateKey(passFactor, factorB []byte) ([32]byte, error) {
	a, err := scalarFromBytes(passFactor)
	if err != nil {
		return [32]byte{}, opError("recover", err)
	}
	b, err := scalarFromBytes(factorB)
	if err != nil {
		return [32]byte{}, opError("recover", err)
	}
	a.Mul(b)
	if a.IsZero() {
		return [32]byte{}, opError("recover", ErrInvalidScalar)
	}
	return a.Bytes(), nil
}

// multiplyPoint parses a serialized point and multiplies it by scalar.
func multiplyPoint(point, scalar []byte) (*secp256k1.PublicKey, error) {
	pub, err := secp256k1.ParsePubKey(point)
	if err != nil {
		return nil, ErrInvalidPoint
	}
	k, err := scalarFromBytes(scalar)
	if err != nil {
		return nil, err
	}
	var p, r secp256k1.JacobianPoint
	pub.AsJacobian(&p)
	secp256k1.ScalarMultNonConst(k, &p, &r)
	r.ToAffine()
	// the point at infinity ends up as (0, 0), which is off the curve
	res := secp256k1.NewPublicKey(&r.X, &r.Y)
	if !res.IsOnCurve() {
		return nil, ErrInvalidPoint
	}
	return res, nil
}

func publicKey(priv [32]byte) *secp256k1.PublicKey {
	return secp256k1.PrivKeyFromBytes(priv[:]).PubKey()
}
