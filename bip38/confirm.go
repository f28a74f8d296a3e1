package bip38

import (
	"bytes"
)

const confirmationLen = 51 // magic + flag + address hash + owner entropy + encrypted pointb

var confirmationMagic = []byte{0x64, 0x3b, 0xf6, 0xa8, 0x9a}

// ConfirmationCode proves to a passphrase owner that an EC-multiplied key
// was generated from their intermediate code.
type ConfirmationCode struct {
	Flag            byte
	AddressHash     [4]byte
	OwnerEntropy    [8]byte
	EncryptedPointB [33]byte
}

// ParseConfirmationCode decodes a "cfrm38..." string.
func ParseConfirmationCode(text string) (*ConfirmationCode, error) {
	dec, err := DecodeCheck(text)
	if err != nil {
		return nil, err
	}
	if len(dec) != confirmationLen {
		return nil, opError("parse confirmation", ErrInvalidLength)
	}
	if !bytes.Equal(dec[:5], confirmationMagic) {
		return nil, opError("parse confirmation", ErrUnsupportedVersion)
	}
	c := &ConfirmationCode{Flag: dec[5]}
	if c.Flag&(flagCompressed|flagLotSequence) != c.Flag {
		return nil, opError("parse confirmation", ErrInvalidFlag)
	}
	copy(c.AddressHash[:], dec[6:10])
	copy(c.OwnerEntropy[:], dec[10:18])
	copy(c.EncryptedPointB[:], dec[18:51])
	return c, nil
}

// VerifyConfirmation checks code against passphrase and returns the
// confirmed address.
func VerifyConfirmation(code, passphrase string, opts ...Option) (string, error) {
	c, err := ParseConfirmationCode(code)
	if err != nil {
		return "", err
	}
	return c.Verify(passphrase, opts...)
}

// Verify recomputes the generated public key as pointb*passfactor and
// compares its address hash with the one in the code.
func (c *ConfirmationCode) Verify(passphrase string, opts ...Option) (string, error) {
	o := applyOptions(opts)
	lotSequence := c.Flag&flagLotSequence != 0

	passFactor, err := DerivePassFactor(passphrase, c.OwnerEntropy[:], lotSequence)
	if err != nil {
		return "", err
	}
	defer clear(passFactor)
	passPoint, err := ComputePassPoint(passFactor)
	if err != nil {
		return "", err
	}
	buf, err := derivePointKey(passPoint, c.AddressHash[:], c.OwnerEntropy[:])
	if err != nil {
		return "", err
	}
	defer clear(buf)
	derived := splitDerived(buf)

	pointBX, err := decryptHalves(c.EncryptedPointB[1:17], c.EncryptedPointB[17:33], derived)
	if err != nil {
		return "", err
	}
	pointB := make([]byte, 0, 33)
	pointB = append(pointB, c.EncryptedPointB[0]^(derived.half2[31]&0x01))
	pointB = append(pointB, pointBX[:]...)

	// a wrong passphrase decrypts to garbage that rarely parses as a point
	pub, err := multiplyPoint(pointB, passFactor)
	if err != nil {
		return "", opError("verify confirmation", ErrBadPassphrase)
	}
	addr, hash := pubKeyAddress(pub, c.Flag&flagCompressed != 0, o.network)
	if hash != c.AddressHash {
		return "", opError("verify confirmation", ErrBadPassphrase)
	}
	return addr, nil
}
