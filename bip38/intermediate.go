package bip38

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	intermediateLen = 49 // magic + owner entropy + passpoint

	maxLot      = 1048575
	maxSequence = 4095
)

var (
	intermediateMagic            = []byte{0x2c, 0xe9, 0xb3, 0xe1, 0xff, 0x39, 0xe2, 0x53}
	intermediateMagicLotSequence = []byte{0x2c, 0xe9, 0xb3, 0xe1, 0xff, 0x39, 0xe2, 0x51}
)

// IntermediateCode is the "passphrase..." string an owner hands to a
// key generating party. It binds the passpoint to the owner entropy.
type IntermediateCode struct {
	OwnerEntropy [8]byte
	PassPoint    [33]byte
	LotSequence  bool
}

// LotSequenceEntropy builds owner entropy from a 4 byte owner salt and a
// lot/sequence pair.
func LotSequenceEntropy(ownerSalt [4]byte, lot, sequence uint32) ([8]byte, error) {
	var e [8]byte
	if lot > maxLot || sequence > maxSequence {
		return e, fmt.Errorf("lot %d / sequence %d out of range", lot, sequence)
	}
	copy(e[:4], ownerSalt[:])
	binary.BigEndian.PutUint32(e[4:], lot*4096+sequence)
	return e, nil
}

// NewIntermediateCode derives the passpoint for passphrase and the given
// owner entropy. The entropy comes from the caller.
func NewIntermediateCode(passphrase string, ownerEntropy [8]byte, lotSequence bool) (*IntermediateCode, error) {
	passFactor, err := DerivePassFactor(passphrase, ownerEntropy[:], lotSequence)
	if err != nil {
		return nil, err
	}
	defer clear(passFactor)
	passPoint, err := ComputePassPoint(passFactor)
	if err != nil {
		return nil, err
	}
	c := &IntermediateCode{OwnerEntropy: ownerEntropy, LotSequence: lotSequence}
	copy(c.PassPoint[:], passPoint)
	return c, nil
}

// ParseIntermediateCode decodes a "passphrase..." string.
func ParseIntermediateCode(text string) (*IntermediateCode, error) {
	dec, err := DecodeCheck(text)
	if err != nil {
		return nil, err
	}
	if len(dec) != intermediateLen {
		return nil, opError("parse intermediate", ErrInvalidLength)
	}
	c := &IntermediateCode{}
	switch magic := dec[:8]; {
	case bytes.Equal(magic, intermediateMagic):
	case bytes.Equal(magic, intermediateMagicLotSequence):
		c.LotSequence = true
	default:
		return nil, opError("parse intermediate", ErrUnsupportedVersion)
	}
	copy(c.OwnerEntropy[:], dec[8:16])
	copy(c.PassPoint[:], dec[16:49])
	if _, err := secp256k1.ParsePubKey(c.PassPoint[:]); err != nil {
		return nil, opError("parse intermediate", ErrInvalidPoint)
	}
	return c, nil
}

func (c *IntermediateCode) String() string {
	dst := make([]byte, 0, intermediateLen)
	if c.LotSequence {
		dst = append(dst, intermediateMagicLotSequence...)
	} else {
		dst = append(dst, intermediateMagic...)
	}
	dst = append(dst, c.OwnerEntropy[:]...)
	dst = append(dst, c.PassPoint[:]...)
	return EncodeCheck(dst)
}

// LotSequenceNumbers returns the lot and sequence numbers, if any.
func (c *IntermediateCode) LotSequenceNumbers() (lot, sequence uint32, ok bool) {
	if !c.LotSequence {
		return 0, 0, false
	}
	lot, sequence = splitLotSequence(c.OwnerEntropy)
	return lot, sequence, true
}
