package bip38

import (
	"encoding/binary"
)

// KeyVariant tells the two BIP-38 key layouts apart.
type KeyVariant int

const (
	_ KeyVariant = iota
	NonECMultiplied
	ECMultiplied
)

func (v KeyVariant) String() string {
	switch v {
	case NonECMultiplied:
		return "NonECMultiplied"
	case ECMultiplied:
		return "ECMultiplied"
	}
	return "Unknown"
}

const (
	encryptedKeyLen = 39 // version + type + flag + address hash + 32 bytes of key data

	versionByte = 0x01
	typeNonEC   = 0x42
	typeEC      = 0x43

	flagNonEC       = 0xc0 // both high bits are always set for non-EC keys
	flagCompressed  = 0x20
	flagLotSequence = 0x04
)

// EncryptedKey is a parsed BIP-38 key, the "6P..." string a user sees on a
// paper wallet. It never changes after parsing.
type EncryptedKey struct {
	enc     string
	variant KeyVariant

	Flag        byte
	AddressHash [4]byte

	// EncryptedHalf1 is only set for NonECMultiplied keys; EC-multiplied keys
	// carry OwnerEntropy and the first 8 bytes of encryptedpart1 instead.
	EncryptedHalf1 [16]byte
	OwnerEntropy   [8]byte
	EncryptedPart1 [8]byte
	EncryptedHalf2 [16]byte
}

// ParseKey decodes and validates a Base58Check encoded BIP-38 key.
func ParseKey(text string) (*EncryptedKey, error) {
	payload, err := DecodeCheck(text)
	if err != nil {
		return nil, err
	}
	k, err := parsePayload(payload)
	if err != nil {
		return nil, err
	}
	k.enc = text
	return k, nil
}

func parsePayload(dec []byte) (*EncryptedKey, error) {
	if len(dec) != encryptedKeyLen {
		return nil, opError("parse", ErrInvalidLength)
	}
	k := &EncryptedKey{Flag: dec[2]}
	switch {
	case dec[0] == versionByte && dec[1] == typeNonEC:
		k.variant = NonECMultiplied
	case dec[0] == versionByte && dec[1] == typeEC:
		k.variant = ECMultiplied
	default:
		return nil, opError("parse", ErrUnsupportedVersion)
	}
	copy(k.AddressHash[:], dec[3:7])

	if k.variant == NonECMultiplied {
		if k.Flag&^flagCompressed != flagNonEC {
			return nil, opError("parse", ErrInvalidFlag)
		}
		copy(k.EncryptedHalf1[:], dec[7:23])
	} else {
		if k.Flag&(flagCompressed|flagLotSequence) != k.Flag {
			return nil, opError("parse", ErrInvalidFlag)
		}
		copy(k.OwnerEntropy[:], dec[7:15])
		copy(k.EncryptedPart1[:], dec[15:23])
	}
	copy(k.EncryptedHalf2[:], dec[23:39])
	return k, nil
}

func (k *EncryptedKey) Variant() KeyVariant { return k.variant }

// Compressed reports whether the address hash was computed over the
// compressed public key.
func (k *EncryptedKey) Compressed() bool { return k.Flag&flagCompressed != 0 }

// HasLotSequence is only ever true for ECMultiplied keys.
func (k *EncryptedKey) HasLotSequence() bool {
	return k.variant == ECMultiplied && k.Flag&flagLotSequence != 0
}

// LotSequence returns the lot and sequence numbers embedded in the owner
// entropy. ok is false when the key carries none.
func (k *EncryptedKey) LotSequence() (lot, sequence uint32, ok bool) {
	if !k.HasLotSequence() {
		return 0, 0, false
	}
	lot, sequence = splitLotSequence(k.OwnerEntropy)
	return lot, sequence, true
}

func splitLotSequence(entropy [8]byte) (lot, sequence uint32) {
	n := binary.BigEndian.Uint32(entropy[4:8])
	return n / 4096, n % 4096
}

// Bytes returns the 39 byte payload without the Base58Check checksum.
func (k *EncryptedKey) Bytes() []byte {
	dst := make([]byte, 0, encryptedKeyLen)
	if k.variant == ECMultiplied {
		dst = append(dst, versionByte, typeEC, k.Flag)
		dst = append(dst, k.AddressHash[:]...)
		dst = append(dst, k.OwnerEntropy[:]...)
		dst = append(dst, k.EncryptedPart1[:]...)
	} else {
		dst = append(dst, versionByte, typeNonEC, k.Flag)
		dst = append(dst, k.AddressHash[:]...)
		dst = append(dst, k.EncryptedHalf1[:]...)
	}
	return append(dst, k.EncryptedHalf2[:]...)
}

func (k *EncryptedKey) String() string {
	if k.enc != "" {
		return k.enc
	}
	return EncodeCheck(k.Bytes())
}
