package bip38

import (
	"bytes"
	"fmt"

	"github.com/minio/sha256-simd"
	"github.com/mr-tron/base58"
)

const checksumLen = 4

func sha256Twice(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

func checksum(payload []byte) []byte {
	return sha256Twice(payload)[:checksumLen]
}

// DecodeCheck decodes a Base58Check string and returns the payload with the
// trailing checksum removed. Version bytes are left in place.
func DecodeCheck(text string) ([]byte, error) {
	if text == "" {
		return nil, opError("decode", ErrInvalidLength)
	}
	raw, err := base58.Decode(text)
	if err != nil {
		return nil, opError("decode", fmt.Errorf("%w: %v", ErrInvalidCharacter, err))
	}
	if len(raw) <= checksumLen {
		return nil, opError("decode", ErrInvalidLength)
	}
	payload, sum := raw[:len(raw)-checksumLen], raw[len(raw)-checksumLen:]
	if !bytes.Equal(checksum(payload), sum) {
		return nil, opError("decode", ErrInvalidChecksum)
	}
	return payload, nil
}

// EncodeCheck appends the double-SHA256 checksum to payload and base58
// encodes the result.
func EncodeCheck(payload []byte) string {
	buf := make([]byte, 0, len(payload)+checksumLen)
	buf = append(buf, payload...)
	buf = append(buf, checksum(payload)...)
	return base58.Encode(buf)
}
