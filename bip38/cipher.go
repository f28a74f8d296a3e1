package bip38

import (
	"crypto/aes"
)

const blockLen = aes.BlockSize

// DecryptBlock decrypts a single 16 byte AES-256 block.
func DecryptBlock(src, key []byte) ([]byte, error) {
	if len(src) != blockLen {
		return nil, opError("decrypt block", ErrInvalidBlockSize)
	}
	h, err := aes.NewCipher(key)
	if err != nil {
		return nil, opError("decrypt block", err)
	}
	dst := make([]byte, blockLen)
	h.Decrypt(dst, src)
	return dst, nil
}

// EncryptBlock encrypts a single 16 byte AES-256 block.
func EncryptBlock(src, key []byte) ([]byte, error) {
	if len(src) != blockLen {
		return nil, opError("encrypt block", ErrInvalidBlockSize)
	}
	h, err := aes.NewCipher(key)
	if err != nil {
		return nil, opError("encrypt block", err)
	}
	dst := make([]byte, blockLen)
	h.Encrypt(dst, src)
	return dst, nil
}

func xorInto(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// decryptHalves reverses encryptHalves: each half is AES decrypted with
// derived.half2 and then XORed with its half of derived.half1.
func decryptHalves(enc1, enc2 []byte, derived derivedKey) ([32]byte, error) {
	var out [32]byte
	p1, err := DecryptBlock(enc1, derived.half2)
	if err != nil {
		return out, err
	}
	p2, err := DecryptBlock(enc2, derived.half2)
	if err != nil {
		return out, err
	}
	xorInto(out[:16], p1, derived.half1[:16])
	xorInto(out[16:], p2, derived.half1[16:32])
	clear(p1)
	clear(p2)
	return out, nil
}

func encryptHalves(plain []byte, derived derivedKey) (enc1, enc2 []byte, err error) {
	if len(plain) != 2*blockLen {
		return nil, nil, opError("encrypt", ErrInvalidLength)
	}
	var block [blockLen]byte
	xorInto(block[:], plain[:16], derived.half1[:16])
	if enc1, err = EncryptBlock(block[:], derived.half2); err != nil {
		return nil, nil, err
	}
	xorInto(block[:], plain[16:], derived.half1[16:32])
	if enc2, err = EncryptBlock(block[:], derived.half2); err != nil {
		return nil, nil, err
	}
	clear(block[:])
	return enc1, enc2, nil
}
