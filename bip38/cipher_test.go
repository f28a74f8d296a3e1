package bip38

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestBlockFIPS197(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	plain := mustHex(t, "00112233445566778899aabbccddeeff")
	cipher := mustHex(t, "8ea2b7ca516745bfeafc49904b496089")

	enc, err := EncryptBlock(plain, key)
	require.NoError(t, err)
	require.Equal(t, cipher, enc)

	dec, err := DecryptBlock(cipher, key)
	require.NoError(t, err)
	require.Equal(t, plain, dec)
}

func TestBlockSize(t *testing.T) {
	key := make([]byte, 32)

	_, err := DecryptBlock(make([]byte, 15), key)
	require.ErrorIs(t, err, ErrInvalidBlockSize)

	_, err = EncryptBlock(make([]byte, 17), key)
	require.ErrorIs(t, err, ErrInvalidBlockSize)

	_, err = EncryptBlock(make([]byte, 16), make([]byte, 7))
	require.Error(t, err)
}

func TestHalvesRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	for i := range buf {
		buf[i] = byte(i * 7)
	}
	derived := splitDerived(buf)
	plain := mustHex(t, vectors[0].hex)

	enc1, enc2, err := encryptHalves(plain, derived)
	require.NoError(t, err)
	require.NotEqual(t, plain[:16], enc1)

	out, err := decryptHalves(enc1, enc2, derived)
	require.NoError(t, err)
	require.Equal(t, plain, out[:])
}
