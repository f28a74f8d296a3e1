package bip38

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecryptVectors(t *testing.T) {
	for _, v := range heavyVectors(t) {
		t.Run(v.name, func(t *testing.T) {
			d, err := Decrypt(v.encrypted, v.passphrase)
			require.NoError(t, err)
			require.Equal(t, v.wif, d.WIF())
			require.Equal(t, v.address, d.Address)
			require.Equal(t, v.compressed, d.Compressed)
			require.Equal(t, Bitcoin, d.Network())
			if v.hex != "" {
				require.Equal(t, mustHex(t, v.hex), d.PrivateKey[:])
			}
			if v.compressed {
				require.Len(t, d.PublicKey(), 33)
			} else {
				require.Len(t, d.PublicKey(), 65)
			}
		})
	}
}

func TestDecryptBadPassphrase(t *testing.T) {
	for _, v := range []keyVector{vectors[0], vectors[5]} {
		t.Run(v.name, func(t *testing.T) {
			_, err := Decrypt(v.encrypted, v.passphrase+"!")
			require.ErrorIs(t, err, ErrBadPassphrase)
			require.True(t, IsBadPassphrase(err))
		})
	}
}

func TestDecryptStructuralErrorsAreNotBadPassphrase(t *testing.T) {
	_, err := Decrypt(withByte(t, vectors[0].encrypted, 1, 0x44), "x")
	require.Error(t, err)
	require.False(t, IsBadPassphrase(err))
}

func TestDecryptWrongNetwork(t *testing.T) {
	// the address hash was computed for mainnet, so any other version byte
	// fails the check like a wrong passphrase would
	_, err := Decrypt(vectors[0].encrypted, vectors[0].passphrase, WithNetwork(Testnet))
	require.ErrorIs(t, err, ErrBadPassphrase)
}

func TestDecryptDeterministicAndConcurrent(t *testing.T) {
	v := vectors[0]
	k, err := ParseKey(v.encrypted)
	require.NoError(t, err)

	const n = 4
	results := make([]*DecryptedKey, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = k.Decrypt(v.passphrase)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, results[0], results[i])
	}
}

func TestDecryptedKeyZero(t *testing.T) {
	d := &DecryptedKey{PrivateKey: [32]byte{1, 2, 3}}
	d.Zero()
	require.Equal(t, [32]byte{}, d.PrivateKey)
}

func TestVerifyWipesRejectedKey(t *testing.T) {
	k, err := ParseKey(vectors[0].encrypted)
	require.NoError(t, err)

	var outOfRange [32]byte
	for i := range outOfRange {
		outOfRange[i] = 0xff
	}
	_, err = k.verify(&outOfRange, Bitcoin)
	require.ErrorIs(t, err, ErrBadPassphrase)
	require.Equal(t, [32]byte{}, outOfRange)

	var mismatch [32]byte
	mismatch[31] = 1
	_, err = k.verify(&mismatch, Bitcoin)
	require.ErrorIs(t, err, ErrBadPassphrase)
	require.Equal(t, [32]byte{}, mismatch)

	var priv [32]byte
	copy(priv[:], mustHex(t, vectors[0].hex))
	d, err := k.verify(&priv, Bitcoin)
	require.NoError(t, err)
	require.Equal(t, mustHex(t, vectors[0].hex), d.PrivateKey[:])
}
