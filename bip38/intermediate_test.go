package bip38

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIntermediateCode(t *testing.T) {
	for _, v := range vectors {
		if v.intermediate == "" {
			continue
		}
		t.Run(v.name, func(t *testing.T) {
			code, err := ParseIntermediateCode(v.intermediate)
			require.NoError(t, err)
			require.Equal(t, v.lotSequence, code.LotSequence)
			require.Equal(t, v.intermediate, code.String())

			k, err := ParseKey(v.encrypted)
			require.NoError(t, err)
			require.Equal(t, k.OwnerEntropy, code.OwnerEntropy)

			lot, seq, ok := code.LotSequenceNumbers()
			require.Equal(t, v.lotSequence, ok)
			require.Equal(t, v.lot, lot)
			require.Equal(t, v.seq, seq)
		})
	}
}

func TestNewIntermediateCode(t *testing.T) {
	v := vectors[7]
	want, err := ParseIntermediateCode(v.intermediate)
	require.NoError(t, err)

	var salt [4]byte
	copy(salt[:], want.OwnerEntropy[:4])
	entropy, err := LotSequenceEntropy(salt, v.lot, v.seq)
	require.NoError(t, err)
	require.Equal(t, want.OwnerEntropy, entropy)

	got, err := NewIntermediateCode(v.passphrase, entropy, true)
	require.NoError(t, err)
	require.Equal(t, v.intermediate, got.String())
}

func TestLotSequenceEntropyRange(t *testing.T) {
	_, err := LotSequenceEntropy([4]byte{}, maxLot+1, 0)
	require.Error(t, err)
	_, err = LotSequenceEntropy([4]byte{}, 0, maxSequence+1)
	require.Error(t, err)
}

func TestParseIntermediateCodeErrors(t *testing.T) {
	dec, err := DecodeCheck(vectors[5].intermediate)
	require.NoError(t, err)

	bad := append([]byte(nil), dec...)
	bad[7] = 0x52
	_, err = ParseIntermediateCode(EncodeCheck(bad))
	require.ErrorIs(t, err, ErrUnsupportedVersion)

	bad = append([]byte(nil), dec...)
	bad[16] = 0x07
	_, err = ParseIntermediateCode(EncodeCheck(bad))
	require.ErrorIs(t, err, ErrInvalidPoint)

	_, err = ParseIntermediateCode(EncodeCheck(dec[:48]))
	require.ErrorIs(t, err, ErrInvalidLength)
}
