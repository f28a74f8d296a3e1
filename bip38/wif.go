package bip38

const compressedSuffix = 0x01

// EncodeWIF renders a private key in wallet import format.
func EncodeWIF(priv [32]byte, compressed bool, net Network) string {
	buf := make([]byte, 0, 34) // 1 (prefix) + 32 (pk) + 1 (compressed)
	buf = append(buf, net.WIFPrefix)
	buf = append(buf, priv[:]...)
	if compressed {
		buf = append(buf, compressedSuffix)
	}
	s := EncodeCheck(buf)
	clear(buf)
	return s
}

// DecodeWIF parses a wallet import format string. The returned prefix is
// the leading version byte; it is not checked against any network.
func DecodeWIF(wif string) (priv [32]byte, compressed bool, prefix byte, err error) {
	payload, err := DecodeCheck(wif)
	if err != nil {
		return priv, false, 0, err
	}
	defer clear(payload)
	switch {
	case len(payload) == 33:
	case len(payload) == 34 && payload[33] == compressedSuffix:
		compressed = true
	default:
		return priv, false, 0, opError("decode wif", ErrInvalidLength)
	}
	copy(priv[:], payload[1:33])
	if !validPrivateKey(priv[:]) {
		return [32]byte{}, false, 0, opError("decode wif", ErrInvalidScalar)
	}
	return priv, compressed, payload[0], nil
}
