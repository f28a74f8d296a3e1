package bip38

// Encrypt protects a private key with passphrase using the non-EC-multiplied
// scheme and returns the "6P..." string. compressed selects which address
// the stored hash refers to and travels with the key.
func Encrypt(priv [32]byte, compressed bool, passphrase string, opts ...Option) (string, error) {
	k, err := EncryptKey(priv, compressed, passphrase, opts...)
	if err != nil {
		return "", err
	}
	return k.String(), nil
}

// EncryptKey is Encrypt without the final encoding step.
func EncryptKey(priv [32]byte, compressed bool, passphrase string, opts ...Option) (*EncryptedKey, error) {
	o := applyOptions(opts)
	if !validPrivateKey(priv[:]) {
		return nil, opError("encrypt", ErrInvalidScalar)
	}
	_, hash := pubKeyAddress(publicKey(priv), compressed, o.network)

	buf, err := DeriveKey(passphrase, hash[:])
	if err != nil {
		return nil, err
	}
	defer clear(buf)
	enc1, enc2, err := encryptHalves(priv[:], splitDerived(buf))
	if err != nil {
		return nil, err
	}

	k := &EncryptedKey{
		variant:     NonECMultiplied,
		Flag:        flagNonEC,
		AddressHash: hash,
	}
	if compressed {
		k.Flag |= flagCompressed
	}
	copy(k.EncryptedHalf1[:], enc1)
	copy(k.EncryptedHalf2[:], enc2)
	return k, nil
}
