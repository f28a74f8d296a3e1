package bip38

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// DecryptedKey is the result of a successful decryption.
type DecryptedKey struct {
	PrivateKey [32]byte
	Compressed bool
	Address    string // address whose hash matched the encrypted key

	network Network
}

// WIF encodes the key for the network it was decrypted with.
func (d *DecryptedKey) WIF() string {
	return EncodeWIF(d.PrivateKey, d.Compressed, d.network)
}

// PublicKey returns the serialized public key honouring Compressed.
func (d *DecryptedKey) PublicKey() []byte {
	pub := publicKey(d.PrivateKey)
	if d.Compressed {
		return pub.SerializeCompressed()
	}
	return pub.SerializeUncompressed()
}

func (d *DecryptedKey) Network() Network { return d.network }

// Zero wipes the private key.
func (d *DecryptedKey) Zero() {
	clear(d.PrivateKey[:])
}

// Option changes how a key is decrypted or encrypted.
type Option func(*options)

type options struct {
	network Network
}

// WithNetwork sets the address version byte used for the address hash and
// the WIF prefix of the result. Bitcoin mainnet is the default.
func WithNetwork(n Network) Option {
	return func(o *options) { o.network = n }
}

func applyOptions(opts []Option) options {
	o := options{network: Bitcoin}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Decrypt parses text and decrypts it with passphrase. A wrong passphrase
// yields an error matching ErrBadPassphrase; every other error means the
// input is malformed.
//
// Decrypt is CPU bound and slow on purpose (scrypt). It keeps no state and
// may be called from any number of goroutines.
func Decrypt(text, passphrase string, opts ...Option) (*DecryptedKey, error) {
	k, err := ParseKey(text)
	if err != nil {
		return nil, err
	}
	return k.Decrypt(passphrase, opts...)
}

// Decrypt recovers the private key protected by passphrase.
func (k *EncryptedKey) Decrypt(passphrase string, opts ...Option) (*DecryptedKey, error) {
	o := applyOptions(opts)

	var (
		priv [32]byte
		err  error
	)
	switch k.variant {
	case NonECMultiplied:
		priv, err = k.decryptNonEC(passphrase)
	case ECMultiplied:
		priv, err = k.decryptEC(passphrase)
	default:
		return nil, opError("decrypt", ErrUnsupportedVersion)
	}
	if err != nil {
		return nil, err
	}
	return k.verify(&priv, o.network)
}

func (k *EncryptedKey) decryptNonEC(passphrase string) ([32]byte, error) {
	buf, err := DeriveKey(passphrase, k.AddressHash[:])
	if err != nil {
		return [32]byte{}, err
	}
	defer clear(buf)
	return decryptHalves(k.EncryptedHalf1[:], k.EncryptedHalf2[:], splitDerived(buf))
}

func (k *EncryptedKey) decryptEC(passphrase string) ([32]byte, error) {
	passFactor, err := DerivePassFactor(passphrase, k.OwnerEntropy[:], k.HasLotSequence())
	if err != nil {
		return [32]byte{}, err
	}
	defer clear(passFactor)

	passPoint, err := ComputePassPoint(passFactor)
	if err != nil {
		return [32]byte{}, err
	}
	buf, err := derivePointKey(passPoint, k.AddressHash[:], k.OwnerEntropy[:])
	if err != nil {
		return [32]byte{}, err
	}
	defer clear(buf)
	derived := splitDerived(buf)

	// encryptedpart2 holds the tail of encryptedpart1 followed by seedb[16:24]
	part2, err := DecryptBlock(k.EncryptedHalf2[:], derived.half2)
	if err != nil {
		return [32]byte{}, err
	}
	xorInto(part2, part2, derived.half1[16:32])

	var encPart1 [16]byte
	copy(encPart1[:8], k.EncryptedPart1[:])
	copy(encPart1[8:], part2[:8])
	part1, err := DecryptBlock(encPart1[:], derived.half2)
	if err != nil {
		return [32]byte{}, err
	}
	xorInto(part1, part1, derived.half1[:16])

	seedB := make([]byte, 0, 24)
	seedB = append(seedB, part1...)
	seedB = append(seedB, part2[8:]...)
	defer clear(seedB)

	factorB, err := DeriveFinalFactor(seedB)
	if err != nil {
		return [32]byte{}, err
	}
	defer clear(factorB)
	return RecoverPrivateKey(passFactor, factorB)
}

// verify checks the decrypted scalar against the address hash stored in the
// key. This is the only place a wrong passphrase shows up.
// priv is wiped when the check fails.
func (k *EncryptedKey) verify(priv *[32]byte, net Network) (*DecryptedKey, error) {
	if !validPrivateKey(priv[:]) {
		clear(priv[:])
		return nil, opError("verify", ErrBadPassphrase)
	}
	addr := address(publicKey(*priv), k.Compressed(), net)
	if addressHash(addr) != k.AddressHash {
		clear(priv[:])
		return nil, opError("verify", ErrBadPassphrase)
	}
	return &DecryptedKey{
		PrivateKey: *priv,
		Compressed: k.Compressed(),
		Address:    addr,
		network:    net,
	}, nil
}

// pubKeyAddress is shared by encryption and confirmation code checks.
func pubKeyAddress(pub *secp256k1.PublicKey, compressed bool, net Network) (string, [4]byte) {
	addr := address(pub, compressed, net)
	return addr, addressHash(addr)
}
