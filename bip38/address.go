package bip38

import (
	"github.com/cculianu/gocoin/btc"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// address returns the P2PKH address of pub as used for the BIP-38 address
// hash: the compression flag decides which serialization gets hashed.
func address(pub *secp256k1.PublicKey, compressed bool, net Network) string {
	var ser []byte
	if compressed {
		ser = pub.SerializeCompressed()
	} else {
		ser = pub.SerializeUncompressed()
	}
	return btc.NewAddrFromPubkey(ser, net.AddressVersion).String()
}

func addressHash(addr string) [4]byte {
	var h [4]byte
	copy(h[:], sha256Twice([]byte(addr)))
	return h
}
