package bip38

import (
	"fmt"
	"strings"
)

// Network holds the coin specific version bytes that affect the address
// hash check and WIF output.
type Network struct {
	Name           string
	AddressVersion byte // 0x00 for BTC
	WIFPrefix      byte // 0x80 for BTC
}

var (
	Bitcoin  = Network{Name: "bitcoin", AddressVersion: 0x00, WIFPrefix: 0x80}
	Testnet  = Network{Name: "testnet", AddressVersion: 0x6f, WIFPrefix: 0xef}
	Litecoin = Network{Name: "litecoin", AddressVersion: 0x30, WIFPrefix: 0xb0}
	Dogecoin = Network{Name: "dogecoin", AddressVersion: 0x1e, WIFPrefix: 0x9e}
)

var networks = []Network{Bitcoin, Testnet, Litecoin, Dogecoin}

// NetworkByName looks up one of the predefined networks, case-insensitive.
func NetworkByName(name string) (Network, error) {
	for _, n := range networks {
		if strings.EqualFold(n.Name, name) {
			return n, nil
		}
	}
	return Network{}, fmt.Errorf("unknown network %q", name)
}

func (n Network) String() string {
	return n.Name
}
