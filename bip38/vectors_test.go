package bip38

import (
	"testing"
)

type keyVector struct {
	name        string
	encrypted   string
	passphrase  string
	wif         string
	address     string
	hex         string
	compressed  bool
	variant     KeyVariant
	lot, seq    uint32
	lotSequence bool

	intermediate string
	confirmation string
}

// official BIP-38 test vectors
var vectors = []keyVector{
	{
		name:       "no ec, no compression",
		encrypted:  "6PRVWUbkzzsbcVac2qwfssoUJAN1Xhrg6bNk8J7Nzm5H7kxEbn2Nh2ZoGg",
		passphrase: "TestingOneTwoThree",
		wif:        "5KN7MzqK5wt2TP1fQCYyHBtDrXdJuXbUzm4A9rKAteGu3Qi5CVR",
		address:    "1Jq6MksXQVWzrznvZzxkV6oY57oWXD9TXB",
		hex:        "cbf4b9f70470856bb4f40f80b87edb90865997ffee6df315ab166d713af433a5",
		variant:    NonECMultiplied,
	},
	{
		name:       "no ec, no compression, satoshi",
		encrypted:  "6PRNFFkZc2NZ6dJqFfhRoFNMR9Lnyj7dYGrzdgXXVMXcxoKTePPX1dWByq",
		passphrase: "Satoshi",
		wif:        "5HtasZ6ofTHP6HCwTqTkLDuLQisYPah7aUnSKfC7h4hMUVw2gi5",
		address:    "1AvKt49sui9zfzGeo8EyL8ypvAhtR2KwbL",
		hex:        "09c2686880095b1a4c249ee3ac4eea8a014f11e6f986d0b5025ac1f39afbd9ae",
		variant:    NonECMultiplied,
	},
	{
		name:       "no ec, unicode passphrase",
		encrypted:  "6PRW5o9FLp4gJDDVqJQKJFTpMvdsSGJxMYHtHaQBF3ooa8mwD69bapcDQn",
		passphrase: "\u03d2\u0301\u0000\U00010400\U0001F4A9", // NFC folds the first two runes
		wif:        "5Jajm8eQ22H3pGWLEVCXyvND8dQZhiQhoLJNKjYXk9roUFTMSZ4",
		address:    "16ktGzmfrurhbhi6JGqsMWf7TyqK9HNAeF",
		variant:    NonECMultiplied,
	},
	{
		name:       "no ec, compression",
		encrypted:  "6PYNKZ1EAgYgmQfmNVamxyXVWHzK5s6DGhwP4J5o44cvXdoY7sRzhtpUeo",
		passphrase: "TestingOneTwoThree",
		wif:        "L44B5gGEpqEDRS9vVPz7QT35jcBG2r3CZwSwQ4fCewXAhAhqGVpP",
		address:    "164MQi977u9GUteHr4EPH27VkkdxmfCvGW",
		hex:        "cbf4b9f70470856bb4f40f80b87edb90865997ffee6df315ab166d713af433a5",
		compressed: true,
		variant:    NonECMultiplied,
	},
	{
		name:       "no ec, compression, satoshi",
		encrypted:  "6PYLtMnXvfG3oJde97zRyLYFZCYizPU5T3LwgdYJz1fRhh16bU7u6PPmY7",
		passphrase: "Satoshi",
		wif:        "KwYgW8gcxj1JWJXhPSu4Fqwzfhp5Yfi42mdYmMa4XqK7NJxXUSK7",
		address:    "1HmPbwsvG5qJ3KJfxzsZRZWhbm1xBMuS8B",
		hex:        "09c2686880095b1a4c249ee3ac4eea8a014f11e6f986d0b5025ac1f39afbd9ae",
		compressed: true,
		variant:    NonECMultiplied,
	},
	{
		name:         "ec, no lot",
		encrypted:    "6PfQu77ygVyJLZjfvMLyhLMQbYnu5uguoJJ4kMCLqWwPEdfpwANVS76gTX",
		passphrase:   "TestingOneTwoThree",
		wif:          "5K4caxezwjGCGfnoPTZ8tMcJBLB7Jvyjv4xxeacadhq8nLisLR2",
		address:      "1PE6TQi6HTVNz5DLwB1LcpMBALubfuN2z2",
		hex:          "a43a940577f4e97f5c4d39eb14ff083a98187c64ea7c99ef7ce460833959a519",
		variant:      ECMultiplied,
		intermediate: "passphrasepxFy57B9v8HtUsszJYKReoNDV6VHjUSGt8EVJmux9n1J3Ltf1gRxyDGXqnf9qm",
	},
	{
		name:         "ec, no lot, satoshi",
		encrypted:    "6PfLGnQs6VZnrNpmVKfjotbnQuaJK4KZoPFrAjx1JMJUa1Ft8gnf5WxfKd",
		passphrase:   "Satoshi",
		wif:          "5KJ51SgxWaAYR13zd9ReMhJpwrcX47xTJh2D3fGPG9CM8vkv5sH",
		address:      "1CqzrtZC6mXSAhoxtFwVjz8LtwLJjDYU3V",
		hex:          "c2c8036df268f498099350718c4a3ef3984d2be84618c2650f5171dcc5eb660a",
		variant:      ECMultiplied,
		intermediate: "passphraseoRDGAXTWzbp72eVbtUDdn1rwpgPUGjNZEc6CGBo8i5EC1FPW8wcnLdq4ThKzAS",
	},
	{
		name:         "ec, lot/sequence",
		encrypted:    "6PgNBNNzDkKdhkT6uJntUXwwzQV8Rr2tZcbkDcuC9DZRsS6AtHts4Ypo1j",
		passphrase:   "MOLON LABE",
		wif:          "5JLdxTtcTHcfYcmJsNVy1v2PMDx432JPoYcBTVVRHpPaxUrdtf8",
		address:      "1Jscj8ALrYu2y9TD8NrpvDBugPedmbj4Yh",
		hex:          "44ea95afbf138356a05ea32110dfd627232d0f2991ad221187be356f19fa8190",
		variant:      ECMultiplied,
		lot:          263183,
		seq:          1,
		lotSequence:  true,
		intermediate: "passphraseaB8feaLQDENqCgr4gKZpmf4VoaT6qdjJNJiv7fsKvjqavcJxvuR1hy25aTu5sX",
		confirmation: "cfrm38V8aXBn7JWA1ESmFMUn6erxeBGZGAxJPY4e36S9QWkzZKtaVqLNMgnifETYw7BPwWC9aPD",
	},
	{
		name:         "ec, lot/sequence, greek",
		encrypted:    "6PgGWtx25kUg8QWvwuJAgorN6k9FbE25rv5dMRwu5SKMnfpfVe5mar2ngH",
		passphrase:   "ΜΟΛΩΝ ΛΑΒΕ",
		wif:          "5KMKKuUmAkiNbA3DazMQiLfDq47qs8MAEThm4yL8R2PhV1ov33D",
		address:      "1Lurmih3KruL4xDB5FmHof38yawNtP9oGf",
		hex:          "ca2759aa4adb0f96c414f36abeb8db59342985be9fa50faac228c8e7d90e3006",
		variant:      ECMultiplied,
		lot:          806938,
		seq:          1,
		lotSequence:  true,
		intermediate: "passphrased3z9rQJHSyBkNBwTRPkUGNVEVrUAcfAXDyRU1V28ie6hNFbqDwbFBvsTK7yWVK",
		confirmation: "cfrm38V8G4qq2ywYEFfWLD5Cc6msj9UwsG2Mj4Z6QdGJAFQpdatZLavkgRd1i4iBMdRngDqDs51",
	},
}

// heavyVectors returns the vectors to decrypt. Every decryption costs a full
// scrypt run, so -short keeps one of each variant.
func heavyVectors(t *testing.T) []keyVector {
	t.Helper()
	if !testing.Short() {
		return vectors
	}
	return []keyVector{vectors[0], vectors[5]}
}
