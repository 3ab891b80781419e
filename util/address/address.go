// Package address encodes the script public keys that own outputs as
// human-readable strings.
package address

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
)

// Version is the version byte prefixed to every encoded address
const Version byte = 0x42

// ErrInvalidAddress is returned when a string can't be decoded to a script
// public key.
var ErrInvalidAddress = errors.New("invalid address")

// Encode returns the base58check encoding of scriptPublicKey
func Encode(scriptPublicKey []byte) string {
	return base58.CheckEncode(scriptPublicKey, Version)
}

// Decode returns the script public key encoded in address. It fails if the
// checksum or the version don't match, or if the payload isn't a Schnorr
// public key.
func Decode(address string) ([]byte, error) {
	scriptPublicKey, version, err := base58.CheckDecode(address)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidAddress, "%s: %s", address, err)
	}
	if version != Version {
		return nil, errors.Wrapf(ErrInvalidAddress, "%s: unknown version %d", address, version)
	}
	_, err = secp256k1.DeserializeSchnorrPubKey(scriptPublicKey)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidAddress, "%s: %s", address, err)
	}
	return scriptPublicKey, nil
}
