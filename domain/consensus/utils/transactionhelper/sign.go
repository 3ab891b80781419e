// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionhelper

import (
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
)

// GenerateKeyPair generates a new Schnorr key pair and returns it along with
// the script public key that pays to it
func GenerateKeyPair() (*secp256k1.SchnorrKeyPair, []byte, error) {
	keyPair, err := secp256k1.GenerateSchnorrKeyPair()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate a key pair")
	}
	scriptPublicKey, err := ScriptPublicKey(keyPair)
	if err != nil {
		return nil, nil, err
	}
	return keyPair, scriptPublicKey, nil
}

// ScriptPublicKey returns the script public key paying to keyPair: its
// serialized Schnorr public key
func ScriptPublicKey(keyPair *secp256k1.SchnorrKeyPair) ([]byte, error) {
	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive the public key")
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize the public key")
	}
	return serializedPublicKey[:], nil
}

// RawTxInSignature returns the serialized Schnorr signature for the input idx of
// the given transaction, with hashType appended to it.
func RawTxInSignature(tx *externalapi.DomainTransaction, idx int, hashType consensushashing.SigHashType,
	spentEntry *externalapi.UTXOEntry, keyPair *secp256k1.SchnorrKeyPair) ([]byte, error) {

	hash, err := consensushashing.CalculateSignatureHash(tx, idx, hashType, spentEntry)
	if err != nil {
		return nil, err
	}
	secpHash := secp256k1.Hash(*hash.ByteArray())
	signature, err := keyPair.SchnorrSign(&secpHash)
	if err != nil {
		return nil, errors.Errorf("cannot sign tx input: %s", err)
	}

	return append(signature.Serialize()[:], byte(hashType)), nil
}

// SignInput fills the signature script of input idx with a SigHashAll
// signature by keyPair over the given spent entry
func SignInput(tx *externalapi.DomainTransaction, idx int, spentEntry *externalapi.UTXOEntry,
	keyPair *secp256k1.SchnorrKeyPair) error {

	signatureScript, err := RawTxInSignature(tx, idx, consensushashing.SigHashAll, spentEntry, keyPair)
	if err != nil {
		return err
	}
	tx.Inputs[idx].SignatureScript = signatureScript
	return nil
}

// KeyLookup returns the key pair owning the given script public key
type KeyLookup func(scriptPublicKey []byte) (*secp256k1.SchnorrKeyPair, error)

// SignAllInputs signs every input of tx, looking up both the consumed entry
// in utxoEntries and the key owning it through lookup
func SignAllInputs(tx *externalapi.DomainTransaction, utxoEntries []*externalapi.UTXOEntry, lookup KeyLookup) error {
	if len(utxoEntries) != len(tx.Inputs) {
		return errors.Errorf("got %d spent entries for a transaction with %d inputs",
			len(utxoEntries), len(tx.Inputs))
	}
	for i, entry := range utxoEntries {
		keyPair, err := lookup(entry.ScriptPublicKey())
		if err != nil {
			return err
		}
		err = SignInput(tx, i, entry, keyPair)
		if err != nil {
			return errors.Wrapf(err, "failed to sign input %d", i)
		}
	}
	return nil
}
