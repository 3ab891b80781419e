package externalapi

import "bytes"

// UTXOEntry houses details about an individual transaction output in a utxo
// set such as whether or not it was contained in a coinbase tx, its public
// key script, and how much it pays. A UTXOEntry is immutable once created.
type UTXOEntry struct {
	amount          uint64
	scriptPublicKey []byte
	isCoinbase      bool
}

// NewUTXOEntry creates a new UTXOEntry representing the given output
func NewUTXOEntry(amount uint64, scriptPublicKey []byte, isCoinbase bool) *UTXOEntry {
	scriptPublicKeyClone := make([]byte, len(scriptPublicKey))
	copy(scriptPublicKeyClone, scriptPublicKey)

	return &UTXOEntry{
		amount:          amount,
		scriptPublicKey: scriptPublicKeyClone,
		isCoinbase:      isCoinbase,
	}
}

// Amount returns the amount of the output.
func (entry *UTXOEntry) Amount() uint64 {
	return entry.amount
}

// ScriptPublicKey returns the public key script for the output.
func (entry *UTXOEntry) ScriptPublicKey() []byte {
	return entry.scriptPublicKey
}

// IsCoinbase returns whether or not the output was contained in a coinbase
// transaction.
func (entry *UTXOEntry) IsCoinbase() bool {
	return entry.isCoinbase
}

// Equal returns whether entry equals to other
func (entry *UTXOEntry) Equal(other *UTXOEntry) bool {
	if entry == nil || other == nil {
		return entry == other
	}

	return entry.amount == other.amount &&
		entry.isCoinbase == other.isCoinbase &&
		bytes.Equal(entry.scriptPublicKey, other.scriptPublicKey)
}
