package externalapi

import (
	"bytes"
	"fmt"
)

// DomainTransaction represents a transaction within a block or the
// pending-transaction pool. A transaction with no inputs is a coinbase.
type DomainTransaction struct {
	Version int32
	Inputs  []*DomainTransactionInput
	Outputs []*DomainTransactionOutput
	Payload []byte
}

// IsCoinbase returns whether this transaction issues new value, that is,
// whether it has no inputs.
func (tx *DomainTransaction) IsCoinbase() bool {
	return len(tx.Inputs) == 0
}

// Clone returns a clone of DomainTransaction
func (tx *DomainTransaction) Clone() *DomainTransaction {
	inputsClone := make([]*DomainTransactionInput, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputsClone[i] = input.Clone()
	}

	outputsClone := make([]*DomainTransactionOutput, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputsClone[i] = output.Clone()
	}

	var payloadClone []byte
	if tx.Payload != nil {
		payloadClone = make([]byte, len(tx.Payload))
		copy(payloadClone, tx.Payload)
	}

	return &DomainTransaction{
		Version: tx.Version,
		Inputs:  inputsClone,
		Outputs: outputsClone,
		Payload: payloadClone,
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = DomainTransaction{0, []*DomainTransactionInput{}, []*DomainTransactionOutput{}, []byte{}}

// Equal returns whether tx equals to other
func (tx *DomainTransaction) Equal(other *DomainTransaction) bool {
	if tx == nil || other == nil {
		return tx == other
	}

	if tx.Version != other.Version {
		return false
	}

	if len(tx.Inputs) != len(other.Inputs) {
		return false
	}

	for i, input := range tx.Inputs {
		if !input.Equal(other.Inputs[i]) {
			return false
		}
	}

	if len(tx.Outputs) != len(other.Outputs) {
		return false
	}

	for i, output := range tx.Outputs {
		if !output.Equal(other.Outputs[i]) {
			return false
		}
	}

	return bytes.Equal(tx.Payload, other.Payload)
}

// DomainTransactionInput represents a transaction input
type DomainTransactionInput struct {
	PreviousOutpoint DomainOutpoint
	SignatureScript  []byte
}

// Clone returns a clone of DomainTransactionInput
func (input *DomainTransactionInput) Clone() *DomainTransactionInput {
	signatureScriptClone := make([]byte, len(input.SignatureScript))
	copy(signatureScriptClone, input.SignatureScript)

	return &DomainTransactionInput{
		PreviousOutpoint: *input.PreviousOutpoint.Clone(),
		SignatureScript:  signatureScriptClone,
	}
}

// Equal returns whether input equals to other
func (input *DomainTransactionInput) Equal(other *DomainTransactionInput) bool {
	if input == nil || other == nil {
		return input == other
	}

	if !input.PreviousOutpoint.Equal(&other.PreviousOutpoint) {
		return false
	}

	return bytes.Equal(input.SignatureScript, other.SignatureScript)
}

// DomainOutpoint represents a transaction outpoint
type DomainOutpoint struct {
	TransactionID DomainTransactionID
	Index         uint32
}

// NewDomainOutpoint instantiates a new DomainOutpoint with the given id and index
func NewDomainOutpoint(id *DomainTransactionID, index uint32) *DomainOutpoint {
	return &DomainOutpoint{
		TransactionID: *id,
		Index:         index,
	}
}

// Clone returns a clone of DomainOutpoint
func (op *DomainOutpoint) Clone() *DomainOutpoint {
	return &DomainOutpoint{
		TransactionID: op.TransactionID,
		Index:         op.Index,
	}
}

// Equal returns whether op equals to other
func (op *DomainOutpoint) Equal(other *DomainOutpoint) bool {
	if op == nil || other == nil {
		return op == other
	}

	return *op == *other
}

// String stringifies an outpoint.
func (op DomainOutpoint) String() string {
	return fmt.Sprintf("(%s: %d)", op.TransactionID, op.Index)
}

// DomainTransactionOutput represents a transaction output. ScriptPublicKey
// holds the serialized public key of the output's owner.
type DomainTransactionOutput struct {
	Value           uint64
	ScriptPublicKey []byte
}

// Clone returns a clone of DomainTransactionOutput
func (output *DomainTransactionOutput) Clone() *DomainTransactionOutput {
	scriptPublicKeyClone := make([]byte, len(output.ScriptPublicKey))
	copy(scriptPublicKeyClone, output.ScriptPublicKey)

	return &DomainTransactionOutput{
		Value:           output.Value,
		ScriptPublicKey: scriptPublicKeyClone,
	}
}

// Equal returns whether output equals to other
func (output *DomainTransactionOutput) Equal(other *DomainTransactionOutput) bool {
	if output == nil || other == nil {
		return output == other
	}

	return output.Value == other.Value && bytes.Equal(output.ScriptPublicKey, other.ScriptPublicKey)
}

// DomainTransactionID represents the ID of a transaction
type DomainTransactionID DomainHash

// NewDomainTransactionIDFromByteArray constructs a new TransactionID out of a byte array
func NewDomainTransactionIDFromByteArray(transactionIDBytes *[DomainHashSize]byte) *DomainTransactionID {
	return (*DomainTransactionID)(NewDomainHashFromByteArray(transactionIDBytes))
}

// String stringifies a transaction ID.
func (id DomainTransactionID) String() string {
	return DomainHash(id).String()
}

// ByteArray returns the bytes in this transactionID represented as a byte array.
// The transactionID bytes are cloned, therefore it is safe to modify the resulting array.
func (id *DomainTransactionID) ByteArray() *[DomainHashSize]byte {
	return (*DomainHash)(id).ByteArray()
}

// ByteSlice returns the bytes in this transactionID represented as a byte slice.
// The transactionID bytes are cloned, therefore it is safe to modify the resulting slice.
func (id *DomainTransactionID) ByteSlice() []byte {
	return (*DomainHash)(id).ByteSlice()
}

// Equal returns whether id equals to other
func (id *DomainTransactionID) Equal(other *DomainTransactionID) bool {
	return (*DomainHash)(id).Equal((*DomainHash)(other))
}
