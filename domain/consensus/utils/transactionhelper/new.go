package transactionhelper

import (
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
)

// TransactionVersion is the version every transaction built here carries
const TransactionVersion = 0

// NewNativeTransaction returns a new regular transaction spending the given
// inputs into the given outputs
func NewNativeTransaction(inputs []*externalapi.DomainTransactionInput,
	outputs []*externalapi.DomainTransactionOutput) *externalapi.DomainTransaction {

	return &externalapi.DomainTransaction{
		Version: TransactionVersion,
		Inputs:  inputs,
		Outputs: outputs,
		Payload: []byte{},
	}
}

// NewCoinbaseTransaction returns a new input-less transaction paying the given
// outputs. The payload distinguishes coinbases that pay the same outputs.
func NewCoinbaseTransaction(payload []byte, outputs ...*externalapi.DomainTransactionOutput) *externalapi.DomainTransaction {
	return &externalapi.DomainTransaction{
		Version: TransactionVersion,
		Inputs:  []*externalapi.DomainTransactionInput{},
		Outputs: outputs,
		Payload: payload,
	}
}

// NewInput returns an unsigned input spending the given outpoint
func NewInput(outpoint *externalapi.DomainOutpoint) *externalapi.DomainTransactionInput {
	return &externalapi.DomainTransactionInput{
		PreviousOutpoint: *outpoint,
		SignatureScript:  []byte{},
	}
}

// NewOutput returns an output paying value to scriptPublicKey
func NewOutput(value uint64, scriptPublicKey []byte) *externalapi.DomainTransactionOutput {
	return &externalapi.DomainTransactionOutput{
		Value:           value,
		ScriptPublicKey: scriptPublicKey,
	}
}
