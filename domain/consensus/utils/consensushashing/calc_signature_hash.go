package consensushashing

import (
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/hashes"
	"github.com/kaspanet/blocktree/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// SigHashType represents hash type bits at the end of a signature.
type SigHashType uint8

// SigHashAll signs all inputs and all outputs of the transaction. It is the
// only supported hash type.
const SigHashAll SigHashType = 0x1

// IsStandardSigHashType returns whether the given hash type is supported
func (sht SigHashType) IsStandardSigHashType() bool {
	return sht == SigHashAll
}

// CalculateSignatureHash returns the hash that the owner of the output
// consumed by input idx of tx must sign. The hash commits to the
// transaction ID, the input index and the consumed entry.
func CalculateSignatureHash(tx *externalapi.DomainTransaction, idx int, hashType SigHashType,
	spentEntry *externalapi.UTXOEntry) (*externalapi.DomainHash, error) {

	if idx < 0 || idx >= len(tx.Inputs) {
		return nil, errors.Errorf("input index %d is out of range for a transaction with %d inputs",
			idx, len(tx.Inputs))
	}
	if !hashType.IsStandardSigHashType() {
		return nil, errors.Errorf("unsupported sighash type %d", hashType)
	}

	writer := hashes.NewTransactionSigningHashWriter()
	err := serialization.WriteElements(writer, TransactionID(tx), uint32(idx), uint8(hashType),
		spentEntry.Amount(), spentEntry.ScriptPublicKey())
	if err != nil {
		return nil, err
	}
	return writer.Finalize(), nil
}
