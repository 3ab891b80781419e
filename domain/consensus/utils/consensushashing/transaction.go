package consensushashing

import (
	"io"

	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/hashes"
	"github.com/kaspanet/blocktree/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// TransactionID generates the ID for the given transaction. Signature
// scripts are excluded, so signing a transaction does not change its ID.
func TransactionID(tx *externalapi.DomainTransaction) *externalapi.DomainTransactionID {
	writer := hashes.NewTransactionIDWriter()
	err := serializeTransaction(writer, tx)
	if err != nil {
		// this writer never return errors (no allocations or possible failures) so errors can only come from validity checks,
		// and we assume we never construct malformed transactions.
		panic(errors.Wrap(err, "TransactionID() failed. this should never fail for structurally-valid transactions"))
	}
	return (*externalapi.DomainTransactionID)(writer.Finalize())
}

// TransactionIDs returns the IDs of the given transactions, in order
func TransactionIDs(txs []*externalapi.DomainTransaction) []*externalapi.DomainTransactionID {
	txIDs := make([]*externalapi.DomainTransactionID, len(txs))
	for i, tx := range txs {
		txIDs[i] = TransactionID(tx)
	}
	return txIDs
}

func serializeTransaction(w io.Writer, tx *externalapi.DomainTransaction) error {
	err := serialization.WriteElements(w, tx.Version, uint64(len(tx.Inputs)))
	if err != nil {
		return err
	}
	for _, input := range tx.Inputs {
		err = serialization.WriteElements(w, input.PreviousOutpoint.TransactionID, input.PreviousOutpoint.Index)
		if err != nil {
			return err
		}
	}

	err = serialization.WriteElement(w, uint64(len(tx.Outputs)))
	if err != nil {
		return err
	}
	for _, output := range tx.Outputs {
		err = serialization.WriteElements(w, output.Value, output.ScriptPublicKey)
		if err != nil {
			return err
		}
	}

	return serialization.WriteElement(w, tx.Payload)
}
