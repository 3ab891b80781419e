package consensushashing

import (
	"io"

	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/hashes"
	"github.com/kaspanet/blocktree/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// BlockHash returns the given block's hash. The hash commits to the header,
// the coinbase and the IDs of the block's regular transactions in order.
func BlockHash(block *externalapi.DomainBlock) *externalapi.DomainHash {
	writer := hashes.NewBlockHashWriter()
	err := serializeBlock(writer, block)
	if err != nil {
		// It seems like this could only happen if the writer returned an error.
		// and this writer should never return an error (no allocations or possible failures)
		// the only non-writer error path here is unknown types in `WriteElement`
		panic(errors.Wrap(err, "this should never happen. Hash digest should never return an error"))
	}

	return writer.Finalize()
}

func serializeBlock(w io.Writer, block *externalapi.DomainBlock) error {
	header := block.Header
	hasParent := header.ParentHash != nil
	err := serialization.WriteElements(w, header.Version, hasParent)
	if err != nil {
		return err
	}
	if hasParent {
		err = serialization.WriteElement(w, header.ParentHash)
		if err != nil {
			return err
		}
	}
	err = serialization.WriteElements(w, header.TimeInMilliseconds, header.Nonce)
	if err != nil {
		return err
	}

	hasCoinbase := block.Coinbase != nil
	err = serialization.WriteElement(w, hasCoinbase)
	if err != nil {
		return err
	}
	if hasCoinbase {
		err = serialization.WriteElement(w, TransactionID(block.Coinbase))
		if err != nil {
			return err
		}
	}

	err = serialization.WriteElement(w, uint64(len(block.Transactions)))
	if err != nil {
		return err
	}
	for _, txID := range TransactionIDs(block.Transactions) {
		err = serialization.WriteElement(w, txID)
		if err != nil {
			return err
		}
	}
	return nil
}
