package utxo

import (
	"bytes"
	"io"

	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/serialization"
)

// SerializeUTXO returns the byte-slice representation for given UTXOEntry-outpoint pair
func SerializeUTXO(entry *externalapi.UTXOEntry, outpoint *externalapi.DomainOutpoint) ([]byte, error) {
	w := &bytes.Buffer{}

	err := serializeOutpoint(w, outpoint)
	if err != nil {
		return nil, err
	}

	err = serializeUTXOEntry(w, entry)
	if err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

func serializeOutpoint(w io.Writer, outpoint *externalapi.DomainOutpoint) error {
	return serialization.WriteElements(w, outpoint.TransactionID, outpoint.Index)
}

func serializeUTXOEntry(w io.Writer, entry *externalapi.UTXOEntry) error {
	return serialization.WriteElements(w, entry.Amount(), entry.IsCoinbase(), entry.ScriptPublicKey())
}
