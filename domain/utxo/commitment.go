package utxo

import (
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/go-muhash"
	"github.com/pkg/errors"
)

// Commitment returns a MuHash commitment to the contents of the set.
// The commitment does not depend on insertion order: two sets holding the
// same entries always have the same commitment.
func (s *Set) Commitment() *externalapi.DomainHash {
	multiset := muhash.NewMuHash()
	for outpoint, entry := range s.collection {
		outpoint := outpoint
		serializedUTXO, err := SerializeUTXO(entry, &outpoint)
		if err != nil {
			// Writing into a bytes.Buffer never fails, and every element
			// type above has an encoding.
			panic(errors.Wrap(err, "this should never happen. SerializeUTXO failed"))
		}
		multiset.Add(serializedUTXO)
	}

	finalized := multiset.Finalize()
	hashArray := [externalapi.DomainHashSize]byte(finalized)
	return externalapi.NewDomainHashFromByteArray(&hashArray)
}
