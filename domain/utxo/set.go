package utxo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/consensushashing"
)

// utxoCollection represents a set of UTXOs indexed by their outpoints
type utxoCollection map[externalapi.DomainOutpoint]*externalapi.UTXOEntry

func (uc utxoCollection) String() string {
	utxoStrings := make([]string, len(uc))

	i := 0
	for outpoint, utxoEntry := range uc {
		utxoStrings[i] = fmt.Sprintf("(%s, %d) => %d, coinbase: %t",
			outpoint.TransactionID, outpoint.Index, utxoEntry.Amount(), utxoEntry.IsCoinbase())
		i++
	}

	// Sort strings for determinism.
	sort.Strings(utxoStrings)

	return fmt.Sprintf("[ %s ]", strings.Join(utxoStrings, ", "))
}

// clone returns a clone of this collection
func (uc utxoCollection) clone() utxoCollection {
	clone := make(utxoCollection, len(uc))
	for outpoint, entry := range uc {
		clone[outpoint] = entry
	}

	return clone
}

// Set represents the outputs which are spendable on the chain ending at a
// given block. Every block node owns its own Set; sets handed out of the
// block tree are always clones, so mutating one never affects another.
//
// Set is NOT safe for concurrent mutation.
type Set struct {
	collection utxoCollection
}

// NewSet returns a new empty Set
func NewSet() *Set {
	return &Set{
		collection: make(utxoCollection),
	}
}

// Get returns the UTXOEntry associated with the given outpoint, and a
// boolean indicating if such entry was found
func (s *Set) Get(outpoint externalapi.DomainOutpoint) (*externalapi.UTXOEntry, bool) {
	entry, ok := s.collection[outpoint]
	return entry, ok
}

// Contains returns a boolean value indicating whether an outpoint is in the set
func (s *Set) Contains(outpoint externalapi.DomainOutpoint) bool {
	_, ok := s.collection[outpoint]
	return ok
}

// Add adds a new UTXO entry to the set, replacing any existing entry
// for the same outpoint
func (s *Set) Add(outpoint externalapi.DomainOutpoint, entry *externalapi.UTXOEntry) {
	s.collection[outpoint] = entry
}

// Remove removes the entry for the given outpoint from the set if it exists
func (s *Set) Remove(outpoint externalapi.DomainOutpoint) {
	delete(s.collection, outpoint)
}

// Len returns the number of entries in the set
func (s *Set) Len() int {
	return len(s.collection)
}

// Clone returns an independent copy of this set. Entries are immutable so
// they are shared between the copies.
func (s *Set) Clone() *Set {
	return &Set{
		collection: s.collection.clone(),
	}
}

// ForEach calls the given function for every outpoint and entry in the set,
// in no particular order. Iteration stops early if the function returns false.
func (s *Set) ForEach(f func(outpoint externalapi.DomainOutpoint, entry *externalapi.UTXOEntry) bool) {
	for outpoint, entry := range s.collection {
		if !f(outpoint, entry) {
			return
		}
	}
}

// Outpoints returns all the outpoints in the set, sorted by transaction ID
// and then by index
func (s *Set) Outpoints() []externalapi.DomainOutpoint {
	outpoints := make([]externalapi.DomainOutpoint, 0, len(s.collection))
	for outpoint := range s.collection {
		outpoints = append(outpoints, outpoint)
	}
	sort.Slice(outpoints, func(i, j int) bool {
		if outpoints[i].TransactionID != outpoints[j].TransactionID {
			return (*externalapi.DomainHash)(&outpoints[i].TransactionID).Less(
				(*externalapi.DomainHash)(&outpoints[j].TransactionID))
		}
		return outpoints[i].Index < outpoints[j].Index
	})
	return outpoints
}

// AddTransactionOutputs adds every output of the given transaction to the
// set, without looking at its inputs
func (s *Set) AddTransactionOutputs(tx *externalapi.DomainTransaction, isCoinbase bool) {
	txID := consensushashing.TransactionID(tx)
	for i, output := range tx.Outputs {
		outpoint := externalapi.NewDomainOutpoint(txID, uint32(i))
		s.Add(*outpoint, externalapi.NewUTXOEntry(output.Value, output.ScriptPublicKey, isCoinbase))
	}
}

// Equal returns whether both sets hold exactly the same entries
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for outpoint, entry := range s.collection {
		otherEntry, ok := other.collection[outpoint]
		if !ok || !entry.Equal(otherEntry) {
			return false
		}
	}
	return true
}

func (s *Set) String() string {
	return s.collection.String()
}
