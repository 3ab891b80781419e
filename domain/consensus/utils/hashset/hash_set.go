package hashset

import (
	"sort"
	"strings"

	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
)

// HashSet is a set of block hashes
type HashSet map[externalapi.DomainHash]struct{}

// New returns a new empty HashSet
func New() HashSet {
	return HashSet{}
}

func (hs HashSet) String() string {
	return strings.Join(hashesToStrings(hs.ToSortedSlice()), ", ")
}

// Add adds hash to the set
func (hs HashSet) Add(hash *externalapi.DomainHash) {
	hs[*hash] = struct{}{}
}

// Remove removes hash from the set. Removing a missing hash is a no-op.
func (hs HashSet) Remove(hash *externalapi.DomainHash) {
	delete(hs, *hash)
}

// Contains returns whether hash is in the set
func (hs HashSet) Contains(hash *externalapi.DomainHash) bool {
	_, ok := hs[*hash]
	return ok
}

// Length returns the number of hashes in the set
func (hs HashSet) Length() int {
	return len(hs)
}

// ToSortedSlice returns the hashes in the set in ascending order
func (hs HashSet) ToSortedSlice() []*externalapi.DomainHash {
	slice := make([]*externalapi.DomainHash, 0, len(hs))

	for hash := range hs {
		hash := hash
		slice = append(slice, &hash)
	}
	sort.Slice(slice, func(i, j int) bool {
		return slice[i].Less(slice[j])
	})

	return slice
}

func hashesToStrings(hashes []*externalapi.DomainHash) []string {
	strs := make([]string, len(hashes))
	for i, hash := range hashes {
		strs[i] = hash.String()
	}
	return strs
}
