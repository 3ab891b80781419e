package externalapi

// DomainBlock represents a block in the block tree. Every block carries
// exactly one coinbase transaction, kept apart from its regular transactions.
type DomainBlock struct {
	Header       *DomainBlockHeader
	Transactions []*DomainTransaction
	Coinbase     *DomainTransaction
}

// IsGenesis returns whether the block declares no parent
func (block *DomainBlock) IsGenesis() bool {
	return block.Header.ParentHash == nil
}

// Clone returns a clone of DomainBlock
func (block *DomainBlock) Clone() *DomainBlock {
	transactionClone := make([]*DomainTransaction, len(block.Transactions))
	for i, tx := range block.Transactions {
		transactionClone[i] = tx.Clone()
	}

	var coinbaseClone *DomainTransaction
	if block.Coinbase != nil {
		coinbaseClone = block.Coinbase.Clone()
	}

	return &DomainBlock{
		Header:       block.Header.Clone(),
		Transactions: transactionClone,
		Coinbase:     coinbaseClone,
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = DomainBlock{&DomainBlockHeader{}, []*DomainTransaction{}, &DomainTransaction{}}

// Equal returns whether block equals to other
func (block *DomainBlock) Equal(other *DomainBlock) bool {
	if block == nil || other == nil {
		return block == other
	}

	if len(block.Transactions) != len(other.Transactions) {
		return false
	}

	if !block.Header.Equal(other.Header) {
		return false
	}

	if !block.Coinbase.Equal(other.Coinbase) {
		return false
	}

	for i, tx := range block.Transactions {
		if !tx.Equal(other.Transactions[i]) {
			return false
		}
	}

	return true
}

// DomainBlockHeader represents the header part of a block
type DomainBlockHeader struct {
	Version            int32
	ParentHash         *DomainHash
	TimeInMilliseconds int64
	Nonce              uint64
}

// Clone returns a clone of DomainBlockHeader
func (header *DomainBlockHeader) Clone() *DomainBlockHeader {
	return &DomainBlockHeader{
		Version:            header.Version,
		ParentHash:         header.ParentHash.Clone(),
		TimeInMilliseconds: header.TimeInMilliseconds,
		Nonce:              header.Nonce,
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainBlockHeader{0, &DomainHash{}, 0, 0}

// Equal returns whether header equals to other
func (header *DomainBlockHeader) Equal(other *DomainBlockHeader) bool {
	if header == nil || other == nil {
		return header == other
	}

	if header.Version != other.Version {
		return false
	}

	if !header.ParentHash.Equal(other.ParentHash) {
		return false
	}

	if header.TimeInMilliseconds != other.TimeInMilliseconds {
		return false
	}

	return header.Nonce == other.Nonce
}
