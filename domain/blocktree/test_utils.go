package blocktree

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/transactionhelper"
)

// PrepareBlockForTest builds a block on top of parentHash holding the given
// transactions and a coinbase paying coinbaseValue to scriptPublicKey.
// Every call produces a distinct coinbase. This function is used for test
// purposes only.
func PrepareBlockForTest(parentHash *externalapi.DomainHash, scriptPublicKey []byte, coinbaseValue uint64,
	transactions []*externalapi.DomainTransaction) *externalapi.DomainBlock {

	payload := make([]byte, 8)
	binary.LittleEndian.PutUint64(payload, generateDeterministicExtraNonceForTest())
	coinbase := transactionhelper.NewCoinbaseTransaction(payload,
		transactionhelper.NewOutput(coinbaseValue, scriptPublicKey))

	if transactions == nil {
		transactions = []*externalapi.DomainTransaction{}
	}
	return &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			Version:    0,
			ParentHash: parentHash,
		},
		Transactions: transactions,
		Coinbase:     coinbase,
	}
}

// generateDeterministicExtraNonceForTest returns a unique deterministic extra nonce for coinbase data, in order to create unique coinbase transactions.
func generateDeterministicExtraNonceForTest() uint64 {
	return atomic.AddUint64(&extraNonceForTest, 1)
}

var extraNonceForTest = uint64(0)
