package mempool

import (
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/consensushashing"
)

// RemoveTransaction removes the transaction with the given ID from the
// pool. Removing a transaction that isn't pending is a no-op.
func (mp *Mempool) RemoveTransaction(transactionID *externalapi.DomainTransactionID) {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	mp.removeTransaction(transactionID)
}

// RemoveTransactions removes every given transaction from the pool, e.g.
// once they were chained in an accepted block
func (mp *Mempool) RemoveTransactions(transactions []*externalapi.DomainTransaction) {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	for _, transaction := range transactions {
		mp.removeTransaction(consensushashing.TransactionID(transaction))
	}
}

// this function MUST be called with the mempool mutex locked for writes
func (mp *Mempool) removeTransaction(transactionID *externalapi.DomainTransactionID) {
	if mp.transactionsPool.removeTransaction(transactionID) {
		log.Tracef("Removed transaction %s from the mempool", transactionID)
	}
}
