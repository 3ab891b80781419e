package mempool

import (
	"sync"

	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/consensushashing"
)

// Mempool holds transactions that were submitted but not yet chained.
// Transactions are not validated on insertion.
//
// Mempool is safe for concurrent access.
type Mempool struct {
	mtx sync.RWMutex

	config           *Config
	transactionsPool *transactionsPool
}

// New constructs a new Mempool. A nil config means DefaultConfig.
func New(config *Config) *Mempool {
	if config == nil {
		config = DefaultConfig()
	}
	return &Mempool{
		config:           config,
		transactionsPool: newTransactionsPool(),
	}
}

// AddTransaction inserts transaction into the pool, replacing a pending
// transaction with the same ID
func (mp *Mempool) AddTransaction(transaction *externalapi.DomainTransaction) {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	transactionID := consensushashing.TransactionID(transaction)
	mp.transactionsPool.addTransaction(transactionID, transaction)
	log.Tracef("Added transaction %s to the mempool", transactionID)

	mp.limitTransactionCount()
}

// HaveTransaction returns whether a transaction with the given ID is pending
func (mp *Mempool) HaveTransaction(transactionID *externalapi.DomainTransactionID) bool {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	_, ok := mp.transactionsPool.getTransaction(transactionID)
	return ok
}

// GetTransaction returns the pending transaction with the given ID
func (mp *Mempool) GetTransaction(transactionID *externalapi.DomainTransactionID) (*externalapi.DomainTransaction, bool) {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	return mp.transactionsPool.getTransaction(transactionID)
}

// Transactions returns all pending transactions, in insertion order. The
// returned slice is owned by the caller.
func (mp *Mempool) Transactions() []*externalapi.DomainTransaction {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	return mp.transactionsPool.getAllTransactions()
}

// Count returns the number of pending transactions
func (mp *Mempool) Count() int {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	return mp.transactionsPool.count()
}

// this function MUST be called with the mempool mutex locked for writes
func (mp *Mempool) limitTransactionCount() {
	if mp.config.MaximumTransactionCount <= 0 {
		return
	}
	for mp.transactionsPool.count() > mp.config.MaximumTransactionCount {
		evictedID := mp.transactionsPool.removeOldestTransaction()
		log.Debugf("Evicted transaction %s: the mempool holds more than %d transactions",
			evictedID, mp.config.MaximumTransactionCount)
	}
}
