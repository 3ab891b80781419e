package mempool

import (
	"container/list"

	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
)

type pendingTransaction struct {
	transactionID *externalapi.DomainTransactionID
	transaction   *externalapi.DomainTransaction
}

// transactionsPool keeps pending transactions by ID and in insertion order
type transactionsPool struct {
	allTransactions  map[externalapi.DomainTransactionID]*list.Element
	insertionOrdered *list.List
}

func newTransactionsPool() *transactionsPool {
	return &transactionsPool{
		allTransactions:  make(map[externalapi.DomainTransactionID]*list.Element),
		insertionOrdered: list.New(),
	}
}

// A replaced transaction keeps its place in the insertion order.
// this function MUST be called with the mempool mutex locked for writes
func (tp *transactionsPool) addTransaction(transactionID *externalapi.DomainTransactionID,
	transaction *externalapi.DomainTransaction) {

	if element, ok := tp.allTransactions[*transactionID]; ok {
		element.Value.(*pendingTransaction).transaction = transaction
		return
	}
	element := tp.insertionOrdered.PushBack(&pendingTransaction{
		transactionID: transactionID,
		transaction:   transaction,
	})
	tp.allTransactions[*transactionID] = element
}

// this function MUST be called with the mempool mutex locked for writes
func (tp *transactionsPool) removeTransaction(transactionID *externalapi.DomainTransactionID) bool {
	element, ok := tp.allTransactions[*transactionID]
	if !ok {
		return false
	}
	tp.insertionOrdered.Remove(element)
	delete(tp.allTransactions, *transactionID)
	return true
}

// this function MUST be called with the mempool mutex locked for writes
func (tp *transactionsPool) removeOldestTransaction() *externalapi.DomainTransactionID {
	oldest := tp.insertionOrdered.Front().Value.(*pendingTransaction)
	tp.removeTransaction(oldest.transactionID)
	return oldest.transactionID
}

// this function MUST be called with the mempool mutex locked for reads
func (tp *transactionsPool) getTransaction(transactionID *externalapi.DomainTransactionID) (
	*externalapi.DomainTransaction, bool) {

	if element, ok := tp.allTransactions[*transactionID]; ok {
		return element.Value.(*pendingTransaction).transaction, true
	}
	return nil, false
}

// this function MUST be called with the mempool mutex locked for reads
func (tp *transactionsPool) getAllTransactions() []*externalapi.DomainTransaction {
	result := make([]*externalapi.DomainTransaction, 0, len(tp.allTransactions))
	for element := tp.insertionOrdered.Front(); element != nil; element = element.Next() {
		result = append(result, element.Value.(*pendingTransaction).transaction)
	}
	return result
}

// this function MUST be called with the mempool mutex locked for reads
func (tp *transactionsPool) count() int {
	return len(tp.allTransactions)
}
