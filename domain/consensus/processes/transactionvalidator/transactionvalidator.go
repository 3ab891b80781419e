package transactionvalidator

import (
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/ruleerrors"
	"github.com/kaspanet/blocktree/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/blocktree/domain/utxo"
	"github.com/kaspanet/blocktree/infrastructure/logger"
)

// TransactionValidator decides which of a list of transactions may be
// chained on top of a UTXO set
type TransactionValidator interface {
	// ValidateTransactions returns the largest subset of transactions that
	// can be applied to utxoSet, the set after applying them, and the
	// rejected transactions with the reason each was rejected.
	// utxoSet may be mutated and returned as resultSet.
	ValidateTransactions(utxoSet *utxo.Set, transactions []*externalapi.DomainTransaction) (
		accepted []*externalapi.DomainTransaction, resultSet *utxo.Set, invalid []ruleerrors.InvalidTransaction)
}

// transactionValidator exposes a set of validation classes, after which
// it's possible to determine whether either a transaction is valid
type transactionValidator struct {
	checkSignatures bool
}

// New instantiates a new TransactionValidator that verifies input
// signatures
func New() TransactionValidator {
	return &transactionValidator{checkSignatures: true}
}

// NewWithoutSignatureCheck instantiates a new TransactionValidator that
// skips signature verification
func NewWithoutSignatureCheck() TransactionValidator {
	return &transactionValidator{checkSignatures: false}
}

// ValidateTransactions passes over the remaining candidates until a pass
// accepts nothing. A transaction that spends an output created by a later
// transaction in the list is therefore still accepted, while of two
// transactions spending the same output only the first one seen is.
func (v *transactionValidator) ValidateTransactions(utxoSet *utxo.Set,
	transactions []*externalapi.DomainTransaction) (
	accepted []*externalapi.DomainTransaction, resultSet *utxo.Set, invalid []ruleerrors.InvalidTransaction) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateTransactions")
	defer onEnd()

	remaining := transactions
	for len(remaining) > 0 {
		var stillRemaining []*externalapi.DomainTransaction
		var stillRemainingErrors []error
		for _, tx := range remaining {
			err := v.validateTransaction(utxoSet, tx)
			if err != nil {
				stillRemaining = append(stillRemaining, tx)
				stillRemainingErrors = append(stillRemainingErrors, err)
				continue
			}
			applyTransaction(utxoSet, tx)
			accepted = append(accepted, tx)
		}

		if len(stillRemaining) == len(remaining) {
			for i, tx := range stillRemaining {
				invalid = append(invalid, ruleerrors.InvalidTransaction{Transaction: tx, Error: stillRemainingErrors[i]})
			}
			break
		}
		remaining = stillRemaining
	}

	log.Debugf("Accepted %d out of %d transactions", len(accepted), len(transactions))
	return accepted, utxoSet, invalid
}

// validateTransaction checks tx against the given set without modifying it
func (v *transactionValidator) validateTransaction(utxoSet *utxo.Set, tx *externalapi.DomainTransaction) error {
	err := v.validateTransactionInIsolation(tx)
	if err != nil {
		return err
	}
	return v.validateTransactionInContext(utxoSet, tx)
}

// applyTransaction spends the inputs of tx and adds its outputs to the set
func applyTransaction(utxoSet *utxo.Set, tx *externalapi.DomainTransaction) {
	for _, input := range tx.Inputs {
		utxoSet.Remove(input.PreviousOutpoint)
	}
	utxoSet.AddTransactionOutputs(tx, false)
	log.Tracef("Applied transaction %s", consensushashing.TransactionID(tx))
}
