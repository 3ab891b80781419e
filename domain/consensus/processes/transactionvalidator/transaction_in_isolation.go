package transactionvalidator

import (
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// validateTransactionInIsolation runs the checks that need nothing but the
// transaction itself
func (v *transactionValidator) validateTransactionInIsolation(tx *externalapi.DomainTransaction) error {
	err := checkTransactionInputCount(tx)
	if err != nil {
		return err
	}
	err = checkTransactionAmountRanges(tx)
	if err != nil {
		return err
	}
	return checkDuplicateTransactionInputs(tx)
}

func checkTransactionInputCount(tx *externalapi.DomainTransaction) error {
	// A non-coinbase transaction must reference at least one input.
	if len(tx.Inputs) == 0 {
		return errors.Wrapf(ruleerrors.ErrNoTxInputs, "transaction has no inputs")
	}
	return nil
}

func checkTransactionAmountRanges(tx *externalapi.DomainTransaction) error {
	// Output values are unsigned so they can't be negative. The total of
	// all outputs must not overflow the accumulator.
	var totalValue uint64
	for i, txOut := range tx.Outputs {
		newTotalValue := totalValue + txOut.Value
		if newTotalValue < totalValue {
			return errors.Wrapf(ruleerrors.ErrBadTxOutValue, "total value of all transaction "+
				"outputs overflows at output %d", i)
		}
		totalValue = newTotalValue
	}
	return nil
}

func checkDuplicateTransactionInputs(tx *externalapi.DomainTransaction) error {
	existingTxOut := make(map[externalapi.DomainOutpoint]struct{})
	for _, txIn := range tx.Inputs {
		if _, exists := existingTxOut[txIn.PreviousOutpoint]; exists {
			return errors.Wrapf(ruleerrors.ErrDoubleSpendInSameTx, "transaction "+
				"contains duplicate inputs spending %s", txIn.PreviousOutpoint)
		}
		existingTxOut[txIn.PreviousOutpoint] = struct{}{}
	}
	return nil
}
