package ruleerrors

import (
	"fmt"

	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrDuplicateBlock indicates a block with the same hash already
	// exists.
	ErrDuplicateBlock = newRuleError("ErrDuplicateBlock")

	// ErrNoParents indicates that a block other than the genesis declares
	// no parent.
	ErrNoParents = newRuleError("ErrNoParents")

	// ErrMissingCoinbase indicates that a block carries no coinbase transaction.
	ErrMissingCoinbase = newRuleError("ErrMissingCoinbase")

	// ErrCoinbaseHasInputs indicates that the coinbase transaction of a
	// block spends previous outputs.
	ErrCoinbaseHasInputs = newRuleError("ErrCoinbaseHasInputs")

	// ErrNoTxInputs indicates a regular transaction does not have any inputs.
	ErrNoTxInputs = newRuleError("ErrNoTxInputs")

	// ErrDoubleSpendInSameTx indicates a transaction that references the same
	// output more than once.
	ErrDoubleSpendInSameTx = newRuleError("ErrDoubleSpendInSameTx")

	// ErrBadTxOutValue indicates an output value for a transaction is
	// invalid in some way such as being out of range.
	ErrBadTxOutValue = newRuleError("ErrBadTxOutValue")

	// ErrSpendTooHigh indicates a transaction is attempting to spend more
	// value than the sum of all of its inputs.
	ErrSpendTooHigh = newRuleError("ErrSpendTooHigh")

	// ErrSignatureInvalid indicates that an input's signature script does
	// not prove ownership of the output it consumes.
	ErrSignatureInvalid = newRuleError("ErrSignatureInvalid")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block or transaction failed due to one of the many validation
// rules. The caller can use type assertions to determine if a failure was
// specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// Is reports whether target is a RuleError with the same message. This lets
// callers match the sentinel values above against errors that carry an
// inner cause.
func (e RuleError) Is(target error) bool {
	var other RuleError
	if !errors.As(target, &other) {
		return false
	}
	return e.message == other.message
}

// ErrMissingTxOut indicates a transaction output referenced by an input
// either does not exist or has already been spent.
type ErrMissingTxOut struct {
	MissingOutpoints []*externalapi.DomainOutpoint
}

func (e ErrMissingTxOut) Error() string {
	return fmt.Sprintf("missing the following outpoint: %v", e.MissingOutpoints)
}

// NewErrMissingTxOut Creates a new ErrMissingTxOut error wrapped in a RuleError
func NewErrMissingTxOut(missingOutpoints []*externalapi.DomainOutpoint) error {
	return errors.WithStack(RuleError{
		message: "ErrMissingTxOut",
		inner:   ErrMissingTxOut{missingOutpoints},
	})
}

// ErrMissingParents indicates a block points to an unknown parent.
type ErrMissingParents struct {
	MissingParentHashes []*externalapi.DomainHash
}

func (e ErrMissingParents) Error() string {
	return fmt.Sprintf("missing the following parent hashes: %v", e.MissingParentHashes)
}

// NewErrMissingParents creates a new ErrMissingParents error wrapped in a RuleError
func NewErrMissingParents(missingParentHashes []*externalapi.DomainHash) error {
	return errors.WithStack(RuleError{
		message: "ErrMissingParents",
		inner:   ErrMissingParents{missingParentHashes},
	})
}

// ErrBlockTooDeep indicates a block would be added too far below the
// current tip of the tree.
type ErrBlockTooDeep struct {
	BlockHeight uint64
	TipHeight   uint64
	CutOffAge   uint64
}

func (e ErrBlockTooDeep) Error() string {
	return fmt.Sprintf("block height %d is not above tip height %d minus cut-off age %d",
		e.BlockHeight, e.TipHeight, e.CutOffAge)
}

// NewErrBlockTooDeep creates a new ErrBlockTooDeep error wrapped in a RuleError
func NewErrBlockTooDeep(blockHeight, tipHeight, cutOffAge uint64) error {
	return errors.WithStack(RuleError{
		message: "ErrBlockTooDeep",
		inner:   ErrBlockTooDeep{blockHeight, tipHeight, cutOffAge},
	})
}

// InvalidTransaction is a struct containing an invalid transaction, and the error explaining why it's invalid.
type InvalidTransaction struct {
	Transaction *externalapi.DomainTransaction
	Error       error
}

func (invalid InvalidTransaction) String() string {
	return fmt.Sprintf("(%v: %s)", consensushashing.TransactionID(invalid.Transaction), invalid.Error)
}

// ErrInvalidTransactionsInNewBlock indicates that some transactions in a new block are invalid
type ErrInvalidTransactionsInNewBlock struct {
	InvalidTransactions []InvalidTransaction
}

func (e ErrInvalidTransactionsInNewBlock) Error() string {
	return fmt.Sprint(e.InvalidTransactions)
}

// NewErrInvalidTransactionsInNewBlock Creates a new ErrInvalidTransactionsInNewBlock error wrapped in a RuleError
func NewErrInvalidTransactionsInNewBlock(invalidTransactions []InvalidTransaction) error {
	return errors.WithStack(RuleError{
		message: "ErrInvalidTransactionsInNewBlock",
		inner:   ErrInvalidTransactionsInNewBlock{invalidTransactions},
	})
}

// Sentinels matching the structured errors above, for use with errors.Is.
var (
	ErrMissingParentsRule                = newRuleError("ErrMissingParents")
	ErrBlockTooDeepRule                  = newRuleError("ErrBlockTooDeep")
	ErrMissingTxOutRule                  = newRuleError("ErrMissingTxOut")
	ErrInvalidTransactionsInNewBlockRule = newRuleError("ErrInvalidTransactionsInNewBlock")
)
