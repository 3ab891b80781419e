package transactionvalidator

import (
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/ruleerrors"
	"github.com/kaspanet/blocktree/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/blocktree/domain/utxo"
	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
)

// validateTransactionInContext validates the transaction against the
// entries it consumes from utxoSet
func (v *transactionValidator) validateTransactionInContext(utxoSet *utxo.Set, tx *externalapi.DomainTransaction) error {
	spentEntries, err := spentUTXOEntries(utxoSet, tx)
	if err != nil {
		return err
	}

	totalValueIn, err := checkTransactionInputAmounts(spentEntries)
	if err != nil {
		return err
	}

	err = checkTransactionOutputAmounts(tx, totalValueIn)
	if err != nil {
		return err
	}

	if v.checkSignatures {
		return validateTransactionSignatures(tx, spentEntries)
	}
	return nil
}

// spentUTXOEntries returns the entry consumed by every input of tx, in
// input order
func spentUTXOEntries(utxoSet *utxo.Set, tx *externalapi.DomainTransaction) ([]*externalapi.UTXOEntry, error) {
	entries := make([]*externalapi.UTXOEntry, len(tx.Inputs))

	var missingOutpoints []*externalapi.DomainOutpoint
	for i, input := range tx.Inputs {
		entry, ok := utxoSet.Get(input.PreviousOutpoint)
		if !ok {
			missingOutpoints = append(missingOutpoints, input.PreviousOutpoint.Clone())
			continue
		}
		entries[i] = entry
	}
	if len(missingOutpoints) > 0 {
		return nil, ruleerrors.NewErrMissingTxOut(missingOutpoints)
	}
	return entries, nil
}

func checkTransactionInputAmounts(spentEntries []*externalapi.UTXOEntry) (totalValueIn uint64, err error) {
	for _, entry := range spentEntries {
		// The input sum could potentially overflow the accumulator.
		newTotalValueIn := totalValueIn + entry.Amount()
		if newTotalValueIn < totalValueIn {
			return 0, errors.Wrapf(ruleerrors.ErrBadTxOutValue, "total value of all transaction "+
				"inputs overflows after %d", totalValueIn)
		}
		totalValueIn = newTotalValueIn
	}
	return totalValueIn, nil
}

func checkTransactionOutputAmounts(tx *externalapi.DomainTransaction, totalValueIn uint64) error {
	// Overflow was already ruled out by checkTransactionAmountRanges.
	totalValueOut := uint64(0)
	for _, output := range tx.Outputs {
		totalValueOut += output.Value
	}

	// Ensure the transaction does not spend more than its inputs.
	if totalValueIn < totalValueOut {
		return errors.Wrapf(ruleerrors.ErrSpendTooHigh, "total value of all transaction inputs for "+
			"the transaction is %d which is less than the amount "+
			"spent of %d", totalValueIn, totalValueOut)
	}
	return nil
}

func validateTransactionSignatures(tx *externalapi.DomainTransaction, spentEntries []*externalapi.UTXOEntry) error {
	for i, input := range tx.Inputs {
		err := validateInputSignature(tx, i, spentEntries[i])
		if err != nil {
			return errors.Wrapf(ruleerrors.ErrSignatureInvalid, "failed to validate input "+
				"%d which references output %s - %s (input script bytes %x, prev output "+
				"script bytes %x)", i, input.PreviousOutpoint, err,
				input.SignatureScript, spentEntries[i].ScriptPublicKey())
		}
	}
	return nil
}

// validateInputSignature checks that the signature script of input idx is a
// Schnorr signature, followed by its hash type, by the key the spent entry
// pays to
func validateInputSignature(tx *externalapi.DomainTransaction, idx int, spentEntry *externalapi.UTXOEntry) error {
	signatureScript := tx.Inputs[idx].SignatureScript
	if len(signatureScript) != secp256k1.SerializedSchnorrSignatureSize+1 {
		return errors.Errorf("signature script has length %d, expected %d",
			len(signatureScript), secp256k1.SerializedSchnorrSignatureSize+1)
	}
	hashType := consensushashing.SigHashType(signatureScript[len(signatureScript)-1])

	publicKey, err := secp256k1.DeserializeSchnorrPubKey(spentEntry.ScriptPublicKey())
	if err != nil {
		return errors.Wrap(err, "malformed script public key")
	}
	signature, err := secp256k1.DeserializeSchnorrSignatureFromSlice(signatureScript[:len(signatureScript)-1])
	if err != nil {
		return errors.Wrap(err, "malformed signature")
	}

	hash, err := consensushashing.CalculateSignatureHash(tx, idx, hashType, spentEntry)
	if err != nil {
		return err
	}
	secpHash := secp256k1.Hash(*hash.ByteArray())
	if !publicKey.SchnorrVerify(&secpHash, signature) {
		return errors.New("signature does not match")
	}
	return nil
}
