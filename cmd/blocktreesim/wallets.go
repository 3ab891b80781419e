package main

import (
	"math/rand"

	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/transactionhelper"
	"github.com/kaspanet/blocktree/domain/utxo"
	"github.com/kaspanet/blocktree/util/address"
	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
)

type wallet struct {
	keyPair         *secp256k1.SchnorrKeyPair
	scriptPublicKey []byte
	address         string
}

// wallets holds every key of the simulation. It is read-only once created.
type wallets struct {
	all      []*wallet
	byScript map[string]*wallet
}

func newWallets(count int) (*wallets, error) {
	ws := &wallets{
		all:      make([]*wallet, 0, count),
		byScript: make(map[string]*wallet, count),
	}
	for i := 0; i < count; i++ {
		keyPair, scriptPublicKey, err := transactionhelper.GenerateKeyPair()
		if err != nil {
			return nil, err
		}
		w := &wallet{
			keyPair:         keyPair,
			scriptPublicKey: scriptPublicKey,
			address:         address.Encode(scriptPublicKey),
		}
		ws.all = append(ws.all, w)
		ws.byScript[string(scriptPublicKey)] = w
		log.Debugf("Created wallet %s", w.address)
	}
	return ws, nil
}

func (ws *wallets) random(rng *rand.Rand) *wallet {
	return ws.all[rng.Intn(len(ws.all))]
}

func (ws *wallets) lookupKey(scriptPublicKey []byte) (*secp256k1.SchnorrKeyPair, error) {
	w, ok := ws.byScript[string(scriptPublicKey)]
	if !ok {
		return nil, errors.Errorf("no wallet owns script public key %x", scriptPublicKey)
	}
	return w.keyPair, nil
}

// balances sums the outputs of utxoSet per wallet address
func (ws *wallets) balances(utxoSet *utxo.Set) map[string]uint64 {
	balances := make(map[string]uint64, len(ws.all))
	utxoSet.ForEach(func(_ externalapi.DomainOutpoint, entry *externalapi.UTXOEntry) bool {
		if w, ok := ws.byScript[string(entry.ScriptPublicKey())]; ok {
			balances[w.address] += entry.Amount()
		}
		return true
	})
	return balances
}

// createTransactions spends up to count outputs of utxoSet that belong to a
// wallet and are not in excluded, each to two random wallets
func (ws *wallets) createTransactions(rng *rand.Rand, utxoSet *utxo.Set,
	excluded map[externalapi.DomainOutpoint]struct{}, count int) ([]*externalapi.DomainTransaction, error) {

	var transactions []*externalapi.DomainTransaction
	for _, outpoint := range utxoSet.Outpoints() {
		if len(transactions) >= count {
			break
		}
		if _, ok := excluded[outpoint]; ok {
			continue
		}
		entry, _ := utxoSet.Get(outpoint)
		if _, ok := ws.byScript[string(entry.ScriptPublicKey())]; !ok || entry.Amount() < 2 {
			continue
		}

		change := uint64(rng.Int63n(int64(entry.Amount()-1))) + 1
		outpoint := outpoint
		tx := transactionhelper.NewNativeTransaction(
			[]*externalapi.DomainTransactionInput{transactionhelper.NewInput(&outpoint)},
			[]*externalapi.DomainTransactionOutput{
				transactionhelper.NewOutput(entry.Amount()-change, ws.random(rng).scriptPublicKey),
				transactionhelper.NewOutput(change, ws.random(rng).scriptPublicKey),
			})
		err := transactionhelper.SignAllInputs(tx, []*externalapi.UTXOEntry{entry}, ws.lookupKey)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}
