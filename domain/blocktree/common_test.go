package blocktree

import (
	"testing"

	"github.com/kaspanet/blocktree/domain/blocknode"
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/blocktree/domain/consensus/utils/transactionhelper"
	"github.com/kaspanet/go-secp256k1"
)

const genesisCoinbaseValue = 25

type wallet struct {
	keyPair         *secp256k1.SchnorrKeyPair
	scriptPublicKey []byte
}

func newWallet(t *testing.T) *wallet {
	keyPair, scriptPublicKey, err := transactionhelper.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %+v", err)
	}
	return &wallet{keyPair: keyPair, scriptPublicKey: scriptPublicKey}
}

// treeSetup creates a tree whose genesis pays genesisCoinbaseValue to
// owner, and returns the outpoint of that output
func treeSetup(t *testing.T, owner *wallet, config *Config) (*BlockTree, *externalapi.DomainOutpoint) {
	genesisCoinbase := transactionhelper.NewCoinbaseTransaction([]byte("genesis"),
		transactionhelper.NewOutput(genesisCoinbaseValue, owner.scriptPublicKey))
	bt, err := New(NewGenesisBlock(genesisCoinbase), config)
	if err != nil {
		t.Fatalf("New: %+v", err)
	}
	return bt, externalapi.NewDomainOutpoint(consensushashing.TransactionID(genesisCoinbase), 0)
}

// addBlockForTest builds a block on top of parentHash and requires it to be
// accepted
func addBlockForTest(t *testing.T, bt *BlockTree, parentHash *externalapi.DomainHash,
	transactions []*externalapi.DomainTransaction) *blocknode.Node {

	block := PrepareBlockForTest(parentHash, []byte{0}, 1, transactions)
	err := bt.ProcessBlock(block)
	if err != nil {
		t.Fatalf("ProcessBlock on top of %s: %+v", parentHash, err)
	}
	node, ok := bt.LookupNode(consensushashing.BlockHash(block))
	if !ok {
		t.Fatalf("accepted block %s is not in the tree", consensushashing.BlockHash(block))
	}
	return node
}

// addChainForTest extends parentHash with length blocks and returns their
// nodes, lowest first
func addChainForTest(t *testing.T, bt *BlockTree, parentHash *externalapi.DomainHash, length int) []*blocknode.Node {
	nodes := make([]*blocknode.Node, 0, length)
	for i := 0; i < length; i++ {
		node := addBlockForTest(t, bt, parentHash, nil)
		nodes = append(nodes, node)
		parentHash = node.Hash
	}
	return nodes
}

// spendForTest returns a transaction spending the output at outpoint,
// worth value and owned by owner, to recipient
func spendForTest(t *testing.T, outpoint *externalapi.DomainOutpoint, value uint64, isCoinbase bool,
	owner, recipient *wallet) *externalapi.DomainTransaction {

	tx := transactionhelper.NewNativeTransaction(
		[]*externalapi.DomainTransactionInput{transactionhelper.NewInput(outpoint)},
		[]*externalapi.DomainTransactionOutput{transactionhelper.NewOutput(value, recipient.scriptPublicKey)})
	spentEntry := externalapi.NewUTXOEntry(value, owner.scriptPublicKey, isCoinbase)
	err := transactionhelper.SignInput(tx, 0, spentEntry, owner.keyPair)
	if err != nil {
		t.Fatalf("SignInput: %+v", err)
	}
	return tx
}

type treeState struct {
	blockCount    int
	tip           *blocknode.Node
	poolCount     int
	tipCommitment *externalapi.DomainHash
}

func captureState(bt *BlockTree) treeState {
	return treeState{
		blockCount:    bt.BlockCount(),
		tip:           bt.Tip(),
		poolCount:     bt.TransactionPool().Count(),
		tipCommitment: bt.TipUTXOSet().Commitment(),
	}
}

func assertStateUnchanged(t *testing.T, testName string, bt *BlockTree, before treeState) {
	after := captureState(bt)
	if after.blockCount != before.blockCount {
		t.Fatalf("%s: block count changed from %d to %d", testName, before.blockCount, after.blockCount)
	}
	if after.tip != before.tip {
		t.Fatalf("%s: tip changed from %s to %s", testName, before.tip, after.tip)
	}
	if after.poolCount != before.poolCount {
		t.Fatalf("%s: pool size changed from %d to %d", testName, before.poolCount, after.poolCount)
	}
	if !after.tipCommitment.Equal(before.tipCommitment) {
		t.Fatalf("%s: tip UTXO set changed", testName)
	}
}
