package main

import (
	"context"
	"encoding/binary"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/blocktree/domain/blocknode"
	"github.com/kaspanet/blocktree/domain/blocktree"
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/processes/transactionvalidator"
	"github.com/kaspanet/blocktree/domain/consensus/utils/transactionhelper"
	"github.com/kaspanet/blocktree/infrastructure/logger"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	genesisValuePerWallet = 1000
	blockReward           = 50
	reportInterval        = 5 * time.Second
)

// simulation drives a block tree with concurrent miners that build on the
// tip or, sometimes, on one of its recent ancestors
type simulation struct {
	cfg       *configFlags
	tree      *blocktree.BlockTree
	wallets   *wallets
	validator transactionvalidator.TransactionValidator

	addedBlocks    uint64
	rejectedBlocks uint64
	tipChanges     uint64
}

func newSimulation(cfg *configFlags) (*simulation, error) {
	ws, err := newWallets(cfg.Wallets)
	if err != nil {
		return nil, err
	}

	outputs := make([]*externalapi.DomainTransactionOutput, 0, len(ws.all))
	for _, w := range ws.all {
		outputs = append(outputs, transactionhelper.NewOutput(genesisValuePerWallet, w.scriptPublicKey))
	}
	genesis := blocktree.NewGenesisBlock(transactionhelper.NewCoinbaseTransaction([]byte(appName), outputs...))

	tree, err := blocktree.New(genesis, cfg.TreeConfig)
	if err != nil {
		return nil, err
	}

	sim := &simulation{
		cfg:       cfg,
		tree:      tree,
		wallets:   ws,
		validator: cfg.TreeConfig.TransactionValidator,
	}
	tree.Subscribe(sim.handleNotification)
	return sim, nil
}

func (sim *simulation) handleNotification(notification *blocktree.Notification) {
	if notification.Type != blocktree.NTTipChanged {
		return
	}
	atomic.AddUint64(&sim.tipChanges, 1)
	data := notification.Data.(*blocktree.TipChangedNotificationData)
	log.Debugf("Tip moved from %s to %s (height %d)", data.OldTip, data.NewTip, data.NewTip.Height)
}

// run starts one goroutine per miner and waits until NumberOfBlocks blocks
// were added, a miner fails, or ctx is done
func (sim *simulation) run(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < sim.cfg.Miners; i++ {
		minerID := i
		rng := rand.New(rand.NewSource(sim.cfg.Seed + int64(minerID)))
		group.Go(func() error {
			return sim.mineLoop(groupCtx, minerID, rng)
		})
	}
	return group.Wait()
}

func (sim *simulation) mineLoop(ctx context.Context, minerID int, rng *rand.Rand) error {
	for blockIndex := uint64(0); ; blockIndex++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if atomic.LoadUint64(&sim.addedBlocks) >= sim.cfg.NumberOfBlocks {
			return nil
		}

		err := sim.createTransactions(rng)
		if err != nil {
			return err
		}

		block, err := sim.buildBlock(rng, minerID, blockIndex)
		if err != nil {
			return err
		}

		err = sim.tree.ProcessBlock(block)
		if err != nil {
			// Rule errors are expected: a fork may have fallen below the
			// cut-off or been pruned in the meantime.
			atomic.AddUint64(&sim.rejectedBlocks, 1)
			log.Debugf("Miner %d: block rejected: %s", minerID, err)
			continue
		}
		atomic.AddUint64(&sim.addedBlocks, 1)
	}
}

// createTransactions adds new spends of the tip's outputs to the pool
func (sim *simulation) createTransactions(rng *rand.Rand) error {
	pending := sim.tree.TransactionPool().Transactions()
	spentByPending := make(map[externalapi.DomainOutpoint]struct{})
	for _, tx := range pending {
		for _, input := range tx.Inputs {
			spentByPending[input.PreviousOutpoint] = struct{}{}
		}
	}

	transactions, err := sim.wallets.createTransactions(rng, sim.tree.TipUTXOSet(), spentByPending,
		sim.cfg.TransactionsPerBlock)
	if err != nil {
		return err
	}
	for _, tx := range transactions {
		sim.tree.AddTransaction(tx)
	}
	return nil
}

// buildBlock builds a block on a chosen parent with the pending
// transactions that are valid on top of it
func (sim *simulation) buildBlock(rng *rand.Rand, minerID int, blockIndex uint64) (*externalapi.DomainBlock, error) {
	parent := sim.chooseParent(rng)
	parentUTXOSet, err := sim.tree.UTXOSet(parent.Hash)
	if err != nil {
		// The parent was pruned after it was chosen.
		parent = sim.tree.Tip()
		parentUTXOSet = sim.tree.TipUTXOSet()
	}

	accepted, _, _ := sim.validator.ValidateTransactions(parentUTXOSet, sim.tree.TransactionPool().Transactions())
	if len(accepted) > sim.cfg.TransactionsPerBlock {
		accepted = accepted[:sim.cfg.TransactionsPerBlock]
		// Dropping transactions may orphan later ones that spend their
		// outputs, so validate the truncated list again.
		parentUTXOSet, err = sim.tree.UTXOSet(parent.Hash)
		if err != nil {
			return nil, errors.Wrapf(err, "miner %d", minerID)
		}
		accepted, _, _ = sim.validator.ValidateTransactions(parentUTXOSet, accepted)
	}

	payload := make([]byte, 16)
	binary.LittleEndian.PutUint64(payload[:8], uint64(minerID))
	binary.LittleEndian.PutUint64(payload[8:], blockIndex)
	coinbase := transactionhelper.NewCoinbaseTransaction(payload,
		transactionhelper.NewOutput(blockReward, sim.wallets.random(rng).scriptPublicKey))

	if accepted == nil {
		accepted = []*externalapi.DomainTransaction{}
	}
	return &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			ParentHash:         parent.Hash,
			TimeInMilliseconds: time.Now().UnixNano() / int64(time.Millisecond),
			Nonce:              rng.Uint64(),
		},
		Transactions: accepted,
		Coinbase:     coinbase,
	}, nil
}

// chooseParent returns the tip, or with ForkProbability one of its
// ancestors up to MaxLag blocks below it
func (sim *simulation) chooseParent(rng *rand.Rand) *blocknode.Node {
	parent := sim.tree.Tip()
	if rng.Float64() >= sim.cfg.ForkProbability {
		return parent
	}

	lag := rng.Int63n(int64(sim.cfg.MaxLag)) + 1
	for i := int64(0); i < lag && !parent.IsGenesis(); i++ {
		ancestor, ok := sim.tree.LookupNode(parent.ParentHash)
		if !ok {
			break
		}
		parent = ancestor
	}
	return parent
}

func (sim *simulation) reportLoop(ctx context.Context) {
	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tip := sim.tree.Tip()
			log.Infof("Tip %s at height %d, %d blocks added, %d rejected, %d pending transactions",
				tip, tip.Height, atomic.LoadUint64(&sim.addedBlocks), atomic.LoadUint64(&sim.rejectedBlocks),
				sim.tree.TransactionPool().Count())
		}
	}
}

func (sim *simulation) logSummary() {
	tip := sim.tree.Tip()
	tipUTXOSet := sim.tree.TipUTXOSet()
	log.Infof("Finished: tip %s at height %d, %d blocks in the tree, %d added, %d rejected, %d tip changes",
		tip, tip.Height, sim.tree.BlockCount(), atomic.LoadUint64(&sim.addedBlocks),
		atomic.LoadUint64(&sim.rejectedBlocks), atomic.LoadUint64(&sim.tipChanges))
	log.Infof("Tip UTXO set: %d outputs, commitment %s", tipUTXOSet.Len(), tipUTXOSet.Commitment())
	log.Debugf("Balances: %s", logger.NewLogClosure(func() string {
		return spew.Sdump(sim.wallets.balances(tipUTXOSet))
	}))
}
