package processor

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	logging "github.com/ipfs/go-log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wcgcyx/texec/engine"
	"github.com/wcgcyx/texec/executive"
	"github.com/wcgcyx/texec/vm"
	"github.com/wcgcyx/texec/worldstate"
)

// Logger
var log = logging.Logger("processor")

// BlockProcessor applies blocks to the world state, transaction by transaction.
type BlockProcessor struct {
	// Chain configuration, for block rewards
	config *params.ChainConfig

	// Consensus engine, for schedule, signer and builtins
	engine engine.Engine

	// Interpreter factory
	factory *vm.Factory

	// Options of every transact
	opts executive.TransactOptions

	metrics *processorMetrics
}

// Result is the outcome of a processed block.
type Result struct {
	// Receipts in transaction order
	Receipts types.Receipts

	// All logs of the block
	Logs []*types.Log

	// Gas used by the block
	GasUsed uint64

	// Executed records in transaction order, carrying traces if tracing
	Executed []*executive.Executed
}

// NewBlockProcessor creates a new block processor.
// Metrics are registered to the given registerer.
func NewBlockProcessor(
	config *params.ChainConfig,
	eng engine.Engine,
	factory *vm.Factory,
	opts executive.TransactOptions,
	registerer prometheus.Registerer,
) (*BlockProcessor, error) {
	metrics, err := newProcessorMetrics(registerer)
	if err != nil {
		log.Errorf("Fail to register processor metrics: %v", err.Error())
		return nil, err
	}
	return &BlockProcessor{
		config:  config,
		engine:  eng,
		factory: factory,
		opts:    opts,
		metrics: metrics,
	}, nil
}

// Process applies every transaction of the block, credits the block and uncle
// rewards and commits the world state as the state of the block.
// lastHashes are the hashes of the preceding blocks, most recent first.
//
// A transaction that can not be applied fails the whole block, the world
// state must then be discarded.
func (p *BlockProcessor) Process(ctx context.Context, block *types.Block, lastHashes []common.Hash, worldState worldstate.WorldState) (*Result, error) {
	start := time.Now()
	var (
		header    = block.Header()
		blockHash = block.Hash()
		info      = NewEnvInfo(header, lastHashes)
		res       = &Result{
			Receipts: make(types.Receipts, 0, len(block.Transactions())),
			Logs:     make([]*types.Log, 0),
			Executed: make([]*executive.Executed, 0, len(block.Transactions())),
		}
	)
	for i, tx := range block.Transactions() {
		ex := executive.NewExecutive(worldState, info, p.engine, p.factory)
		executed, err := ex.Transact(tx, p.opts)
		if err != nil {
			return nil, fmt.Errorf("could not apply tx %d [%v]: %w", i, tx.Hash().Hex(), err)
		}
		info.GasUsed = executed.CumulativeGasUsed

		receipt := newReceipt(tx, executed, header, blockHash, i, uint(len(res.Logs)))
		log.Debugf("Txn %v, Used gas: %v, status %v", tx.Hash(), executed.GasUsed, receipt.Status)
		if receipt.Status == types.ReceiptStatusSuccessful {
			p.metrics.transactions.WithLabelValues("success").Inc()
		} else {
			p.metrics.transactions.WithLabelValues("failed").Inc()
		}
		p.metrics.gasUsed.Add(float64(executed.GasUsed))
		p.metrics.refunded.Add(float64(executed.Refunded))

		res.Receipts = append(res.Receipts, receipt)
		res.Logs = append(res.Logs, receipt.Logs...)
		res.Executed = append(res.Executed, executed)
	}
	res.GasUsed = info.GasUsed

	accumulateRewards(p.config, worldState, header, block.Uncles())

	if err := worldState.Commit(ctx, header.Number.Uint64(), blockHash); err != nil {
		log.Errorf("Fail to commit state of block %v-%v: %v", header.Number, blockHash, err.Error())
		return nil, err
	}
	p.metrics.blocks.Inc()
	p.metrics.blockTime.Observe(time.Since(start).Seconds())
	log.Infof("Processed block %v-%v with %v txs, gas used %v", header.Number, blockHash, len(block.Transactions()), res.GasUsed)
	return res, nil
}
