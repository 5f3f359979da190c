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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/consensus/ethash"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
	"github.com/wcgcyx/texec/executive"
	itypes "github.com/wcgcyx/texec/types"
	"github.com/wcgcyx/texec/worldstate"
)

var (
	u256_8  = uint256.NewInt(8)
	u256_32 = uint256.NewInt(32)
)

// NewEnvInfo creates the execution context of the given header.
// lastHashes are the hashes of the preceding blocks, most recent first.
func NewEnvInfo(header *types.Header, lastHashes []common.Hash) *itypes.EnvInfo {
	difficulty := new(uint256.Int)
	if header.Difficulty != nil {
		difficulty, _ = uint256.FromBig(header.Difficulty)
	}
	return &itypes.EnvInfo{
		Author:     header.Coinbase,
		Number:     header.Number.Uint64(),
		Timestamp:  header.Time,
		Difficulty: difficulty,
		GasLimit:   header.GasLimit,
		GasUsed:    0,
		LastHashes: lastHashes,
	}
}

// newReceipt creates the receipt of an executed transaction.
func newReceipt(
	tx *types.Transaction,
	executed *executive.Executed,
	header *types.Header,
	blockHash common.Hash,
	txIndex int,
	logIndex uint,
) *types.Receipt {
	receipt := &types.Receipt{Type: tx.Type(), CumulativeGasUsed: executed.CumulativeGasUsed}
	if executed.Failed() {
		receipt.Status = types.ReceiptStatusFailed
	} else {
		receipt.Status = types.ReceiptStatusSuccessful
	}
	receipt.TxHash = tx.Hash()
	receipt.GasUsed = executed.GasUsed

	// If the transaction created a contract, store the creation address in the receipt.
	if tx.To() == nil {
		receipt.ContractAddress = executed.ContractAddress
	}

	receipt.Logs = make([]*types.Log, 0, len(executed.Logs))
	for _, entry := range executed.Logs {
		receipt.Logs = append(receipt.Logs, &types.Log{
			Address:     entry.Address,
			Topics:      entry.Topics,
			Data:        entry.Data,
			BlockNumber: header.Number.Uint64(),
			TxHash:      tx.Hash(),
			TxIndex:     uint(txIndex),
			BlockHash:   blockHash,
			Index:       logIndex,
		})
		logIndex++
	}
	receipt.Bloom = types.CreateBloom(types.Receipts{receipt})
	receipt.BlockHash = blockHash
	receipt.BlockNumber = header.Number
	receipt.TransactionIndex = uint(txIndex)
	return receipt
}

// accumulateRewards credits the coinbase of the given block with the mining
// reward. The total reward consists of the static block reward and rewards for
// included uncles. The coinbase of each uncle block is also rewarded.
func accumulateRewards(config *params.ChainConfig, state worldstate.WorldState, header *types.Header, uncles []*types.Header) {
	// Select the correct block reward based on chain progression
	blockReward := ethash.FrontierBlockReward
	if config.IsByzantium(header.Number) {
		blockReward = ethash.ByzantiumBlockReward
	}
	if config.IsConstantinople(header.Number) {
		blockReward = ethash.ConstantinopleBlockReward
	}
	// Accumulate the rewards for the miner and any included uncles
	reward := new(uint256.Int).Set(blockReward)
	r := new(uint256.Int)
	hNum, _ := uint256.FromBig(header.Number)
	for _, uncle := range uncles {
		uNum, _ := uint256.FromBig(uncle.Number)
		r.AddUint64(uNum, 8)
		r.Sub(r, hNum)
		r.Mul(r, blockReward)
		r.Div(r, u256_8)
		state.AddBalance(uncle.Coinbase, r)

		r.Div(blockReward, u256_32)
		reward.Add(reward, r)
	}
	state.AddBalance(header.Coinbase, reward)
}
