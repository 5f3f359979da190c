package types

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
	"github.com/holiman/uint256"
)

// AccountValue is used to represent the persisted state of an account.
type AccountValue struct {
	// The nonce of the account
	Nonce uint64

	// The balance of the account
	Balance *uint256.Int

	// The code hash of this account
	CodeHash common.Hash

	// Storage incarnation of the account.
	// It is bumped every time the account is killed so that
	// storage written by a previous incarnation becomes unreachable.
	Version uint64
}

// EnvInfo is the block level context of a transaction.
type EnvInfo struct {
	// Block author, receives the fees.
	Author common.Address

	// Block number
	Number uint64

	// Block timestamp
	Timestamp uint64

	// Block difficulty
	Difficulty *uint256.Int

	// Block gas limit
	GasLimit uint64

	// Gas already used in the block before this transaction
	GasUsed uint64

	// Hashes of the most recent blocks, LastHashes[0] is the hash of block Number-1.
	LastHashes []common.Hash
}

// BlockHash returns the hash of the given block number if it is
// one of the 256 most recent blocks, otherwise an empty hash.
func (e *EnvInfo) BlockHash(number uint64) common.Hash {
	if number >= e.Number {
		return common.Hash{}
	}
	dist := e.Number - number
	if dist > 256 || dist > uint64(len(e.LastHashes)) {
		return common.Hash{}
	}
	return e.LastHashes[dist-1]
}

// LogEntry is a log emitted by contract code.
type LogEntry struct {
	// Address of the contract emitting the log
	Address common.Address

	// Indexed topics
	Topics []common.Hash

	// Log data
	Data []byte
}
