package engine

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
	"math/big"

	"github.com/ethereum/go-ethereum/params"
	"github.com/wcgcyx/texec/builtin"
)

// Opts is the options for engine.
type Opts struct {
	// Max call depth, schedule default if nil
	MaxDepth *uint64

	// Builtin contracts, the four original builtins if nil
	Builtins builtin.Dispatcher
}

// NewChainConfig creates a pre-EIP150 chain config. A nil homestead block
// keeps the chain on Frontier rules forever.
func NewChainConfig(chainID uint64, homesteadBlock *uint64) *params.ChainConfig {
	cfg := &params.ChainConfig{
		ChainID: new(big.Int).SetUint64(chainID),
		Ethash:  new(params.EthashConfig),
	}
	if homesteadBlock != nil {
		cfg.HomesteadBlock = new(big.Int).SetUint64(*homesteadBlock)
	}
	return cfg
}
