package vm

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
	gethvm "github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru/v2"
)

// bitvec marks the code positions that are valid jump destinations.
type bitvec []byte

func (bits bitvec) set(pos uint64) {
	bits[pos/8] |= 1 << (pos % 8)
}

func (bits bitvec) isSet(pos uint64) bool {
	return bits[pos/8]&(1<<(pos%8)) != 0
}

// jumpdests computes the valid jump destinations of code.
// A JUMPDEST byte that is part of PUSH data is not a destination.
func jumpdests(code []byte) bitvec {
	bits := make(bitvec, len(code)/8+1)
	for pc := uint64(0); pc < uint64(len(code)); pc++ {
		op := gethvm.OpCode(code[pc])
		if op == gethvm.JUMPDEST {
			bits.set(pc)
		} else if op >= gethvm.PUSH1 && op <= gethvm.PUSH32 {
			pc += uint64(op - gethvm.PUSH1 + 1)
		}
	}
	return bits
}

// jumpdestCache caches the analysis by code hash.
type jumpdestCache struct {
	cache *lru.Cache[common.Hash, bitvec]
}

func newJumpdestCache(size int) (*jumpdestCache, error) {
	if size <= 0 {
		return &jumpdestCache{}, nil
	}
	cache, err := lru.New[common.Hash, bitvec](size)
	if err != nil {
		return nil, err
	}
	return &jumpdestCache{cache: cache}, nil
}

// get returns the analysis of code, computing it if not cached.
func (c *jumpdestCache) get(code []byte) bitvec {
	if c.cache == nil {
		return jumpdests(code)
	}
	hash := crypto.Keccak256Hash(code)
	if bits, ok := c.cache.Get(hash); ok {
		return bits
	}
	bits := jumpdests(code)
	c.cache.Add(hash, bits)
	return bits
}
