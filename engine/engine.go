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

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	logging "github.com/ipfs/go-log"
	"github.com/wcgcyx/texec/builtin"
	"github.com/wcgcyx/texec/schedule"
	itypes "github.com/wcgcyx/texec/types"
)

// Logger
var log = logging.Logger("engine")

// Engine supplies the consensus rules for a block.
type Engine interface {
	builtin.Dispatcher

	// Name returns the name of the engine.
	Name() string

	// Schedule returns the rule table in force for the given block.
	Schedule(env *itypes.EnvInfo) *schedule.Schedule

	// Signer returns the transaction signer in force for the given block.
	Signer(env *itypes.EnvInfo) types.Signer
}

// engineImpl implements Engine on top of a chain config.
type engineImpl struct {
	builtin.Dispatcher

	name   string
	config *params.ChainConfig

	// Overrides the call depth limit of the schedule when set.
	maxDepth *uint64
}

// NewEngine creates a new engine for the given chain config.
// Homestead rules apply from config.HomesteadBlock, Frontier before that.
func NewEngine(name string, config *params.ChainConfig, opts Opts) Engine {
	e := &engineImpl{
		Dispatcher: opts.Builtins,
		name:       name,
		config:     config,
		maxDepth:   opts.MaxDepth,
	}
	if e.Dispatcher == nil {
		e.Dispatcher = builtin.NewDispatcher()
	}
	if e.maxDepth != nil {
		log.Infof("Engine %v uses max call depth %v", name, *e.maxDepth)
	}
	return e
}

// Name returns the name of the engine.
func (e *engineImpl) Name() string {
	return e.name
}

// Schedule returns the rule table in force for the given block.
func (e *engineImpl) Schedule(env *itypes.EnvInfo) *schedule.Schedule {
	var s *schedule.Schedule
	if e.config.IsHomestead(new(big.Int).SetUint64(env.Number)) {
		s = schedule.NewHomestead()
	} else {
		s = schedule.NewFrontier()
	}
	if e.maxDepth != nil {
		s.MaxDepth = *e.maxDepth
	}
	return s
}

// Signer returns the transaction signer in force for the given block.
func (e *engineImpl) Signer(env *itypes.EnvInfo) types.Signer {
	return types.MakeSigner(e.config, new(big.Int).SetUint64(env.Number), env.Timestamp)
}
