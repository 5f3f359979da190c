package builtin

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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	logging "github.com/ipfs/go-log"
)

// Logger
var log = logging.Logger("builtin")

// Dispatcher identifies and executes builtin contracts.
type Dispatcher interface {
	// IsBuiltin returns true if the address hosts a builtin contract.
	IsBuiltin(addr common.Address) bool

	// CostOfBuiltin returns the gas needed to run the builtin on the given input.
	CostOfBuiltin(addr common.Address, input []byte) uint64

	// ExecuteBuiltin runs the builtin on the given input.
	ExecuteBuiltin(addr common.Address, input []byte) ([]byte, error)
}

// dispatcherImpl implements Dispatcher over a set of precompiled contracts.
type dispatcherImpl struct {
	contracts map[common.Address]vm.PrecompiledContract
}

// NewDispatcher creates a dispatcher with the four original builtins:
// ecrecover, sha256, ripemd160 and identity.
func NewDispatcher() Dispatcher {
	return NewDispatcherWithContracts(vm.PrecompiledContractsHomestead)
}

// NewDispatcherWithContracts creates a dispatcher over the given contracts.
func NewDispatcherWithContracts(contracts map[common.Address]vm.PrecompiledContract) Dispatcher {
	return &dispatcherImpl{contracts: contracts}
}

// IsBuiltin returns true if the address hosts a builtin contract.
func (d *dispatcherImpl) IsBuiltin(addr common.Address) bool {
	_, ok := d.contracts[addr]
	return ok
}

// CostOfBuiltin returns the gas needed to run the builtin on the given input.
func (d *dispatcherImpl) CostOfBuiltin(addr common.Address, input []byte) uint64 {
	p, ok := d.contracts[addr]
	if !ok {
		log.Panicf("cost requested for non-builtin %v", addr)
	}
	return p.RequiredGas(input)
}

// ExecuteBuiltin runs the builtin on the given input.
func (d *dispatcherImpl) ExecuteBuiltin(addr common.Address, input []byte) ([]byte, error) {
	p, ok := d.contracts[addr]
	if !ok {
		return nil, fmt.Errorf("no builtin at %v", addr)
	}
	out, err := p.Run(input)
	if err != nil {
		log.Debugf("Builtin %v failed: %v", addr, err.Error())
		return nil, err
	}
	return out, nil
}
