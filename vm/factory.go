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
	"fmt"

	logging "github.com/ipfs/go-log"
	itypes "github.com/wcgcyx/texec/types"
)

var log = logging.Logger("vm")

// VMType is the kind of virtual machine a factory creates.
type VMType string

const (
	// VMTypeInterpreter is the bytecode interpreter.
	VMTypeInterpreter VMType = "interpreter"

	// DefaultJumpdestCacheSize is the number of code analyses kept in memory.
	DefaultJumpdestCacheSize = 256
)

// Interpreter executes contract code.
type Interpreter interface {
	// Exec runs the code of the given params against the externalities
	// and returns the gas left.
	Exec(params *itypes.ActionParams, ext Ext) (uint64, error)
}

// Factory creates interpreters. Interpreters created by the same
// factory share the jump destination analysis cache.
type Factory struct {
	vmType    VMType
	jumpdests *jumpdestCache
}

// NewFactory creates a new factory.
// It takes a vm type and the size of the code analysis cache as arguments.
func NewFactory(vmType VMType, cacheSize int) (*Factory, error) {
	if vmType != VMTypeInterpreter {
		return nil, fmt.Errorf("unsupported vm type %v", vmType)
	}
	jumpdests, err := newJumpdestCache(cacheSize)
	if err != nil {
		log.Errorf("Fail to create jumpdest cache of size %v: %v", cacheSize, err.Error())
		return nil, err
	}
	return &Factory{vmType: vmType, jumpdests: jumpdests}, nil
}

// Type gets the vm type.
func (f *Factory) Type() VMType {
	return f.vmType
}

// Create creates a new interpreter.
func (f *Factory) Create() Interpreter {
	return &interpreter{jumpdests: f.jumpdests}
}
