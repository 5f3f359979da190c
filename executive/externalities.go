package executive

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
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/wcgcyx/texec/schedule"
	"github.com/wcgcyx/texec/trace"
	itypes "github.com/wcgcyx/texec/types"
	"github.com/wcgcyx/texec/vm"
)

// OriginInfo is the part of the action params visible to nested invocations.
type OriginInfo struct {
	// Address of the running contract
	Address common.Address

	// Transaction initiator
	Origin common.Address

	// Gas price of the transaction
	GasPrice *uint256.Int

	// Value of the running invocation
	Value *uint256.Int
}

// NewOriginInfo creates the origin info of the given params.
func NewOriginInfo(params *itypes.ActionParams) OriginInfo {
	gasPrice := new(uint256.Int)
	if params.GasPrice != nil {
		gasPrice.Set(params.GasPrice)
	}
	return OriginInfo{
		Address:  params.Address,
		Origin:   params.Origin,
		GasPrice: gasPrice,
		Value:    params.Value.Value(),
	}
}

// Externalities is the view of the world given to running code.
// Nested calls and creates go back through the executive one level deeper.
type Externalities struct {
	exec     *Executive
	origin   OriginInfo
	substate *Substate
	output   OutputPolicy
	tracer   trace.Tracer
}

// newExternalities creates the view for code run by the given executive.
func newExternalities(exec *Executive, origin OriginInfo, substate *Substate, output OutputPolicy, tracer trace.Tracer) *Externalities {
	return &Externalities{
		exec:     exec,
		origin:   origin,
		substate: substate,
		output:   output,
		tracer:   tracer,
	}
}

// StorageAt gets the storage value of the running contract.
func (ext *Externalities) StorageAt(key common.Hash) common.Hash {
	return ext.exec.state.StorageAt(ext.origin.Address, key)
}

// SetStorage sets the storage value of the running contract.
func (ext *Externalities) SetStorage(key common.Hash, value common.Hash) {
	ext.exec.state.SetStorage(ext.origin.Address, key, value)
}

// Exists checks if the account exists.
func (ext *Externalities) Exists(addr common.Address) bool {
	return ext.exec.state.Exists(addr)
}

// Balance gets the balance of the account.
func (ext *Externalities) Balance(addr common.Address) *uint256.Int {
	return ext.exec.state.Balance(addr)
}

// BlockHash gets the hash of a recent block.
func (ext *Externalities) BlockHash(number uint64) common.Hash {
	return ext.exec.info.BlockHash(number)
}

// Create creates a new contract owned by the running contract.
func (ext *Externalities) Create(gas uint64, value *uint256.Int, code []byte) vm.ContractCreateResult {
	sender := ext.origin.Address
	addr := ContractAddress(sender, ext.exec.state.Nonce(sender))
	params := &itypes.ActionParams{
		CodeAddress: addr,
		Address:     addr,
		Sender:      sender,
		Origin:      ext.origin.Origin,
		Gas:         gas,
		GasPrice:    new(uint256.Int).Set(ext.origin.GasPrice),
		Value:       itypes.NewTransferValue(value),
		Code:        common.CopyBytes(code),
	}
	ext.exec.state.IncNonce(sender)

	gasLeft, err := ext.exec.fromParent().Create(params, ext.substate, ext.tracer)
	if err != nil {
		log.Debugf("Create of %v by %v failed: %v", addr, sender, err.Error())
		return vm.ContractCreateResult{}
	}
	ext.substate.ContractsCreated = append(ext.substate.ContractsCreated, addr)
	return vm.ContractCreateResult{Created: true, Address: addr, GasLeft: gasLeft}
}

// Call calls another contract, writing the returned data into output.
func (ext *Externalities) Call(
	gas uint64,
	sender common.Address,
	receiver common.Address,
	value *uint256.Int,
	data []byte,
	codeAddress common.Address,
	output []byte,
) vm.MessageCallResult {
	params := &itypes.ActionParams{
		CodeAddress: codeAddress,
		Address:     receiver,
		Sender:      sender,
		Origin:      ext.origin.Origin,
		Gas:         gas,
		GasPrice:    new(uint256.Int).Set(ext.origin.GasPrice),
		Value:       itypes.NewApparentValue(ext.origin.Value),
		Code:        ext.exec.state.Code(codeAddress),
		Data:        common.CopyBytes(data),
	}
	if value != nil {
		params.Value = itypes.NewTransferValue(value)
	}

	gasLeft, err := ext.exec.fromParent().Call(params, ext.substate, NewFixedRef(output), ext.tracer)
	if err != nil {
		log.Debugf("Call %v -> %v failed: %v", sender, receiver, err.Error())
		return vm.MessageCallResult{}
	}
	return vm.MessageCallResult{Success: true, GasLeft: gasLeft}
}

// ExtCode gets the code of the account.
func (ext *Externalities) ExtCode(addr common.Address) []byte {
	return ext.exec.state.Code(addr)
}

// Log emits a log of the running contract.
func (ext *Externalities) Log(topics []common.Hash, data []byte) {
	ext.substate.Logs = append(ext.substate.Logs, itypes.LogEntry{
		Address: ext.origin.Address,
		Topics:  append([]common.Hash{}, topics...),
		Data:    common.CopyBytes(data),
	})
}

// Ret handles returned data according to the output policy.
func (ext *Externalities) Ret(gas uint64, data []byte) (uint64, error) {
	if !ext.output.IsInitContract() {
		ext.output.setTraceOutput(data)
		ext.output.output.Write(data)
		return gas, nil
	}
	sched := ext.exec.schedule
	cost, overflow := math.SafeMul(uint64(len(data)), sched.CreateDataGas)
	if overflow || cost > gas {
		if sched.ExceptionalFailedCodeDeposit {
			return 0, vm.ErrOutOfGas
		}
		// The contract is left without code.
		return gas, nil
	}
	ext.output.setTraceOutput(data)
	ext.exec.state.InitCode(ext.origin.Address, common.CopyBytes(data))
	return gas - cost, nil
}

// Suicide destroys the running contract at the end of the transaction.
func (ext *Externalities) Suicide(refundAddress common.Address) {
	addr := ext.origin.Address
	balance := ext.exec.state.Balance(addr)
	if refundAddress == addr {
		ext.exec.state.SubBalance(addr, balance)
	} else {
		ext.exec.state.TransferBalance(addr, refundAddress, balance)
	}
	ext.substate.Suicides.Add(addr)
}

// Schedule gets the consensus rules in force.
func (ext *Externalities) Schedule() *schedule.Schedule {
	return ext.exec.schedule
}

// EnvInfo gets the block context.
func (ext *Externalities) EnvInfo() *itypes.EnvInfo {
	return ext.exec.info
}

// Depth gets the depth of the running code.
func (ext *Externalities) Depth() uint64 {
	return ext.exec.depth
}

// IncSstoreClears records that a storage slot was cleared.
func (ext *Externalities) IncSstoreClears() {
	ext.substate.SstoreClearsCount++
}
