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
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	logging "github.com/ipfs/go-log"
	"github.com/wcgcyx/texec/engine"
	"github.com/wcgcyx/texec/schedule"
	"github.com/wcgcyx/texec/trace"
	itypes "github.com/wcgcyx/texec/types"
	"github.com/wcgcyx/texec/vm"
	"github.com/wcgcyx/texec/worldstate"
)

// Logger
var log = logging.Logger("executive")

// MaxVMDepthForThread is the number of nested invocations run on one goroutine
// before the interpreter moves to a fresh goroutine stack.
const MaxVMDepthForThread = 64

// ContractAddress returns the address of the contract created by sender with given nonce.
func ContractAddress(sender common.Address, nonce uint64) common.Address {
	return crypto.CreateAddress(sender, nonce)
}

// TransactOptions is the options of a transact call.
type TransactOptions struct {
	// Record a trace of the transaction
	Tracing bool

	// Reject the transaction if its nonce is not the sender's nonce
	CheckNonce bool
}

// Executive applies transactions to the world state.
// An executive is created per transaction and per nested invocation.
type Executive struct {
	state    worldstate.WorldState
	info     *itypes.EnvInfo
	engine   engine.Engine
	factory  *vm.Factory
	schedule *schedule.Schedule
	depth    uint64
}

// NewExecutive creates a top level executive.
func NewExecutive(state worldstate.WorldState, info *itypes.EnvInfo, engine engine.Engine, factory *vm.Factory) *Executive {
	return &Executive{
		state:    state,
		info:     info,
		engine:   engine,
		factory:  factory,
		schedule: engine.Schedule(info),
		depth:    0,
	}
}

// fromParent creates the executive of a nested invocation.
func (e *Executive) fromParent() *Executive {
	return &Executive{
		state:    e.state,
		info:     e.info,
		engine:   e.engine,
		factory:  e.factory,
		schedule: e.schedule,
		depth:    e.depth + 1,
	}
}

// Depth gets the depth of the executive.
func (e *Executive) Depth() uint64 {
	return e.depth
}

// Transact executes a signed transaction.
func (e *Executive) Transact(tx *types.Transaction, opts TransactOptions) (*Executed, error) {
	if opts.Tracing {
		return e.TransactWithTracer(tx, opts.CheckNonce, trace.NewExecutiveTracer())
	}
	return e.TransactWithTracer(tx, opts.CheckNonce, trace.NewNoopTracer())
}

// TransactWithTracer executes a signed transaction reporting to the given tracer.
// Validation errors leave the state untouched.
func (e *Executive) TransactWithTracer(tx *types.Transaction, checkNonce bool, tracer trace.Tracer) (*Executed, error) {
	sender, err := types.Sender(e.engine.Signer(e.info), tx)
	if err != nil {
		log.Debugf("Fail to recover sender of %v: %v", tx.Hash(), err.Error())
		return nil, &TransactionMalformedError{Reason: err.Error()}
	}
	gasPrice, overflow := uint256.FromBig(tx.GasPrice())
	if overflow {
		return nil, &TransactionMalformedError{Reason: "gas price overflows 256 bits"}
	}
	value, overflow := uint256.FromBig(tx.Value())
	if overflow {
		return nil, &TransactionMalformedError{Reason: "value overflows 256 bits"}
	}

	gas := tx.Gas()
	baseGas, ok := e.schedule.TxGasRequired(tx.Data(), tx.To() == nil)
	if !ok {
		return nil, &NotEnoughBaseGasError{Required: ^uint64(0), Got: gas}
	}
	if gas < baseGas {
		return nil, &NotEnoughBaseGasError{Required: baseGas, Got: gas}
	}

	nonce := e.state.Nonce(sender)
	if checkNonce && tx.Nonce() != nonce {
		return nil, &InvalidNonceError{Expected: nonce, Got: tx.Nonce()}
	}

	if e.info.GasUsed > e.info.GasLimit || gas > e.info.GasLimit-e.info.GasUsed {
		return nil, &BlockGasLimitReachedError{GasLimit: e.info.GasLimit, GasUsed: e.info.GasUsed, Gas: gas}
	}

	gasCost := new(big.Int).Mul(new(big.Int).SetUint64(gas), gasPrice.ToBig())
	totalCost := new(big.Int).Add(value.ToBig(), gasCost)
	balance := e.state.Balance(sender).ToBig()
	if balance.Cmp(totalCost) < 0 {
		return nil, &NotEnoughCashError{Required: totalCost, Got: balance}
	}

	// No turning back from here.
	e.state.IncNonce(sender)
	prepaid, _ := uint256.FromBig(gasCost)
	e.state.SubBalance(sender, prepaid)

	substate := NewSubstate()
	initGas := gas - baseGas
	output := make([]byte, 0)
	var gasLeft uint64
	var contract common.Address
	if to := tx.To(); to == nil {
		addr := ContractAddress(sender, nonce)
		contract = addr
		params := &itypes.ActionParams{
			CodeAddress: addr,
			Address:     addr,
			Sender:      sender,
			Origin:      sender,
			Gas:         initGas,
			GasPrice:    gasPrice,
			Value:       itypes.NewTransferValue(value),
			Code:        common.CopyBytes(tx.Data()),
		}
		log.Debugf("Transaction %v creates %v with gas %v", tx.Hash(), addr, initGas)
		gasLeft, err = e.Create(params, substate, tracer)
	} else {
		params := &itypes.ActionParams{
			CodeAddress: *to,
			Address:     *to,
			Sender:      sender,
			Origin:      sender,
			Gas:         initGas,
			GasPrice:    gasPrice,
			Value:       itypes.NewTransferValue(value),
			Code:        e.state.Code(*to),
			Data:        common.CopyBytes(tx.Data()),
		}
		log.Debugf("Transaction %v calls %v with gas %v", tx.Hash(), *to, initGas)
		gasLeft, err = e.Call(params, substate, NewFlexibleRef(&output), tracer)
	}

	var top *trace.Trace
	if traces := tracer.Traces(); len(traces) > 0 {
		top = traces[len(traces)-1]
	}
	executed, err := e.finalize(gas, gasPrice, sender, substate, gasLeft, err, output, top)
	if err != nil {
		return nil, err
	}
	executed.ContractAddress = contract
	return executed, nil
}

// Call executes a message call and returns the gas left.
// Output is written into the given ref.
func (e *Executive) Call(params *itypes.ActionParams, substate *Substate, output BytesRef, tracer trace.Tracer) (uint64, error) {
	e.state.Snapshot()
	if params.Value.IsTransfer() {
		e.state.TransferBalance(params.Sender, params.Address, params.Value.Value())
	}
	delegateCall := params.IsDelegateCall()

	if e.engine.IsBuiltin(params.CodeAddress) {
		traceInfo := tracer.PrepareTraceCall(params)
		cost := e.engine.CostOfBuiltin(params.CodeAddress, params.Data)
		if cost > params.Gas {
			e.state.RevertSnapshot()
			tracer.TraceFailedCall(traceInfo, e.depth, nil, delegateCall)
			return 0, vm.ErrOutOfGas
		}
		out, err := e.engine.ExecuteBuiltin(params.CodeAddress, params.Data)
		if err != nil {
			e.state.RevertSnapshot()
			tracer.TraceFailedCall(traceInfo, e.depth, nil, delegateCall)
			return 0, fmt.Errorf("builtin %v: %w", params.CodeAddress, err)
		}
		output.Write(out)
		e.state.ClearSnapshot()
		// Nested builtin calls are not traced.
		if e.depth == 0 {
			traceOutput := tracer.PrepareTraceOutput()
			if traceOutput != nil {
				*traceOutput = common.CopyBytes(output.Bytes())
			}
			tracer.TraceCall(traceInfo, cost, traceOutput, e.depth, nil, delegateCall)
		}
		return params.Gas - cost, nil
	}

	if len(params.Code) > 0 {
		traceInfo := tracer.PrepareTraceCall(params)
		traceOutput := tracer.PrepareTraceOutput()
		subtracer := tracer.Subtracer()
		unconfirmed := NewSubstate()

		gasLeft, err := e.execVM(params, unconfirmed, ReturnPolicy(output, traceOutput), subtracer)
		if err == nil {
			tracer.TraceCall(traceInfo, params.Gas-gasLeft, traceOutput, e.depth, subtracer.Traces(), delegateCall)
		} else {
			gasLeft = 0
			tracer.TraceFailedCall(traceInfo, e.depth, subtracer.Traces(), delegateCall)
		}
		e.enactResult(err, substate, unconfirmed)
		return gasLeft, err
	}

	// Plain value transfer.
	e.state.ClearSnapshot()
	tracer.TraceCall(tracer.PrepareTraceCall(params), 0, tracer.PrepareTraceOutput(), e.depth, nil, delegateCall)
	return params.Gas, nil
}

// Create executes a contract creation and returns the gas left.
func (e *Executive) Create(params *itypes.ActionParams, substate *Substate, tracer trace.Tracer) (uint64, error) {
	e.state.Snapshot()
	unconfirmed := NewSubstate()

	// The address may have been funded before the contract exists.
	prevBal := e.state.Balance(params.Address)
	if params.Value.IsTransfer() {
		val := params.Value.Value()
		e.state.SubBalance(params.Sender, val)
		e.state.NewContract(params.Address, new(uint256.Int).Add(val, prevBal))
	} else {
		e.state.NewContract(params.Address, prevBal)
	}

	traceInfo := tracer.PrepareTraceCreate(params)
	traceOutput := tracer.PrepareTraceOutput()
	subtracer := tracer.Subtracer()

	gasLeft, err := e.execVM(params, unconfirmed, InitContractPolicy(traceOutput), subtracer)
	if err == nil {
		tracer.TraceCreate(traceInfo, params.Gas-gasLeft, traceOutput, params.Address, e.depth, subtracer.Traces())
	} else {
		gasLeft = 0
		tracer.TraceFailedCreate(traceInfo, e.depth, subtracer.Traces())
	}
	e.enactResult(err, substate, unconfirmed)
	return gasLeft, err
}

type vmResult struct {
	gasLeft  uint64
	err      error
	panicked interface{}
}

// execVM runs the interpreter on the given params. Every MaxVMDepthForThread
// levels the interpreter runs on a new goroutine and the caller waits for it.
func (e *Executive) execVM(params *itypes.ActionParams, substate *Substate, output OutputPolicy, tracer trace.Tracer) (uint64, error) {
	ext := newExternalities(e, NewOriginInfo(params), substate, output, tracer)
	run := func() (uint64, error) {
		return e.factory.Create().Exec(params, ext)
	}

	var gasLeft uint64
	var err error
	if (e.depth+1)%MaxVMDepthForThread != 0 {
		gasLeft, err = run()
	} else {
		log.Debugf("Execute at depth %v on a new goroutine", e.depth)
		gasLeft, err = runIsolated(run)
	}

	if stateErr := e.state.Error(); stateErr != nil {
		log.Errorf("World state failure at depth %v: %v", e.depth, stateErr.Error())
		return 0, fmt.Errorf("%w: %v", ErrInternal, stateErr)
	}
	return gasLeft, err
}

// runIsolated runs f on its own goroutine and blocks until it returns.
// A panic in f is raised again in the caller.
func runIsolated(f func() (uint64, error)) (uint64, error) {
	done := make(chan vmResult, 1)
	go func() {
		var res vmResult
		defer func() {
			if r := recover(); r != nil {
				res.panicked = r
			}
			done <- res
		}()
		res.gasLeft, res.err = f()
	}()
	res := <-done
	if res.panicked != nil {
		panic(res.panicked)
	}
	return res.gasLeft, res.err
}

// enactResult keeps or discards the effects of a finished invocation.
func (e *Executive) enactResult(err error, substate *Substate, unconfirmed *Substate) {
	if err == nil || errors.Is(err, ErrInternal) {
		e.state.ClearSnapshot()
		substate.Accrue(unconfirmed)
		return
	}
	if !vm.IsRevertError(err) {
		log.Debugf("Revert on unclassified error at depth %v: %v", e.depth, err.Error())
	}
	e.state.RevertSnapshot()
}

// finalize settles refunds and fees, kills suicided accounts and builds the result.
func (e *Executive) finalize(
	gas uint64,
	gasPrice *uint256.Int,
	sender common.Address,
	substate *Substate,
	gasLeftPrerefund uint64,
	execErr error,
	output []byte,
	top *trace.Trace,
) (*Executed, error) {
	sstoreRefund := new(uint256.Int).Mul(uint256.NewInt(e.schedule.SstoreRefundGas), uint256.NewInt(substate.SstoreClearsCount))
	suicideRefund := new(uint256.Int).Mul(uint256.NewInt(e.schedule.SuicideRefundGas), uint256.NewInt(uint64(substate.Suicides.Cardinality())))
	refundBound := new(uint256.Int).Add(sstoreRefund, suicideRefund)

	if execErr != nil {
		gasLeftPrerefund = 0
	}
	refunded := (gas - gasLeftPrerefund) / 2
	if refundBound.LtUint64(refunded) {
		refunded = refundBound.Uint64()
	}
	gasLeft := gasLeftPrerefund + refunded
	gasUsed := gas - gasLeft

	refundValue := new(uint256.Int).Mul(uint256.NewInt(gasLeft), gasPrice)
	feesValue := new(uint256.Int).Mul(uint256.NewInt(gasUsed), gasPrice)
	log.Debugf("Finalize: gas %v, gas used %v, refunded %v, sender %v, author %v", gas, gasUsed, refunded, sender, e.info.Author)
	e.state.AddBalance(sender, refundValue)
	e.state.AddBalance(e.info.Author, feesValue)

	for _, addr := range substate.SortedSuicides() {
		e.state.KillAccount(addr)
	}

	if execErr != nil && errors.Is(execErr, ErrInternal) {
		log.Errorf("Transaction hit internal error: %v", execErr.Error())
		return nil, execErr
	}
	if stateErr := e.state.Error(); stateErr != nil {
		log.Errorf("World state failure in finalize: %v", stateErr.Error())
		return nil, fmt.Errorf("%w: %v", ErrInternal, stateErr)
	}
	if execErr != nil {
		return &Executed{
			Gas:               gas,
			GasUsed:           gas,
			Refunded:          0,
			CumulativeGasUsed: e.info.GasUsed + gas,
			Logs:              make([]itypes.LogEntry, 0),
			ContractsCreated:  make([]common.Address, 0),
			Output:            output,
			Trace:             top,
			Err:               execErr,
		}, nil
	}
	return &Executed{
		Gas:               gas,
		GasUsed:           gasUsed,
		Refunded:          refunded,
		CumulativeGasUsed: e.info.GasUsed + gasUsed,
		Logs:              substate.Logs,
		ContractsCreated:  substate.ContractsCreated,
		Output:            output,
		Trace:             top,
	}, nil
}
