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
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/wcgcyx/texec/engine"
	"github.com/wcgcyx/texec/statestore"
	"github.com/wcgcyx/texec/trace"
	itypes "github.com/wcgcyx/texec/types"
	"github.com/wcgcyx/texec/vm"
	"github.com/wcgcyx/texec/worldstate"
)

var (
	testAuthor = common.HexToAddress("0x8888f1f195afa192cfee860698584c030f4c9db1")
	slot0      = common.Hash{}
)

func newTestExecutive(t *testing.T, maxDepth uint64, info *itypes.EnvInfo) (*Executive, worldstate.WorldState) {
	sstore, err := statestore.NewMemStateStore(context.Background(), statestore.Opts{})
	assert.Nil(t, err)
	t.Cleanup(sstore.Shutdown)
	state := worldstate.NewWorldState(sstore)
	factory, err := vm.NewFactory(vm.VMTypeInterpreter, vm.DefaultJumpdestCacheSize)
	assert.Nil(t, err)
	eng := engine.NewEngine("test", engine.NewChainConfig(1, nil), engine.Opts{MaxDepth: &maxDepth})
	return NewExecutive(state, info, eng, factory), state
}

func newTestInfo() *itypes.EnvInfo {
	return &itypes.EnvInfo{
		Author:     testAuthor,
		Difficulty: uint256.NewInt(0),
		GasLimit:   100000,
	}
}

func newCreateParams(sender common.Address, gas uint64, value uint64, code string) *itypes.ActionParams {
	addr := ContractAddress(sender, 0)
	return &itypes.ActionParams{
		CodeAddress: addr,
		Address:     addr,
		Sender:      sender,
		Origin:      sender,
		Gas:         gas,
		GasPrice:    uint256.NewInt(0),
		Value:       itypes.NewTransferValue(uint256.NewInt(value)),
		Code:        common.FromHex(code),
	}
}

func TestContractAddress(t *testing.T) {
	sender := common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")
	expected := common.HexToAddress("0x3f09c73a5ed19289fb9bdc72f1742566df146f56")
	assert.Equal(t, expected, ContractAddress(sender, 88))
	assert.Equal(t, ContractAddress(sender, 88), ContractAddress(sender, 88))
	assert.NotEqual(t, ContractAddress(sender, 88), ContractAddress(sender, 89))
}

func TestSenderBalance(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	sender := common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")
	params := newCreateParams(sender, 100000, 7, "3331600055")
	state.AddBalance(sender, uint256.NewInt(0x100))

	substate := NewSubstate()
	gasLeft, err := e.Create(params, substate, trace.NewNoopTracer())
	assert.Nil(t, err)
	assert.Equal(t, uint64(79975), gasLeft)
	assert.Equal(t, common.BigToHash(big.NewInt(0xf9)), state.StorageAt(params.Address, slot0))
	assert.Equal(t, uint64(0xf9), state.Balance(sender).Uint64())
	assert.Equal(t, uint64(7), state.Balance(params.Address).Uint64())
	assert.Equal(t, 0, len(substate.ContractsCreated))
}

func TestCreateContractOutOfDepth(t *testing.T) {
	e, state := newTestExecutive(t, 0, newTestInfo())
	sender := common.HexToAddress("0xcd1722f3947def4cf144679da39c4c32bdc35681")
	params := newCreateParams(sender, 100000, 100,
		"7c601080600c6000396000f3006000355415600957005b60203560003555600052601d60036017f0600055")
	state.AddBalance(sender, uint256.NewInt(100))

	substate := NewSubstate()
	gasLeft, err := e.Create(params, substate, trace.NewNoopTracer())
	assert.Nil(t, err)
	assert.Equal(t, uint64(62976), gasLeft)
	assert.Equal(t, 0, len(substate.ContractsCreated))
}

func TestCreateContractValueTooHigh(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	sender := common.HexToAddress("0xcd1722f3947def4cf144679da39c4c32bdc35681")
	params := newCreateParams(sender, 100000, 100,
		"7c601080600c6000396000f3006000355415600957005b60203560003555600052601d600360e6f0600055")
	state.AddBalance(sender, uint256.NewInt(100))

	substate := NewSubstate()
	gasLeft, err := e.Create(params, substate, trace.NewNoopTracer())
	assert.Nil(t, err)
	assert.Equal(t, uint64(62976), gasLeft)
	assert.Equal(t, 0, len(substate.ContractsCreated))
}

func TestCreateContractWithoutMaxDepth(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	sender := common.HexToAddress("0xcd1722f3947def4cf144679da39c4c32bdc35681")
	params := newCreateParams(sender, 100000, 100,
		"7c601080600c6000396000f3006000355415600957005b60203560003555600052601d60036017f0")
	state.AddBalance(sender, uint256.NewInt(100))

	substate := NewSubstate()
	_, err := e.Create(params, substate, trace.NewNoopTracer())
	assert.Nil(t, err)
	assert.Equal(t, []common.Address{ContractAddress(params.Address, 0)}, substate.ContractsCreated)
}

func TestCreateContract(t *testing.T) {
	e, state := newTestExecutive(t, 5, newTestInfo())
	sender := common.HexToAddress("0xcd1722f3947def4cf144679da39c4c32bdc35681")
	params := newCreateParams(sender, 100000, 100, "601080600c6000396000f3006000355415600957005b60203560003555")
	state.AddBalance(sender, uint256.NewInt(100))

	tracer := trace.NewExecutiveTracer()
	gasLeft, err := e.Create(params, NewSubstate(), tracer)
	assert.Nil(t, err)
	assert.Equal(t, uint64(96776), gasLeft)

	traces := tracer.Traces()
	assert.Equal(t, 1, len(traces))
	top := traces[0]
	assert.Equal(t, uint64(0), top.Depth)
	assert.Equal(t, sender, top.Action.Create.From)
	assert.Equal(t, uint64(100), top.Action.Create.Value.Uint64())
	assert.Equal(t, uint64(100000), top.Action.Create.Gas)
	assert.Equal(t, params.Code, top.Action.Create.Init)
	assert.Equal(t, uint64(3224), top.Result.Create.GasUsed)
	assert.Equal(t, params.Address, top.Result.Create.Address)
	assert.Equal(t, common.FromHex("6000355415600957005b602035600035"), top.Result.Create.Code)
	assert.Equal(t, 0, len(top.Subs))

	assert.Equal(t, common.FromHex("6000355415600957005b602035600035"), state.Code(params.Address))
	assert.Equal(t, uint64(100), state.Balance(params.Address).Uint64())
}

func TestCallToCreate(t *testing.T) {
	e, state := newTestExecutive(t, 5, newTestInfo())
	sender := common.HexToAddress("0xcd1722f3947def4cf144679da39c4c32bdc35681")
	addr := ContractAddress(sender, 0)
	assert.Equal(t, common.HexToAddress("0xb010143a42d5980c7e5ef0e4a4416dc098a4fed3"), addr)
	params := &itypes.ActionParams{
		CodeAddress: addr,
		Address:     addr,
		Sender:      sender,
		Origin:      sender,
		Gas:         100000,
		GasPrice:    uint256.NewInt(0),
		Value:       itypes.NewTransferValue(uint256.NewInt(100)),
		Code:        common.FromHex("7c601080600c6000396000f3006000355415600957005b60203560003555600052601d60036017f0600055"),
	}
	state.AddBalance(sender, uint256.NewInt(100))

	tracer := trace.NewExecutiveTracer()
	substate := NewSubstate()
	gasLeft, err := e.Call(params, substate, NewFixedRef([]byte{}), tracer)
	assert.Nil(t, err)
	assert.Equal(t, uint64(44752), gasLeft)

	created := common.HexToAddress("0xc6d80f262ae5e0f164e5fde365044d7ada2bfa34")
	assert.Equal(t, []common.Address{created}, substate.ContractsCreated)
	assert.Equal(t, uint64(77), state.Balance(addr).Uint64())
	assert.Equal(t, uint64(23), state.Balance(created).Uint64())
	assert.Equal(t, uint64(1), state.Nonce(addr))

	traces := tracer.Traces()
	assert.Equal(t, 1, len(traces))
	top := traces[0]
	assert.Equal(t, uint64(0), top.Depth)
	assert.Equal(t, sender, top.Action.Call.From)
	assert.Equal(t, addr, top.Action.Call.To)
	assert.Equal(t, uint64(100), top.Action.Call.Value.Uint64())
	assert.Equal(t, uint64(100000), top.Action.Call.Gas)
	assert.Equal(t, 0, len(top.Action.Call.Input))
	assert.Equal(t, uint64(55248), top.Result.Call.GasUsed)
	assert.Equal(t, 0, len(top.Result.Call.Output))

	assert.Equal(t, 1, len(top.Subs))
	sub := top.Subs[0]
	assert.Equal(t, uint64(1), sub.Depth)
	assert.Equal(t, addr, sub.Action.Create.From)
	assert.Equal(t, uint64(23), sub.Action.Create.Value.Uint64())
	assert.Equal(t, uint64(67979), sub.Action.Create.Gas)
	assert.Equal(t, common.FromHex("601080600c6000396000f3006000355415600957005b60203560003555"), sub.Action.Create.Init)
	assert.Equal(t, uint64(3224), sub.Result.Create.GasUsed)
	assert.Equal(t, created, sub.Result.Create.Address)
	assert.Equal(t, common.FromHex("6000355415600957005b602035600035"), sub.Result.Create.Code)
}

func TestSha3OutOfGas(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	sender := common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")
	params := newCreateParams(sender, 0x186a0, 0, "6064640fffffffff20600055")
	params.Value = itypes.NewTransferValue(uint256.MustFromHex("0xde0b6b3a7640000"))
	state.AddBalance(sender, uint256.MustFromHex("0x152d02c7e14af6800000"))

	substate := NewSubstate()
	gasLeft, err := e.Create(params, substate, trace.NewNoopTracer())
	assert.True(t, errors.Is(err, vm.ErrOutOfGas))
	assert.Equal(t, uint64(0), gasLeft)
	// Reverted, the value stays with the sender.
	assert.Equal(t, uint256.MustFromHex("0x152d02c7e14af6800000"), state.Balance(sender))
	assert.True(t, state.Balance(params.Address).IsZero())
}

func TestIsolatedDepthSameResult(t *testing.T) {
	sender := common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")
	for _, depth := range []uint64{MaxVMDepthForThread - 2, MaxVMDepthForThread - 1} {
		e, state := newTestExecutive(t, 1024, newTestInfo())
		for e.Depth() < depth {
			e = e.fromParent()
		}
		params := newCreateParams(sender, 100000, 7, "3331600055")
		state.AddBalance(sender, uint256.NewInt(0x100))

		gasLeft, err := e.Create(params, NewSubstate(), trace.NewNoopTracer())
		assert.Nil(t, err)
		assert.Equal(t, uint64(79975), gasLeft)
		assert.Equal(t, common.BigToHash(big.NewInt(0xf9)), state.StorageAt(params.Address, slot0))
	}
}

func TestRunIsolatedPanics(t *testing.T) {
	assert.Panics(t, func() {
		runIsolated(func() (uint64, error) {
			panic("boom")
		})
	})
	gasLeft, err := runIsolated(func() (uint64, error) {
		return 5, vm.ErrOutOfGas
	})
	assert.Equal(t, uint64(5), gasLeft)
	assert.Equal(t, vm.ErrOutOfGas, err)
}

func TestBuiltinCall(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	sender := common.HexToAddress("0xcd1722f3947def4cf144679da39c4c32bdc35681")
	identity := common.BytesToAddress([]byte{0x04})
	state.AddBalance(sender, uint256.NewInt(20))
	params := &itypes.ActionParams{
		CodeAddress: identity,
		Address:     identity,
		Sender:      sender,
		Origin:      sender,
		Gas:         100,
		GasPrice:    uint256.NewInt(0),
		Value:       itypes.NewTransferValue(uint256.NewInt(10)),
		Data:        []byte{0x01, 0x02, 0x03},
	}

	output := make([]byte, 0)
	tracer := trace.NewExecutiveTracer()
	gasLeft, err := e.Call(params, NewSubstate(), NewFlexibleRef(&output), tracer)
	assert.Nil(t, err)
	assert.Equal(t, uint64(82), gasLeft)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, output)
	assert.Equal(t, uint64(10), state.Balance(identity).Uint64())
	assert.Equal(t, 1, len(tracer.Traces()))
	assert.Equal(t, uint64(18), tracer.Traces()[0].Result.Call.GasUsed)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, tracer.Traces()[0].Result.Call.Output)

	// Not enough gas, the transfer is reverted.
	params.Gas = 10
	tracer = trace.NewExecutiveTracer()
	gasLeft, err = e.Call(params, NewSubstate(), NewFlexibleRef(&output), tracer)
	assert.True(t, errors.Is(err, vm.ErrOutOfGas))
	assert.Equal(t, uint64(0), gasLeft)
	assert.Equal(t, uint64(10), state.Balance(identity).Uint64())
	assert.Equal(t, 1, len(tracer.Traces()))
	assert.True(t, tracer.Traces()[0].Result.Failed())

	// Nested builtin calls are not traced.
	params.Gas = 100
	params.Value = itypes.NewTransferValue(uint256.NewInt(0))
	buf := make([]byte, 2)
	tracer = trace.NewExecutiveTracer()
	gasLeft, err = e.fromParent().Call(params, NewSubstate(), NewFixedRef(buf), tracer)
	assert.Nil(t, err)
	assert.Equal(t, uint64(82), gasLeft)
	assert.Equal(t, []byte{0x01, 0x02}, buf)
	assert.Equal(t, 0, len(tracer.Traces()))
}

func TestCallWithoutCode(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	sender := common.HexToAddress("0xcd1722f3947def4cf144679da39c4c32bdc35681")
	receiver := common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")
	state.AddBalance(sender, uint256.NewInt(50))
	params := &itypes.ActionParams{
		CodeAddress: receiver,
		Address:     receiver,
		Sender:      sender,
		Origin:      sender,
		Gas:         1000,
		GasPrice:    uint256.NewInt(0),
		Value:       itypes.NewTransferValue(uint256.NewInt(20)),
	}
	tracer := trace.NewExecutiveTracer()
	gasLeft, err := e.Call(params, NewSubstate(), NewFixedRef(nil), tracer)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000), gasLeft)
	assert.Equal(t, uint64(30), state.Balance(sender).Uint64())
	assert.Equal(t, uint64(20), state.Balance(receiver).Uint64())
	assert.Equal(t, 1, len(tracer.Traces()))
	assert.Equal(t, uint64(0), tracer.Traces()[0].Result.Call.GasUsed)
}

func TestEnactResult(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	addr := common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")

	for _, tc := range []struct {
		err    error
		enact  bool
		amount uint64
	}{
		{nil, true, 1},
		{ErrInternal, true, 2},
		{vm.ErrOutOfGas, false, 4},
		{&vm.BadJumpDestinationError{Destination: 1}, false, 8},
		{&vm.BadInstructionError{Instruction: 0x0c}, false, 16},
		{&vm.StackUnderflowError{Instruction: "ADD", Wanted: 2, OnStack: 0}, false, 32},
		{&vm.OutOfStackError{Instruction: "PUSH1", Wanted: 1, Limit: 1024}, false, 64},
		{errors.New("unknown"), false, 128},
	} {
		before := state.Balance(addr).Uint64()
		substate := NewSubstate()
		unconfirmed := NewSubstate()
		unconfirmed.SstoreClearsCount = 1
		unconfirmed.Suicides.Add(addr)

		state.Snapshot()
		state.AddBalance(addr, uint256.NewInt(tc.amount))
		e.enactResult(tc.err, substate, unconfirmed)
		if tc.enact {
			assert.Equal(t, before+tc.amount, state.Balance(addr).Uint64())
			assert.Equal(t, uint64(1), substate.SstoreClearsCount)
			assert.True(t, substate.Suicides.Contains(addr))
		} else {
			assert.Equal(t, before, state.Balance(addr).Uint64())
			assert.Equal(t, uint64(0), substate.SstoreClearsCount)
			assert.Equal(t, 0, substate.Suicides.Cardinality())
		}
	}
}

func TestFinalizeInternalError(t *testing.T) {
	e, _ := newTestExecutive(t, 1024, newTestInfo())
	sender := common.HexToAddress("0xcd1722f3947def4cf144679da39c4c32bdc35681")
	executed, err := e.finalize(100000, uint256.NewInt(0), sender, NewSubstate(), 5000, ErrInternal, nil, nil)
	assert.Nil(t, executed)
	assert.True(t, errors.Is(err, ErrInternal))
}

func TestFinalizeRefundCap(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	sender := common.HexToAddress("0xcd1722f3947def4cf144679da39c4c32bdc35681")
	substate := NewSubstate()
	substate.SstoreClearsCount = 10
	executed, err := e.finalize(100000, uint256.NewInt(2), sender, substate, 90000, nil, nil, nil)
	assert.Nil(t, err)
	// Bounded by half of the 10000 gas spent.
	assert.Equal(t, uint64(5000), executed.Refunded)
	assert.Equal(t, uint64(5000), executed.GasUsed)
	assert.Equal(t, executed.Gas, executed.GasUsed+90000+executed.Refunded)
	assert.Equal(t, uint64(190000), state.Balance(sender).Uint64())
	assert.Equal(t, uint64(10000), state.Balance(testAuthor).Uint64())
}

func signTx(t *testing.T, e *Executive, key *ecdsa.PrivateKey, tx *types.LegacyTx) *types.Transaction {
	signed, err := types.SignTx(types.NewTx(tx), e.engine.Signer(e.info), key)
	assert.Nil(t, err)
	return signed
}

func newFundedKey(t *testing.T, state worldstate.WorldState, balance uint64) (*ecdsa.PrivateKey, common.Address) {
	key, err := crypto.GenerateKey()
	assert.Nil(t, err)
	sender := crypto.PubkeyToAddress(key.PublicKey)
	state.AddBalance(sender, uint256.NewInt(balance))
	return key, sender
}

func TestTransactInvalidSender(t *testing.T) {
	e, _ := newTestExecutive(t, 1024, newTestInfo())
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    0,
		GasPrice: big.NewInt(0),
		Gas:      100000,
		Value:    big.NewInt(17),
		Data:     common.FromHex("3331600055"),
		V:        big.NewInt(27),
		R:        big.NewInt(0),
		S:        big.NewInt(0),
	})
	_, err := e.Transact(tx, TransactOptions{Tracing: false, CheckNonce: true})
	var malformed *TransactionMalformedError
	assert.True(t, errors.As(err, &malformed))
}

func TestTransactInvalidNonce(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	key, sender := newFundedKey(t, state, 17)
	tx := signTx(t, e, key, &types.LegacyTx{
		Nonce:    1,
		GasPrice: big.NewInt(0),
		Gas:      100000,
		Value:    big.NewInt(17),
		Data:     common.FromHex("3331600055"),
	})
	_, err := e.Transact(tx, TransactOptions{Tracing: false, CheckNonce: true})
	var invalid *InvalidNonceError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, uint64(0), invalid.Expected)
	assert.Equal(t, uint64(1), invalid.Got)
	assert.Equal(t, uint64(0), state.Nonce(sender))
	assert.Equal(t, uint64(17), state.Balance(sender).Uint64())
}

func TestTransactGasLimitReached(t *testing.T) {
	info := newTestInfo()
	info.GasUsed = 20000
	e, state := newTestExecutive(t, 1024, info)
	key, _ := newFundedKey(t, state, 17)
	tx := signTx(t, e, key, &types.LegacyTx{
		Nonce:    0,
		GasPrice: big.NewInt(0),
		Gas:      80001,
		Value:    big.NewInt(17),
		Data:     common.FromHex("3331600055"),
	})
	_, err := e.Transact(tx, TransactOptions{Tracing: false, CheckNonce: true})
	var reached *BlockGasLimitReachedError
	assert.True(t, errors.As(err, &reached))
	assert.Equal(t, uint64(100000), reached.GasLimit)
	assert.Equal(t, uint64(20000), reached.GasUsed)
	assert.Equal(t, uint64(80001), reached.Gas)
}

func TestTransactNotEnoughBaseGas(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	key, _ := newFundedKey(t, state, 17)
	tx := signTx(t, e, key, &types.LegacyTx{
		Nonce:    0,
		GasPrice: big.NewInt(0),
		Gas:      21000,
		Value:    big.NewInt(17),
		Data:     common.FromHex("3331600055"),
	})
	_, err := e.Transact(tx, TransactOptions{Tracing: false, CheckNonce: true})
	var base *NotEnoughBaseGasError
	assert.True(t, errors.As(err, &base))
	assert.Equal(t, uint64(21276), base.Required)
	assert.Equal(t, uint64(21000), base.Got)
}

func TestTransactNotEnoughCash(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	key, sender := newFundedKey(t, state, 100017)
	tx := signTx(t, e, key, &types.LegacyTx{
		Nonce:    0,
		GasPrice: big.NewInt(1),
		Gas:      100000,
		Value:    big.NewInt(18),
		Data:     common.FromHex("3331600055"),
	})
	_, err := e.Transact(tx, TransactOptions{Tracing: false, CheckNonce: true})
	var cash *NotEnoughCashError
	assert.True(t, errors.As(err, &cash))
	assert.Equal(t, big.NewInt(100018), cash.Required)
	assert.Equal(t, big.NewInt(100017), cash.Got)
	assert.Equal(t, uint64(0), state.Nonce(sender))
	assert.Equal(t, uint64(100017), state.Balance(sender).Uint64())
}

func TestTransactSimple(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	key, sender := newFundedKey(t, state, 18)
	tx := signTx(t, e, key, &types.LegacyTx{
		Nonce:    0,
		GasPrice: big.NewInt(0),
		Gas:      100000,
		Value:    big.NewInt(17),
		Data:     common.FromHex("3331600055"),
	})
	executed, err := e.Transact(tx, TransactOptions{Tracing: false, CheckNonce: true})
	assert.Nil(t, err)
	assert.False(t, executed.Failed())
	assert.Equal(t, uint64(100000), executed.Gas)
	assert.Equal(t, uint64(41301), executed.GasUsed)
	assert.Equal(t, uint64(0), executed.Refunded)
	assert.Equal(t, uint64(41301), executed.CumulativeGasUsed)
	assert.Equal(t, 0, len(executed.Logs))
	assert.Equal(t, 0, len(executed.ContractsCreated))
	assert.Nil(t, executed.Trace)

	contract := ContractAddress(sender, 0)
	assert.Equal(t, uint64(1), state.Balance(sender).Uint64())
	assert.Equal(t, uint64(17), state.Balance(contract).Uint64())
	assert.Equal(t, uint64(1), state.Nonce(sender))
	assert.Equal(t, common.BigToHash(big.NewInt(1)), state.StorageAt(contract, slot0))
}

func TestTransactValueTransferWithFees(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	key, sender := newFundedKey(t, state, 1000000)
	receiver := common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")
	tx := signTx(t, e, key, &types.LegacyTx{
		Nonce:    0,
		To:       &receiver,
		GasPrice: big.NewInt(2),
		Gas:      30000,
		Value:    big.NewInt(1000),
	})
	executed, err := e.Transact(tx, TransactOptions{Tracing: true, CheckNonce: true})
	assert.Nil(t, err)
	assert.Equal(t, uint64(21000), executed.GasUsed)
	assert.Equal(t, uint64(1000000-1000-42000), state.Balance(sender).Uint64())
	assert.Equal(t, uint64(1000), state.Balance(receiver).Uint64())
	assert.Equal(t, uint64(42000), state.Balance(testAuthor).Uint64())
	assert.NotNil(t, executed.Trace)
	assert.Equal(t, receiver, executed.Trace.Action.Call.To)
	assert.Equal(t, uint64(0), executed.Trace.Result.Call.GasUsed)
}

func deployCode(state worldstate.WorldState, addr common.Address, balance uint64, code string) {
	state.NewContract(addr, uint256.NewInt(balance))
	state.InitCode(addr, common.FromHex(code))
}

func TestTransactSuicideRefund(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	key, sender := newFundedKey(t, state, 10)
	contract := common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")
	// CALLER SUICIDE
	deployCode(state, contract, 5, "33ff")
	tx := signTx(t, e, key, &types.LegacyTx{
		Nonce:    0,
		To:       &contract,
		GasPrice: big.NewInt(0),
		Gas:      100000,
	})
	executed, err := e.Transact(tx, TransactOptions{Tracing: false, CheckNonce: true})
	assert.Nil(t, err)
	assert.Equal(t, uint64(10501), executed.Refunded)
	assert.Equal(t, uint64(10501), executed.GasUsed)
	assert.Equal(t, uint64(15), state.Balance(sender).Uint64())
	assert.False(t, state.Exists(contract))
	assert.Equal(t, 0, len(state.Code(contract)))
}

func TestTransactSstoreClearRefund(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	key, _ := newFundedKey(t, state, 10)
	contract := common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")
	// PUSH1 0 PUSH1 0 SSTORE
	deployCode(state, contract, 0, "6000600055")
	state.SetStorage(contract, slot0, common.BigToHash(big.NewInt(1)))
	tx := signTx(t, e, key, &types.LegacyTx{
		Nonce:    0,
		To:       &contract,
		GasPrice: big.NewInt(0),
		Gas:      100000,
	})
	executed, err := e.Transact(tx, TransactOptions{Tracing: false, CheckNonce: true})
	assert.Nil(t, err)
	assert.Equal(t, uint64(13003), executed.Refunded)
	assert.Equal(t, uint64(13003), executed.GasUsed)
	assert.Equal(t, common.Hash{}, state.StorageAt(contract, slot0))
}

func TestTransactFailedCall(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	key, sender := newFundedKey(t, state, 10)
	contract := common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")
	// Undefined instruction
	deployCode(state, contract, 0, "0c")
	tx := signTx(t, e, key, &types.LegacyTx{
		Nonce:    0,
		To:       &contract,
		GasPrice: big.NewInt(0),
		Gas:      100000,
		Value:    big.NewInt(10),
	})
	executed, err := e.Transact(tx, TransactOptions{Tracing: true, CheckNonce: true})
	assert.Nil(t, err)
	assert.True(t, executed.Failed())
	var bad *vm.BadInstructionError
	assert.True(t, errors.As(executed.Err, &bad))
	assert.Equal(t, uint64(100000), executed.GasUsed)
	assert.Equal(t, uint64(0), executed.Refunded)
	assert.Equal(t, uint64(100000), executed.CumulativeGasUsed)
	assert.True(t, executed.Trace.Result.Failed())
	assert.Equal(t, uint64(10), state.Balance(sender).Uint64())
	assert.Equal(t, uint64(1), state.Nonce(sender))
	assert.True(t, state.Balance(contract).IsZero())
}

func TestTransactNestedCallReverts(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	key, _ := newFundedKey(t, state, 10)
	parent := common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")
	callee := common.HexToAddress("0xcd1722f3947def4cf144679da39c4c32bdc35681")
	// PUSH1 1 PUSH1 0 SSTORE, then an undefined instruction
	deployCode(state, callee, 0, "60016000550c")
	// PUSH1 1 PUSH1 0 SSTORE
	// CALL(30000, callee, 5, 0, 0, 0, 0) POP STOP
	deployCode(state, parent, 10, "6001600055"+
		"6000600060006000600573"+callee.Hex()[2:]+"617530f15000")
	tx := signTx(t, e, key, &types.LegacyTx{
		Nonce:    0,
		To:       &parent,
		GasPrice: big.NewInt(0),
		Gas:      100000,
	})
	executed, err := e.Transact(tx, TransactOptions{Tracing: true, CheckNonce: true})
	assert.Nil(t, err)
	assert.False(t, executed.Failed())

	assert.Equal(t, common.BigToHash(big.NewInt(1)), state.StorageAt(parent, slot0))
	assert.Equal(t, uint64(10), state.Balance(parent).Uint64())
	assert.Equal(t, common.Hash{}, state.StorageAt(callee, slot0))
	assert.True(t, state.Balance(callee).IsZero())

	assert.False(t, executed.Trace.Result.Failed())
	assert.Equal(t, 1, len(executed.Trace.Subs))
	assert.Equal(t, uint64(1), executed.Trace.Subs[0].Depth)
	assert.True(t, executed.Trace.Subs[0].Result.Failed())
}

func TestTransactCreateAddressWithoutNonceCheck(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	key, sender := newFundedKey(t, state, 100)
	state.IncNonce(sender)
	tx := signTx(t, e, key, &types.LegacyTx{
		Nonce:    7,
		GasPrice: big.NewInt(0),
		Gas:      100000,
		Value:    big.NewInt(17),
		Data:     common.FromHex("3331600055"),
	})
	executed, err := e.Transact(tx, TransactOptions{Tracing: false, CheckNonce: false})
	assert.Nil(t, err)
	contract := ContractAddress(sender, 1)
	assert.Equal(t, contract, executed.ContractAddress)
	assert.NotEqual(t, ContractAddress(sender, 7), executed.ContractAddress)
	assert.Equal(t, uint64(17), state.Balance(contract).Uint64())
	assert.Equal(t, uint64(2), state.Nonce(sender))
}

func TestTransactCallHasNoContractAddress(t *testing.T) {
	e, state := newTestExecutive(t, 1024, newTestInfo())
	key, _ := newFundedKey(t, state, 100)
	receiver := common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")
	tx := signTx(t, e, key, &types.LegacyTx{
		Nonce:    0,
		To:       &receiver,
		GasPrice: big.NewInt(0),
		Gas:      21000,
		Value:    big.NewInt(1),
	})
	executed, err := e.Transact(tx, TransactOptions{CheckNonce: true})
	assert.Nil(t, err)
	assert.Equal(t, common.Address{}, executed.ContractAddress)
}
