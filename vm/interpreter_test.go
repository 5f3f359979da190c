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
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/wcgcyx/texec/schedule"
	itypes "github.com/wcgcyx/texec/types"
	"go.uber.org/mock/gomock"
)

var (
	testAddress = common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")
	testSender  = common.HexToAddress("0xcd1722f3947def4cf144679da39c4c32bdc35681")
	testOther   = common.HexToAddress("0x0000000000000000000000000000000000000010")
)

type callRecord struct {
	gas         uint64
	sender      common.Address
	receiver    common.Address
	value       *uint256.Int
	data        []byte
	codeAddress common.Address
}

// testExt is an in memory Ext used to observe what the interpreter does.
type testExt struct {
	sched    *schedule.Schedule
	env      *itypes.EnvInfo
	depth    uint64
	storage  map[common.Hash]common.Hash
	balances map[common.Address]*uint256.Int
	exists   map[common.Address]bool
	clears   int
	calls    []callRecord
	creates  int
	logs     []itypes.LogEntry
	suicides []common.Address
	returned []byte
	callOut  []byte
}

func newTestExt(sched *schedule.Schedule) *testExt {
	return &testExt{
		sched:    sched,
		env:      &itypes.EnvInfo{Number: 1, GasLimit: 1000000},
		storage:  make(map[common.Hash]common.Hash),
		balances: make(map[common.Address]*uint256.Int),
		exists:   make(map[common.Address]bool),
	}
}

func (e *testExt) StorageAt(key common.Hash) common.Hash { return e.storage[key] }

func (e *testExt) SetStorage(key common.Hash, value common.Hash) { e.storage[key] = value }

func (e *testExt) Exists(addr common.Address) bool { return e.exists[addr] }

func (e *testExt) Balance(addr common.Address) *uint256.Int {
	if b, ok := e.balances[addr]; ok {
		return new(uint256.Int).Set(b)
	}
	return new(uint256.Int)
}

func (e *testExt) BlockHash(number uint64) common.Hash { return e.env.BlockHash(number) }

func (e *testExt) Create(gas uint64, value *uint256.Int, code []byte) ContractCreateResult {
	e.creates++
	return ContractCreateResult{Created: true, Address: testOther, GasLeft: gas}
}

func (e *testExt) Call(gas uint64, sender common.Address, receiver common.Address, value *uint256.Int, data []byte, codeAddress common.Address, output []byte) MessageCallResult {
	e.calls = append(e.calls, callRecord{gas, sender, receiver, value, data, codeAddress})
	copy(output, e.callOut)
	return MessageCallResult{Success: true, GasLeft: gas}
}

func (e *testExt) ExtCode(addr common.Address) []byte { return nil }

func (e *testExt) Log(topics []common.Hash, data []byte) {
	e.logs = append(e.logs, itypes.LogEntry{Address: testAddress, Topics: topics, Data: data})
}

func (e *testExt) Ret(gas uint64, data []byte) (uint64, error) {
	e.returned = data
	return gas, nil
}

func (e *testExt) Suicide(refundAddress common.Address) { e.suicides = append(e.suicides, refundAddress) }

func (e *testExt) Schedule() *schedule.Schedule { return e.sched }

func (e *testExt) EnvInfo() *itypes.EnvInfo { return e.env }

func (e *testExt) Depth() uint64 { return e.depth }

func (e *testExt) IncSstoreClears() { e.clears++ }

func newTestInterpreter(t *testing.T) Interpreter {
	factory, err := NewFactory(VMTypeInterpreter, DefaultJumpdestCacheSize)
	assert.Nil(t, err)
	return factory.Create()
}

func testParams(code []byte, gas uint64) *itypes.ActionParams {
	return &itypes.ActionParams{
		CodeAddress: testAddress,
		Address:     testAddress,
		Sender:      testSender,
		Origin:      testSender,
		Gas:         gas,
		GasPrice:    uint256.NewInt(1),
		Value:       itypes.NewTransferValue(uint256.NewInt(0)),
		Code:        code,
	}
}

func TestNewFactory(t *testing.T) {
	_, err := NewFactory("jit", 0)
	assert.NotNil(t, err)

	factory, err := NewFactory(VMTypeInterpreter, 0)
	assert.Nil(t, err)
	assert.Equal(t, VMTypeInterpreter, factory.Type())
	assert.NotNil(t, factory.Create())
}

func TestEmptyCode(t *testing.T) {
	ext := newTestExt(schedule.NewFrontier())
	gas, err := newTestInterpreter(t).Exec(testParams(nil, 100), ext)
	assert.Nil(t, err)
	assert.Equal(t, uint64(100), gas)
}

func TestAddAndReturn(t *testing.T) {
	// 3 + 4, stored at 0 and returned
	code := common.FromHex("600360040160005260206000f3")
	ext := newTestExt(schedule.NewFrontier())
	gas, err := newTestInterpreter(t).Exec(testParams(code, 100), ext)
	assert.Nil(t, err)
	assert.Equal(t, uint64(76), gas)
	assert.Equal(t, common.LeftPadBytes([]byte{7}, 32), ext.returned)

	_, err = newTestInterpreter(t).Exec(testParams(code, 20), ext)
	assert.ErrorIs(t, err, ErrOutOfGas)
}

func TestJump(t *testing.T) {
	ext := newTestExt(schedule.NewFrontier())
	in := newTestInterpreter(t)

	gas, err := in.Exec(testParams(common.FromHex("600456005b00"), 100), ext)
	assert.Nil(t, err)
	assert.Equal(t, uint64(88), gas)

	_, err = in.Exec(testParams(common.FromHex("600556"), 100), ext)
	assert.Equal(t, &BadJumpDestinationError{Destination: 5}, err)
	assert.True(t, IsRevertError(err))

	// Destination inside push data
	_, err = in.Exec(testParams(common.FromHex("600456605b00"), 100), ext)
	assert.Equal(t, &BadJumpDestinationError{Destination: 4}, err)

	// Conditional jump not taken
	gas, err = in.Exec(testParams(common.FromHex("6000600657005b"), 100), ext)
	assert.Nil(t, err)
	assert.Equal(t, uint64(84), gas)
}

func TestBadInstruction(t *testing.T) {
	in := newTestInterpreter(t)

	_, err := in.Exec(testParams([]byte{0xfe}, 100), newTestExt(schedule.NewFrontier()))
	assert.Equal(t, &BadInstructionError{Instruction: 0xfe}, err)

	// DELEGATECALL only exists from Homestead on
	_, err = in.Exec(testParams([]byte{0xf4}, 100), newTestExt(schedule.NewFrontier()))
	assert.Equal(t, &BadInstructionError{Instruction: 0xf4}, err)

	_, err = in.Exec(testParams([]byte{0xf4}, 100), newTestExt(schedule.NewHomestead()))
	var underflow *StackUnderflowError
	assert.ErrorAs(t, err, &underflow)
}

func TestStackLimits(t *testing.T) {
	in := newTestInterpreter(t)

	_, err := in.Exec(testParams([]byte{0x01}, 100), newTestExt(schedule.NewFrontier()))
	assert.Equal(t, &StackUnderflowError{Instruction: "ADD", Wanted: 2, OnStack: 0}, err)

	code := bytes.Repeat([]byte{0x60, 0x00}, 1025)
	_, err = in.Exec(testParams(code, 10000), newTestExt(schedule.NewFrontier()))
	assert.Equal(t, &OutOfStackError{Instruction: "PUSH1", Wanted: 1, Limit: 1024}, err)
	assert.True(t, IsRevertError(err))
}

func TestSstore(t *testing.T) {
	in := newTestInterpreter(t)
	ext := newTestExt(schedule.NewFrontier())

	// Set slot 0 to 1
	gas, err := in.Exec(testParams(common.FromHex("6001600055"), 30000), ext)
	assert.Nil(t, err)
	assert.Equal(t, uint64(30000-6-20000), gas)
	assert.Equal(t, common.BigToHash(common.Big1), ext.storage[common.Hash{}])
	assert.Equal(t, 0, ext.clears)

	// Clear slot 0
	gas, err = in.Exec(testParams(common.FromHex("6000600055"), 30000), ext)
	assert.Nil(t, err)
	assert.Equal(t, uint64(30000-6-5000), gas)
	assert.Equal(t, common.Hash{}, ext.storage[common.Hash{}])
	assert.Equal(t, 1, ext.clears)
}

func TestSha3(t *testing.T) {
	ext := newTestExt(schedule.NewFrontier())
	code := common.FromHex("600060002060005260206000f3")
	_, err := newTestInterpreter(t).Exec(testParams(code, 1000), ext)
	assert.Nil(t, err)
	assert.Equal(t, crypto.Keccak256(nil), ext.returned)
}

func TestLog(t *testing.T) {
	ext := newTestExt(schedule.NewFrontier())
	// LOG1 with topic 0x2a and one byte of memory
	code := common.FromHex("602a60016000a1")
	gas, err := newTestInterpreter(t).Exec(testParams(code, 10000), ext)
	assert.Nil(t, err)
	// 3 pushes, log base, one topic, one byte, one word of memory
	assert.Equal(t, uint64(10000-9-375-375-8-3), gas)
	assert.Equal(t, 1, len(ext.logs))
	assert.Equal(t, []common.Hash{common.HexToHash("0x2a")}, ext.logs[0].Topics)
	assert.Equal(t, []byte{0}, ext.logs[0].Data)
}

func TestCallWithoutBalance(t *testing.T) {
	ext := newTestExt(schedule.NewFrontier())
	ext.exists[testOther] = true
	// CALL 0x10 with value 1 and 1000 gas
	code := common.FromHex("6000600060006000600160106103e8f100")
	gas, err := newTestInterpreter(t).Exec(testParams(code, 20000), ext)
	assert.Nil(t, err)
	// Call gas and stipend are given back
	assert.Equal(t, uint64(20000-21-10040+1000+2300), gas)
	assert.Equal(t, 0, len(ext.calls))
}

func TestCall(t *testing.T) {
	ext := newTestExt(schedule.NewFrontier())
	ext.exists[testOther] = true
	ext.callOut = []byte{0xaa}
	// CALL 0x10 with 100 gas, 1 byte output at 0, return it
	code := common.FromHex("6001600060006000600060106064f160016000f3")
	gas, err := newTestInterpreter(t).Exec(testParams(code, 1000), ext)
	assert.Nil(t, err)
	assert.Equal(t, uint64(930), gas)
	assert.Equal(t, []byte{0xaa}, ext.returned)
	assert.Equal(t, 1, len(ext.calls))
	call := ext.calls[0]
	assert.Equal(t, uint64(100), call.gas)
	assert.Equal(t, testAddress, call.sender)
	assert.Equal(t, testOther, call.receiver)
	assert.Equal(t, testOther, call.codeAddress)
	assert.True(t, call.value.IsZero())

	// A call to an account not existing costs more
	ext = newTestExt(schedule.NewFrontier())
	gas, err = newTestInterpreter(t).Exec(testParams(code, 30000), ext)
	assert.Nil(t, err)
	assert.Equal(t, uint64(30000-70-25000), gas)
}

func TestCallCodeAndDelegateCall(t *testing.T) {
	ext := newTestExt(schedule.NewHomestead())
	code := common.FromHex("6000600060006000600060106064f2")
	_, err := newTestInterpreter(t).Exec(testParams(code, 1000), ext)
	assert.Nil(t, err)
	assert.Equal(t, testAddress, ext.calls[0].sender)
	assert.Equal(t, testAddress, ext.calls[0].receiver)
	assert.Equal(t, testOther, ext.calls[0].codeAddress)
	assert.NotNil(t, ext.calls[0].value)

	code = common.FromHex("600060006000600060106064f4")
	_, err = newTestInterpreter(t).Exec(testParams(code, 1000), ext)
	assert.Nil(t, err)
	assert.Equal(t, testSender, ext.calls[1].sender)
	assert.Equal(t, testAddress, ext.calls[1].receiver)
	assert.Equal(t, testOther, ext.calls[1].codeAddress)
	assert.Nil(t, ext.calls[1].value)
}

func TestCreate(t *testing.T) {
	code := common.FromHex("6000600060fff000")

	ext := newTestExt(schedule.NewFrontier())
	ext.balances[testAddress] = uint256.NewInt(0xff)
	gas, err := newTestInterpreter(t).Exec(testParams(code, 50000), ext)
	assert.Nil(t, err)
	assert.Equal(t, 1, ext.creates)
	// All gas is handed over and fully returned by the test externalities
	assert.Equal(t, uint64(50000-9-32000), gas)

	// Out of depth
	ext = newTestExt(schedule.NewFrontier())
	ext.balances[testAddress] = uint256.NewInt(0xff)
	ext.depth = 1024
	gas, err = newTestInterpreter(t).Exec(testParams(code, 50000), ext)
	assert.Nil(t, err)
	assert.Equal(t, 0, ext.creates)
	assert.Equal(t, uint64(50000-9-32000), gas)
}

func TestSuicide(t *testing.T) {
	ctrl := gomock.NewController(t)
	ext := NewMockExt(ctrl)
	ext.EXPECT().Schedule().Return(schedule.NewFrontier())
	ext.EXPECT().Suicide(testOther)

	gas, err := newTestInterpreter(t).Exec(testParams(common.FromHex("6010ff"), 100), ext)
	assert.Nil(t, err)
	assert.Equal(t, uint64(97), gas)
}

func TestEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	ext := NewMockExt(ctrl)
	env := &itypes.EnvInfo{Author: testOther, Number: 7, Timestamp: 100, GasLimit: 3141592}
	ext.EXPECT().Schedule().Return(schedule.NewFrontier())
	ext.EXPECT().EnvInfo().Return(env).AnyTimes()
	ext.EXPECT().Ret(gomock.Any(), gomock.Any()).DoAndReturn(func(gas uint64, data []byte) (uint64, error) {
		assert.Equal(t, common.LeftPadBytes([]byte{7}, 32), data)
		return gas, nil
	})

	// NUMBER, stored and returned
	_, err := newTestInterpreter(t).Exec(testParams(common.FromHex("4360005260206000f3"), 100), ext)
	assert.Nil(t, err)
}

func TestMemoryGas(t *testing.T) {
	f := &frame{sched: schedule.NewFrontier(), memory: newMemory()}
	gas, err := memoryGasCost(f, 32)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), gas)

	gas, err = memoryGasCost(f, 1024*32)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3*1024+1024*1024/512), gas)

	// Only the expansion is charged
	f.memory.resize(32)
	gas, err = memoryGasCost(f, 64)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), gas)

	_, err = memoryGasCost(f, maxMemorySize+1)
	assert.ErrorIs(t, err, ErrOutOfGas)
}

func TestJumpdests(t *testing.T) {
	bits := jumpdests(common.FromHex("5b605b5b"))
	assert.True(t, bits.isSet(0))
	assert.False(t, bits.isSet(2))
	assert.True(t, bits.isSet(3))

	cache, err := newJumpdestCache(1)
	assert.Nil(t, err)
	assert.Equal(t, bits, cache.get(common.FromHex("5b605b5b")))
	assert.Equal(t, bits, cache.get(common.FromHex("5b605b5b")))
}
