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
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

func opStop(pc *uint64, f *frame) ([]byte, error) {
	return nil, nil
}

func opAdd(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	y.Add(&x, y)
	return nil, nil
}

func opSub(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	y.Sub(&x, y)
	return nil, nil
}

func opMul(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	y.Mul(&x, y)
	return nil, nil
}

func opDiv(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	y.Div(&x, y)
	return nil, nil
}

func opSdiv(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	y.SDiv(&x, y)
	return nil, nil
}

func opMod(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	y.Mod(&x, y)
	return nil, nil
}

func opSmod(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	y.SMod(&x, y)
	return nil, nil
}

func opExp(pc *uint64, f *frame) ([]byte, error) {
	base, exponent := f.stack.pop(), f.stack.peek()
	exponent.Exp(&base, exponent)
	return nil, nil
}

func opSignExtend(pc *uint64, f *frame) ([]byte, error) {
	back, num := f.stack.pop(), f.stack.peek()
	num.ExtendSign(num, &back)
	return nil, nil
}

func opNot(pc *uint64, f *frame) ([]byte, error) {
	x := f.stack.peek()
	x.Not(x)
	return nil, nil
}

func opLt(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opGt(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSlt(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSgt(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opEq(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opIszero(pc *uint64, f *frame) ([]byte, error) {
	x := f.stack.peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil
}

func opAnd(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	y.And(&x, y)
	return nil, nil
}

func opOr(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	y.Or(&x, y)
	return nil, nil
}

func opXor(pc *uint64, f *frame) ([]byte, error) {
	x, y := f.stack.pop(), f.stack.peek()
	y.Xor(&x, y)
	return nil, nil
}

func opByte(pc *uint64, f *frame) ([]byte, error) {
	th, val := f.stack.pop(), f.stack.peek()
	val.Byte(&th)
	return nil, nil
}

func opAddmod(pc *uint64, f *frame) ([]byte, error) {
	x, y, z := f.stack.pop(), f.stack.pop(), f.stack.peek()
	z.AddMod(&x, &y, z)
	return nil, nil
}

func opMulmod(pc *uint64, f *frame) ([]byte, error) {
	x, y, z := f.stack.pop(), f.stack.pop(), f.stack.peek()
	z.MulMod(&x, &y, z)
	return nil, nil
}

func opSha3(pc *uint64, f *frame) ([]byte, error) {
	offset, size := f.stack.pop(), f.stack.peek()
	data := f.memory.getPtr(offset.Uint64(), size.Uint64())
	size.SetBytes(crypto.Keccak256(data))
	return nil, nil
}

func opAddress(pc *uint64, f *frame) ([]byte, error) {
	f.stack.push(new(uint256.Int).SetBytes(f.params.Address.Bytes()))
	return nil, nil
}

func opBalance(pc *uint64, f *frame) ([]byte, error) {
	slot := f.stack.peek()
	slot.Set(f.ext.Balance(slot.Bytes20()))
	return nil, nil
}

func opOrigin(pc *uint64, f *frame) ([]byte, error) {
	f.stack.push(new(uint256.Int).SetBytes(f.params.Origin.Bytes()))
	return nil, nil
}

func opCaller(pc *uint64, f *frame) ([]byte, error) {
	f.stack.push(new(uint256.Int).SetBytes(f.params.Sender.Bytes()))
	return nil, nil
}

func opCallValue(pc *uint64, f *frame) ([]byte, error) {
	f.stack.push(f.params.Value.Value())
	return nil, nil
}

// getData returns a slice of data, right padded with zeros to size.
func getData(data []byte, start uint64, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length || end < start {
		end = length
	}
	return common.RightPadBytes(data[start:end], int(size))
}

func opCallDataLoad(pc *uint64, f *frame) ([]byte, error) {
	x := f.stack.peek()
	if offset, overflow := x.Uint64WithOverflow(); !overflow {
		x.SetBytes(getData(f.params.Data, offset, 32))
	} else {
		x.Clear()
	}
	return nil, nil
}

func opCallDataSize(pc *uint64, f *frame) ([]byte, error) {
	f.stack.push(new(uint256.Int).SetUint64(uint64(len(f.params.Data))))
	return nil, nil
}

// copyToMemory implements the copy instructions of the given source.
func copyToMemory(f *frame, src []byte, memOffset, dataOffset, length *uint256.Int) {
	offset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		offset64 = ^uint64(0)
	}
	f.memory.set(memOffset.Uint64(), length.Uint64(), getData(src, offset64, length.Uint64()))
}

func opCallDataCopy(pc *uint64, f *frame) ([]byte, error) {
	memOffset, dataOffset, length := f.stack.pop(), f.stack.pop(), f.stack.pop()
	copyToMemory(f, f.params.Data, &memOffset, &dataOffset, &length)
	return nil, nil
}

func opCodeSize(pc *uint64, f *frame) ([]byte, error) {
	f.stack.push(new(uint256.Int).SetUint64(uint64(len(f.params.Code))))
	return nil, nil
}

func opCodeCopy(pc *uint64, f *frame) ([]byte, error) {
	memOffset, codeOffset, length := f.stack.pop(), f.stack.pop(), f.stack.pop()
	copyToMemory(f, f.params.Code, &memOffset, &codeOffset, &length)
	return nil, nil
}

func opGasprice(pc *uint64, f *frame) ([]byte, error) {
	v := new(uint256.Int)
	if f.params.GasPrice != nil {
		v.Set(f.params.GasPrice)
	}
	f.stack.push(v)
	return nil, nil
}

func opExtCodeSize(pc *uint64, f *frame) ([]byte, error) {
	slot := f.stack.peek()
	slot.SetUint64(uint64(len(f.ext.ExtCode(slot.Bytes20()))))
	return nil, nil
}

func opExtCodeCopy(pc *uint64, f *frame) ([]byte, error) {
	a, memOffset, codeOffset, length := f.stack.pop(), f.stack.pop(), f.stack.pop(), f.stack.pop()
	code := f.ext.ExtCode(a.Bytes20())
	copyToMemory(f, code, &memOffset, &codeOffset, &length)
	return nil, nil
}

func opBlockhash(pc *uint64, f *frame) ([]byte, error) {
	num := f.stack.peek()
	num64, overflow := num.Uint64WithOverflow()
	if overflow {
		num.Clear()
		return nil, nil
	}
	hash := f.ext.BlockHash(num64)
	num.SetBytes(hash.Bytes())
	return nil, nil
}

func opCoinbase(pc *uint64, f *frame) ([]byte, error) {
	f.stack.push(new(uint256.Int).SetBytes(f.ext.EnvInfo().Author.Bytes()))
	return nil, nil
}

func opTimestamp(pc *uint64, f *frame) ([]byte, error) {
	f.stack.push(new(uint256.Int).SetUint64(f.ext.EnvInfo().Timestamp))
	return nil, nil
}

func opNumber(pc *uint64, f *frame) ([]byte, error) {
	f.stack.push(new(uint256.Int).SetUint64(f.ext.EnvInfo().Number))
	return nil, nil
}

func opDifficulty(pc *uint64, f *frame) ([]byte, error) {
	v := new(uint256.Int)
	if d := f.ext.EnvInfo().Difficulty; d != nil {
		v.Set(d)
	}
	f.stack.push(v)
	return nil, nil
}

func opGasLimit(pc *uint64, f *frame) ([]byte, error) {
	f.stack.push(new(uint256.Int).SetUint64(f.ext.EnvInfo().GasLimit))
	return nil, nil
}

func opPop(pc *uint64, f *frame) ([]byte, error) {
	f.stack.pop()
	return nil, nil
}

func opMload(pc *uint64, f *frame) ([]byte, error) {
	v := f.stack.peek()
	offset := v.Uint64()
	v.SetBytes(f.memory.getPtr(offset, 32))
	return nil, nil
}

func opMstore(pc *uint64, f *frame) ([]byte, error) {
	mStart, val := f.stack.pop(), f.stack.pop()
	f.memory.set32(mStart.Uint64(), &val)
	return nil, nil
}

func opMstore8(pc *uint64, f *frame) ([]byte, error) {
	off, val := f.stack.pop(), f.stack.pop()
	f.memory.store[off.Uint64()] = byte(val.Uint64())
	return nil, nil
}

func opSload(pc *uint64, f *frame) ([]byte, error) {
	loc := f.stack.peek()
	val := f.ext.StorageAt(loc.Bytes32())
	loc.SetBytes(val.Bytes())
	return nil, nil
}

func opSstore(pc *uint64, f *frame) ([]byte, error) {
	loc, val := f.stack.pop(), f.stack.pop()
	key := common.Hash(loc.Bytes32())
	if f.ext.StorageAt(key) != (common.Hash{}) && val.IsZero() {
		f.ext.IncSstoreClears()
	}
	f.ext.SetStorage(key, val.Bytes32())
	return nil, nil
}

// jumpTo moves pc to dest if it is a valid jump destination.
func jumpTo(pc *uint64, f *frame, dest *uint256.Int) error {
	dest64, overflow := dest.Uint64WithOverflow()
	if overflow || dest64 >= uint64(len(f.params.Code)) || !f.jumps.isSet(dest64) {
		if overflow {
			dest64 = ^uint64(0)
		}
		return &BadJumpDestinationError{Destination: dest64}
	}
	// pc will be increased by the interpreter loop
	*pc = dest64 - 1
	return nil
}

func opJump(pc *uint64, f *frame) ([]byte, error) {
	pos := f.stack.pop()
	return nil, jumpTo(pc, f, &pos)
}

func opJumpi(pc *uint64, f *frame) ([]byte, error) {
	pos, cond := f.stack.pop(), f.stack.pop()
	if cond.IsZero() {
		return nil, nil
	}
	return nil, jumpTo(pc, f, &pos)
}

func opJumpdest(pc *uint64, f *frame) ([]byte, error) {
	return nil, nil
}

func opPc(pc *uint64, f *frame) ([]byte, error) {
	f.stack.push(new(uint256.Int).SetUint64(*pc))
	return nil, nil
}

func opMsize(pc *uint64, f *frame) ([]byte, error) {
	f.stack.push(new(uint256.Int).SetUint64(uint64(f.memory.Len())))
	return nil, nil
}

func opGas(pc *uint64, f *frame) ([]byte, error) {
	f.stack.push(new(uint256.Int).SetUint64(f.gas))
	return nil, nil
}

// canCall checks the balance of the running contract covers value and the depth limit is not reached.
func canCall(f *frame, value *uint256.Int) bool {
	if f.ext.Depth() >= f.sched.MaxDepth {
		return false
	}
	if value == nil {
		return true
	}
	return f.ext.Balance(f.params.Address).Cmp(value) >= 0
}

func opCreate(pc *uint64, f *frame) ([]byte, error) {
	value, offset, size := f.stack.pop(), f.stack.pop(), f.stack.pop()
	input := f.memory.getCopy(offset.Uint64(), size.Uint64())
	if !canCall(f, &value) {
		f.stack.push(new(uint256.Int))
		return nil, nil
	}
	// All gas left is handed to the creation.
	gas := f.gas
	f.gas = 0
	res := f.ext.Create(gas, &value, input)
	if res.Created {
		f.stack.push(new(uint256.Int).SetBytes(res.Address.Bytes()))
		f.gas += res.GasLeft
	} else {
		f.stack.push(new(uint256.Int))
	}
	return nil, nil
}

// callArgs are the operands shared by the call instructions.
type callArgs struct {
	gas       uint64
	addr      common.Address
	value     *uint256.Int
	inOffset  uint64
	inSize    uint64
	retOffset uint64
	retSize   uint64
}

func popCallArgs(f *frame, hasValue bool) callArgs {
	var args callArgs
	// Requested gas is known to fit, it was charged already.
	gas := f.stack.pop()
	args.gas = gas.Uint64()
	addr := f.stack.pop()
	args.addr = addr.Bytes20()
	if hasValue {
		value := f.stack.pop()
		args.value = &value
	}
	inOffset, inSize, retOffset, retSize := f.stack.pop(), f.stack.pop(), f.stack.pop(), f.stack.pop()
	args.inOffset, args.inSize = inOffset.Uint64(), inSize.Uint64()
	args.retOffset, args.retSize = retOffset.Uint64(), retSize.Uint64()
	return args
}

// doCall performs a message call. The requested gas was charged up front,
// gas not used by the callee is given back.
func doCall(f *frame, args callArgs, sender common.Address, receiver common.Address) {
	gas := args.gas
	if args.value != nil && !args.value.IsZero() {
		gas += f.sched.CallStipend
	}
	if !canCall(f, args.value) {
		f.stack.push(new(uint256.Int))
		f.gas += gas
		return
	}
	input := f.memory.getCopy(args.inOffset, args.inSize)
	output := f.memory.getPtr(args.retOffset, args.retSize)
	res := f.ext.Call(gas, sender, receiver, args.value, input, args.addr, output)
	if res.Success {
		f.stack.push(new(uint256.Int).SetOne())
		f.gas += res.GasLeft
	} else {
		f.stack.push(new(uint256.Int))
	}
}

func opCall(pc *uint64, f *frame) ([]byte, error) {
	args := popCallArgs(f, true)
	doCall(f, args, f.params.Address, args.addr)
	return nil, nil
}

func opCallCode(pc *uint64, f *frame) ([]byte, error) {
	args := popCallArgs(f, true)
	doCall(f, args, f.params.Address, f.params.Address)
	return nil, nil
}

func opDelegateCall(pc *uint64, f *frame) ([]byte, error) {
	args := popCallArgs(f, false)
	doCall(f, args, f.params.Sender, f.params.Address)
	return nil, nil
}

func opReturn(pc *uint64, f *frame) ([]byte, error) {
	offset, size := f.stack.pop(), f.stack.pop()
	ret := f.memory.getCopy(offset.Uint64(), size.Uint64())
	if ret == nil {
		ret = []byte{}
	}
	return ret, nil
}

func opSuicide(pc *uint64, f *frame) ([]byte, error) {
	beneficiary := f.stack.pop()
	f.ext.Suicide(beneficiary.Bytes20())
	return nil, nil
}

// makeLog creates a log instruction with size topics.
func makeLog(size int) executionFunc {
	return func(pc *uint64, f *frame) ([]byte, error) {
		topics := make([]common.Hash, size)
		mStart, mSize := f.stack.pop(), f.stack.pop()
		for i := 0; i < size; i++ {
			addr := f.stack.pop()
			topics[i] = addr.Bytes32()
		}
		d := f.memory.getCopy(mStart.Uint64(), mSize.Uint64())
		f.ext.Log(topics, d)
		return nil, nil
	}
}

// makePush creates a push instruction of size bytes, missing code bytes read as zero.
func makePush(size uint64) executionFunc {
	return func(pc *uint64, f *frame) ([]byte, error) {
		codeLen := uint64(len(f.params.Code))
		start := min(codeLen, *pc+1)
		end := min(codeLen, start+size)
		integer := new(uint256.Int).SetBytes(common.RightPadBytes(f.params.Code[start:end], int(size)))
		f.stack.push(integer)
		*pc += size
		return nil, nil
	}
}

func makeDup(size int) executionFunc {
	return func(pc *uint64, f *frame) ([]byte, error) {
		f.stack.dup(size)
		return nil, nil
	}
}

func makeSwap(size int) executionFunc {
	return func(pc *uint64, f *frame) ([]byte, error) {
		f.stack.swap(size)
		return nil, nil
	}
}
