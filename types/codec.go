package types

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
	"github.com/holiman/uint256"
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

var (
	byteMarshaller   = mus.MarshallerFn[byte](varint.MarshalByte)
	byteUnmarshaller = mus.UnmarshallerFn[byte](varint.UnmarshalByte)
	byteSizer        = mus.SizerFn[byte](varint.SizeByte)
)

// MarshalBytes implements the mus.Marshaller interface.
func MarshalBytes(v []byte, bs []byte) (n int) {
	return ord.MarshalSlice[byte](v, byteMarshaller, bs)
}

// UnmarshalBytes implements the mus.Unmarshaller interface.
func UnmarshalBytes(bs []byte) (v []byte, n int, err error) {
	return ord.UnmarshalSlice[byte](byteUnmarshaller, bs)
}

// SizeBytes implements the mus.Sizer interface.
func SizeBytes(v []byte) (size int) {
	return ord.SizeSlice[byte](v, byteSizer)
}

// MarshalHash implements the mus.Marshaller interface.
func MarshalHash(v common.Hash, bs []byte) (n int) {
	return MarshalBytes(v.Bytes(), bs)
}

// UnmarshalHash implements the mus.Unmarshaller interface.
func UnmarshalHash(bs []byte) (v common.Hash, n int, err error) {
	sl, n, err := UnmarshalBytes(bs)
	if err != nil {
		return
	}
	v.SetBytes(sl)
	return
}

// SizeHash implements the mus.Sizer interface.
func SizeHash(v common.Hash) (size int) {
	return SizeBytes(v.Bytes())
}

// Balances are stored without leading zeros, zero balance is an empty slice.
func marshalBalance(v *uint256.Int, bs []byte) (n int) {
	if v == nil {
		return MarshalBytes(nil, bs)
	}
	return MarshalBytes(v.Bytes(), bs)
}

func unmarshalBalance(bs []byte) (v *uint256.Int, n int, err error) {
	sl, n, err := UnmarshalBytes(bs)
	if err != nil {
		return
	}
	v = new(uint256.Int).SetBytes(sl)
	return
}

func sizeBalance(v *uint256.Int) (size int) {
	if v == nil {
		return SizeBytes(nil)
	}
	return SizeBytes(v.Bytes())
}

// MarshalAccountValue implements the mus.Marshaller interface.
// Layout: nonce, balance, code hash, storage version.
func MarshalAccountValue(v AccountValue, bs []byte) (n int) {
	n = varint.MarshalUint64(v.Nonce, bs)
	n += marshalBalance(v.Balance, bs[n:])
	n += MarshalHash(v.CodeHash, bs[n:])
	n += varint.MarshalUint64(v.Version, bs[n:])
	return
}

// UnmarshalAccountValue implements the mus.Unmarshaller interface.
func UnmarshalAccountValue(bs []byte) (v AccountValue, n int, err error) {
	v.Nonce, n, err = varint.UnmarshalUint64(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Balance, n1, err = unmarshalBalance(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CodeHash, n1, err = UnmarshalHash(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Version, n1, err = varint.UnmarshalUint64(bs[n:])
	n += n1
	return
}

// SizeAccountValue implements the mus.Sizer interface.
func SizeAccountValue(v AccountValue) (size int) {
	return varint.SizeUint64(v.Nonce) +
		sizeBalance(v.Balance) +
		SizeHash(v.CodeHash) +
		varint.SizeUint64(v.Version)
}
