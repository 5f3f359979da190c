package schedule

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
	"github.com/ethereum/go-ethereum/params"
)

// Gas price tiers, indexed into Schedule.TierStepGas.
const (
	TierZero = iota
	TierBase
	TierVeryLow
	TierLow
	TierMid
	TierHigh
	TierExt
	TierSpecial
)

// Schedule is the consensus rule table used by the executive and the interpreter.
type Schedule struct {
	// Failed code deposit is an exceptional halt (Homestead) rather than
	// leaving an empty contract behind (Frontier).
	ExceptionalFailedCodeDeposit bool
	// DELEGATECALL is available.
	HaveDelegateCall bool

	StackLimit uint64
	MaxDepth   uint64

	TierStepGas [8]uint64

	ExpGas               uint64
	ExpByteGas           uint64
	Sha3Gas              uint64
	Sha3WordGas          uint64
	SloadGas             uint64
	SstoreSetGas         uint64
	SstoreResetGas       uint64
	SstoreRefundGas      uint64
	JumpdestGas          uint64
	LogGas               uint64
	LogDataGas           uint64
	LogTopicGas          uint64
	CreateGas            uint64
	CallGas              uint64
	CallStipend          uint64
	CallValueTransferGas uint64
	CallNewAccountGas    uint64
	SuicideRefundGas     uint64
	MemoryGas            uint64
	QuadCoeffDiv         uint64
	CreateDataGas        uint64
	TxGas                uint64
	TxCreateGas          uint64
	TxDataZeroGas        uint64
	TxDataNonZeroGas     uint64
	CopyGas              uint64
	BalanceGas           uint64
	ExtcodeSizeGas       uint64
	ExtcodeCopyBaseGas   uint64
}

// NewFrontier creates the schedule of the Frontier rules.
func NewFrontier() *Schedule {
	return newSchedule(false, false, params.TxGas)
}

// NewHomestead creates the schedule of the Homestead rules.
func NewHomestead() *Schedule {
	return newSchedule(true, true, params.TxGasContractCreation)
}

func newSchedule(exceptionalFailedCodeDeposit bool, haveDelegateCall bool, txCreateGas uint64) *Schedule {
	return &Schedule{
		ExceptionalFailedCodeDeposit: exceptionalFailedCodeDeposit,
		HaveDelegateCall:             haveDelegateCall,
		StackLimit:                   params.StackLimit,
		MaxDepth:                     params.CallCreateDepth,
		TierStepGas:                  [8]uint64{0, 2, 3, 5, 8, 10, 20, 0},
		ExpGas:                       params.ExpGas,
		ExpByteGas:                   params.ExpByteFrontier,
		Sha3Gas:                      params.Keccak256Gas,
		Sha3WordGas:                  params.Keccak256WordGas,
		SloadGas:                     params.SloadGasFrontier,
		SstoreSetGas:                 params.SstoreSetGas,
		SstoreResetGas:               params.SstoreResetGas,
		SstoreRefundGas:              params.SstoreRefundGas,
		JumpdestGas:                  params.JumpdestGas,
		LogGas:                       params.LogGas,
		LogDataGas:                   params.LogDataGas,
		LogTopicGas:                  params.LogTopicGas,
		CreateGas:                    params.CreateGas,
		CallGas:                      params.CallGasFrontier,
		CallStipend:                  params.CallStipend,
		CallValueTransferGas:         params.CallValueTransferGas,
		CallNewAccountGas:            params.CallNewAccountGas,
		SuicideRefundGas:             params.SelfdestructRefundGas,
		MemoryGas:                    params.MemoryGas,
		QuadCoeffDiv:                 params.QuadCoeffDiv,
		CreateDataGas:                params.CreateDataGas,
		TxGas:                        params.TxGas,
		TxCreateGas:                  txCreateGas,
		TxDataZeroGas:                params.TxDataZeroGas,
		TxDataNonZeroGas:             params.TxDataNonZeroGasFrontier,
		CopyGas:                      params.CopyGas,
		BalanceGas:                   params.BalanceGasFrontier,
		ExtcodeSizeGas:               params.ExtcodeSizeGasFrontier,
		ExtcodeCopyBaseGas:           params.ExtcodeCopyBaseFrontier,
	}
}

// Copy returns a copy of the schedule that can be modified freely.
func (s *Schedule) Copy() *Schedule {
	cpy := *s
	return &cpy
}

// TxGasRequired computes the intrinsic gas of a transaction with the given
// payload. The second return value is false if the cost overflows uint64.
func (s *Schedule) TxGasRequired(data []byte, isCreate bool) (uint64, bool) {
	gas := s.TxGas
	if isCreate {
		gas = s.TxCreateGas
	}
	var nz uint64
	for _, b := range data {
		if b != 0 {
			nz++
		}
	}
	z := uint64(len(data)) - nz
	// Data lengths are bounded by the transaction size, so overflow can only
	// come from pathological schedules.
	if nz > 0 && (^uint64(0)-gas)/s.TxDataNonZeroGas < nz {
		return 0, false
	}
	gas += nz * s.TxDataNonZeroGas
	if z > 0 && (^uint64(0)-gas)/s.TxDataZeroGas < z {
		return 0, false
	}
	gas += z * s.TxDataZeroGas
	return gas, true
}
