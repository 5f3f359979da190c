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
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/wcgcyx/texec/trace"
	itypes "github.com/wcgcyx/texec/types"
)

// Executed is the result of an applied transaction.
type Executed struct {
	// Gas given by the transaction
	Gas uint64

	// Gas paid for, after refund
	GasUsed uint64

	// Gas given back by storage clears and suicides
	Refunded uint64

	// Gas used in the block including this transaction
	CumulativeGasUsed uint64

	// Logs emitted
	Logs []itypes.LogEntry

	// Contracts created by running code
	ContractsCreated []common.Address

	// Address of the contract created by the transaction, zero for message calls
	ContractAddress common.Address

	// Returned data of a message call
	Output []byte

	// Top level trace, nil if not tracing
	Trace *trace.Trace

	// Error that consumed all the gas, nil if the execution succeeded
	Err error
}

// Failed returns true if the execution consumed all gas without effect.
func (e *Executed) Failed() bool {
	return e.Err != nil
}

type executedLog struct {
	Address common.Address `json:"address"`
	Topics  []common.Hash  `json:"topics"`
	Data    hexutil.Bytes  `json:"data"`
}

type executedJSON struct {
	Gas               hexutil.Uint64    `json:"gas"`
	GasUsed           hexutil.Uint64    `json:"gasUsed"`
	Refunded          hexutil.Uint64    `json:"refunded"`
	CumulativeGasUsed hexutil.Uint64    `json:"cumulativeGasUsed"`
	Logs              []executedLog     `json:"logs"`
	ContractsCreated  []common.Address  `json:"contractsCreated"`
	ContractAddress   *common.Address   `json:"contractAddress,omitempty"`
	Output            hexutil.Bytes     `json:"output"`
	Trace             []trace.FlatTrace `json:"trace,omitempty"`
	Error             string            `json:"error,omitempty"`
}

// MarshalJSON renders the result with hex quantities and a flat trace.
func (e *Executed) MarshalJSON() ([]byte, error) {
	res := executedJSON{
		Gas:               hexutil.Uint64(e.Gas),
		GasUsed:           hexutil.Uint64(e.GasUsed),
		Refunded:          hexutil.Uint64(e.Refunded),
		CumulativeGasUsed: hexutil.Uint64(e.CumulativeGasUsed),
		Logs:              make([]executedLog, 0, len(e.Logs)),
		ContractsCreated:  e.ContractsCreated,
		Output:            e.Output,
	}
	for _, l := range e.Logs {
		res.Logs = append(res.Logs, executedLog{Address: l.Address, Topics: l.Topics, Data: l.Data})
	}
	if e.ContractAddress != (common.Address{}) {
		addr := e.ContractAddress
		res.ContractAddress = &addr
	}
	if res.ContractsCreated == nil {
		res.ContractsCreated = make([]common.Address, 0)
	}
	if res.Output == nil {
		res.Output = hexutil.Bytes{}
	}
	if e.Trace != nil {
		res.Trace = e.Trace.Flatten()
	}
	if e.Err != nil {
		res.Error = e.Err.Error()
	}
	return json.Marshal(res)
}
