package trace

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
	"github.com/holiman/uint256"
	itypes "github.com/wcgcyx/texec/types"
)

// Call is the action of a message call.
type Call struct {
	From  common.Address
	To    common.Address
	Value *uint256.Int
	Gas   uint64
	Input []byte
}

// NewCall creates the call action of the given params.
func NewCall(params *itypes.ActionParams) *Call {
	return &Call{
		From:  params.Sender,
		To:    params.Address,
		Value: params.Value.Value(),
		Gas:   params.Gas,
		Input: common.CopyBytes(params.Data),
	}
}

// Create is the action of a contract creation.
type Create struct {
	From  common.Address
	Value *uint256.Int
	Gas   uint64
	Init  []byte
}

// NewCreate creates the create action of the given params.
func NewCreate(params *itypes.ActionParams) *Create {
	return &Create{
		From:  params.Sender,
		Value: params.Value.Value(),
		Gas:   params.Gas,
		Init:  common.CopyBytes(params.Code),
	}
}

// Action is either a call or a create.
type Action struct {
	Call   *Call
	Create *Create
}

// CallResult is the result of a successful call.
type CallResult struct {
	GasUsed uint64
	Output  []byte
}

// CreateResult is the result of a successful create.
type CreateResult struct {
	GasUsed uint64
	Code    []byte
	Address common.Address
}

// Result is the outcome of an action. Both results are nil if the action failed.
type Result struct {
	Call   *CallResult
	Create *CreateResult
}

// Failed returns true if the action failed.
func (r Result) Failed() bool {
	return r.Call == nil && r.Create == nil
}

// Trace is the record of one call or create and of everything it invoked.
type Trace struct {
	// Depth of the invocation, zero at the top level
	Depth uint64

	// The invocation
	Action Action

	// Its outcome
	Result Result

	// Invocations made by it, in order
	Subs []*Trace
}

// FlatAction is the json form of an action.
type FlatAction struct {
	CallType string          `json:"callType,omitempty"`
	From     common.Address  `json:"from"`
	To       *common.Address `json:"to,omitempty"`
	Gas      hexutil.Uint64  `json:"gas"`
	Value    *hexutil.Big    `json:"value"`
	Input    *hexutil.Bytes  `json:"input,omitempty"`
	Init     *hexutil.Bytes  `json:"init,omitempty"`
}

// FlatResult is the json form of a result.
type FlatResult struct {
	GasUsed hexutil.Uint64  `json:"gasUsed"`
	Output  *hexutil.Bytes  `json:"output,omitempty"`
	Code    *hexutil.Bytes  `json:"code,omitempty"`
	Address *common.Address `json:"address,omitempty"`
}

// FlatTrace is a trace without nesting, located by its trace address.
type FlatTrace struct {
	Type         string      `json:"type"`
	Action       FlatAction  `json:"action"`
	Result       *FlatResult `json:"result,omitempty"`
	Error        string      `json:"error,omitempty"`
	Subtraces    int         `json:"subtraces"`
	TraceAddress []int       `json:"traceAddress"`
}

// Flatten returns the trace and all its sub traces in depth first order.
func (t *Trace) Flatten() []FlatTrace {
	return flatten(t, []int{})
}

func flatten(t *Trace, traceAddress []int) []FlatTrace {
	res := []FlatTrace{t.flat(traceAddress)}
	for i, sub := range t.Subs {
		childAddr := make([]int, len(traceAddress)+1)
		copy(childAddr, traceAddress)
		childAddr[len(traceAddress)] = i
		res = append(res, flatten(sub, childAddr)...)
	}
	return res
}

func toHexBig(v *uint256.Int) *hexutil.Big {
	if v == nil {
		return (*hexutil.Big)(new(uint256.Int).ToBig())
	}
	return (*hexutil.Big)(v.ToBig())
}

func toHexBytes(b []byte) *hexutil.Bytes {
	res := hexutil.Bytes(common.CopyBytes(b))
	if res == nil {
		res = hexutil.Bytes{}
	}
	return &res
}

func (t *Trace) flat(traceAddress []int) FlatTrace {
	ft := FlatTrace{
		Subtraces:    len(t.Subs),
		TraceAddress: traceAddress,
	}
	if call := t.Action.Call; call != nil {
		to := call.To
		ft.Type = "call"
		ft.Action = FlatAction{
			CallType: "call",
			From:     call.From,
			To:       &to,
			Gas:      hexutil.Uint64(call.Gas),
			Value:    toHexBig(call.Value),
			Input:    toHexBytes(call.Input),
		}
	} else if create := t.Action.Create; create != nil {
		ft.Type = "create"
		ft.Action = FlatAction{
			From:  create.From,
			Gas:   hexutil.Uint64(create.Gas),
			Value: toHexBig(create.Value),
			Init:  toHexBytes(create.Init),
		}
	}
	switch {
	case t.Result.Call != nil:
		ft.Result = &FlatResult{
			GasUsed: hexutil.Uint64(t.Result.Call.GasUsed),
			Output:  toHexBytes(t.Result.Call.Output),
		}
	case t.Result.Create != nil:
		addr := t.Result.Create.Address
		ft.Result = &FlatResult{
			GasUsed: hexutil.Uint64(t.Result.Create.GasUsed),
			Code:    toHexBytes(t.Result.Create.Code),
			Address: &addr,
		}
	default:
		ft.Error = "failed"
	}
	return ft
}

// MarshalJSON renders the trace in the flat form.
func (t *Trace) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Flatten())
}
