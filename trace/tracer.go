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
	"github.com/ethereum/go-ethereum/common"
	logging "github.com/ipfs/go-log"
	itypes "github.com/wcgcyx/texec/types"
)

var log = logging.Logger("trace")

// Tracer observes the calls and creates of a transaction.
// Values returned by the prepare methods are handed back to the trace methods.
type Tracer interface {
	// PrepareTraceCall prepares the call action, nil if not tracing.
	PrepareTraceCall(params *itypes.ActionParams) *Call

	// PrepareTraceCreate prepares the create action, nil if not tracing.
	PrepareTraceCreate(params *itypes.ActionParams) *Create

	// PrepareTraceOutput prepares the buffer receiving a copy of the output, nil if not tracing.
	PrepareTraceOutput() *[]byte

	// TraceCall records a successful call. Delegate calls are not recorded.
	TraceCall(call *Call, gasUsed uint64, output *[]byte, depth uint64, subs []*Trace, delegateCall bool)

	// TraceCreate records a successful create.
	TraceCreate(create *Create, gasUsed uint64, code *[]byte, address common.Address, depth uint64, subs []*Trace)

	// TraceFailedCall records a failed call. Delegate calls are not recorded.
	TraceFailedCall(call *Call, depth uint64, subs []*Trace, delegateCall bool)

	// TraceFailedCreate records a failed create.
	TraceFailedCreate(create *Create, depth uint64, subs []*Trace)

	// Subtracer creates a tracer of the same kind for nested invocations.
	Subtracer() Tracer

	// Traces returns the recorded traces.
	Traces() []*Trace
}

// NoopTracer records nothing.
type NoopTracer struct{}

// NewNoopTracer creates a tracer that records nothing.
func NewNoopTracer() Tracer {
	return NoopTracer{}
}

func (NoopTracer) PrepareTraceCall(params *itypes.ActionParams) *Call {
	return nil
}

func (NoopTracer) PrepareTraceCreate(params *itypes.ActionParams) *Create {
	return nil
}

func (NoopTracer) PrepareTraceOutput() *[]byte {
	return nil
}

func (NoopTracer) TraceCall(call *Call, gasUsed uint64, output *[]byte, depth uint64, subs []*Trace, delegateCall bool) {
}

func (NoopTracer) TraceCreate(create *Create, gasUsed uint64, code *[]byte, address common.Address, depth uint64, subs []*Trace) {
}

func (NoopTracer) TraceFailedCall(call *Call, depth uint64, subs []*Trace, delegateCall bool) {
}

func (NoopTracer) TraceFailedCreate(create *Create, depth uint64, subs []*Trace) {
}

func (NoopTracer) Subtracer() Tracer {
	return NoopTracer{}
}

func (NoopTracer) Traces() []*Trace {
	return nil
}

// ExecutiveTracer records every call and create.
type ExecutiveTracer struct {
	traces []*Trace
}

// NewExecutiveTracer creates a recording tracer.
func NewExecutiveTracer() Tracer {
	return &ExecutiveTracer{traces: make([]*Trace, 0)}
}

// PrepareTraceCall prepares the call action.
func (t *ExecutiveTracer) PrepareTraceCall(params *itypes.ActionParams) *Call {
	return NewCall(params)
}

// PrepareTraceCreate prepares the create action.
func (t *ExecutiveTracer) PrepareTraceCreate(params *itypes.ActionParams) *Create {
	return NewCreate(params)
}

// PrepareTraceOutput prepares an empty output buffer.
func (t *ExecutiveTracer) PrepareTraceOutput() *[]byte {
	out := make([]byte, 0)
	return &out
}

// TraceCall records a successful call.
func (t *ExecutiveTracer) TraceCall(call *Call, gasUsed uint64, output *[]byte, depth uint64, subs []*Trace, delegateCall bool) {
	if delegateCall {
		return
	}
	if call == nil || output == nil {
		log.Panicf("call traced without being prepared")
	}
	log.Debugf("Trace call %v -> %v at depth %v, gas used %v", call.From, call.To, depth, gasUsed)
	t.traces = append(t.traces, &Trace{
		Depth:  depth,
		Action: Action{Call: call},
		Result: Result{Call: &CallResult{GasUsed: gasUsed, Output: *output}},
		Subs:   subs,
	})
}

// TraceCreate records a successful create.
func (t *ExecutiveTracer) TraceCreate(create *Create, gasUsed uint64, code *[]byte, address common.Address, depth uint64, subs []*Trace) {
	if create == nil || code == nil {
		log.Panicf("create traced without being prepared")
	}
	log.Debugf("Trace create %v by %v at depth %v, gas used %v", address, create.From, depth, gasUsed)
	t.traces = append(t.traces, &Trace{
		Depth:  depth,
		Action: Action{Create: create},
		Result: Result{Create: &CreateResult{GasUsed: gasUsed, Code: *code, Address: address}},
		Subs:   subs,
	})
}

// TraceFailedCall records a failed call.
func (t *ExecutiveTracer) TraceFailedCall(call *Call, depth uint64, subs []*Trace, delegateCall bool) {
	if delegateCall {
		return
	}
	if call == nil {
		log.Panicf("call traced without being prepared")
	}
	log.Debugf("Trace failed call %v -> %v at depth %v", call.From, call.To, depth)
	t.traces = append(t.traces, &Trace{
		Depth:  depth,
		Action: Action{Call: call},
		Subs:   subs,
	})
}

// TraceFailedCreate records a failed create.
func (t *ExecutiveTracer) TraceFailedCreate(create *Create, depth uint64, subs []*Trace) {
	if create == nil {
		log.Panicf("create traced without being prepared")
	}
	log.Debugf("Trace failed create by %v at depth %v", create.From, depth)
	t.traces = append(t.traces, &Trace{
		Depth:  depth,
		Action: Action{Create: create},
		Subs:   subs,
	})
}

// Subtracer creates a recording tracer for nested invocations.
func (t *ExecutiveTracer) Subtracer() Tracer {
	return NewExecutiveTracer()
}

// Traces returns the recorded traces.
func (t *ExecutiveTracer) Traces() []*Trace {
	return t.traces
}
