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

// BytesRef is the destination of returned data.
// A fixed ref is a caller owned buffer that receives at most its length,
// a flexible ref is replaced by the whole data.
type BytesRef struct {
	fixed    []byte
	flexible *[]byte
}

// NewFixedRef creates a ref writing into the given buffer.
func NewFixedRef(buf []byte) BytesRef {
	return BytesRef{fixed: buf}
}

// NewFlexibleRef creates a ref replacing the given slice.
func NewFlexibleRef(buf *[]byte) BytesRef {
	return BytesRef{flexible: buf}
}

// Write writes data into the ref and returns the number of bytes written.
func (r BytesRef) Write(data []byte) int {
	if r.flexible != nil {
		*r.flexible = append(make([]byte, 0, len(data)), data...)
		return len(data)
	}
	return copy(r.fixed, data)
}

// Bytes returns the current content of the ref.
func (r BytesRef) Bytes() []byte {
	if r.flexible != nil {
		return *r.flexible
	}
	return r.fixed
}

// OutputPolicy decides what happens to the data returned by running code.
type OutputPolicy struct {
	// Set when the code is init code, the data becomes the contract code.
	initContract bool

	// Destination of a call return
	output BytesRef

	// Receives a copy of the data for tracing, nil if not tracing.
	traceOutput *[]byte
}

// ReturnPolicy creates the policy of a message call.
func ReturnPolicy(output BytesRef, traceOutput *[]byte) OutputPolicy {
	return OutputPolicy{output: output, traceOutput: traceOutput}
}

// InitContractPolicy creates the policy of a contract creation.
func InitContractPolicy(traceOutput *[]byte) OutputPolicy {
	return OutputPolicy{initContract: true, traceOutput: traceOutput}
}

// IsInitContract returns true if returned data is deployed as code.
func (p OutputPolicy) IsInitContract() bool {
	return p.initContract
}

func (p OutputPolicy) setTraceOutput(data []byte) {
	if p.traceOutput != nil {
		*p.traceOutput = append(make([]byte, 0, len(data)), data...)
	}
}
