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
	"bytes"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	itypes "github.com/wcgcyx/texec/types"
)

// Substate is the side effects of one invocation that are applied at the
// end of the transaction.
type Substate struct {
	// Accounts to be killed
	Suicides mapset.Set[common.Address]

	// Emitted logs, in order
	Logs []itypes.LogEntry

	// Number of storage slots cleared
	SstoreClearsCount uint64

	// Contracts created by CREATE, in order
	ContractsCreated []common.Address
}

// NewSubstate creates an empty substate.
func NewSubstate() *Substate {
	return &Substate{
		Suicides:         mapset.NewThreadUnsafeSet[common.Address](),
		Logs:             make([]itypes.LogEntry, 0),
		ContractsCreated: make([]common.Address, 0),
	}
}

// Accrue merges the side effects of a nested invocation.
func (s *Substate) Accrue(other *Substate) {
	s.Suicides = s.Suicides.Union(other.Suicides)
	s.Logs = append(s.Logs, other.Logs...)
	s.SstoreClearsCount += other.SstoreClearsCount
	s.ContractsCreated = append(s.ContractsCreated, other.ContractsCreated...)
}

// SortedSuicides returns the accounts to be killed in address order.
func (s *Substate) SortedSuicides() []common.Address {
	res := s.Suicides.ToSlice()
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Bytes(), res[j].Bytes()) < 0
	})
	return res
}
