package statestore

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
	"time"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"
)

func (s *stateStoreImpl) gcRoutine() {
	defer func() {
		s.exitLoop <- true
	}()

	if s.opts.GCPeriod <= 0 {
		<-s.routineCtx.Done()
		log.Infof("Exit GC routine")
		return
	}

	after := time.NewTicker(s.opts.GCPeriod)
	defer after.Stop()
	for {
		select {
		case <-s.routineCtx.Done():
			log.Infof("Exit GC routine")
			return
		case <-after.C:
			log.Infof("Start GC round")
			accts, slots := s.gcRound()
			log.Infof("GC round cleared %v accounts with %v storage slots", accts, slots)
		}
		if s.routineCtx.Err() != nil {
			log.Warnf("Exit mainloop due to context cancelled: %v", s.routineCtx.Err().Error())
			return
		}
	}
}

// gcRound clears storage of every version scheduled for GC.
func (s *stateStoreImpl) gcRound() (int, int) {
	totalCleanedAccts := 0
	totalCleanedSlots := 0
	results, err := s.ds.Query(s.routineCtx, query.Query{Prefix: datastore.NewKey(gcKey).String(), KeysOnly: true})
	if err != nil {
		log.Warnf("GC - Fail to query ds: %v", err.Error())
		return 0, 0
	}
	entries, err := results.Rest()
	if err != nil {
		log.Warnf("GC - Fail to query ds: %v", err.Error())
		return 0, 0
	}
	for _, entry := range entries {
		if s.routineCtx.Err() != nil {
			log.Warnf("Exit GC round due to context cancelled: %v", s.routineCtx.Err().Error())
			break
		}
		addr, version, ok := splitGCKey(entry.Key)
		if !ok {
			log.Warnf("GC - Invalid gc entry %v", entry.Key)
			continue
		}
		cleared, err := s.clearVersion(entry.Key, getStoragePrefix(addr, version))
		if err != nil {
			log.Warnf("GC - Fail to clear %v-%v: %v", addr, version, err.Error())
			continue
		}
		totalCleanedAccts++
		totalCleanedSlots += cleared
	}
	return totalCleanedAccts, totalCleanedSlots
}

// clearVersion deletes all storage under prefix together with the gc entry.
func (s *stateStoreImpl) clearVersion(gcEntry string, prefix string) (int, error) {
	results, err := s.ds.Query(s.routineCtx, query.Query{Prefix: prefix, KeysOnly: true})
	if err != nil {
		return 0, err
	}
	entries, err := results.Rest()
	if err != nil {
		return 0, err
	}
	batch, err := s.ds.Batch(s.routineCtx)
	if err != nil {
		return 0, err
	}
	for _, entry := range entries {
		err = batch.Delete(s.routineCtx, datastore.NewKey(entry.Key))
		if err != nil {
			return 0, err
		}
	}
	err = batch.Delete(s.routineCtx, datastore.NewKey(gcEntry))
	if err != nil {
		return 0, err
	}
	err = batch.Commit(s.routineCtx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
