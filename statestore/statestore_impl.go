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
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2/options"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/holiman/uint256"
	"github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	badgerds "github.com/ipfs/go-ds-badger2"
	logging "github.com/ipfs/go-log"
	itypes "github.com/wcgcyx/texec/types"
)

// Logger
var log = logging.Logger("statestore")

const defaultCodeCacheSize = 256

// stateStoreImpl implements StateStore.
type stateStoreImpl struct {
	ctx  context.Context
	opts Opts
	ds   datastore.Batching

	// Code is content addressed, so cached entries never go stale.
	codeCache *lru.Cache[common.Hash, []byte]

	// Process related
	routineCtx context.Context
	cancel     context.CancelFunc
	exitLoop   chan bool
}

// NewStateStoreImpl creates a new StateStore backed by badger.
func NewStateStoreImpl(ctx context.Context, opts Opts) (StateStore, error) {
	dsopts := badgerds.DefaultOptions
	dsopts.SyncWrites = false
	dsopts.Truncate = true
	// Use max table size of 256MiB
	dsopts.Options.MaxTableSize = 256 << 20
	// Use memory map for value log
	dsopts.Options.ValueLogLoadingMode = options.MemoryMap
	if opts.Path == "" {
		return nil, fmt.Errorf("empty path provided")
	}
	ds, err := badgerds.NewDatastore(opts.Path, &dsopts)
	if err != nil {
		return nil, err
	}
	return newStateStore(ctx, opts, ds)
}

// NewMemStateStore creates a new StateStore held in memory.
func NewMemStateStore(ctx context.Context, opts Opts) (StateStore, error) {
	return newStateStore(ctx, opts, dssync.MutexWrap(datastore.NewMapDatastore()))
}

func newStateStore(ctx context.Context, opts Opts, ds datastore.Batching) (StateStore, error) {
	size := opts.CodeCacheSize
	if size <= 0 {
		size = defaultCodeCacheSize
	}
	codeCache, err := lru.New[common.Hash, []byte](size)
	if err != nil {
		ds.Close()
		return nil, err
	}
	routineCtx, cancel := context.WithCancel(context.Background())
	res := &stateStoreImpl{
		ctx:        ctx,
		opts:       opts,
		ds:         ds,
		codeCache:  codeCache,
		routineCtx: routineCtx,
		cancel:     cancel,
		exitLoop:   make(chan bool),
	}
	go res.gcRoutine()
	return res, nil
}

// readCtx creates a context for a single read.
func (s *stateStoreImpl) readCtx() (context.Context, context.CancelFunc) {
	if s.opts.ReadTimeout <= 0 {
		return context.WithCancel(s.ctx)
	}
	return context.WithTimeout(s.ctx, s.opts.ReadTimeout)
}

// GetPersistedHeight gets the height and hash of the last committed block.
func (s *stateStoreImpl) GetPersistedHeight() (uint64, common.Hash, error) {
	ctx, cancel := s.readCtx()
	defer cancel()

	val, err := s.ds.Get(ctx, persistedHeightKey())
	if err != nil {
		return 0, common.Hash{}, err
	}

	return decodePersistedHeight(val)
}

// GetRecentHashes gets the hashes of the last committed blocks, most recent first.
func (s *stateStoreImpl) GetRecentHashes(count int) ([]common.Hash, error) {
	height, hash, err := s.GetPersistedHeight()
	if err != nil {
		return nil, err
	}
	if count > MaxRecentHashes {
		count = MaxRecentHashes
	}
	res := make([]common.Hash, 0, count)
	if count <= 0 {
		return res, nil
	}
	res = append(res, hash)

	ctx, cancel := s.readCtx()
	defer cancel()
	for i := uint64(1); i < uint64(count) && i <= height; i++ {
		val, err := s.ds.Get(ctx, getBlockHashKey(height-i))
		if err != nil {
			if errors.Is(err, datastore.ErrNotFound) {
				// History starts at the first committed block.
				break
			}
			return nil, err
		}
		prev, err := decodeStorage(val)
		if err != nil {
			return nil, err
		}
		res = append(res, prev)
	}
	return res, nil
}

// GetAccountValue gets the persisted account value for given address.
func (s *stateStoreImpl) GetAccountValue(addr common.Address) (itypes.AccountValue, bool, error) {
	ctx, cancel := s.readCtx()
	defer cancel()

	val, err := s.ds.Get(ctx, getAccountValueKey(addr))
	if err == nil {
		log.Debugf("Get account value non-empty for %v", addr)
		acct, err := decodeAccountValue(val)
		if err != nil {
			return itypes.AccountValue{}, false, err
		}
		return acct, true, nil
	}
	if !errors.Is(err, datastore.ErrNotFound) {
		return itypes.AccountValue{}, false, err
	}
	log.Debugf("Get account value empty for %v", addr)
	res := itypes.AccountValue{
		Nonce:    0,
		Balance:  uint256.NewInt(0),
		CodeHash: types.EmptyCodeHash,
		Version:  0,
	}
	versionBytes, err := s.ds.Get(ctx, getAccountVersionKey(addr))
	if err == nil {
		res.Version, err = decodeAccountVersion(versionBytes)
		if err != nil {
			return itypes.AccountValue{}, false, err
		}
	} else if !errors.Is(err, datastore.ErrNotFound) {
		return itypes.AccountValue{}, false, err
	}
	return res, false, nil
}

// GetStorage gets the persisted storage value for given key.
func (s *stateStoreImpl) GetStorage(addr common.Address, version uint64, key common.Hash) (common.Hash, error) {
	ctx, cancel := s.readCtx()
	defer cancel()

	val, err := s.ds.Get(ctx, getStorageKey(addr, version, key))
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return common.Hash{}, nil
		}
		return common.Hash{}, err
	}

	return decodeStorage(val)
}

// GetCodeByHash gets the persisted code for given hash.
func (s *stateStoreImpl) GetCodeByHash(codeHash common.Hash) ([]byte, error) {
	if codeHash == types.EmptyCodeHash {
		return []byte{}, nil
	}
	if code, ok := s.codeCache.Get(codeHash); ok {
		return code, nil
	}

	ctx, cancel := s.readCtx()
	defer cancel()

	codeBytes, err := s.ds.Get(ctx, getCodeKey(codeHash))
	if err != nil {
		return nil, err
	}

	code, err := decodeCode(codeBytes)
	if err != nil {
		return nil, err
	}
	s.codeCache.Add(codeHash, code)

	return code, nil
}

// Shutdown safely shuts the statestore down.
func (s *stateStoreImpl) Shutdown() {
	log.Infof("Close statestore...")
	s.cancel()
	<-s.exitLoop
	err := s.ds.Close()
	if err != nil {
		log.Errorf("Fail to close statestore: %v", err.Error())
		return
	}
	log.Infof("Statestore closed successfully.")
}
