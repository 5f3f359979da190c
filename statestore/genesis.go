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
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/ipfs/go-datastore"
	itypes "github.com/wcgcyx/texec/types"
)

// IsInitialized checks if the store has any committed state.
func IsInitialized(s StateStore) (bool, error) {
	_, _, err := s.GetPersistedHeight()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, datastore.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// PersistGenesisAlloc writes the genesis allocation as the state of block 0.
func PersistGenesisAlloc(s StateStore, alloc types.GenesisAlloc, genesisHash common.Hash) error {
	initialized, err := IsInitialized(s)
	if err != nil {
		return err
	}
	if initialized {
		return errors.New("state store already initialized")
	}
	txn, err := s.NewTransaction()
	if err != nil {
		return err
	}
	defer txn.Discard()
	for addr, account := range alloc {
		acct := itypes.AccountValue{
			Nonce:    account.Nonce,
			Balance:  uint256.NewInt(0),
			CodeHash: types.EmptyCodeHash,
		}
		if account.Balance != nil {
			bal, overflow := uint256.FromBig(account.Balance)
			if overflow {
				return errors.New("genesis balance overflows 256 bits")
			}
			acct.Balance = bal
		}
		if len(account.Code) > 0 {
			acct.CodeHash = crypto.Keccak256Hash(account.Code)
			err = txn.PutCode(acct.CodeHash, account.Code)
			if err != nil {
				return err
			}
		}
		for k, v := range account.Storage {
			err = txn.PutStorage(addr, acct.Version, k, v)
			if err != nil {
				return err
			}
		}
		err = txn.PutAccount(addr, acct)
		if err != nil {
			return err
		}
	}
	err = txn.PutPersistedHeight(0, genesisHash)
	if err != nil {
		return err
	}
	return txn.Commit()
}
