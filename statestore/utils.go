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
	"encoding/base64"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipfs/go-datastore"
	"github.com/mus-format/mus-go/varint"
	itypes "github.com/wcgcyx/texec/types"
)

const (
	persistedKey      = "p"
	accountValueKey   = "a"
	accountVersionKey = "v"
	storageKey        = "s"
	codeKey           = "c"
	gcKey             = "g"
	blockHashKey      = "b"
	separator         = "/"
)

// persistedHeightKey gets the datastore key for persisted height.
func persistedHeightKey() datastore.Key {
	return datastore.NewKey(persistedKey)
}

// getBlockHashKey gets the datastore key for the hash of the block at given height.
func getBlockHashKey(height uint64) datastore.Key {
	return datastore.NewKey(blockHashKey + separator + strconv.FormatUint(height, 10))
}

// getAccountValueKey gets the datastore key for account value with given address.
func getAccountValueKey(addr common.Address) datastore.Key {
	addrStr := base64.URLEncoding.EncodeToString(addr.Bytes())
	return datastore.NewKey(accountValueKey + separator + addrStr)
}

// getAccountVersionKey gets the datastore key for the version of a deleted account.
func getAccountVersionKey(addr common.Address) datastore.Key {
	addrStr := base64.URLEncoding.EncodeToString(addr.Bytes())
	return datastore.NewKey(accountVersionKey + separator + addrStr)
}

// getStoragePrefix gets the datastore prefix of all storage at given version.
func getStoragePrefix(addr common.Address, version uint64) string {
	addrStr := base64.URLEncoding.EncodeToString(addr.Bytes())
	return datastore.NewKey(storageKey+separator+addrStr+separator+strconv.FormatUint(version, 10)).String() + separator
}

// getStorageKey gets the datastore key for given storage location.
func getStorageKey(addr common.Address, version uint64, key common.Hash) datastore.Key {
	keyStr := base64.URLEncoding.EncodeToString(key.Bytes())
	return datastore.NewKey(getStoragePrefix(addr, version) + keyStr)
}

// getCodeKey gets the datastore key for given code hash.
func getCodeKey(codeHash common.Hash) datastore.Key {
	codeStr := base64.URLEncoding.EncodeToString(codeHash.Bytes())
	return datastore.NewKey(codeKey + separator + codeStr)
}

// getGCKey gets the gc key for given address-version pair.
func getGCKey(addr common.Address, version uint64) datastore.Key {
	addrStr := base64.URLEncoding.EncodeToString(addr.Bytes())
	return datastore.NewKey(gcKey + separator + addrStr + separator + strconv.FormatUint(version, 10))
}

// splitGCKey splits the gc key to get address-version pair.
func splitGCKey(key string) (common.Address, uint64, bool) {
	temp := datastore.NewKey(key).List()
	if len(temp) != 3 || temp[0] != gcKey {
		return common.Address{}, 0, false
	}
	data, err := base64.URLEncoding.DecodeString(temp[1])
	if err != nil {
		return common.Address{}, 0, false
	}
	version, err := strconv.ParseUint(temp[2], 10, 64)
	if err != nil {
		return common.Address{}, 0, false
	}
	return common.BytesToAddress(data), version, true
}

// encodePersistedHeight encodes the persisted height followed by the block hash.
func encodePersistedHeight(height uint64, blockHash common.Hash) []byte {
	bs := make([]byte, varint.SizeUint64(height)+itypes.SizeHash(blockHash))
	n := varint.MarshalUint64(height, bs)
	itypes.MarshalHash(blockHash, bs[n:])
	return bs
}

// decodePersistedHeight decodes the persisted height and block hash.
func decodePersistedHeight(bs []byte) (uint64, common.Hash, error) {
	height, n, err := varint.UnmarshalUint64(bs)
	if err != nil {
		return 0, common.Hash{}, err
	}
	blockHash, _, err := itypes.UnmarshalHash(bs[n:])
	if err != nil {
		return 0, common.Hash{}, err
	}
	return height, blockHash, nil
}

// encodeAccountValue encodes the account value.
func encodeAccountValue(acct itypes.AccountValue) []byte {
	bs := make([]byte, itypes.SizeAccountValue(acct))
	itypes.MarshalAccountValue(acct, bs)
	return bs
}

// decodeAccountValue decodes the account value.
func decodeAccountValue(val []byte) (itypes.AccountValue, error) {
	res, _, err := itypes.UnmarshalAccountValue(val)
	return res, err
}

// encodeAccountVersion encodes the account version.
func encodeAccountVersion(version uint64) []byte {
	bs := make([]byte, varint.SizeUint64(version))
	varint.MarshalUint64(version, bs)
	return bs
}

// decodeAccountVersion decodes the account version.
func decodeAccountVersion(val []byte) (uint64, error) {
	res, _, err := varint.UnmarshalUint64(val)
	return res, err
}

// encodeStorage encodes the storage value.
func encodeStorage(val common.Hash) []byte {
	bs := make([]byte, itypes.SizeHash(val))
	itypes.MarshalHash(val, bs)
	return bs
}

// decodeStorage decodes the storage value.
func decodeStorage(val []byte) (common.Hash, error) {
	res, _, err := itypes.UnmarshalHash(val)
	return res, err
}

// encodeCode encodes the code.
func encodeCode(code []byte) []byte {
	bs := make([]byte, itypes.SizeBytes(code))
	itypes.MarshalBytes(code, bs)
	return bs
}

// decodeCode decodes the code.
func decodeCode(val []byte) ([]byte, error) {
	res, _, err := itypes.UnmarshalBytes(val)
	return res, err
}
