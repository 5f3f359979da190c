package cli

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
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	logging "github.com/ipfs/go-log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"github.com/wcgcyx/texec/config"
	"github.com/wcgcyx/texec/engine"
	"github.com/wcgcyx/texec/executive"
	"github.com/wcgcyx/texec/processor"
	"github.com/wcgcyx/texec/statestore"
	"github.com/wcgcyx/texec/vm"
	"github.com/wcgcyx/texec/worldstate"
)

// Logger
var log = logging.Logger("cli")

const stateDataDir = "statedata"

// loadConfig loads the config and applies the command line overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	conf, err := config.NewConfig(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	if c.IsSet("path") {
		log.Infof("Override path to be %v", c.String("path"))
		conf.Path = c.String("path")
	}
	if c.IsSet("trace") {
		log.Infof("Override tracing to be %v", c.Bool("trace"))
		conf.Tracing = c.Bool("trace")
	}
	if c.IsSet("check-nonce") {
		log.Infof("Override check-nonce to be %v", c.Bool("check-nonce"))
		conf.CheckNonce = c.Bool("check-nonce")
	}
	return conf, nil
}

func openStateStore(ctx context.Context, conf config.Config) (statestore.StateStore, error) {
	return statestore.NewStateStoreImpl(ctx, statestore.Opts{
		Path:          filepath.Join(conf.Path, stateDataDir),
		GCPeriod:      conf.StateStoreGCPeriod,
		ReadTimeout:   conf.DSTimeout,
		WriteTimeout:  conf.DSTimeout,
		CodeCacheSize: conf.CodeCacheSize,
	})
}

func newEngine(conf config.Config) (engine.Engine, *vm.Factory, error) {
	chainConfig := engine.NewChainConfig(conf.ChainID, conf.HomesteadBlockNumber())
	factory, err := vm.NewFactory(vm.VMType(conf.VMType), conf.JumpdestCacheSize)
	if err != nil {
		return nil, nil, err
	}
	eng := engine.NewEngine("ethash", chainConfig, engine.Opts{MaxDepth: conf.MaxCallDepthOverride()})
	return eng, factory, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runInit(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.Path("genesis"))
	if err != nil {
		return err
	}
	genesis := new(core.Genesis)
	if err = json.Unmarshal(data, genesis); err != nil {
		return fmt.Errorf("fail to decode genesis: %w", err)
	}
	if genesis.Config == nil {
		genesis.Config = engine.NewChainConfig(conf.ChainID, conf.HomesteadBlockNumber())
	}
	genesisHash := genesis.ToBlock().Hash()

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	sstore, err := openStateStore(ctx, conf)
	if err != nil {
		return err
	}
	defer sstore.Shutdown()
	if err = statestore.PersistGenesisAlloc(sstore, genesis.Alloc, genesisHash); err != nil {
		return err
	}
	fmt.Printf("Initialized state with %v accounts at genesis %v\n", len(genesis.Alloc), genesisHash.Hex())
	return nil
}

func runTransact(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	txData, err := hexutil.Decode(c.String("tx"))
	if err != nil {
		return fmt.Errorf("fail to decode tx: %w", err)
	}
	tx := new(types.Transaction)
	if err = tx.UnmarshalBinary(txData); err != nil {
		return fmt.Errorf("fail to decode tx: %w", err)
	}
	if !common.IsHexAddress(c.String("author")) {
		return fmt.Errorf("invalid author %v", c.String("author"))
	}
	eng, factory, err := newEngine(conf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	sstore, err := openStateStore(ctx, conf)
	if err != nil {
		return err
	}
	defer sstore.Shutdown()
	height, hash, err := sstore.GetPersistedHeight()
	if err != nil {
		return fmt.Errorf("fail to get persisted height, state not initialized?: %w", err)
	}
	lastHashes, err := sstore.GetRecentHashes(statestore.MaxRecentHashes)
	if err != nil {
		return fmt.Errorf("fail to get recent block hashes: %w", err)
	}
	header := &types.Header{
		ParentHash: hash,
		Number:     new(big.Int).SetUint64(height + 1),
		Coinbase:   common.HexToAddress(c.String("author")),
		GasLimit:   c.Uint64("gas-limit"),
		Time:       c.Uint64("timestamp"),
		Difficulty: new(big.Int),
	}
	info := processor.NewEnvInfo(header, lastHashes)
	ex := executive.NewExecutive(worldstate.NewWorldState(sstore), info, eng, factory)
	executed, err := ex.Transact(tx, executive.TransactOptions{Tracing: conf.Tracing, CheckNonce: conf.CheckNonce})
	if err != nil {
		return err
	}
	return printJSON(executed)
}

func runApply(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.Path("block"))
	if err != nil {
		return err
	}
	blockData, err := hexutil.Decode(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("fail to decode block: %w", err)
	}
	block := new(types.Block)
	if err = rlp.DecodeBytes(blockData, block); err != nil {
		return fmt.Errorf("fail to decode block: %w", err)
	}
	eng, factory, err := newEngine(conf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	sstore, err := openStateStore(ctx, conf)
	if err != nil {
		return err
	}
	defer sstore.Shutdown()
	height, hash, err := sstore.GetPersistedHeight()
	if err != nil {
		return fmt.Errorf("fail to get persisted height, state not initialized?: %w", err)
	}
	lastHashes, err := sstore.GetRecentHashes(statestore.MaxRecentHashes)
	if err != nil {
		return fmt.Errorf("fail to get recent block hashes: %w", err)
	}
	if block.NumberU64() != height+1 {
		return fmt.Errorf("block %v does not extend persisted height %v", block.NumberU64(), height)
	}
	if block.ParentHash() != hash {
		log.Warnf("Block parent %v differs from persisted block %v", block.ParentHash(), hash)
	}
	p, err := processor.NewBlockProcessor(
		engine.NewChainConfig(conf.ChainID, conf.HomesteadBlockNumber()),
		eng,
		factory,
		executive.TransactOptions{Tracing: conf.Tracing, CheckNonce: conf.CheckNonce},
		prometheus.DefaultRegisterer,
	)
	if err != nil {
		return err
	}
	res, err := p.Process(ctx, block, lastHashes, worldstate.NewWorldState(sstore))
	if err != nil {
		return err
	}
	if conf.Tracing {
		return printJSON(res.Executed)
	}
	return printJSON(res.Receipts)
}

type accountOutput struct {
	Address  common.Address              `json:"address"`
	Exists   bool                        `json:"exists"`
	Balance  *hexutil.Big                `json:"balance"`
	Nonce    hexutil.Uint64              `json:"nonce"`
	CodeHash common.Hash                 `json:"codeHash"`
	Code     hexutil.Bytes               `json:"code"`
	Storage  map[common.Hash]common.Hash `json:"storage,omitempty"`
}

func runAccount(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	if !common.IsHexAddress(c.String("address")) {
		return fmt.Errorf("invalid address %v", c.String("address"))
	}
	addr := common.HexToAddress(c.String("address"))

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	sstore, err := openStateStore(ctx, conf)
	if err != nil {
		return err
	}
	defer sstore.Shutdown()
	state := worldstate.NewWorldState(sstore)
	out := accountOutput{
		Address:  addr,
		Exists:   state.Exists(addr),
		Balance:  (*hexutil.Big)(state.Balance(addr).ToBig()),
		Nonce:    hexutil.Uint64(state.Nonce(addr)),
		CodeHash: state.CodeHash(addr),
		Code:     state.Code(addr),
	}
	slots := c.StringSlice("slot")
	if len(slots) > 0 {
		out.Storage = make(map[common.Hash]common.Hash)
		for _, slot := range slots {
			key := common.HexToHash(slot)
			out.Storage[key] = state.StorageAt(addr, key)
		}
	}
	if err = state.Error(); err != nil {
		return err
	}
	return printJSON(out)
}
