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
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/wcgcyx/texec/version"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Value: "",
		Usage: "specify config file",
	}
	pathFlag = &cli.PathFlag{
		Name:  "path",
		Value: "",
		Usage: "specify datastore path",
	}
)

// NewCLI creates a CLI app.
func NewCLI() *cli.App {
	app := &cli.App{
		Name:      "texec",
		HelpName:  "texec",
		Usage:     "A transaction execution engine",
		UsageText: "texec [global options] command [arguments...]",
		Version:   version.Version,
		Description: "\n\t This is a transaction execution engine.\n\n" +
			"\t It applies signed transactions and blocks to a locally\n" +
			"\t stored world state and reports gas, logs and traces\n",
		Authors: []*cli.Author{
			{
				Name:  "wcgcyx",
				Email: "wcgcyx@gmail.com",
			},
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:        "init",
			Usage:       "initialize the state from a genesis file",
			Description: "Write the genesis allocation into the datastore as the state of block 0",
			ArgsUsage:   " ",
			Flags: []cli.Flag{
				configFlag,
				pathFlag,
				&cli.PathFlag{
					Name:     "genesis",
					Usage:    "specify the genesis json file",
					Required: true,
				},
			},
			Action: func(c *cli.Context) error {
				return runInit(c)
			},
		},
		{
			Name:        "transact",
			Usage:       "execute a transaction against the stored state",
			Description: "Execute a signed transaction on top of the last committed block without committing",
			ArgsUsage:   " ",
			Flags: []cli.Flag{
				configFlag,
				pathFlag,
				&cli.StringFlag{
					Name:     "tx",
					Usage:    "specify the hex encoded signed transaction",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "author",
					Value: "0x0000000000000000000000000000000000000000",
					Usage: "specify the block author",
				},
				&cli.Uint64Flag{
					Name:  "gas-limit",
					Value: 8000000,
					Usage: "specify the block gas limit",
				},
				&cli.Uint64Flag{
					Name:  "timestamp",
					Value: 0,
					Usage: "specify the block timestamp",
				},
				&cli.BoolFlag{
					Name:  "trace",
					Usage: "record the trace of the transaction",
				},
				&cli.BoolFlag{
					Name:  "check-nonce",
					Value: true,
					Usage: "reject the transaction if the nonce is unexpected",
				},
			},
			Action: func(c *cli.Context) error {
				return runTransact(c)
			},
		},
		{
			Name:        "apply",
			Usage:       "apply a block to the stored state",
			Description: "Apply a hex encoded RLP block on top of the last committed block and commit",
			ArgsUsage:   " ",
			Flags: []cli.Flag{
				configFlag,
				pathFlag,
				&cli.PathFlag{
					Name:     "block",
					Usage:    "specify the file holding the hex encoded RLP block",
					Required: true,
				},
				&cli.BoolFlag{
					Name:  "trace",
					Usage: "record the traces of the transactions",
				},
			},
			Action: func(c *cli.Context) error {
				return runApply(c)
			},
		},
		{
			Name:        "account",
			Usage:       "show an account",
			Description: "Show the balance, nonce, code and storage of an account",
			ArgsUsage:   " ",
			Flags: []cli.Flag{
				configFlag,
				pathFlag,
				&cli.StringFlag{
					Name:     "address",
					Usage:    "specify the account address",
					Required: true,
				},
				&cli.StringSliceFlag{
					Name:  "slot",
					Usage: "specify the storage slots to show",
				},
			},
			Action: func(c *cli.Context) error {
				return runAccount(c)
			},
		},
		{
			Name:        "version",
			Usage:       "get version",
			Description: "Get the version",
			ArgsUsage:   " ",
			Action: func(c *cli.Context) error {
				fmt.Println("Version: ", version.Version)
				return nil
			},
		},
	}
	return app
}
