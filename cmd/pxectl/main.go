package main

import (
	"fmt"
	"os"

	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./cmd/pxectl <command> <flags>

var (
	pxeURLFlag = cli.StringFlag{
		Name:    "pxe-url",
		Usage:   "PXE node endpoint",
		EnvVars: []string{"PXE_URL"},
		Value:   "http://localhost:8080",
	}
	addressBookFlag = cli.StringFlag{
		Name:    "address-book",
		Usage:   "JSON file mapping contract names to deployed addresses",
		EnvVars: []string{"ADDRESS_BOOK_PATH"},
		Value:   "addresses.json",
	}
	artifactFlag = cli.StringFlag{
		Name:    "artifact",
		Usage:   "compiled token contract artifact",
		EnvVars: []string{"TOKEN_ARTIFACT_PATH"},
		Value:   "contracts/token/target/Token.json",
	}
	storageSlotFlag = cli.Uint64Flag{
		Name:    "note-storage-slot",
		Usage:   "storage slot of pending shield notes in the token contract",
		EnvVars: []string{"NOTE_STORAGE_SLOT"},
		Value:   5,
	}
	pollIntervalFlag = cli.DurationFlag{
		Name:    "poll-interval",
		Usage:   "how often to ask the node for a transaction receipt",
		EnvVars: []string{"PXE_POLL_INTERVAL"},
		Value:   pxe.DefaultPollInterval,
	}
	logLevelFlag = cli.StringFlag{
		Name:    "log-level",
		Usage:   "debug, info, warn or error",
		EnvVars: []string{"LOG_LEVEL"},
		Value:   "info",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "pxectl",
		Usage: "operator commands for the PXE token demo",
		Flags: []cli.Flag{
			&pxeURLFlag,
			&addressBookFlag,
			&artifactFlag,
			&storageSlotFlag,
			&pollIntervalFlag,
			&logLevelFlag,
		},
		Commands: []*cli.Command{
			&AccountsCmd,
			&BalancesCmd,
			&MintPrivateCmd,
			&TransferPrivateCmd,
			&MintPublicCmd,
			&GatewayCmd,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
