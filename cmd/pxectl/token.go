package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Aidin1998/pxegate/internal/addressbook"
	"github.com/Aidin1998/pxegate/internal/contract"
	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/Aidin1998/pxegate/internal/token"
	"github.com/Aidin1998/pxegate/pkg/logger"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
)

var (
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "token amount in base units, the command's default if empty",
	}
	publicFlag = cli.BoolFlag{
		Name:  "public",
		Usage: "show public instead of private balances",
	}
)

var AccountsCmd = cli.Command{
	Action: withOperations(func(ctx context.Context, ops *token.Operations, _ *cli.Context) error {
		_, err := ops.ShowAccounts(ctx)
		return err
	}),
	Name:  "accounts",
	Usage: "list the accounts registered on the node",
}

var BalancesCmd = cli.Command{
	Action: withOperations(func(ctx context.Context, ops *token.Operations, c *cli.Context) error {
		var err error
		if c.Bool(publicFlag.Name) {
			_, err = ops.ShowPublicBalances(ctx)
		} else {
			_, err = ops.ShowPrivateBalances(ctx)
		}
		return err
	}),
	Name:  "balances",
	Usage: "show the token balance of every registered account",
	Flags: []cli.Flag{&publicFlag},
}

var MintPrivateCmd = cli.Command{
	Action: withAmount(func(ops *token.Operations) func(context.Context, *uint256.Int) error {
		return ops.MintPrivateFunds
	}),
	Name:  "mint-private",
	Usage: "mint shielded tokens to the first account and redeem them",
	Flags: []cli.Flag{&amountFlag},
}

var TransferPrivateCmd = cli.Command{
	Action: withAmount(func(ops *token.Operations) func(context.Context, *uint256.Int) error {
		return ops.TransferPrivateFunds
	}),
	Name:  "transfer-private",
	Usage: "transfer private tokens from the first account to the second",
	Flags: []cli.Flag{&amountFlag},
}

var MintPublicCmd = cli.Command{
	Action: withAmount(func(ops *token.Operations) func(context.Context, *uint256.Int) error {
		return ops.MintPublicFunds
	}),
	Name:  "mint-public",
	Usage: "mint public tokens to the first account and print the emitted logs",
	Flags: []cli.Flag{&amountFlag},
}

type operationFunc func(ctx context.Context, ops *token.Operations, c *cli.Context) error

// withOperations connects to the node, binds the token contract and runs fn
// until it returns or the process is interrupted.
func withOperations(fn operationFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		log := logger.NewConsoleLogger(c.String(logLevelFlag.Name))
		defer log.Sync()

		ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		book, err := addressbook.Load(c.String(addressBookFlag.Name))
		if err != nil {
			return err
		}
		address, err := book.Lookup(addressbook.TokenContract)
		if err != nil {
			return err
		}
		artifact, err := contract.LoadArtifact(c.String(artifactFlag.Name))
		if err != nil {
			return err
		}

		client, err := pxe.Dial(ctx, c.String(pxeURLFlag.Name))
		if err != nil {
			return err
		}
		defer client.Close()

		info, err := client.NodeInfo(ctx)
		if err != nil {
			return err
		}
		log.Info(fmt.Sprintf("Connected to chain %d", info.ChainID))

		opts := token.DefaultOptions()
		opts.StorageSlot = pxe.NewFr(c.Uint64(storageSlotFlag.Name))
		opts.PollInterval = c.Duration(pollIntervalFlag.Name)

		return fn(ctx, token.NewOperations(log, client, artifact, address, opts), c)
	}
}

func withAmount(pick func(*token.Operations) func(context.Context, *uint256.Int) error) cli.ActionFunc {
	return withOperations(func(ctx context.Context, ops *token.Operations, c *cli.Context) error {
		amount, err := parseAmount(c.String(amountFlag.Name))
		if err != nil {
			return err
		}
		return pick(ops)(ctx, amount)
	})
}

// parseAmount returns nil for an empty string so the flow picks its default.
func parseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, nil
	}
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", amountFlag.Name, s, err)
	}
	return amount, nil
}
