// Package token runs the demo token flows against a PXE node: balance
// queries, shielded and public minting, and private transfers. These are
// operator commands; the HTTP gateway never calls them.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aidin1998/pxegate/internal/contract"
	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

// ErrNotEnoughAccounts is returned when a flow needs more sandbox accounts
// than the node has registered.
var ErrNotEnoughAccounts = errors.New("token: not enough sandbox accounts")

const (
	DefaultPrivateMintAmount = 20
	DefaultTransferAmount    = 1
	DefaultPublicMintAmount  = 100
	DefaultNoteStorageSlot   = 5
)

// Options holds the values that depend on the deployed contract version.
type Options struct {
	// StorageSlot is where the token keeps pending shield notes.
	StorageSlot pxe.Fr
	Hasher      SecretHasher
	// NewSecret generates the redeem secret for shielded mints.
	NewSecret    func() (pxe.Fr, error)
	PollInterval time.Duration
}

// DefaultOptions matches the sandbox token contract.
func DefaultOptions() Options {
	return Options{
		StorageSlot:  pxe.NewFr(DefaultNoteStorageSlot),
		Hasher:       MiMCHasher{},
		NewSecret:    pxe.RandomFr,
		PollInterval: pxe.DefaultPollInterval,
	}
}

// Balance is one account's token balance.
type Balance struct {
	Account pxe.Address
	Amount  *uint256.Int
}

// Operations runs token flows for the contract deployed at address.
type Operations struct {
	logger   *zap.Logger
	client   pxe.Client
	artifact *contract.Artifact
	address  pxe.Address
	opts     Options
}

func NewOperations(logger *zap.Logger, client pxe.Client, artifact *contract.Artifact, address pxe.Address, opts Options) *Operations {
	defaults := DefaultOptions()
	if opts.Hasher == nil {
		opts.Hasher = defaults.Hasher
	}
	if opts.NewSecret == nil {
		opts.NewSecret = defaults.NewSecret
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaults.PollInterval
	}
	return &Operations{
		logger:   logger.Named("token"),
		client:   client,
		artifact: artifact,
		address:  address,
		opts:     opts,
	}
}

// ShowAccounts logs every registered account address.
func (o *Operations) ShowAccounts(ctx context.Context) ([]pxe.CompleteAddress, error) {
	accounts, err := o.client.RegisteredAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("show accounts: %w", err)
	}
	addresses := make([]string, len(accounts))
	for i, account := range accounts {
		addresses[i] = account.Address.String()
	}
	o.logger.Info("User accounts", zap.Strings("addresses", addresses))
	return accounts, nil
}

// ShowPrivateBalances queries balance_of_private for every registered
// account. Only accounts whose keys the node holds return a real balance.
func (o *Operations) ShowPrivateBalances(ctx context.Context) ([]Balance, error) {
	return o.showBalances(ctx, "balance_of_private")
}

// ShowPublicBalances queries balance_of_public for every registered account.
func (o *Operations) ShowPublicBalances(ctx context.Context) ([]Balance, error) {
	return o.showBalances(ctx, "balance_of_public")
}

func (o *Operations) showBalances(ctx context.Context, method string) ([]Balance, error) {
	accounts, err := o.client.RegisteredAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	token := contract.At(o.address, o.artifact, o.client)

	balances := make([]Balance, 0, len(accounts))
	for _, account := range accounts {
		call, err := token.Method(method, account.Address)
		if err != nil {
			return nil, err
		}
		amount, err := call.ViewUint(ctx)
		if err != nil {
			return nil, err
		}
		o.logger.Info(fmt.Sprintf("Balance of %s: %s", account.Address, amount.Dec()))
		balances = append(balances, Balance{Account: account.Address, Amount: amount})
	}
	return balances, nil
}

// MintPrivateFunds mints amount into the owner's private balance. The
// tokens are first minted against a secret hash, the resulting note is
// handed to the node, and the owner then redeems it with the secret.
// A nil amount mints DefaultPrivateMintAmount.
func (o *Operations) MintPrivateFunds(ctx context.Context, amount *uint256.Int) error {
	if amount == nil {
		amount = uint256.NewInt(DefaultPrivateMintAmount)
	}
	wallets, err := o.wallets(ctx, 1)
	if err != nil {
		return err
	}
	owner := wallets[0]
	token := contract.At(o.address, o.artifact, owner)

	if _, err := o.ShowPrivateBalances(ctx); err != nil {
		return err
	}

	secret, err := o.opts.NewSecret()
	if err != nil {
		return err
	}
	secretHash, err := o.opts.Hasher.Hash(secret)
	if err != nil {
		return fmt.Errorf("secret hash: %w", err)
	}

	receipt, err := o.sendAndWait(ctx, token, "mint_private", amount, secretHash)
	if err != nil {
		return err
	}

	note := &pxe.ExtendedNote{
		Note:            pxe.Note{pxe.FrFromBig(amount.ToBig()), secretHash},
		Owner:           owner.Address(),
		ContractAddress: o.address,
		StorageSlot:     o.opts.StorageSlot,
		TxHash:          receipt.TxHash,
	}
	if err := o.client.AddNote(ctx, note); err != nil {
		return fmt.Errorf("add note: %w", err)
	}

	if _, err := o.sendAndWait(ctx, token, "redeem_shield", owner.Address(), amount, secret); err != nil {
		return err
	}

	_, err = o.ShowPrivateBalances(ctx)
	return err
}

// TransferPrivateFunds moves amount from the first sandbox account to the
// second. A nil amount transfers DefaultTransferAmount.
func (o *Operations) TransferPrivateFunds(ctx context.Context, amount *uint256.Int) error {
	if amount == nil {
		amount = uint256.NewInt(DefaultTransferAmount)
	}
	wallets, err := o.wallets(ctx, 2)
	if err != nil {
		return err
	}
	owner, recipient := wallets[0], wallets[1]
	token := contract.At(o.address, o.artifact, owner)

	call, err := token.Method("transfer", owner.Address(), recipient.Address(), amount, uint64(0))
	if err != nil {
		return err
	}
	tx, err := call.Send(ctx)
	if err != nil {
		return err
	}
	o.logger.Info(fmt.Sprintf("Sent transfer transaction %s", tx.TxHash().Hex()))

	return o.awaitWithBalances(ctx, tx, o.ShowPrivateBalances)
}

// MintPublicFunds mints amount into the owner's public balance and prints
// the unencrypted logs of the latest block. A nil amount mints
// DefaultPublicMintAmount.
func (o *Operations) MintPublicFunds(ctx context.Context, amount *uint256.Int) error {
	if amount == nil {
		amount = uint256.NewInt(DefaultPublicMintAmount)
	}
	wallets, err := o.wallets(ctx, 1)
	if err != nil {
		return err
	}
	owner := wallets[0]
	token := contract.At(o.address, o.artifact, owner)

	call, err := token.Method("mint_public", owner.Address(), amount)
	if err != nil {
		return err
	}
	tx, err := call.Send(ctx)
	if err != nil {
		return err
	}
	o.logger.Info(fmt.Sprintf("Sent mint transaction %s", tx.TxHash().Hex()))

	if err := o.awaitWithBalances(ctx, tx, o.ShowPublicBalances); err != nil {
		return err
	}
	return o.showLatestLogs(ctx)
}

func (o *Operations) awaitWithBalances(ctx context.Context, tx *pxe.SentTx, show func(context.Context) ([]Balance, error)) error {
	if _, err := show(ctx); err != nil {
		return err
	}

	o.logger.Info("Awaiting transaction to be mined")
	receipt, err := tx.Wait(ctx)
	if err != nil {
		return err
	}
	o.logger.Info(fmt.Sprintf("Transaction has been mined on block %d", receipt.BlockNumber))

	_, err = show(ctx)
	return err
}

func (o *Operations) showLatestLogs(ctx context.Context) error {
	block, err := o.client.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("block number: %w", err)
	}
	logs, err := o.client.UnencryptedLogs(ctx, block, 1)
	if err != nil {
		return fmt.Errorf("unencrypted logs: %w", err)
	}
	for _, l := range logs {
		o.logger.Info(fmt.Sprintf("Log emitted: %s", ascii(l.Data)))
	}
	return nil
}

func (o *Operations) sendAndWait(ctx context.Context, token *contract.Contract, method string, args ...interface{}) (*pxe.TxReceipt, error) {
	call, err := token.Method(method, args...)
	if err != nil {
		return nil, err
	}
	tx, err := call.Send(ctx)
	if err != nil {
		return nil, err
	}
	return tx.Wait(ctx)
}

func (o *Operations) wallets(ctx context.Context, need int) ([]pxe.Wallet, error) {
	wallets, err := pxe.SandboxWallets(ctx, o.client, o.opts.PollInterval)
	if err != nil {
		return nil, err
	}
	if len(wallets) < need {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughAccounts, need, len(wallets))
	}
	return wallets, nil
}

// ascii keeps the low seven bits of every byte.
func ascii(data []byte) string {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b & 0x7f
	}
	return string(out)
}
