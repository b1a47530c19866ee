package pxe

import (
	"context"
	"fmt"
	"time"
)

// DefaultPollInterval is how often SentTx.Wait asks the node for a receipt.
const DefaultPollInterval = time.Second

// Wallet is a Client acting on behalf of one registered account.
type Wallet interface {
	Client
	Address() Address
	CompleteAddress() CompleteAddress
	// Send simulates call from the wallet's account and submits the result.
	Send(ctx context.Context, call FunctionCall) (*SentTx, error)
}

type accountWallet struct {
	Client
	account      CompleteAddress
	pollInterval time.Duration
}

// NewWallet binds client to account. Entrypoint authorization for sandbox
// accounts is performed by the node.
func NewWallet(client Client, account CompleteAddress, pollInterval time.Duration) Wallet {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &accountWallet{Client: client, account: account, pollInterval: pollInterval}
}

// SandboxWallets returns a wallet for every account registered on the node,
// in registration order.
func SandboxWallets(ctx context.Context, client Client, pollInterval time.Duration) ([]Wallet, error) {
	accounts, err := client.RegisteredAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("sandbox wallets: %w", err)
	}
	wallets := make([]Wallet, 0, len(accounts))
	for _, account := range accounts {
		wallets = append(wallets, NewWallet(client, account, pollInterval))
	}
	return wallets, nil
}

func (w *accountWallet) Address() Address {
	return w.account.Address
}

func (w *accountWallet) CompleteAddress() CompleteAddress {
	return w.account
}

func (w *accountWallet) Send(ctx context.Context, call FunctionCall) (*SentTx, error) {
	req := &TxExecutionRequest{Origin: w.account.Address, Calls: []FunctionCall{call}}
	tx, err := w.SimulateTx(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("simulate %s: %w", call.FunctionData.Name, err)
	}
	hash, err := w.SendTx(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("send %s: %w", call.FunctionData.Name, err)
	}
	return NewSentTx(w.Client, hash, w.pollInterval), nil
}

// SentTx is a submitted transaction that can be waited on.
type SentTx struct {
	client       Client
	hash         TxHash
	pollInterval time.Duration
}

func NewSentTx(client Client, hash TxHash, pollInterval time.Duration) *SentTx {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &SentTx{client: client, hash: hash, pollInterval: pollInterval}
}

func (t *SentTx) TxHash() TxHash {
	return t.hash
}

// Wait polls the node until the transaction is mined or dropped, or ctx ends.
func (t *SentTx) Wait(ctx context.Context) (*TxReceipt, error) {
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := t.client.TxReceipt(ctx, t.hash)
		if err != nil {
			return nil, err
		}
		switch receipt.Status {
		case TxStatusMined:
			return receipt, nil
		case TxStatusDropped:
			return receipt, fmt.Errorf("%w: %s %s", ErrTxDropped, t.hash.Hex(), receipt.Error)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
