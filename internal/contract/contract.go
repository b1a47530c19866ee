// Package contract binds a deployed contract to its compiled artifact so that
// callers can invoke functions by name.
package contract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/holiman/uint256"
)

var (
	ErrUnknownFunction = errors.New("contract: unknown function")
	ErrArgumentCount   = errors.New("contract: wrong number of arguments")
	// ErrNoWallet is returned when sending through a contract bound to a
	// plain client instead of a wallet.
	ErrNoWallet = errors.New("contract: sending requires a wallet")
)

// Contract is a deployed contract seen through one client or wallet.
type Contract struct {
	address  pxe.Address
	artifact *Artifact
	client   pxe.Client
}

// At binds the contract deployed at address. client may be a pxe.Wallet, in
// which case views run in the wallet's account context and sends are allowed.
func At(address pxe.Address, artifact *Artifact, client pxe.Client) *Contract {
	return &Contract{address: address, artifact: artifact, client: client}
}

func (c *Contract) Address() pxe.Address {
	return c.address
}

func (c *Contract) Artifact() *Artifact {
	return c.artifact
}

// Method prepares a call of the named function with args.
func (c *Contract) Method(name string, args ...interface{}) (*Interaction, error) {
	f, err := c.artifact.Function(name)
	if err != nil {
		return nil, err
	}
	encoded, err := f.EncodeArgs(args...)
	if err != nil {
		return nil, err
	}
	return &Interaction{contract: c, function: f, args: encoded}, nil
}

// Interaction is a prepared function call.
type Interaction struct {
	contract *Contract
	function *Function
	args     []pxe.Fr
}

func (i *Interaction) Args() []pxe.Fr {
	return i.args
}

// Request is the call as submitted in a transaction.
func (i *Interaction) Request() pxe.FunctionCall {
	return pxe.FunctionCall{
		To: i.contract.address,
		FunctionData: pxe.FunctionData{
			Name:      i.function.Name,
			Selector:  i.function.Selector(),
			IsPrivate: i.function.IsPrivate(),
		},
		Args: i.args,
	}
}

// View runs the function locally on the node and returns its raw result.
func (i *Interaction) View(ctx context.Context) (json.RawMessage, error) {
	var from *pxe.Address
	if w, ok := i.contract.client.(pxe.Wallet); ok {
		addr := w.Address()
		from = &addr
	}
	result, err := i.contract.client.ViewTx(ctx, i.function.Name, i.args, i.contract.address, from)
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", i.function.Name, err)
	}
	return result, nil
}

// ViewUint is View for functions returning an unsigned integer.
func (i *Interaction) ViewUint(ctx context.Context) (*uint256.Int, error) {
	raw, err := i.View(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeUint(raw)
}

// Send submits the call as a transaction from the bound wallet.
func (i *Interaction) Send(ctx context.Context) (*pxe.SentTx, error) {
	w, ok := i.contract.client.(pxe.Wallet)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoWallet, i.function.Name)
	}
	return w.Send(ctx, i.Request())
}
