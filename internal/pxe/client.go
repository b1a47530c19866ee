// Package pxe binds the gateway to a PXE node (Private eXecution Environment),
// the external ledger client that owns keys, notes, proving and chain sync.
// Everything here is transport: requests are forwarded over JSON-RPC and the
// node's answers are decoded into Go types.
package pxe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Aidin1998/pxegate/pkg/metrics"
	"github.com/ethereum/go-ethereum/rpc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source client.go -destination client_mocks.go -package pxe

var (
	// ErrNotConnected is returned when an operation needs a client handle
	// and none has been established.
	ErrNotConnected = errors.New("pxe: not connected")
	// ErrTxDropped is returned by SentTx.Wait when the node discards a tx.
	ErrTxDropped = errors.New("pxe: transaction dropped")
)

const (
	methodGetNodeInfo           = "pxe_getNodeInfo"
	methodGetRegisteredAccounts = "pxe_getRegisteredAccounts"
	methodGetBlockNumber        = "pxe_getBlockNumber"
	methodGetUnencryptedLogs    = "pxe_getUnencryptedLogs"
	methodAddNote               = "pxe_addNote"
	methodViewTx                = "pxe_viewTx"
	methodSimulateTx            = "pxe_simulateTx"
	methodSendTx                = "pxe_sendTx"
	methodGetTxReceipt          = "pxe_getTxReceipt"
)

var tracer = otel.Tracer("github.com/Aidin1998/pxegate/internal/pxe")

// Client is a connection to a PXE node.
type Client interface {
	NodeInfo(ctx context.Context) (*NodeInfo, error)
	RegisteredAccounts(ctx context.Context) ([]CompleteAddress, error)
	BlockNumber(ctx context.Context) (uint64, error)
	UnencryptedLogs(ctx context.Context, fromBlock, limit uint64) ([]UnencryptedLog, error)
	AddNote(ctx context.Context, note *ExtendedNote) error
	// ViewTx runs an unconstrained function locally on the node. from may be
	// nil when no account context is needed.
	ViewTx(ctx context.Context, function string, args []Fr, to Address, from *Address) (json.RawMessage, error)
	SimulateTx(ctx context.Context, req *TxExecutionRequest) (Tx, error)
	SendTx(ctx context.Context, tx Tx) (TxHash, error)
	TxReceipt(ctx context.Context, hash TxHash) (*TxReceipt, error)
	Close()
}

// Dialer creates a Client for the node at url.
type Dialer func(ctx context.Context, url string) (Client, error)

type rpcClient struct {
	rpc *rpc.Client
	url string
}

// Dial returns a JSON-RPC backed Client. For http(s) URLs no network traffic
// happens until the first call.
func Dial(ctx context.Context, url string) (Client, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial pxe at %s: %w", url, err)
	}
	return &rpcClient{rpc: c, url: url}, nil
}

func (c *rpcClient) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	ctx, span := tracer.Start(ctx, method)
	defer span.End()
	span.SetAttributes(attribute.String("pxe.url", c.url))

	start := time.Now()
	err := c.rpc.CallContext(ctx, result, method, args...)
	metrics.PXECallDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

func (c *rpcClient) NodeInfo(ctx context.Context) (*NodeInfo, error) {
	var info NodeInfo
	if err := c.call(ctx, &info, methodGetNodeInfo); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *rpcClient) RegisteredAccounts(ctx context.Context) ([]CompleteAddress, error) {
	var accounts []CompleteAddress
	if err := c.call(ctx, &accounts, methodGetRegisteredAccounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *rpcClient) BlockNumber(ctx context.Context) (uint64, error) {
	var number uint64
	if err := c.call(ctx, &number, methodGetBlockNumber); err != nil {
		return 0, err
	}
	return number, nil
}

func (c *rpcClient) UnencryptedLogs(ctx context.Context, fromBlock, limit uint64) ([]UnencryptedLog, error) {
	var resp LogsResponse
	if err := c.call(ctx, &resp, methodGetUnencryptedLogs, fromBlock, limit); err != nil {
		return nil, err
	}
	logs := make([]UnencryptedLog, 0, len(resp.Logs))
	for _, l := range resp.Logs {
		logs = append(logs, l.Log)
	}
	return logs, nil
}

func (c *rpcClient) AddNote(ctx context.Context, note *ExtendedNote) error {
	return c.call(ctx, nil, methodAddNote, note)
}

func (c *rpcClient) ViewTx(ctx context.Context, function string, args []Fr, to Address, from *Address) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.call(ctx, &result, methodViewTx, function, args, to, from); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *rpcClient) SimulateTx(ctx context.Context, req *TxExecutionRequest) (Tx, error) {
	var tx json.RawMessage
	if err := c.call(ctx, &tx, methodSimulateTx, req, true); err != nil {
		return nil, err
	}
	return tx, nil
}

func (c *rpcClient) SendTx(ctx context.Context, tx Tx) (TxHash, error) {
	var hash TxHash
	if err := c.call(ctx, &hash, methodSendTx, tx); err != nil {
		return TxHash{}, err
	}
	return hash, nil
}

func (c *rpcClient) TxReceipt(ctx context.Context, hash TxHash) (*TxReceipt, error) {
	var receipt TxReceipt
	if err := c.call(ctx, &receipt, methodGetTxReceipt, hash); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *rpcClient) Close() {
	c.rpc.Close()
}
