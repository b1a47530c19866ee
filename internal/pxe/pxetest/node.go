// Package pxetest runs an in-process PXE node for tests. It speaks the same
// JSON-RPC dialect as a real node but keeps all state in memory.
package pxetest

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
)

// ViewFunc answers a pxe_viewTx call.
type ViewFunc func(function string, args []pxe.Fr, to pxe.Address) (json.RawMessage, error)

// Node is a fake PXE node.
type Node struct {
	mu        sync.Mutex
	info      pxe.NodeInfo
	accounts  []pxe.CompleteAddress
	block     uint64
	logs      []pxe.UnencryptedLog
	notes     []pxe.ExtendedNote
	requests  []pxe.TxExecutionRequest
	receipts  map[pxe.TxHash]*pxe.TxReceipt
	view      ViewFunc
	calls     map[string]int
	failNext  map[string]error
	rpcServer *rpc.Server
	http      *httptest.Server
}

// NewNode starts a node on a loopback listener. It is shut down when the
// test finishes.
func NewNode(t testing.TB) *Node {
	t.Helper()
	n := &Node{
		info:     pxe.NodeInfo{ChainID: 31337, ProtocolVersion: 1, SandboxVersion: "0.16.9"},
		receipts: make(map[pxe.TxHash]*pxe.TxReceipt),
		calls:    make(map[string]int),
		failNext: make(map[string]error),
	}
	n.rpcServer = rpc.NewServer()
	if err := n.rpcServer.RegisterName("pxe", &service{node: n}); err != nil {
		t.Fatalf("register pxe service: %v", err)
	}
	n.http = httptest.NewServer(n.rpcServer)
	t.Cleanup(n.Close)
	return n
}

// URL is the endpoint to dial.
func (n *Node) URL() string {
	return n.http.URL
}

func (n *Node) Close() {
	n.http.Close()
	n.rpcServer.Stop()
}

func (n *Node) SetChainID(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.info.ChainID = id
}

func (n *Node) SetAccounts(accounts ...pxe.CompleteAddress) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accounts = append([]pxe.CompleteAddress(nil), accounts...)
}

func (n *Node) SetView(view ViewFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.view = view
}

func (n *Node) AddLog(log pxe.UnencryptedLog) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.logs = append(n.logs, log)
}

// FailNext makes the next call of method (without the pxe_ prefix) fail.
func (n *Node) FailNext(method string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failNext[method] = err
}

// Calls reports how many times method (without the pxe_ prefix) was called.
func (n *Node) Calls(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func (n *Node) Notes() []pxe.ExtendedNote {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]pxe.ExtendedNote(nil), n.notes...)
}

func (n *Node) Requests() []pxe.TxExecutionRequest {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]pxe.TxExecutionRequest(nil), n.requests...)
}

func (n *Node) enter(method string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls[method]++
	if err, ok := n.failNext[method]; ok {
		delete(n.failNext, method)
		return err
	}
	return nil
}

// service holds the RPC-visible methods so that Node's own helpers are not
// registered as endpoints.
type service struct {
	node *Node
}

type simulatedTx struct {
	Hash pxe.TxHash `json:"hash"`
}

func (s *service) GetNodeInfo() (*pxe.NodeInfo, error) {
	if err := s.node.enter("getNodeInfo"); err != nil {
		return nil, err
	}
	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	info := s.node.info
	return &info, nil
}

func (s *service) GetRegisteredAccounts() ([]pxe.CompleteAddress, error) {
	if err := s.node.enter("getRegisteredAccounts"); err != nil {
		return nil, err
	}
	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	accounts := make([]pxe.CompleteAddress, len(s.node.accounts))
	copy(accounts, s.node.accounts)
	return accounts, nil
}

func (s *service) GetBlockNumber() (uint64, error) {
	if err := s.node.enter("getBlockNumber"); err != nil {
		return 0, err
	}
	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	return s.node.block, nil
}

func (s *service) GetUnencryptedLogs(fromBlock, limit uint64) (*pxe.LogsResponse, error) {
	if err := s.node.enter("getUnencryptedLogs"); err != nil {
		return nil, err
	}
	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	resp := &pxe.LogsResponse{Logs: []pxe.ExtendedUnencryptedLog{}}
	for i, l := range s.node.logs {
		if uint64(len(resp.Logs)) == limit {
			resp.MaxLogsHit = true
			break
		}
		resp.Logs = append(resp.Logs, pxe.ExtendedUnencryptedLog{ID: fmt.Sprintf("%d-%d", fromBlock, i), Log: l})
	}
	return resp, nil
}

func (s *service) AddNote(note pxe.ExtendedNote) error {
	if err := s.node.enter("addNote"); err != nil {
		return err
	}
	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	s.node.notes = append(s.node.notes, note)
	return nil
}

func (s *service) ViewTx(function string, args []pxe.Fr, to pxe.Address, from *pxe.Address) (json.RawMessage, error) {
	if err := s.node.enter("viewTx"); err != nil {
		return nil, err
	}
	s.node.mu.Lock()
	view := s.node.view
	s.node.mu.Unlock()
	if view == nil {
		return json.RawMessage(`"0"`), nil
	}
	return view(function, args, to)
}

func (s *service) SimulateTx(req pxe.TxExecutionRequest, simulatePublic bool) (*simulatedTx, error) {
	if err := s.node.enter("simulateTx"); err != nil {
		return nil, err
	}
	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	s.node.requests = append(s.node.requests, req)
	encoded, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	seq := []byte{byte(len(s.node.requests))}
	return &simulatedTx{Hash: crypto.Keccak256Hash(encoded, seq)}, nil
}

func (s *service) SendTx(tx simulatedTx) (pxe.TxHash, error) {
	if err := s.node.enter("sendTx"); err != nil {
		return pxe.TxHash{}, err
	}
	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	s.node.block++
	s.node.receipts[tx.Hash] = &pxe.TxReceipt{
		TxHash:      tx.Hash,
		Status:      pxe.TxStatusMined,
		BlockNumber: s.node.block,
	}
	return tx.Hash, nil
}

func (s *service) GetTxReceipt(hash pxe.TxHash) (*pxe.TxReceipt, error) {
	if err := s.node.enter("getTxReceipt"); err != nil {
		return nil, err
	}
	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	if receipt, ok := s.node.receipts[hash]; ok {
		r := *receipt
		return &r, nil
	}
	return &pxe.TxReceipt{TxHash: hash, Status: pxe.TxStatusPending}, nil
}
