package pxe

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Fr is an element of the BN254 scalar field, the native word of the ledger.
type Fr struct {
	v fr.Element
}

// NewFr returns the field element for v.
func NewFr(v uint64) Fr {
	var f Fr
	f.v.SetUint64(v)
	return f
}

// FrFromBig reduces b modulo the field order.
func FrFromBig(b *big.Int) Fr {
	var f Fr
	f.v.SetBigInt(b)
	return f
}

// FrFromBytes interprets b as a big-endian integer and reduces it modulo the
// field order.
func FrFromBytes(b []byte) Fr {
	var f Fr
	f.v.SetBytes(b)
	return f
}

// RandomFr returns a uniformly random field element.
func RandomFr() (Fr, error) {
	var f Fr
	if _, err := f.v.SetRandom(); err != nil {
		return Fr{}, fmt.Errorf("random field element: %w", err)
	}
	return f, nil
}

func (f Fr) Bytes() [32]byte {
	return f.v.Bytes()
}

func (f Fr) BigInt() *big.Int {
	return f.v.BigInt(new(big.Int))
}

func (f Fr) Element() fr.Element {
	return f.v
}

func (f Fr) IsZero() bool {
	return f.v.IsZero()
}

func (f Fr) Equal(other Fr) bool {
	return f.v.Equal(&other.v)
}

// String returns the 0x-prefixed, 32-byte hex encoding.
func (f Fr) String() string {
	b := f.v.Bytes()
	return hexutil.Encode(b[:])
}

func (f Fr) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText accepts 0x-prefixed hex of at most 32 bytes. Values at or
// above the field order are rejected rather than reduced.
func (f *Fr) UnmarshalText(text []byte) error {
	raw, err := decodeWord(string(text))
	if err != nil {
		return err
	}
	if err := f.v.SetBytesCanonical(raw); err != nil {
		return fmt.Errorf("field element %s: %w", text, err)
	}
	return nil
}

func decodeWord(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') && len(s)%2 == 1 {
		s = "0x0" + s[2:]
	}
	raw, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", s, err)
	}
	if len(raw) > common.HashLength {
		return nil, fmt.Errorf("decode %q: %d bytes exceeds word size", s, len(raw))
	}
	return common.LeftPadBytes(raw, common.HashLength), nil
}

// Address identifies an account or a contract. Addresses are field elements.
type Address struct {
	word Fr
}

// AddressFromString parses a 0x-prefixed hex address.
func AddressFromString(s string) (Address, error) {
	var a Address
	if err := a.UnmarshalText([]byte(s)); err != nil {
		return Address{}, err
	}
	return a, nil
}

// MustAddress is AddressFromString for constants; it panics on bad input.
func MustAddress(s string) Address {
	a, err := AddressFromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) Fr() Fr {
	return a.word
}

func (a Address) IsZero() bool {
	return a.word.IsZero()
}

func (a Address) Equal(other Address) bool {
	return a.word.Equal(other.word)
}

func (a Address) String() string {
	return a.word.String()
}

func (a Address) MarshalText() ([]byte, error) {
	return a.word.MarshalText()
}

func (a *Address) UnmarshalText(text []byte) error {
	if err := a.word.UnmarshalText(text); err != nil {
		return fmt.Errorf("address: %w", err)
	}
	return nil
}

// TxHash identifies a transaction submitted to the node.
type TxHash = common.Hash

// NodeInfo is what the node reports about itself.
type NodeInfo struct {
	ChainID                uint64 `json:"chainId"`
	ProtocolVersion        uint64 `json:"protocolVersion"`
	SandboxVersion         string `json:"sandboxVersion,omitempty"`
	CompatibleNargoVersion string `json:"compatibleNargoVersion,omitempty"`
}

// CompleteAddress is a registered account.
type CompleteAddress struct {
	Address        Address       `json:"address"`
	PublicKey      hexutil.Bytes `json:"publicKey"`
	PartialAddress Fr            `json:"partialAddress"`
}

// Note is the preimage of a note commitment.
type Note []Fr

// ExtendedNote is a note plus the context the node needs to track it.
type ExtendedNote struct {
	Note            Note    `json:"note"`
	Owner           Address `json:"owner"`
	ContractAddress Address `json:"contractAddress"`
	StorageSlot     Fr      `json:"storageSlot"`
	TxHash          TxHash  `json:"txHash"`
}

type TxStatus string

const (
	TxStatusPending TxStatus = "pending"
	TxStatusMined   TxStatus = "mined"
	TxStatusDropped TxStatus = "dropped"
)

type TxReceipt struct {
	TxHash      TxHash   `json:"txHash"`
	Status      TxStatus `json:"status"`
	Error       string   `json:"error,omitempty"`
	BlockHash   *TxHash  `json:"blockHash,omitempty"`
	BlockNumber uint64   `json:"blockNumber,omitempty"`
}

// UnencryptedLog is a public log emitted by a contract.
type UnencryptedLog struct {
	ContractAddress Address       `json:"contractAddress"`
	Data            hexutil.Bytes `json:"data"`
}

// LogsResponse is the wire shape of a log query.
type LogsResponse struct {
	Logs       []ExtendedUnencryptedLog `json:"logs"`
	MaxLogsHit bool                     `json:"maxLogsHit"`
}

type ExtendedUnencryptedLog struct {
	ID  string         `json:"id,omitempty"`
	Log UnencryptedLog `json:"log"`
}

// Selector is the 4-byte function identifier.
type Selector [4]byte

func (s Selector) String() string {
	return hexutil.Encode(s[:])
}

func (s Selector) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Selector) UnmarshalText(text []byte) error {
	raw, err := hexutil.Decode(string(text))
	if err != nil {
		return fmt.Errorf("selector: %w", err)
	}
	if len(raw) != len(s) {
		return fmt.Errorf("selector: want %d bytes, got %d", len(s), len(raw))
	}
	copy(s[:], raw)
	return nil
}

type FunctionData struct {
	Name      string   `json:"name"`
	Selector  Selector `json:"selector"`
	IsPrivate bool     `json:"isPrivate"`
}

// FunctionCall is one contract invocation with encoded arguments.
type FunctionCall struct {
	To           Address      `json:"to"`
	FunctionData FunctionData `json:"functionData"`
	Args         []Fr         `json:"args"`
}

// TxExecutionRequest asks the node to simulate and prove calls on behalf of
// Origin.
type TxExecutionRequest struct {
	Origin Address        `json:"origin"`
	Calls  []FunctionCall `json:"calls"`
}

// Tx is a simulated, proven transaction. Its contents belong to the node.
type Tx = json.RawMessage
