package pxe

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	ownerAccount = CompleteAddress{Address: MustAddress("0x01"), PartialAddress: NewFr(11)}
	otherAccount = CompleteAddress{Address: MustAddress("0x02"), PartialAddress: NewFr(12)}
)

func TestSandboxWallets_OnePerAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	client.EXPECT().RegisteredAccounts(gomock.Any()).Return([]CompleteAddress{ownerAccount, otherAccount}, nil)

	wallets, err := SandboxWallets(context.Background(), client, time.Millisecond)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.True(t, wallets[0].Address().Equal(ownerAccount.Address))
	assert.True(t, wallets[1].Address().Equal(otherAccount.Address))
	assert.Equal(t, otherAccount, wallets[1].CompleteAddress())
}

func TestSandboxWallets_PropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	client.EXPECT().RegisteredAccounts(gomock.Any()).Return(nil, errors.New("refused"))

	_, err := SandboxWallets(context.Background(), client, 0)
	assert.Error(t, err)
}

func TestWallet_SendSimulatesThenSends(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	call := FunctionCall{
		To:           MustAddress("0xaa"),
		FunctionData: FunctionData{Name: "mint_public", IsPrivate: false},
		Args:         []Fr{NewFr(1), NewFr(100)},
	}
	hash := common.HexToHash("0x1234")
	tx := json.RawMessage(`{"proof":"0x"}`)

	gomock.InOrder(
		client.EXPECT().SimulateTx(gomock.Any(), &TxExecutionRequest{Origin: ownerAccount.Address, Calls: []FunctionCall{call}}).Return(tx, nil),
		client.EXPECT().SendTx(gomock.Any(), tx).Return(hash, nil),
	)

	wallet := NewWallet(client, ownerAccount, time.Millisecond)
	sent, err := wallet.Send(context.Background(), call)
	require.NoError(t, err)
	assert.Equal(t, hash, sent.TxHash())
}

func TestWallet_SendStopsOnSimulationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	client.EXPECT().SimulateTx(gomock.Any(), gomock.Any()).Return(nil, errors.New("assertion failed"))

	wallet := NewWallet(client, ownerAccount, time.Millisecond)
	_, err := wallet.Send(context.Background(), FunctionCall{FunctionData: FunctionData{Name: "transfer"}})
	assert.ErrorContains(t, err, "simulate transfer")
}

func TestSentTx_WaitPollsUntilMined(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	hash := common.HexToHash("0xabcd")

	gomock.InOrder(
		client.EXPECT().TxReceipt(gomock.Any(), hash).Return(&TxReceipt{TxHash: hash, Status: TxStatusPending}, nil).Times(2),
		client.EXPECT().TxReceipt(gomock.Any(), hash).Return(&TxReceipt{TxHash: hash, Status: TxStatusMined, BlockNumber: 9}, nil),
	)

	receipt, err := NewSentTx(client, hash, time.Millisecond).Wait(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 9, receipt.BlockNumber)
}

func TestSentTx_WaitReportsDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	hash := common.HexToHash("0xabcd")
	client.EXPECT().TxReceipt(gomock.Any(), hash).Return(&TxReceipt{TxHash: hash, Status: TxStatusDropped, Error: "nullifier exists"}, nil)

	_, err := NewSentTx(client, hash, time.Millisecond).Wait(context.Background())
	assert.ErrorIs(t, err, ErrTxDropped)
	assert.ErrorContains(t, err, "nullifier exists")
}

func TestSentTx_WaitHonoursContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	hash := common.HexToHash("0xabcd")
	client.EXPECT().TxReceipt(gomock.Any(), hash).Return(&TxReceipt{TxHash: hash, Status: TxStatusPending}, nil).AnyTimes()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewSentTx(client, hash, 5*time.Millisecond).Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
