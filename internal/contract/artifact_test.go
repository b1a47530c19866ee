package contract

import (
	"math/big"
	"testing"

	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadToken(t *testing.T) *Artifact {
	t.Helper()
	a, err := LoadArtifact("testdata/Token.json")
	require.NoError(t, err)
	return a
}

func TestLoadArtifact_Token(t *testing.T) {
	a := loadToken(t)
	assert.Equal(t, "Token", a.Name)

	f, err := a.Function("mint_private")
	require.NoError(t, err)
	assert.False(t, f.IsPrivate())
	assert.False(t, f.IsView())
	assert.Equal(t, 2, f.FieldCount())

	view, err := a.Function("balance_of_private")
	require.NoError(t, err)
	assert.True(t, view.IsView())

	secret, err := a.Function("redeem_shield")
	require.NoError(t, err)
	assert.True(t, secret.IsPrivate())
}

func TestLoadArtifact_Errors(t *testing.T) {
	_, err := LoadArtifact("testdata/absent.json")
	assert.Error(t, err)

	_, err = ParseArtifact([]byte(`{"functions": []}`))
	assert.Error(t, err, "missing name")

	_, err = ParseArtifact([]byte(`{"name": "X", "functions": [{"name": "f"}, {"name": "f"}]}`))
	assert.Error(t, err, "duplicate function")

	_, err = ParseArtifact([]byte(`{"name": "X", "functions": [{"name": "f", "parameters": [{"name": "a", "type": {"kind": "tuple"}}]}]}`))
	assert.Error(t, err, "unsupported kind")

	_, err = ParseArtifact([]byte(`{"name": "X", "functions": [`))
	assert.Error(t, err)
}

func TestArtifact_UnknownFunction(t *testing.T) {
	_, err := loadToken(t).Function("burn")
	assert.ErrorIs(t, err, ErrUnknownFunction)
}

func TestFunction_Signature(t *testing.T) {
	a := loadToken(t)
	tests := []struct {
		name string
		want string
	}{
		{"balance_of_private", "balance_of_private((Field))"},
		{"mint_private", "mint_private(Field,Field)"},
		{"transfer", "transfer((Field),(Field),Field,Field)"},
		{"set_minter", "set_minter((Field),bool)"},
		{"_initialize", "_initialize(u8,str<3>,[Field;2])"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := a.Function(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Signature())

			var want pxe.Selector
			copy(want[:], crypto.Keccak256([]byte(tt.want))[:4])
			assert.Equal(t, want, f.Selector())
		})
	}
}

func TestEncodeArgs(t *testing.T) {
	a := loadToken(t)
	owner := pxe.MustAddress("0x0a")

	mint, err := a.Function("mint_public")
	require.NoError(t, err)
	args, err := mint.EncodeArgs(owner, uint256.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, []pxe.Fr{owner.Fr(), pxe.NewFr(100)}, args)

	minter, err := a.Function("set_minter")
	require.NoError(t, err)
	args, err = minter.EncodeArgs(owner, true)
	require.NoError(t, err)
	assert.Equal(t, []pxe.Fr{owner.Fr(), pxe.NewFr(1)}, args)

	initFn, err := a.Function("_initialize")
	require.NoError(t, err)
	args, err = initFn.EncodeArgs(18, "TKN", []pxe.Fr{pxe.NewFr(1), pxe.NewFr(2)})
	require.NoError(t, err)
	assert.Equal(t, []pxe.Fr{
		pxe.NewFr(18),
		pxe.NewFr('T'), pxe.NewFr('K'), pxe.NewFr('N'),
		pxe.NewFr(1), pxe.NewFr(2),
	}, args)
}

func TestEncodeArgs_Rejects(t *testing.T) {
	a := loadToken(t)
	mint, err := a.Function("mint_private")
	require.NoError(t, err)

	_, err = mint.EncodeArgs(uint64(20))
	assert.ErrorIs(t, err, ErrArgumentCount)

	_, err = mint.EncodeArgs(-1, pxe.NewFr(0))
	assert.Error(t, err)

	_, err = mint.EncodeArgs("20", pxe.NewFr(0))
	assert.Error(t, err)

	overModulus := new(big.Int).Lsh(big.NewInt(1), 255)
	_, err = mint.EncodeArgs(overModulus, pxe.NewFr(0))
	assert.Error(t, err)

	initFn, err := a.Function("_initialize")
	require.NoError(t, err)
	_, err = initFn.EncodeArgs(256, "TKN", []pxe.Fr{pxe.NewFr(1), pxe.NewFr(2)})
	assert.Error(t, err, "u8 overflow")
	_, err = initFn.EncodeArgs(8, "TOKEN", []pxe.Fr{pxe.NewFr(1), pxe.NewFr(2)})
	assert.Error(t, err, "string length")
	_, err = initFn.EncodeArgs(8, "TKN", []pxe.Fr{pxe.NewFr(1)})
	assert.Error(t, err, "array length")

	minter, err := a.Function("set_minter")
	require.NoError(t, err)
	_, err = minter.EncodeArgs(pxe.MustAddress("0x01"), 2)
	assert.Error(t, err, "boolean range")
}

func TestDecodeUint(t *testing.T) {
	tests := []struct {
		raw  string
		want uint64
	}{
		{`"20"`, 20},
		{`"0x14"`, 20},
		{`20`, 20},
		{`"0"`, 0},
	}
	for _, tt := range tests {
		got, err := DecodeUint([]byte(tt.raw))
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got.Uint64(), tt.raw)
	}

	for _, raw := range []string{`"-1"`, `"abc"`, `{}`, `-3`} {
		_, err := DecodeUint([]byte(raw))
		assert.Error(t, err, raw)
	}
}
