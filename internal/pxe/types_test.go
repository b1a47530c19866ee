package pxe

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFr_TextEncodingIsFixedWidth(t *testing.T) {
	f := NewFr(5)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000005", f.String())

	var parsed Fr
	require.NoError(t, parsed.UnmarshalText([]byte("0x5")))
	assert.True(t, parsed.Equal(f))
}

func TestFr_RejectsValuesOutsideField(t *testing.T) {
	modulus := fr.Modulus()
	var f Fr
	err := f.UnmarshalText([]byte("0x" + modulus.Text(16)))
	assert.Error(t, err)

	err = f.UnmarshalText([]byte("0x" + "00" + modulus.Text(16) + "00"))
	assert.Error(t, err, "more than 32 bytes")

	assert.Error(t, f.UnmarshalText([]byte("5")), "missing prefix")
}

func TestFrFromBig_Reduces(t *testing.T) {
	modulus := fr.Modulus()
	f := FrFromBig(new(big.Int).Add(modulus, big.NewInt(7)))
	assert.True(t, f.Equal(NewFr(7)))
	assert.Equal(t, int64(7), f.BigInt().Int64())
}

func TestRandomFr_ProducesDistinctValues(t *testing.T) {
	a, err := RandomFr()
	require.NoError(t, err)
	b, err := RandomFr()
	require.NoError(t, err)
	assert.False(t, a.Equal(b))
}

func TestAddress_JSON(t *testing.T) {
	addr := MustAddress("0x2fd4503a9b855a852272945df53d7173297c1469cceda31048b85118364b09a3")
	encoded, err := json.Marshal(CompleteAddress{Address: addr, PartialAddress: NewFr(1)})
	require.NoError(t, err)

	var decoded CompleteAddress
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, decoded.Address.Equal(addr))
	assert.Equal(t, addr.String(), decoded.Address.String())
}

func TestAddressFromString_Invalid(t *testing.T) {
	_, err := AddressFromString("not-an-address")
	assert.Error(t, err)
	assert.Panics(t, func() { MustAddress("0xzz") })
}

func TestSelector_Text(t *testing.T) {
	s := Selector{0xde, 0xad, 0xbe, 0xef}
	text, err := s.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", string(text))

	var parsed Selector
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, s, parsed)
	assert.Error(t, parsed.UnmarshalText([]byte("0xdead")))
}
