package contract

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/holiman/uint256"
)

// EncodeArgs flattens args into field elements following the function's
// parameter list.
//
// Scalars (field, integer, boolean) accept pxe.Fr, pxe.Address, uint64, int,
// *big.Int, *uint256.Int and bool. Structs and arrays accept a []pxe.Fr of
// the right size; single-field structs such as addresses also accept a
// pxe.Address or pxe.Fr. Strings accept a Go string of the declared length.
func (f *Function) EncodeArgs(args ...interface{}) ([]pxe.Fr, error) {
	if len(args) != len(f.Parameters) {
		return nil, fmt.Errorf("%w: %s wants %d, got %d", ErrArgumentCount, f.Name, len(f.Parameters), len(args))
	}
	out := make([]pxe.Fr, 0, f.FieldCount())
	for i, p := range f.Parameters {
		encoded, err := encodeValue(p.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("%s: argument %q: %w", f.Name, p.Name, err)
		}
		out = append(out, encoded...)
	}
	return out, nil
}

func encodeValue(t ABIType, arg interface{}) ([]pxe.Fr, error) {
	switch t.Kind {
	case "field", "integer", "boolean":
		v, err := encodeScalar(t, arg)
		if err != nil {
			return nil, err
		}
		return []pxe.Fr{v}, nil
	case "struct", "array":
		size := t.Size()
		switch v := arg.(type) {
		case []pxe.Fr:
			if len(v) != size {
				return nil, fmt.Errorf("want %d field elements, got %d", size, len(v))
			}
			return v, nil
		case pxe.Address:
			if size == 1 {
				return []pxe.Fr{v.Fr()}, nil
			}
		case pxe.Fr:
			if size == 1 {
				return []pxe.Fr{v}, nil
			}
		}
		return nil, fmt.Errorf("cannot encode %T as %s", arg, t.Kind)
	case "string":
		s, ok := arg.(string)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as string", arg)
		}
		if len(s) != t.Length {
			return nil, fmt.Errorf("want string of length %d, got %d", t.Length, len(s))
		}
		out := make([]pxe.Fr, len(s))
		for i := 0; i < len(s); i++ {
			out[i] = pxe.NewFr(uint64(s[i]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type kind %q", t.Kind)
	}
}

func encodeScalar(t ABIType, arg interface{}) (pxe.Fr, error) {
	var value *big.Int
	switch v := arg.(type) {
	case pxe.Fr:
		value = v.BigInt()
	case pxe.Address:
		value = v.Fr().BigInt()
	case uint64:
		value = new(big.Int).SetUint64(v)
	case int:
		value = big.NewInt(int64(v))
	case *big.Int:
		if v == nil {
			return pxe.Fr{}, fmt.Errorf("nil *big.Int")
		}
		value = v
	case *uint256.Int:
		if v == nil {
			return pxe.Fr{}, fmt.Errorf("nil *uint256.Int")
		}
		value = v.ToBig()
	case bool:
		value = big.NewInt(0)
		if v {
			value = big.NewInt(1)
		}
	default:
		return pxe.Fr{}, fmt.Errorf("cannot encode %T as %s", arg, t.Kind)
	}

	if value.Sign() < 0 {
		return pxe.Fr{}, fmt.Errorf("negative value %s", value)
	}
	switch t.Kind {
	case "boolean":
		if value.Cmp(big.NewInt(1)) > 0 {
			return pxe.Fr{}, fmt.Errorf("boolean out of range: %s", value)
		}
	case "integer":
		if value.BitLen() > t.Width {
			return pxe.Fr{}, fmt.Errorf("%s does not fit in %d bits", value, t.Width)
		}
	}
	if value.Cmp(fr.Modulus()) >= 0 {
		return pxe.Fr{}, fmt.Errorf("%s exceeds field modulus", value)
	}
	return pxe.FrFromBig(value), nil
}

// DecodeUint reads an unsigned integer returned by a view call. Nodes answer
// with a JSON number, a decimal string or a 0x-prefixed hex string.
func DecodeUint(raw json.RawMessage) (*uint256.Int, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, fmt.Errorf("decode uint from %s: %w", raw, err)
		}
		s = n.String()
	}

	s = strings.TrimSpace(s)
	b := new(big.Int)
	ok := false
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		_, ok = b.SetString(s[2:], 16)
	} else {
		_, ok = b.SetString(s, 10)
	}
	if !ok || b.Sign() < 0 {
		return nil, fmt.Errorf("decode uint from %s: not an unsigned integer", raw)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("decode uint from %s: overflows 256 bits", raw)
	}
	return v, nil
}
