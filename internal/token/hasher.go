package token

import (
	"fmt"

	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// SecretHasher derives the public hash that a shielded mint is locked to.
// The node's contract decides which hash it accepts, so the function is
// injected rather than fixed here.
type SecretHasher interface {
	Hash(secret pxe.Fr) (pxe.Fr, error)
}

// HasherFunc adapts a plain function to SecretHasher.
type HasherFunc func(secret pxe.Fr) (pxe.Fr, error)

func (f HasherFunc) Hash(secret pxe.Fr) (pxe.Fr, error) {
	return f(secret)
}

// MiMCHasher hashes the secret with MiMC over the BN254 scalar field.
type MiMCHasher struct{}

func (MiMCHasher) Hash(secret pxe.Fr) (pxe.Fr, error) {
	h := mimc.NewMiMC()
	word := secret.Bytes()
	if _, err := h.Write(word[:]); err != nil {
		return pxe.Fr{}, fmt.Errorf("mimc: %w", err)
	}
	return pxe.FrFromBytes(h.Sum(nil)), nil
}
