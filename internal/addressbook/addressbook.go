// Package addressbook resolves logical contract names to deployed addresses.
// The book is a JSON object written by the deployment step, e.g.
//
//	{"token": "0x2fd4503a9b855a852272945df53d7173297c1469cceda31048b85118364b09a3"}
//
// Names are case-insensitive.
package addressbook

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/spf13/viper"
)

// ErrUnknownContract is returned by Lookup for names not in the book.
var ErrUnknownContract = errors.New("addressbook: unknown contract")

// TokenContract is the name the deployment step records the token under.
const TokenContract = "token"

type Book struct {
	path    string
	entries map[string]string
}

// Load reads the book at path. Entries are parsed lazily by Lookup so one
// malformed entry does not hide the others.
func Load(path string) (*Book, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read address book %s: %w", path, err)
	}

	book := &Book{path: path, entries: make(map[string]string)}
	for _, key := range v.AllKeys() {
		book.entries[key] = v.GetString(key)
	}
	return book, nil
}

// FromMap builds a book in memory.
func FromMap(entries map[string]string) *Book {
	book := &Book{entries: make(map[string]string, len(entries))}
	for name, addr := range entries {
		book.entries[strings.ToLower(name)] = addr
	}
	return book
}

func (b *Book) Path() string {
	return b.path
}

// Lookup returns the address registered under name.
func (b *Book) Lookup(name string) (pxe.Address, error) {
	raw, ok := b.entries[strings.ToLower(name)]
	if !ok {
		return pxe.Address{}, fmt.Errorf("%w: %q", ErrUnknownContract, name)
	}
	addr, err := pxe.AddressFromString(raw)
	if err != nil {
		return pxe.Address{}, fmt.Errorf("contract %q: %w", name, err)
	}
	return addr, nil
}

// Names lists the registered names in sorted order.
func (b *Book) Names() []string {
	names := make([]string, 0, len(b.entries))
	for name := range b.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
