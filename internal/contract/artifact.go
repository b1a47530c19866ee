package contract

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/ethereum/go-ethereum/crypto"
)

// Function types as written by the contract compiler.
const (
	FunctionTypeSecret        = "secret"
	FunctionTypeOpen          = "open"
	FunctionTypeUnconstrained = "unconstrained"
)

// ABIType describes a parameter type.
type ABIType struct {
	Kind   string     `json:"kind"`
	Sign   string     `json:"sign,omitempty"`
	Width  int        `json:"width,omitempty"`
	Length int        `json:"length,omitempty"`
	Type   *ABIType   `json:"type,omitempty"`
	Path   string     `json:"path,omitempty"`
	Fields []ABIField `json:"fields,omitempty"`
}

type ABIField struct {
	Name string  `json:"name"`
	Type ABIType `json:"type"`
}

type Parameter struct {
	Name       string  `json:"name"`
	Type       ABIType `json:"type"`
	Visibility string  `json:"visibility,omitempty"`
}

type Function struct {
	Name         string      `json:"name"`
	FunctionType string      `json:"functionType"`
	IsInternal   bool        `json:"isInternal"`
	Parameters   []Parameter `json:"parameters"`
}

// Artifact is the compiled contract description. Bytecode and debug
// information are ignored; the node holds the deployed code.
type Artifact struct {
	Name      string     `json:"name"`
	Functions []Function `json:"functions"`

	byName map[string]*Function
}

// LoadArtifact reads a compiled contract artifact from path.
func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}
	return ParseArtifact(raw)
}

// ParseArtifact decodes an artifact and indexes its functions.
func ParseArtifact(raw []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if a.Name == "" {
		return nil, fmt.Errorf("decode artifact: missing contract name")
	}
	a.byName = make(map[string]*Function, len(a.Functions))
	for i := range a.Functions {
		f := &a.Functions[i]
		if _, dup := a.byName[f.Name]; dup {
			return nil, fmt.Errorf("artifact %s: duplicate function %q", a.Name, f.Name)
		}
		for _, p := range f.Parameters {
			if _, err := p.Type.signature(); err != nil {
				return nil, fmt.Errorf("artifact %s: %s.%s: %w", a.Name, f.Name, p.Name, err)
			}
		}
		a.byName[f.Name] = f
	}
	return &a, nil
}

// Function returns the named function.
func (a *Artifact) Function(name string) (*Function, error) {
	f, ok := a.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownFunction, a.Name, name)
	}
	return f, nil
}

func (f *Function) IsPrivate() bool {
	return f.FunctionType == FunctionTypeSecret
}

func (f *Function) IsView() bool {
	return f.FunctionType == FunctionTypeUnconstrained
}

// Signature renders name(t1,t2,...) the way selectors are derived.
func (f *Function) Signature() string {
	parts := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		parts[i], _ = p.Type.signature()
	}
	return f.Name + "(" + strings.Join(parts, ",") + ")"
}

// Selector is the first four bytes of the Keccak-256 of the signature.
func (f *Function) Selector() pxe.Selector {
	return SelectorOf(f.Signature())
}

// SelectorOf hashes an already rendered signature.
func SelectorOf(signature string) pxe.Selector {
	var s pxe.Selector
	copy(s[:], crypto.Keccak256([]byte(signature))[:len(s)])
	return s
}

// FieldCount is the number of field elements the encoded arguments occupy.
func (f *Function) FieldCount() int {
	n := 0
	for _, p := range f.Parameters {
		n += p.Type.Size()
	}
	return n
}

func (t ABIType) signature() (string, error) {
	switch t.Kind {
	case "field":
		return "Field", nil
	case "boolean":
		return "bool", nil
	case "integer":
		if t.Width <= 0 {
			return "", fmt.Errorf("integer without width")
		}
		prefix := "u"
		if t.Sign == "signed" {
			prefix = "i"
		}
		return prefix + strconv.Itoa(t.Width), nil
	case "array":
		if t.Type == nil {
			return "", fmt.Errorf("array without element type")
		}
		elem, err := t.Type.signature()
		if err != nil {
			return "", err
		}
		return "[" + elem + ";" + strconv.Itoa(t.Length) + "]", nil
	case "string":
		return "str<" + strconv.Itoa(t.Length) + ">", nil
	case "struct":
		parts := make([]string, len(t.Fields))
		for i, field := range t.Fields {
			s, err := field.Type.signature()
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "(" + strings.Join(parts, ",") + ")", nil
	default:
		return "", fmt.Errorf("unsupported type kind %q", t.Kind)
	}
}

// Size is the number of field elements a value of this type occupies.
func (t ABIType) Size() int {
	switch t.Kind {
	case "array":
		if t.Type == nil {
			return 0
		}
		return t.Length * t.Type.Size()
	case "string":
		return t.Length
	case "struct":
		n := 0
		for _, field := range t.Fields {
			n += field.Type.Size()
		}
		return n
	default:
		return 1
	}
}
