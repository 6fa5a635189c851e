// Package defkey parses the keys of a declarative definition map: the
// reserved "class" and "__construct()" keys, "$name" property-assignment
// keys and "name()" method-call keys.
package defkey

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Kind classifies a definition-map key
type Kind int

const (
	// ClassKey is the reserved key naming the target class
	ClassKey Kind = iota

	// ConstructorKey is the reserved key holding constructor arguments
	ConstructorKey

	// PropertyKey is a "$name" key assigning a property
	PropertyKey

	// MethodKey is a "name()" key calling a method
	MethodKey
)

// String returns the string representation of the key kind
func (k Kind) String() string {
	switch k {
	case ClassKey:
		return "class"
	case ConstructorKey:
		return "constructor"
	case PropertyKey:
		return "property"
	case MethodKey:
		return "method"
	default:
		return "unknown"
	}
}

// Key is one parsed definition-map key
type Key struct {
	Kind Kind
	Name string
}

// keyNode is the participle grammar for a raw key
type keyNode struct {
	Sigil string `parser:"@Sigil?"`
	Name  string `parser:"@Ident"`
	Call  string `parser:"@Parens?"`
}

var keyLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Sigil", Pattern: `\$`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Parens", Pattern: `\(\)`},
})

var keyParser = participle.MustBuild[keyNode](
	participle.Lexer(keyLexer),
)

// reservedClassKey names the target class in a definition map
const reservedClassKey = "class"

// reservedConstructorKey holds the constructor arguments in a definition map
const reservedConstructorKey = "__construct"

// Parse classifies one raw definition-map key
func Parse(raw string) (Key, error) {
	node, err := keyParser.ParseString("", raw)
	if err != nil {
		return Key{}, fmt.Errorf("invalid definition key %q: %w", raw, err)
	}

	sigil := node.Sigil != ""
	call := node.Call != ""

	switch {
	case sigil && call:
		return Key{}, fmt.Errorf("invalid definition key %q: a key cannot be both a property and a method call", raw)
	case sigil:
		return Key{Kind: PropertyKey, Name: node.Name}, nil
	case call:
		if node.Name == reservedConstructorKey {
			return Key{Kind: ConstructorKey, Name: node.Name}, nil
		}
		return Key{Kind: MethodKey, Name: node.Name}, nil
	case node.Name == reservedClassKey:
		return Key{Kind: ClassKey, Name: node.Name}, nil
	default:
		return Key{}, fmt.Errorf("invalid definition key %q: expected \"class\", \"__construct()\", \"$property\" or \"method()\"", raw)
	}
}
