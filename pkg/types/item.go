package types

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// ItemKind identifies which of the supported top-level declaration forms an
// Item holds. The set is closed; classification is an exhaustive switch over
// the parsed declaration.
// Implements: prd001-exchange-core R2.
type ItemKind string

// Supported item kinds.
const (
	KindConst     ItemKind = "const"
	KindVar       ItemKind = "var"
	KindFunc      ItemKind = "func"
	KindStruct    ItemKind = "struct"
	KindInterface ItemKind = "interface"
	KindTypeAlias ItemKind = "type_alias"
	KindTypeDef   ItemKind = "type_def"
)

// itemFileName is the synthetic file name used when reparsing item text.
const itemFileName = "item.go"

// itemPackageClause is prepended to item text before parsing; item text is a
// bare top-level declaration, not a complete file.
const itemPackageClause = "package item\n\n"

// Item is a parsed, structurally valid top-level declaration together with
// its verbatim source text. Items are transient: they are never persisted as
// structured values, only as text, and are reconstructed by reparsing.
// Implements: prd001-exchange-core R1.
type Item struct {
	Kind   ItemKind // One of the Kind constants.
	Name   string   // Declared identifier.
	Source string   // Verbatim source text of the declaration.

	decl ast.Decl
	fset *token.FileSet
}

// Node returns the parsed declaration node.
func (i *Item) Node() ast.Decl { return i.decl }

// FileSet returns the token file set the node was parsed against.
func (i *Item) FileSet() *token.FileSet { return i.fset }

// Binding is the result of a resolved import: a reconstructed Item bound
// under a caller-chosen name.
type Binding struct {
	Name string // Identifier the caller asked the node to be bound to.
	Item *Item  // Reconstructed item.
}

// ParseItem parses source text into an Item. The text must contain exactly
// one top-level declaration of a supported kind. Unsupported kinds are
// rejected with a kind-specific message wrapping ErrUnsupportedItem; text
// that does not parse at all wraps ErrParseFailed.
// Implements: prd001-exchange-core R2, prd003-export-registrar R1.
func ParseItem(src string) (*Item, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, itemFileName, itemPackageClause+src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	if len(file.Decls) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one top-level declaration, got %d",
			ErrParseFailed, len(file.Decls))
	}

	decl := file.Decls[0]
	kind, name, err := classify(decl)
	if err != nil {
		return nil, err
	}

	return &Item{
		Kind:   kind,
		Name:   name,
		Source: strings.TrimSpace(src),
		decl:   decl,
		fset:   fset,
	}, nil
}

// classify maps a declaration to its ItemKind and declared name. The four
// kinds that carry no single usable name are rejected here with their own
// messages: import declarations, methods, grouped declaration blocks, and
// blank identifier declarations.
func classify(decl ast.Decl) (ItemKind, string, error) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Recv != nil {
			return "", "", fmt.Errorf("%w: cannot export a method declaration", ErrUnsupportedItem)
		}
		if d.Name.Name == "_" {
			return "", "", fmt.Errorf("%w: cannot export a blank identifier declaration", ErrUnsupportedItem)
		}
		return KindFunc, d.Name.Name, nil

	case *ast.GenDecl:
		if d.Tok == token.IMPORT {
			return "", "", fmt.Errorf("%w: cannot export an import declaration", ErrUnsupportedItem)
		}
		if len(d.Specs) != 1 {
			return "", "", fmt.Errorf("%w: cannot export a grouped declaration block", ErrUnsupportedItem)
		}
		switch spec := d.Specs[0].(type) {
		case *ast.TypeSpec:
			return classifyType(spec)
		case *ast.ValueSpec:
			if len(spec.Names) != 1 {
				return "", "", fmt.Errorf("%w: cannot export a grouped declaration block", ErrUnsupportedItem)
			}
			name := spec.Names[0].Name
			if name == "_" {
				return "", "", fmt.Errorf("%w: cannot export a blank identifier declaration", ErrUnsupportedItem)
			}
			if d.Tok == token.CONST {
				return KindConst, name, nil
			}
			return KindVar, name, nil
		}
	}
	return "", "", fmt.Errorf("%w: cannot export this declaration", ErrUnsupportedItem)
}

// classifyType distinguishes struct, interface, alias, and defined types.
func classifyType(spec *ast.TypeSpec) (ItemKind, string, error) {
	name := spec.Name.Name
	if name == "_" {
		return "", "", fmt.Errorf("%w: cannot export a blank identifier declaration", ErrUnsupportedItem)
	}
	if spec.Assign.IsValid() {
		return KindTypeAlias, name, nil
	}
	switch spec.Type.(type) {
	case *ast.StructType:
		return KindStruct, name, nil
	case *ast.InterfaceType:
		return KindInterface, name, nil
	default:
		return KindTypeDef, name, nil
	}
}
