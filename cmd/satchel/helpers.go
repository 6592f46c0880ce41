// Shared helpers for satchel CLI commands.
// Implements: prd007-satchel-cli (R3, R8, R9).
package main

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"

	"github.com/mesh-intelligence/satchel/internal/catalog"
	"github.com/mesh-intelligence/satchel/internal/resolve"
	"github.com/mesh-intelligence/satchel/internal/store"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// buildConfig assembles the effective Config from flags and config.yaml.
func buildConfig() (types.Config, error) {
	storeDir, err := resolveStoreDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve store dir: %w", err)
	}

	unit := configUnit
	if flagUnit != "" {
		unit = flagUnit
	}
	if unit == "" {
		unit = defaultUnit
	}

	cfg := types.Config{
		StoreDir:           storeDir,
		Unit:               unit,
		AllowIndirectWrite: configIndirectWrite,
		AllowIndirectRead:  configIndirectRead,
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// openStore creates the Store over the resolved root.
func openStore(cfg types.Config) *store.Store {
	return store.New(cfg.StoreDir, store.WithLogger(logger))
}

// openResolver creates the indirect Resolver for the resolved config.
func openResolver(cfg types.Config) *resolve.Resolver {
	return resolve.NewResolver(openStore(cfg), cfg)
}

// openCatalog opens the export catalog under the store root. The caller must
// defer Close.
func openCatalog(cfg types.Config) (*catalog.Catalog, error) {
	c, err := catalog.Open(cfg.StoreDir)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return c, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fileItem is one exportable declaration extracted from a source file.
type fileItem struct {
	Name   string
	Source string
}

// collectItems extracts the source text of each exportable top-level
// declaration in a Go file. Declarations of unsupported kinds (imports,
// methods, grouped blocks, blank names) are skipped, so --name on one of
// them reports the declaration as not found.
func collectItems(path string) ([]fileItem, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrParseFailed, path, err)
	}

	var items []fileItem
	for _, decl := range file.Decls {
		name, ok := declName(decl)
		if !ok {
			continue
		}
		items = append(items, fileItem{
			Name:   name,
			Source: declSource(fset, src, decl),
		})
	}
	return items, nil
}

// declName returns the single declared name of a top-level declaration, or
// false for the kinds that carry none.
func declName(decl ast.Decl) (string, bool) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Recv != nil || d.Name.Name == "_" {
			return "", false
		}
		return d.Name.Name, true
	case *ast.GenDecl:
		if d.Tok == token.IMPORT || len(d.Specs) != 1 {
			return "", false
		}
		switch spec := d.Specs[0].(type) {
		case *ast.TypeSpec:
			if spec.Name.Name == "_" {
				return "", false
			}
			return spec.Name.Name, true
		case *ast.ValueSpec:
			if len(spec.Names) != 1 || spec.Names[0].Name == "_" {
				return "", false
			}
			return spec.Names[0].Name, true
		}
	}
	return "", false
}

// declSource slices the verbatim source of a declaration, including its doc
// comment when present.
func declSource(fset *token.FileSet, src []byte, decl ast.Decl) string {
	start := decl.Pos()
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Doc != nil {
			start = d.Doc.Pos()
		}
	case *ast.GenDecl:
		if d.Doc != nil {
			start = d.Doc.Pos()
		}
	}
	from := fset.Position(start).Offset
	to := fset.Position(decl.End()).Offset
	return string(src[from:to])
}
