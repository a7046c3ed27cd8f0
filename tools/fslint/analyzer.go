// Package fslint reports direct filesystem calls in packages that must go
// through an injected afero.Fs, so that every engine operation stays
// replaceable by an in-memory or fault-injecting filesystem in tests.
package fslint

import (
	"fmt"
	"go/ast"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/tools/go/analysis"
)

var configFile string

// Config represents the fslint configuration.
type Config struct {
	// ScanDirs are path segments selecting the packages to check, e.g.
	// "internal" or "internal/sync".
	ScanDirs []string `toml:"scan_dirs"`
	// AllowedPackages are exempt even when inside a scanned dir.
	AllowedPackages []string `toml:"allowed_packages"`
	// ForbiddenCalls maps an import path to function names. When empty,
	// DefaultForbiddenCalls is used.
	ForbiddenCalls map[string][]string `toml:"forbidden_calls"`
}

// DefaultForbiddenCalls covers the calls afero.Fs and afero's helpers replace.
var DefaultForbiddenCalls = map[string][]string{
	"os": {
		"Chmod", "Chtimes", "Create", "CreateTemp", "Lstat", "Mkdir", "MkdirAll",
		"MkdirTemp", "Open", "OpenFile", "ReadDir", "ReadFile", "Remove",
		"RemoveAll", "Rename", "Stat", "WriteFile",
	},
	"io/ioutil":     {"ReadDir", "ReadFile", "TempFile", "WriteFile"},
	"path/filepath": {"Glob", "Walk", "WalkDir"},
}

// Analyzer is the fslint analyzer.
var Analyzer = &analysis.Analyzer{
	Name: "fslint",
	Doc:  "reports direct filesystem calls in packages that must use the injected afero.Fs",
	Run:  run,
}

func init() {
	Analyzer.Flags.StringVar(&configFile, "config", "", "path to fslint config file (required)")
}

func loadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is required (use -config flag)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if len(cfg.ForbiddenCalls) == 0 {
		cfg.ForbiddenCalls = DefaultForbiddenCalls
	}

	return &cfg, nil
}

func run(pass *analysis.Pass) (interface{}, error) {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return nil, err
	}

	pkgPath := pass.Pkg.Path()
	if !matchesAny(pkgPath, cfg.ScanDirs) || matchesAny(pkgPath, cfg.AllowedPackages) {
		return nil, nil
	}

	forbidden := forbiddenSet(cfg.ForbiddenCalls)

	for _, file := range pass.Files {
		imports := buildImportMap(file)

		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			ident, ok := sel.X.(*ast.Ident)
			if !ok {
				return true
			}
			importPath, ok := imports[ident.Name]
			if !ok {
				return true
			}

			if forbidden[importPath+"."+sel.Sel.Name] {
				pass.Reportf(call.Pos(), "direct filesystem call %s.%s (use the injected afero.Fs instead)", ident.Name, sel.Sel.Name)
			}
			return true
		})
	}

	return nil, nil
}

// forbiddenSet flattens calls into "importpath.Func" keys.
func forbiddenSet(calls map[string][]string) map[string]bool {
	set := make(map[string]bool)
	for pkg, funcs := range calls {
		for _, fn := range funcs {
			set[pkg+"."+fn] = true
		}
	}
	return set
}

// matchesAny reports whether any pattern occurs in pkgPath as whole path
// segments.
func matchesAny(pkgPath string, patterns []string) bool {
	for _, p := range patterns {
		if hasSegments(pkgPath, p) {
			return true
		}
	}
	return false
}

// hasSegments reports whether pattern occurs in pkgPath as a run of whole
// segments: "internal/sync" matches ".../internal/sync" and
// ".../internal/sync/sub" but not ".../internal/syncer".
func hasSegments(pkgPath, pattern string) bool {
	pattern = strings.Trim(pattern, "/")
	if pattern == "" {
		return false
	}
	return strings.Contains("/"+pkgPath+"/", "/"+pattern+"/")
}

// buildImportMap builds a map from import alias to package path.
func buildImportMap(file *ast.File) map[string]string {
	imports := make(map[string]string)
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		var name string
		if imp.Name != nil {
			name = imp.Name.Name
		} else {
			parts := strings.Split(path, "/")
			name = parts[len(parts)-1]
		}
		if name == "_" || name == "." {
			continue
		}
		imports[name] = path
	}
	return imports
}
