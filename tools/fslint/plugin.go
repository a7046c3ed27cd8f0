package fslint

import (
	"fmt"
	"os"

	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"
)

// DefaultConfigFile is read when the golangci-lint settings name no config.
const DefaultConfigFile = ".fslint.toml"

func init() {
	register.Plugin("fslint", New)
}

// PluginSettings are the fslint settings of a golangci-lint custom linter.
type PluginSettings struct {
	Config string `json:"config"`
}

// New builds the golangci-lint plugin from its decoded settings.
func New(settings any) (register.LinterPlugin, error) {
	s, err := register.DecodeSettings[PluginSettings](settings)
	if err != nil {
		return nil, err
	}
	if s.Config == "" {
		s.Config = DefaultConfigFile
	}
	return &fslintPlugin{settings: s}, nil
}

type fslintPlugin struct {
	settings PluginSettings
}

// BuildAnalyzers fails early on a missing config so a misconfigured lint run
// does not report once per package.
func (p *fslintPlugin) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	if _, err := os.Stat(p.settings.Config); err != nil {
		return nil, fmt.Errorf("fslint config %s: %w", p.settings.Config, err)
	}
	configFile = p.settings.Config
	return []*analysis.Analyzer{Analyzer}, nil
}

// Only imports and call expressions are inspected.
func (p *fslintPlugin) GetLoadMode() string {
	return register.LoadModeSyntax
}
