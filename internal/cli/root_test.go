package cli

import (
	"testing"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	expectedCommands := []string{
		"init",
		"status",
	}

	actualCommands := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		actualCommands[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		if !actualCommands[expected] {
			t.Errorf("expected subcommand %q not found in root command", expected)
		}
	}
}

func TestRootCommandInfo(t *testing.T) {
	if rootCmd.Use != "dirmirror" {
		t.Errorf("expected root command use to be 'dirmirror', got %q", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("root command should have a short description")
	}

	if rootCmd.Long == "" {
		t.Error("root command should have a long description")
	}

	if rootCmd.RunE == nil {
		t.Error("root command should run the mirror")
	}
}

func TestRootCommandFlags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"source", "s", "./source_folder"},
		{"replica", "r", "./replica_folder"},
		{"log-folder", "l", "./log_folder"},
		{"interval", "i", "10"},
		{"config", "c", ""},
		{"watch", "w", "false"},
		{"yes", "y", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("flag --%s not defined", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("--%s shorthand = %q, want %q", tt.name, flag.Shorthand, tt.shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, want %q", tt.name, flag.DefValue, tt.defValue)
			}
		})
	}
}

func TestReportedErrorUnwraps(t *testing.T) {
	inner := errNotFound("x")
	err := reportedError{inner}
	if err.Unwrap() != inner {
		t.Error("reportedError should unwrap to the logged error")
	}
	if err.Error() != inner.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), inner.Error())
	}
}

type errNotFound string

func (e errNotFound) Error() string { return string(e) + " not found" }
