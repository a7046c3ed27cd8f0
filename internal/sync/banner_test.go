package sync

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestRenderBanner(t *testing.T) {
	failed := func(n int) []string {
		var out []string
		for i := 0; i < n; i++ {
			out = append(out, fmt.Sprintf("/replica/file%d.txt", i))
		}
		return out
	}

	tests := []struct {
		name       string
		report     *Report
		wantEmpty  bool
		wantChecks []func(t *testing.T, output string)
	}{
		{
			name:      "nil report produces no output",
			report:    nil,
			wantEmpty: true,
		},
		{
			name:      "clean cycle produces no output",
			report:    &Report{Created: 3, Deleted: 1},
			wantEmpty: true,
		},
		{
			name:   "single failure uses singular form",
			report: &Report{Failed: []string{"/replica/a.txt"}},
			wantChecks: []func(t *testing.T, output string){
				func(t *testing.T, output string) {
					if !strings.Contains(output, "1 item not synchronized") {
						t.Errorf("expected singular 'item', got: %s", output)
					}
				},
				func(t *testing.T, output string) {
					if !strings.Contains(output, "/replica/a.txt") {
						t.Errorf("expected path in output: %s", output)
					}
				},
			},
		},
		{
			name:   "unreadable paths are listed before failed ones",
			report: &Report{Failed: []string{"/replica/b"}, Unreadable: []string{"/src/locked"}},
			wantChecks: []func(t *testing.T, output string){
				func(t *testing.T, output string) {
					if !strings.Contains(output, "2 items") {
						t.Errorf("expected plural '2 items', got: %s", output)
					}
					if strings.Index(output, "/src/locked") > strings.Index(output, "/replica/b") {
						t.Errorf("expected unreadable path first: %s", output)
					}
				},
			},
		},
		{
			name:   "exactly three shows no overflow",
			report: &Report{Failed: failed(3)},
			wantChecks: []func(t *testing.T, output string){
				func(t *testing.T, output string) {
					if strings.Contains(output, "...and") {
						t.Errorf("should not show 'and more' for exactly 3: %s", output)
					}
				},
			},
		},
		{
			name:   "ten failures shows overflow count of 7",
			report: &Report{Failed: failed(10)},
			wantChecks: []func(t *testing.T, output string){
				func(t *testing.T, output string) {
					if !strings.Contains(output, "10 items") {
						t.Errorf("expected '10 items', got: %s", output)
					}
				},
				func(t *testing.T, output string) {
					if !strings.Contains(output, "...and 7 more") {
						t.Errorf("expected '...and 7 more', got: %s", output)
					}
				},
				func(t *testing.T, output string) {
					if strings.Contains(output, "file3.txt") {
						t.Errorf("should not show paths beyond first 3: %s", output)
					}
				},
			},
		},
		{
			name:   "non-TTY output strips ANSI codes",
			report: &Report{Failed: []string{"/replica/x"}},
			wantChecks: []func(t *testing.T, output string){
				func(t *testing.T, output string) {
					if strings.Contains(output, "\033[") {
						t.Errorf("expected no ANSI escape codes for non-TTY writer: %s", output)
					}
				},
			},
		},
		{
			name:   "unicode paths rendered correctly",
			report: &Report{Failed: []string{"/replica/目录/文件.txt"}},
			wantChecks: []func(t *testing.T, output string){
				func(t *testing.T, output string) {
					if !strings.Contains(output, "目录/文件.txt") {
						t.Errorf("expected unicode path in output: %s", output)
					}
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			RenderBanner(tt.report, &buf)
			output := buf.String()

			if tt.wantEmpty {
				if output != "" {
					t.Errorf("expected empty output, got: %q", output)
				}
				return
			}
			if output == "" {
				t.Fatal("expected non-empty output")
			}
			for _, check := range tt.wantChecks {
				check(t, output)
			}
		})
	}
}
