// Command gendocs renders the dirmirror command tree as markdown pages, man
// pages or shell completions.
//
//	gendocs <markdown|man|completions|all> [outdir]
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/bolasblack/dirmirror/internal/cli"
)

const usage = "Usage: gendocs <markdown|man|completions|all> [outdir]"

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}
	out := "out"
	if len(os.Args) > 2 {
		out = os.Args[2]
	}

	cmd := cli.GetRootCmd()
	cmd.DisableAutoGenTag = true
	date := buildDate()

	switch os.Args[1] {
	case "markdown":
		generateMarkdown(cmd, filepath.Join(out, "commands"), date)
	case "man":
		generateMan(cmd, filepath.Join(out, "man"), date)
	case "completions":
		generateCompletions(cmd, filepath.Join(out, "completions"))
	case "all":
		generateMarkdown(cmd, filepath.Join(out, "commands"), date)
		generateMan(cmd, filepath.Join(out, "man"), date)
		generateCompletions(cmd, filepath.Join(out, "completions"))
	default:
		fmt.Printf("Unknown format: %s\n%s\n", os.Args[1], usage)
		os.Exit(1)
	}
}

// buildDate honours SOURCE_DATE_EPOCH so release docs are reproducible.
func buildDate() time.Time {
	if epoch := os.Getenv("SOURCE_DATE_EPOCH"); epoch != "" {
		if secs, err := strconv.ParseInt(epoch, 10, 64); err == nil {
			return time.Unix(secs, 0).UTC()
		}
	}
	return time.Now().UTC()
}

// commandsByFile maps generated markdown file names to their command, so
// front matter can carry the short description.
func commandsByFile(root *cobra.Command) map[string]*cobra.Command {
	byFile := map[string]*cobra.Command{}
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		byFile[strings.ReplaceAll(c.CommandPath(), " ", "_")+".md"] = c
		for _, sub := range c.Commands() {
			if sub.IsAvailableCommand() {
				walk(sub)
			}
		}
	}
	walk(root)
	return byFile
}

func generateMarkdown(cmd *cobra.Command, dir string, date time.Time) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	byFile := commandsByFile(cmd)
	filePrepender := func(filename string) string {
		name := filepath.Base(filename)
		title := strings.ReplaceAll(strings.TrimSuffix(name, filepath.Ext(name)), "_", " ")
		description := ""
		if c, ok := byFile[name]; ok {
			description = c.Short
		}
		return fmt.Sprintf("---\ntitle: %q\ndescription: %q\ndate: %s\n---\n\n",
			title, description, date.Format("2006-01-02"))
	}
	linkHandler := func(name string) string {
		return "./" + name
	}

	if err := doc.GenMarkdownTreeCustom(cmd, dir, filePrepender, linkHandler); err != nil {
		log.Fatalf("Failed to generate markdown: %v", err)
	}
	fmt.Printf("Generated markdown documentation in %s/\n", dir)
}

func generateCompletions(cmd *cobra.Command, dir string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	name := cmd.Name()
	shells := map[string]func(*os.File) error{
		name + ".bash": func(f *os.File) error { return cmd.GenBashCompletionV2(f, true) },
		"_" + name:     func(f *os.File) error { return cmd.GenZshCompletion(f) },
		name + ".fish": func(f *os.File) error { return cmd.GenFishCompletion(f, true) },
		name + ".ps1":  func(f *os.File) error { return cmd.GenPowerShellCompletionWithDesc(f) },
	}
	for file, gen := range shells {
		writeCompletion(filepath.Join(dir, file), gen)
	}
	fmt.Printf("Generated shell completions in %s/\n", dir)
}

func writeCompletion(path string, gen func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	if err := gen(f); err != nil {
		_ = f.Close()
		log.Fatalf("Failed to generate %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to close %s: %v", path, err)
	}
}

func generateMan(cmd *cobra.Command, dir string, date time.Time) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	header := &doc.GenManHeader{
		Title:   "DIRMIRROR",
		Section: "1",
		Date:    &date,
		Source:  "dirmirror " + cli.Version,
		Manual:  "Dirmirror Manual",
	}

	if err := doc.GenManTree(cmd, header, dir); err != nil {
		log.Fatalf("Failed to generate man pages: %v", err)
	}
	fmt.Printf("Generated man pages in %s/\n", dir)
}
