// Command generate_site renders README.md into site/index.html for the
// project page, embedding download links for any release archives found in
// the dist directory.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

func main() {
	outDir := "site"
	distDir := ""
	switch len(os.Args) {
	case 1:
	case 2:
		outDir = os.Args[1]
	case 3:
		outDir = os.Args[1]
		distDir = os.Args[2]
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s [out-dir] [dist-dir]\n", os.Args[0])
		os.Exit(1)
	}

	readme, err := os.ReadFile("README.md")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading README.md: %v\n", err)
		os.Exit(1)
	}

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse(readme)

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	})
	body := markdown.Render(doc, renderer)

	if distDir != "" {
		body = append(body, []byte(downloadsHTML(distDir))...)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", outDir, err)
		os.Exit(1)
	}
	indexPath := filepath.Join(outDir, "index.html")
	f, err := os.Create(indexPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating index.html: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	writeHeader(f)
	if _, err := f.Write(body); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing README content: %v\n", err)
		os.Exit(1)
	}
	writeFooter(f)

	fmt.Fprintf(os.Stderr, "Generated %s\n", indexPath)
}

// archivePattern matches release archives like
// jason_0.3.1_Linux_x86_64.tar.gz.
var archivePattern = regexp.MustCompile(`^jason_([^_]+(?:-[^_]+)*)_(Darwin|Linux|Windows)_(arm64|x86_64)\.(?:tar\.gz|zip)$`)

// downloadsHTML builds a download table from the archives in distDir.
func downloadsHTML(distDir string) string {
	entries, err := os.ReadDir(distDir)
	if err != nil {
		return ""
	}

	type archive struct {
		name, version, platform, arch string
	}
	var archives []archive
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := archivePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		archives = append(archives, archive{name: entry.Name(), version: m[1], platform: m[2], arch: m[3]})
	}
	if len(archives) == 0 {
		return ""
	}
	sort.Slice(archives, func(i, j int) bool {
		if archives[i].platform != archives[j].platform {
			return archives[i].platform < archives[j].platform
		}
		return archives[i].arch < archives[j].arch
	})

	var sb strings.Builder
	sb.WriteString(`<div class="downloads"><h2 id="downloads">Downloads</h2>`)
	sb.WriteString(fmt.Sprintf("<h3>%s</h3>", archives[0].version))
	sb.WriteString(`<table class="download-table"><tr><th>Platform</th><th>Architecture</th><th>Archive</th></tr>`)
	for _, a := range archives {
		sb.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td>%s</td><td><a href="%s">%s</a></td></tr>`,
			a.platform, a.arch, a.name, a.name,
		))
	}
	sb.WriteString("</table></div>\n")
	return sb.String()
}

func writeHeader(w io.Writer) {
	fmt.Fprint(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>jason - terminal JSON explorer</title>
<style>
body { max-width: 860px; margin: 2rem auto; padding: 0 1rem; font-family: -apple-system, "Segoe UI", sans-serif; line-height: 1.6; color: #24292f; }
pre { background: #f6f8fa; padding: 1rem; border-radius: 6px; overflow-x: auto; }
code { background: #f6f8fa; padding: 0.1rem 0.3rem; border-radius: 4px; font-size: 0.92em; }
pre code { padding: 0; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d0d7de; padding: 0.4rem 0.8rem; }
a { color: #0969da; }
</style>
</head>
<body>
`)
}

func writeFooter(w io.Writer) {
	fmt.Fprint(w, `
</body>
</html>
`)
}
