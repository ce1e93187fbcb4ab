// Package scaffold manages the tip-card folder layout around the photos:
// generating the numbered folders with templated READMEs and migrating the
// older Day_NNN naming to Tip_NNN.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// readmeTemplate is the starting README dropped into each tip folder.
var readmeTemplate = template.Must(template.New("readme").Parse(`# Tip {{.Number}}: [Tip Title]

## Description
[Description of the tip]

## Code Snippet
` + "```csharp" + `
// Code here
` + "```" + `

## Resources
- [Link to documentation]
`))

// CreateTipFolders creates Tip_001 through Tip_NNN under root, each with a
// templated README.md. Existing folders are kept; an existing README.md is
// never overwritten, so re-running after partial edits is safe.
func CreateTipFolders(root string, count int) error {
	for i := 1; i <= count; i++ {
		dir := filepath.Join(root, fmt.Sprintf("Tip_%03d", i))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}

		readme := filepath.Join(dir, "README.md")
		if _, err := os.Stat(readme); err == nil {
			continue
		}

		f, err := os.Create(readme)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", readme, err)
		}
		err = readmeTemplate.Execute(f, struct{ Number int }{i})
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", readme, err)
		}
	}
	return nil
}

// RenameDayFolders renames every Day_NNN folder under root to Tip_NNN and
// rewrites "Day <n>" to "Tip <n>" inside each folder's README.md, if the
// README still carries the templated header. Folders already renamed are
// skipped; the number of folders renamed is returned.
func RenameDayFolders(root string) (int, error) {
	renamed := 0
	for i := 1; i <= 999; i++ {
		oldPath := filepath.Join(root, fmt.Sprintf("Day_%03d", i))
		if _, err := os.Stat(oldPath); err != nil {
			continue
		}

		newPath := filepath.Join(root, fmt.Sprintf("Tip_%03d", i))
		if err := os.Rename(oldPath, newPath); err != nil {
			return renamed, fmt.Errorf("failed to rename %s: %w", oldPath, err)
		}
		renamed++

		if err := retitleReadme(filepath.Join(newPath, "README.md"), i); err != nil {
			return renamed, err
		}
	}
	return renamed, nil
}

// retitleReadme replaces the templated "Day <n>" header with "Tip <n>".
// A missing README or one without the templated header is left alone.
func retitleReadme(path string, number int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := string(data)
	updated := strings.ReplaceAll(content,
		fmt.Sprintf("Day %d", number), fmt.Sprintf("Tip %d", number))
	if updated == content {
		return nil
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", path, err)
	}
	return nil
}
