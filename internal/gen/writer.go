package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// GeneratedFile is a rendered Rust source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "command_companion.rs").
	Filename string
	// Content is the rendered source.
	Content []byte
}

// Files renders every unit that produced items or errors into a file. Only
// the first unit mapping to a file name is rendered.
func (g *Generator) Files(units []*Unit) []GeneratedFile {
	files := make([]GeneratedFile, 0, len(units))
	seen := make(map[string]bool, len(units))

	for _, u := range units {
		name := u.Filename()
		if seen[name] {
			continue
		}

		seen[name] = true

		if len(u.Items) == 0 && (!g.config.EmbedDiagnostics || !u.Diagnostics.HasErrors()) {
			continue
		}

		files = append(files, GeneratedFile{
			Filename: name,
			Content:  u.Render(g.config.EmbedDiagnostics),
		})
	}

	return files
}

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
