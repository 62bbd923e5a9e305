package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// artifactWriteParams describes rendered artifacts and where they go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	nodes     int
	links     int
}

// outputPaths maps each format to its file. A single format uses output
// verbatim when given; otherwise files are <base>.<format>.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeArtifacts writes every requested format and prints a summary.
func writeArtifacts(p artifactWriteParams) error {
	paths := outputPaths(p.formats, p.input, p.output)

	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("no %s output produced", format)
		}
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	printSuccess("Rendered %d file(s)", len(p.formats))
	for _, format := range p.formats {
		printFile(paths[format])
	}
	printStats(p.nodes, p.links, p.cacheHit)
	return nil
}
