package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Outputs are the files written for one input document.
type Outputs struct {
	Drawing string
	Program string
	Preview string
}

// OutputPaths returns the output files for input. Outputs go next to the
// input unless dir is set.
func OutputPaths(input, dir string) Outputs {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return Outputs{
		Drawing: filepath.Join(dir, stem+".stripped.svg"),
		Program: filepath.Join(dir, stem+".gcode"),
		Preview: filepath.Join(dir, stem+".preview.png"),
	}
}

// Expand resolves file names and glob patterns into input files, in the
// order given and without duplicates. Names without glob characters are
// kept as they are so that a missing file is reported when it is read. A
// pattern matching nothing is an error.
func Expand(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		if !strings.ContainsAny(p, "*?[") {
			if !seen[p] {
				seen[p] = true
				files = append(files, p)
			}
			continue
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", p)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// writeFile replaces path with data. The data goes to a temporary file in
// the same directory first, so readers never see a partial file.
func writeFile(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
