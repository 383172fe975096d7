package review

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	ConsoleIndent = "  "
	FileIndent    = "    "
)

// FileName derives the output file name from topic. The topic is
// lowercased and spaces become underscores, nothing else is changed.
func FileName(topic string) string {
	return "reviews_" + strings.ToLower(strings.ReplaceAll(topic, " ", "_")) + ".json"
}

// WriteFile writes r into dir under [FileName] of topic, replacing any
// previous file. dir must exist. It returns the written path.
func WriteFile(dir, topic string, r Result) (string, error) {
	path := filepath.Join(dir, FileName(topic))

	data, err := r.Indent(FileIndent)
	if err != nil {
		return "", fmt.Errorf("failed to render result: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write result to '%s': %w", path, err)
	}
	return path, nil
}
