// Package sounds bundles the built-in notification responses.
package sounds

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jmylchreest/cargo-clicker/internal/model"
)

// EmbeddedSounds contains every bundled response file.
// Files are grouped by outcome through their name prefix.
//
//go:embed sounds/*.wav
var EmbeddedSounds embed.FS

// Sound is a single bundled response.
type Sound struct {
	Name string
	Data []byte
}

// prefixes maps an outcome to the file name prefix of its bundled sounds.
// There are no negative sounds bundled; failed builds stay quiet unless the
// user provides their own responses.
var prefixes = map[model.Outcome]string{
	model.Positive: "positive",
	model.Negative: "negative",
}

// Builtin returns the bundled sounds for an outcome, sorted by name.
// The result may be empty.
func Builtin(outcome model.Outcome) []Sound {
	prefix, ok := prefixes[outcome]
	if !ok {
		return nil
	}

	entries, err := fs.ReadDir(EmbeddedSounds, "sounds")
	if err != nil {
		return nil
	}

	var result []Sound
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		data, err := EmbeddedSounds.ReadFile(path.Join("sounds", entry.Name()))
		if err != nil {
			continue
		}
		result = append(result, Sound{Name: entry.Name(), Data: data})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
