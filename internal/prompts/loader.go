// Package prompts holds the embedded copywriting templates and assembles the
// prompt sent to the model for one card.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// templateFiles maps a filename to a sync.OnceValues loader for its parsed contents.
var templateFiles sync.Map

// Get returns the template stored under key in the embedded file.
func Get(filename, key string) (string, error) {
	templates, err := templatesIn(filename)
	if err != nil {
		return "", err
	}

	if text, ok := templates[key]; ok {
		return text, nil
	}
	return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
}

// MustGet panics when the template is missing.
func MustGet(filename, key string) string {
	text, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return text
}

// Format substitutes {{.Key}} placeholders in one pass, so substituted
// values are never expanded again. Placeholders without data stay as written.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func templatesIn(filename string) (map[string]string, error) {
	loader, _ := templateFiles.LoadOrStore(filename, sync.OnceValues(func() (map[string]string, error) {
		return parseFile(filename)
	}))
	return loader.(func() (map[string]string, error))()
}

func parseFile(filename string) (map[string]string, error) {
	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	templates := make(map[string]string)
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	return templates, nil
}
