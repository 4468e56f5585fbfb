package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cardcopy/internal/types"
)

// fieldFlags are the input flags shared by generate and assess.
type fieldFlags struct {
	file  string
	pairs []string
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "fields", "f", "", "Path to a JSON object of field values")
	cmd.Flags().StringArrayVar(&f.pairs, "field", nil, "Field value as name=value (repeatable)")
}

// load reads the field file, then applies --field pairs in order.
func (f *fieldFlags) load() (types.FieldSet, error) {
	if f.file == "" && len(f.pairs) == 0 {
		return types.FieldSet{}, fmt.Errorf("either --fields or --field is required")
	}

	var fields types.FieldSet
	if f.file != "" {
		content, err := os.ReadFile(f.file)
		if err != nil {
			return types.FieldSet{}, fmt.Errorf("failed to read fields file: %w", err)
		}
		if err := json.Unmarshal(content, &fields); err != nil {
			return types.FieldSet{}, fmt.Errorf("failed to unmarshal fields JSON: %w", err)
		}
	}

	for _, pair := range f.pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return types.FieldSet{}, fmt.Errorf("invalid --field %q, expected name=value", pair)
		}
		fields = fields.With(name, value)
	}

	return fields, nil
}
