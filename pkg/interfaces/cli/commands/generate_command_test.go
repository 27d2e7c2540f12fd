package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/inventory/pkg/infrastructure/persistence/jsonfile"
	"github.com/vsinha/inventory/pkg/infrastructure/repositories/csv"
)

func TestGenerateCommand_JSON(t *testing.T) {
	output := filepath.Join(t.TempDir(), "records.json")
	cmd := NewGenerateCommand(GenerateConfig{
		Records:    25,
		Categories: 3,
		Coverage:   1.0,
		OutputFile: output,
		Seed:       42,
	}, &bytes.Buffer{})

	require.NoError(t, cmd.Execute(context.Background()))

	records, err := jsonfile.NewFileStore(output).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 25)

	categories := make(map[string]bool)
	ids := make(map[string]bool)
	for _, r := range records {
		assert.NoError(t, r.Validate())
		categories[r.Category] = true
		ids[string(r.ID)] = true
	}
	assert.Len(t, categories, 3)
	assert.Len(t, ids, 25)
}

func TestGenerateCommand_SeedIsReproducible(t *testing.T) {
	dir := t.TempDir()
	generate := func(name string) []string {
		output := filepath.Join(dir, name)
		cmd := NewGenerateCommand(GenerateConfig{Records: 10, Coverage: 2, OutputFile: output, Seed: 7}, &bytes.Buffer{})
		require.NoError(t, cmd.Execute(context.Background()))

		records, err := csv.NewLoader().LoadRecords(output)
		require.NoError(t, err)

		var out []string
		for _, r := range records {
			out = append(out, string(r.ID)+"|"+r.Name+"|"+r.UnitPrice.String())
		}
		return out
	}

	assert.Equal(t, generate("a.csv"), generate("b.csv"))
}

func TestGenerateCommand_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config GenerateConfig
	}{
		{"no records", GenerateConfig{OutputFile: "x.json"}},
		{"negative coverage", GenerateConfig{Records: 1, Coverage: -1, OutputFile: "x.json"}},
		{"no output", GenerateConfig{Records: 1}},
		{"bad extension", GenerateConfig{Records: 1, OutputFile: "x.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewGenerateCommand(tt.config, &bytes.Buffer{}).Execute(context.Background())
			assert.ErrorContains(t, err, "validation error")
		})
	}
}

func TestGenerateCommand_Help(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, NewGenerateCommand(GenerateConfig{Help: true}, &stdout).Execute(context.Background()))
	assert.Contains(t, stdout.String(), "inventory generate")
}
