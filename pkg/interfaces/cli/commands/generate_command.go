package commands

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/inventory/pkg/domain/entities"
	"github.com/vsinha/inventory/pkg/infrastructure/persistence/jsonfile"
	"github.com/vsinha/inventory/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/inventory/pkg/infrastructure/repositories/memory"
)

// GenerateConfig holds configuration for sample record generation
type GenerateConfig struct {
	Records    int     // Number of records to generate
	Categories int     // Number of distinct categories to spread records over
	Coverage   float64 // Stock multiplier against threshold (e.g., 0.5 = mostly low, 3.0 = mostly in stock)
	OutputFile string  // Destination; .json writes a store file, .csv writes export format
	Seed       int64   // Random seed for reproducible generation
	Help       bool    // Show help
	Verbose    bool    // Verbose output
}

// GenerateCommand handles sample record generation
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
	stdout io.Writer
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig, stdout io.Writer) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
		stdout: stdout,
	}
}

var sampleCatalog = map[string][]string{
	"Fruit":       {"Apple", "Banana", "Cherry", "Pear", "Plum", "Mango"},
	"Tools":       {"Drill", "Saw", "Hammer", "Wrench", "Sander", "Level"},
	"Office":      {"Stapler", "Printer", "Desk Lamp", "Shredder", "Monitor"},
	"Cleaning":    {"Mop", "Bleach", "Sponge", "Vacuum", "Bucket"},
	"Electronics": {"Cable", "Router", "Switch", "Battery", "Adapter"},
	"Kitchen":     {"Kettle", "Blender", "Knife Set", "Toaster", "Pan"},
}

// sampleCategories is the catalog in a fixed order so seeds are reproducible
var sampleCategories = []string{"Fruit", "Tools", "Office", "Cleaning", "Electronics", "Kitchen"}

var sampleSuppliers = []string{"FarmCo", "Acme", "Globex", "Initech", "Umbrella Supply", "Northwind"}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}

	if err := cmd.validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.stdout,
			"🔧 Generating %d records over %d categories, %.1fx coverage\n",
			cmd.config.Records,
			cmd.categoryCount(),
			cmd.config.Coverage,
		)
		fmt.Fprintf(cmd.stdout, "📁 Output file: %s\n", cmd.config.OutputFile)
	}

	repo := memory.NewRecordRepository(cmd.config.Records, memory.WithIDGenerator(cmd.newID))
	for i := 0; i < cmd.config.Records; i++ {
		if _, err := repo.Add(ctx, cmd.generateInput(i)); err != nil {
			return fmt.Errorf("failed to generate record %d: %w", i+1, err)
		}
	}

	if err := cmd.write(ctx, repo.All()); err != nil {
		return err
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.stdout, "✅ %d records written to %s\n", repo.Len(), cmd.config.OutputFile)
	}
	return nil
}

func (cmd *GenerateCommand) validate() error {
	if cmd.config.Records <= 0 {
		return fmt.Errorf("-records must be positive, got %d", cmd.config.Records)
	}
	if cmd.config.Coverage < 0 {
		return fmt.Errorf("-coverage cannot be negative, got %.2f", cmd.config.Coverage)
	}
	if cmd.config.OutputFile == "" {
		return fmt.Errorf("-output is required")
	}
	switch strings.ToLower(filepath.Ext(cmd.config.OutputFile)) {
	case ".json", ".csv":
		return nil
	default:
		return fmt.Errorf("-output must end in .json or .csv: %s", cmd.config.OutputFile)
	}
}

func (cmd *GenerateCommand) categoryCount() int {
	n := cmd.config.Categories
	if n <= 0 || n > len(sampleCategories) {
		return len(sampleCategories)
	}
	return n
}

// newID derives uuids from the seeded source so output is reproducible
func (cmd *GenerateCommand) newID() entities.RecordID {
	id, err := uuid.NewRandomFromReader(cmd.rand)
	if err != nil {
		return entities.RecordID(uuid.NewString())
	}
	return entities.RecordID(id.String())
}

// generateInput creates one plausible record
func (cmd *GenerateCommand) generateInput(i int) entities.RecordInput {
	category := sampleCategories[i%cmd.categoryCount()]
	names := sampleCatalog[category]
	name := names[cmd.rand.Intn(len(names))]

	kind := entities.Product
	if category == "Tools" || category == "Office" || cmd.rand.Float64() < 0.15 {
		kind = entities.Equipment
	}

	threshold := entities.Quantity(cmd.rand.Intn(20))
	quantity := cmd.generateQuantity(threshold)

	// prices in cents keep the decimal exact
	cents := int64(25 + cmd.rand.Intn(20000))
	if kind == entities.Equipment {
		cents *= 5
	}

	input := entities.RecordInput{
		Name:      fmt.Sprintf("%s %03d", name, i+1),
		Category:  category,
		ItemKind:  kind,
		Quantity:  quantity,
		Threshold: threshold,
		UnitPrice: decimal.New(cents, -2),
		Supplier:  sampleSuppliers[cmd.rand.Intn(len(sampleSuppliers))],
	}
	if cmd.rand.Float64() < 0.2 {
		input.Notes = "Check with supplier before reorder"
	}
	return input
}

// generateQuantity scales stock against the threshold by the coverage
// multiplier, with some records emptied outright
func (cmd *GenerateCommand) generateQuantity(threshold entities.Quantity) entities.Quantity {
	if cmd.rand.Float64() < 0.1 {
		return 0
	}
	base := float64(threshold)
	if base == 0 {
		base = 10
	}
	jitter := 0.5 + cmd.rand.Float64()
	return entities.Quantity(base * cmd.config.Coverage * jitter)
}

func (cmd *GenerateCommand) write(ctx context.Context, records []entities.InventoryRecord) error {
	if strings.EqualFold(filepath.Ext(cmd.config.OutputFile), ".json") {
		if err := jsonfile.NewFileStore(cmd.config.OutputFile).Save(ctx, records); err != nil {
			return fmt.Errorf("failed to write records: %w", err)
		}
		return nil
	}

	if dir := filepath.Dir(cmd.config.OutputFile); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	file, err := os.Create(cmd.config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := csv.NewExporter().Write(file, records); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// printHelp shows usage information
func (cmd *GenerateCommand) printHelp() {
	fmt.Fprintln(cmd.stdout, `Inventory Sample Generator

USAGE:
    inventory generate [OPTIONS]

OPTIONS:
    -records <N>        Number of records to generate (required)
    -categories <N>     Number of categories to use, up to 6 (default: all)
    -coverage <F>       Stock multiplier against threshold (e.g., 0.5 = mostly low stock, 3.0 = mostly in stock)
    -output <FILE>      Output file, .json for a store file or .csv for export format (required)
    -seed <N>           Random seed for reproducible generation (optional)
    -verbose            Enable verbose output
    -help               Show this help message

EXAMPLES:
    # Generate a small store
    inventory generate -records 50 -coverage 1.5 -output records.json

    # Generate a reproducible CSV for import
    inventory generate -records 1000 -coverage 0.8 -output sample.csv -seed 12345`)
}
