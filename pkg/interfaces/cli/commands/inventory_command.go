package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vsinha/inventory/pkg/application/services"
	"github.com/vsinha/inventory/pkg/application/services/report"
	"github.com/vsinha/inventory/pkg/application/services/view"
	"github.com/vsinha/inventory/pkg/domain/entities"
	"github.com/vsinha/inventory/pkg/domain/repositories"
	"github.com/vsinha/inventory/pkg/infrastructure/events"
	"github.com/vsinha/inventory/pkg/infrastructure/logging"
	"github.com/vsinha/inventory/pkg/infrastructure/persistence/jsonfile"
	"github.com/vsinha/inventory/pkg/infrastructure/persistence/postgres"
	"github.com/vsinha/inventory/pkg/infrastructure/persistence/redis"
	"github.com/vsinha/inventory/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/inventory/pkg/interfaces/cli/output"
)

// InventoryCommand loads the record store, applies at most one mutation
// and renders a report of the requested view.
type InventoryCommand struct {
	config Config
	stdout io.Writer
	stderr io.Writer
}

// NewInventoryCommand creates a new inventory command with the given configuration
func NewInventoryCommand(config Config, stdout, stderr io.Writer) *InventoryCommand {
	return &InventoryCommand{
		config: config,
		stdout: stdout,
		stderr: stderr,
	}
}

// Execute runs the inventory command
func (c *InventoryCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.config.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	level, _ := logging.ParseLevel(c.config.LogLevel)
	if c.config.Verbose {
		level = logging.DebugLevel
	}
	logger := logging.NewStdLogger(c.stderr, level)

	persister, closePersister, err := c.openPersister(ctx, logger)
	if err != nil {
		return err
	}
	defer closePersister()

	eventStore := events.NewInMemoryEventStore(logger)
	if _, err := eventStore.Subscribe(events.RecordEventTypes, events.HandlerFunc(func(event events.Event) error {
		logger.Debug("record event", map[string]interface{}{
			"type":   event.Type(),
			"stream": event.StreamID(),
		})
		return nil
	})); err != nil {
		return fmt.Errorf("failed to subscribe to record events: %w", err)
	}

	repoOpts := []memory.Option{
		memory.WithLogger(logger),
		memory.WithEventStore(eventStore),
	}
	var repo *memory.RecordRepository
	if persister != nil {
		repo, err = memory.Open(ctx, persister, repoOpts...)
		if err != nil {
			return err
		}
	} else {
		repo = memory.NewRecordRepository(0, repoOpts...)
	}

	engine, err := view.NewEngineForLocale(c.config.Locale)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	svc := services.NewInventoryService(repo, engine, logger)

	if c.config.ImportFile != "" {
		count, err := svc.ImportCSVFile(ctx, c.config.ImportFile)
		if err != nil {
			return fmt.Errorf("error importing records: %w", err)
		}
		logger.Info("records imported", map[string]interface{}{
			"file":  c.config.ImportFile,
			"count": count,
		})
	}

	if err := c.applyMutation(ctx, svc, logger); err != nil {
		return err
	}

	req, err := c.viewRequest()
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	rep, err := svc.Report(req)
	if err != nil {
		return fmt.Errorf("error building report: %w", err)
	}

	if c.config.ExportFile != "" {
		if err := c.export(svc, req); err != nil {
			return err
		}
	}

	outputConfig := output.Config{
		Format:  c.config.Format,
		Verbose: c.config.Verbose,
	}
	if err := output.Generate(c.stdout, rep, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}

// openPersister connects to the configured record source. The returned
// close function is always safe to call.
func (c *InventoryCommand) openPersister(ctx context.Context, logger logging.Logger) (repositories.Persister, func(), error) {
	noop := func() {}

	switch {
	case c.config.DataFile != "":
		logger.Debug("using JSON file store", map[string]interface{}{"path": c.config.DataFile})
		return jsonfile.NewFileStore(c.config.DataFile), noop, nil

	case c.config.RedisAddr != "":
		store, err := redis.Connect(ctx, c.config.RedisAddr, c.config.RedisKey)
		if err != nil {
			return nil, noop, err
		}
		logger.Debug("using redis store", map[string]interface{}{
			"addr": c.config.RedisAddr,
			"key":  store.Key(),
		})
		return store, func() { store.Close() }, nil

	case c.config.PostgresDSN != "":
		db, err := postgres.ConnectPostgres(c.config.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		store := postgres.NewStore(db, c.config.PostgresTable)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, noop, err
		}
		logger.Debug("using postgres store", map[string]interface{}{"table": c.config.PostgresTable})
		return store, func() { db.Close() }, nil

	default:
		return nil, noop, nil
	}
}

func (c *InventoryCommand) applyMutation(ctx context.Context, svc *services.InventoryService, logger logging.Logger) error {
	switch {
	case c.config.Add != "":
		var input entities.RecordInput
		if err := decodeStrict(c.config.Add, &input); err != nil {
			return fmt.Errorf("invalid -add record: %w", err)
		}
		id, err := svc.Add(ctx, input)
		if err != nil {
			return fmt.Errorf("error adding record: %w", err)
		}
		logger.Info("record added", map[string]interface{}{"id": id, "name": input.Name})

	case c.config.Update != "":
		rawID, rawPatch, _ := strings.Cut(c.config.Update, "=")
		id := entities.RecordID(strings.TrimSpace(rawID))

		var patch entities.RecordPatch
		if err := decodeStrict(rawPatch, &patch); err != nil {
			return fmt.Errorf("invalid -update patch: %w", err)
		}
		if err := svc.Update(ctx, id, patch); err != nil {
			return fmt.Errorf("error updating record: %w", err)
		}
		logger.Info("record updated", map[string]interface{}{"id": id})

	case c.config.Remove != "":
		id := entities.RecordID(strings.TrimSpace(c.config.Remove))
		if err := svc.Remove(ctx, id); err != nil {
			return fmt.Errorf("error removing record: %w", err)
		}
		logger.Info("record removed", map[string]interface{}{"id": id})
	}
	return nil
}

func (c *InventoryCommand) viewRequest() (services.ViewRequest, error) {
	kind, err := view.ParseKindFilter(c.config.Kind)
	if err != nil {
		return services.ViewRequest{}, err
	}
	status, err := view.ParseStatusFilter(c.config.Status)
	if err != nil {
		return services.ViewRequest{}, err
	}
	field, err := view.ParseSortField(c.config.SortField)
	if err != nil {
		return services.ViewRequest{}, err
	}
	order, err := view.ParseSortOrder(c.config.SortOrder)
	if err != nil {
		return services.ViewRequest{}, err
	}
	dim, err := report.ParseDimension(c.config.Group)
	if err != nil {
		return services.ViewRequest{}, err
	}

	return services.ViewRequest{
		Filter: view.Filter{
			Search:   c.config.Search,
			Category: c.config.Category,
			Kind:     kind,
			Status:   status,
		},
		Sort:     view.Sort{Field: field, Order: order},
		Grouping: dim,
	}, nil
}

func (c *InventoryCommand) export(svc *services.InventoryService, req services.ViewRequest) error {
	file, err := os.Create(c.config.ExportFile)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := svc.ExportCSV(file, svc.View(req.Filter, req.Sort)); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	return nil
}

// decodeStrict rejects unknown fields so typos are not silently dropped
func decodeStrict(raw string, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// showHelp displays the help message
func (c *InventoryCommand) showHelp() {
	fmt.Fprint(c.stdout, `Inventory CLI - stock records, reorder alerts and reports

USAGE:
    inventory -data <file> [OPTIONS]        # JSON file store
    inventory -redis <addr> [OPTIONS]       # Redis store
    inventory -postgres <dsn> [OPTIONS]     # PostgreSQL store
    inventory -import <file.csv> [OPTIONS]  # CSV import (combine with a store to replace it)
    inventory generate [OPTIONS]            # Generate sample records

SOURCE OPTIONS:
    -data <file>            Path to the JSON records file
    -redis <addr>           Redis address (key set with -redis-key)
    -postgres <dsn>         PostgreSQL connection string (table set with -postgres-table)
    -import <file>          Replace the records with a CSV file in export format
    -config <file>          YAML or JSON config file

MUTATIONS (one per run):
    -add <json>             Add a record, e.g. '{"name":"Apple","category":"Fruit",...}'
    -update <id>=<json>     Merge a JSON patch into a record
    -remove <id>            Remove a record

VIEW OPTIONS:
    -search <text>          Case-insensitive match on name, category, supplier, notes
    -category <name>        Exact category
    -kind <kind>            product, equipment, all (default: all)
    -status <status>        OutOfStock, LowStock, InStock, all (default: all)
    -sort <field>           name, category, quantity, unitPrice
    -order <order>          asc, desc (default: asc)
    -group <dim>            category, status, itemKind (default: category)
    -locale <tag>           BCP 47 locale for string sorting

OUTPUT OPTIONS:
    -format <fmt>           text, json (default: text)
    -export <file>          Write the current view as CSV
    -log-level <level>      debug, info, warn, error (default: info)
    -verbose                Enable verbose output
    -help                   Show this help message

ENVIRONMENT:
    Every file option can also be set as INVENTORY_<NAME>, e.g. INVENTORY_DATA_FILE,
    INVENTORY_REDIS_ADDR, INVENTORY_POSTGRES_DSN, INVENTORY_FORMAT. A .env file in the
    working directory is loaded first. Flags override environment, environment overrides
    the config file.

EXAMPLES:
    # Show low stock fruit sorted by quantity
    inventory -data records.json -category Fruit -status LowStock -sort quantity

    # Add a record
    inventory -data records.json -add '{"name":"Apple","category":"Fruit","itemKind":"product","quantity":5,"threshold":10,"unitPrice":"1.50","supplier":"FarmCo"}'

    # Mark a record out of stock and print JSON
    inventory -data records.json -update '<id>={"quantity":0}' -format json

    # Export equipment to CSV
    inventory -data records.json -kind equipment -export equipment.csv
`)
}
