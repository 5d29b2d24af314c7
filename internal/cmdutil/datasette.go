package cmdutil

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Member09/scaling-laws/internal/datastore"
)

// WriteToDatastore records items in the configured datastore when
// datasette.enabled is set. Mode "remote" posts to a Datasette instance,
// anything else writes a local SQLite file.
func WriteToDatastore[T any](items []T, schema string, table string, description string, toMap func(T) map[string]any) error {
	if !viper.GetBool("datasette.enabled") {
		return nil
	}
	if len(items) == 0 {
		return nil
	}

	var store datastore.Store
	if viper.GetString("datasette.mode") == "remote" {
		store = datastore.NewDatasetteClient(
			viper.GetString("datasette.remote"),
			viper.GetString("datasette.token"),
		)
	} else {
		store = datastore.NewSQLiteStore(viper.GetString("datasette.dbfile"))
	}

	if err := store.Connect(); err != nil {
		return fmt.Errorf("failed to connect to datastore: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.CreateTable(schema); err != nil {
		return fmt.Errorf("failed to create %s table: %w", table, err)
	}

	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		records = append(records, toMap(item))
	}

	if err := store.BatchInsert(datastore.DatabaseName, table, records); err != nil {
		return fmt.Errorf("failed to insert %s: %w", description, err)
	}

	slog.Info("Recorded to datastore", "table", table, "records", len(records))
	return nil
}
