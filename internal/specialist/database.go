// Package specialist assembles task-focused workers from an LLM client and
// the generic database operations.
package specialist

import (
	"github.com/tmc/langchaingo/llms"

	"github.com/akeshr/autifyme/internal/database"
)

// Database is a specialist bound to one database client. It exposes the
// generic CRUD operations against that client; the attached model is held
// for callers that layer reasoning on top of the deterministic operations.
type Database struct {
	model  llms.Model
	client database.Client
}

// NewDatabase creates a database specialist.
func NewDatabase(model llms.Model, client database.Client) *Database {
	return &Database{model: model, client: client}
}

// Model returns the attached chat model.
func (d *Database) Model() llms.Model {
	return d.model
}

// Describe lists the operations this specialist can perform.
func (d *Database) Describe() []string {
	return []string{
		"create_record", "read_record", "update_record", "delete_record",
		"list_records", "upsert_record", "execute_rpc", "count_records",
		"search_records",
	}
}

func (d *Database) Create(table string, data database.Record) database.Result {
	return database.CreateRecord(d.client, table, data)
}

func (d *Database) Read(table, idColumn, id string) database.Result {
	return database.ReadRecord(d.client, table, idColumn, id)
}

func (d *Database) Update(table, idColumn, id string, data database.Record) database.Result {
	return database.UpdateRecord(d.client, table, idColumn, id, data)
}

func (d *Database) Delete(table, idColumn, id string) database.Result {
	return database.DeleteRecord(d.client, table, idColumn, id)
}

func (d *Database) List(table string, q database.ListQuery) database.Result {
	return database.ListRecords(d.client, table, q)
}

func (d *Database) Upsert(table string, data database.Record, conflictColumns []string) database.Result {
	return database.UpsertRecord(d.client, table, data, conflictColumns)
}

func (d *Database) RPC(function string, params database.Record) database.Result {
	return database.ExecuteRPC(d.client, function, params)
}

func (d *Database) Count(table string, filters map[string]string) database.Result {
	return database.CountRecords(d.client, table, filters)
}

func (d *Database) Search(table, column, term string, limit int) database.Result {
	return database.SearchRecords(d.client, table, column, term, limit)
}
