// Package database provides generic CRUD pass-through operations over a
// hosted database client. All operations return a uniform Result; client
// failures are folded into it rather than raised.
package database

// Record is a loosely-typed row: column name to value.
type Record = map[string]any

// ListQuery narrows List results.
type ListQuery struct {
	Filters map[string]string
	OrderBy string
	Limit   int
	Offset  int
}

// Client is the table-scoped query surface the CRUD functions need.
// Production code uses the Supabase implementation; tests substitute fakes.
type Client interface {
	Insert(table string, record Record) ([]Record, error)
	Get(table, idColumn, id string) ([]Record, error)
	Update(table, idColumn, id string, record Record) ([]Record, error)
	Delete(table, idColumn, id string) ([]Record, error)
	List(table string, q ListQuery) ([]Record, error)
	Upsert(table string, record Record, conflictColumns []string) ([]Record, error)
	RPC(function string, params Record) (any, error)
	Count(table string, filters map[string]string) (int, error)
	Search(table, column, term string, limit int) ([]Record, error)
}

// Result is the uniform shape returned by every CRUD operation.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   int    `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}
