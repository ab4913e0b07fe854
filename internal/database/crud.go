package database

import "fmt"

// CreateRecord inserts a new record into the table.
func CreateRecord(c Client, table string, data Record) Result {
	rows, err := c.Insert(table, data)
	if err != nil {
		return Result{Error: err.Error(), Message: fmt.Sprintf("database error creating record in %s", table)}
	}
	if len(rows) == 0 {
		return Result{Error: "no data returned from insert", Message: fmt.Sprintf("failed to create record in %s", table)}
	}
	return Result{Success: true, Data: rows[0], Message: fmt.Sprintf("record created in %s", table)}
}

// ReadRecord fetches a single record by ID.
func ReadRecord(c Client, table, idColumn, id string) Result {
	rows, err := c.Get(table, idColumn, id)
	if err != nil {
		return Result{Error: err.Error(), Message: fmt.Sprintf("database error reading record from %s", table)}
	}
	if len(rows) == 0 {
		return Result{Error: "record not found", Message: fmt.Sprintf("no record in %s with %s=%s", table, idColumn, id)}
	}
	return Result{Success: true, Data: rows[0], Message: fmt.Sprintf("record found in %s", table)}
}

// UpdateRecord updates a record by ID.
func UpdateRecord(c Client, table, idColumn, id string, data Record) Result {
	rows, err := c.Update(table, idColumn, id, data)
	if err != nil {
		return Result{Error: err.Error(), Message: fmt.Sprintf("database error updating record in %s", table)}
	}
	if len(rows) == 0 {
		return Result{Error: "no record updated", Message: fmt.Sprintf("no record to update in %s with %s=%s", table, idColumn, id)}
	}
	return Result{Success: true, Data: rows[0], Message: fmt.Sprintf("record updated in %s", table)}
}

// DeleteRecord removes a record by ID. Deleting an absent record succeeds.
func DeleteRecord(c Client, table, idColumn, id string) Result {
	rows, err := c.Delete(table, idColumn, id)
	if err != nil {
		return Result{Error: err.Error(), Message: fmt.Sprintf("database error deleting record from %s", table)}
	}
	return Result{Success: true, Data: rows, Message: fmt.Sprintf("record deleted from %s", table)}
}

// ListRecords returns records with optional filtering and pagination.
func ListRecords(c Client, table string, q ListQuery) Result {
	rows, err := c.List(table, q)
	if err != nil {
		return Result{Error: err.Error(), Message: fmt.Sprintf("database error listing records from %s", table)}
	}
	return Result{Success: true, Data: rows, Count: len(rows), Message: fmt.Sprintf("retrieved records from %s", table)}
}

// UpsertRecord inserts or updates based on the conflict columns.
func UpsertRecord(c Client, table string, data Record, conflictColumns []string) Result {
	rows, err := c.Upsert(table, data, conflictColumns)
	if err != nil {
		return Result{Error: err.Error(), Message: fmt.Sprintf("database error upserting record in %s", table)}
	}
	if len(rows) == 0 {
		return Result{Error: "no data returned from upsert", Message: fmt.Sprintf("failed to upsert record in %s", table)}
	}
	return Result{Success: true, Data: rows[0], Message: fmt.Sprintf("record upserted in %s", table)}
}

// ExecuteRPC calls a stored database function.
func ExecuteRPC(c Client, function string, params Record) Result {
	data, err := c.RPC(function, params)
	if err != nil {
		return Result{Error: err.Error(), Message: fmt.Sprintf("database error executing function %s", function)}
	}
	return Result{Success: true, Data: data, Message: fmt.Sprintf("executed function %s", function)}
}

// CountRecords counts records matching the filters.
func CountRecords(c Client, table string, filters map[string]string) Result {
	count, err := c.Count(table, filters)
	if err != nil {
		return Result{Error: err.Error(), Message: fmt.Sprintf("database error counting records in %s", table)}
	}
	return Result{Success: true, Count: count, Message: fmt.Sprintf("counted records in %s", table)}
}

// SearchRecords runs a case-insensitive substring search on one column.
func SearchRecords(c Client, table, column, term string, limit int) Result {
	rows, err := c.Search(table, column, term, limit)
	if err != nil {
		return Result{Error: err.Error(), Message: fmt.Sprintf("database error searching records in %s", table)}
	}
	return Result{Success: true, Data: rows, Count: len(rows), Message: fmt.Sprintf("search completed in %s", table)}
}
