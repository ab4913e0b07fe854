package database

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"

	"github.com/akeshr/autifyme/internal/service"
)

// Supabase implements Client over the Supabase PostgREST endpoint.
type Supabase struct {
	client *postgrest.Client
}

// NewSupabase builds a client from the service descriptor.
func NewSupabase(svc service.Supabase) *Supabase {
	base := strings.TrimRight(svc.URL, "/") + "/rest/v1"
	headers := map[string]string{
		"apikey":        svc.Key,
		"Authorization": "Bearer " + svc.Key,
	}
	return &Supabase{client: postgrest.NewClient(base, "public", headers)}
}

func decodeRows(data []byte) ([]Record, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var rows []Record
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	return rows, nil
}

func (s *Supabase) Insert(table string, record Record) ([]Record, error) {
	data, _, err := s.client.From(table).Insert(record, false, "", "representation", "").Execute()
	if err != nil {
		return nil, err
	}
	return decodeRows(data)
}

func (s *Supabase) Get(table, idColumn, id string) ([]Record, error) {
	data, _, err := s.client.From(table).Select("*", "", false).Eq(idColumn, id).Execute()
	if err != nil {
		return nil, err
	}
	return decodeRows(data)
}

func (s *Supabase) Update(table, idColumn, id string, record Record) ([]Record, error) {
	data, _, err := s.client.From(table).Update(record, "representation", "").Eq(idColumn, id).Execute()
	if err != nil {
		return nil, err
	}
	return decodeRows(data)
}

func (s *Supabase) Delete(table, idColumn, id string) ([]Record, error) {
	data, _, err := s.client.From(table).Delete("representation", "").Eq(idColumn, id).Execute()
	if err != nil {
		return nil, err
	}
	return decodeRows(data)
}

func (s *Supabase) List(table string, q ListQuery) ([]Record, error) {
	fb := s.client.From(table).Select("*", "", false)
	for column, value := range q.Filters {
		fb = fb.Eq(column, value)
	}
	if q.OrderBy != "" {
		fb = fb.Order(q.OrderBy, &postgrest.OrderOpts{Ascending: true})
	}
	// PostgREST expresses offsets as ranges, so an offset needs a limit.
	if q.Offset > 0 && q.Limit > 0 {
		fb = fb.Range(q.Offset, q.Offset+q.Limit-1, "")
	} else if q.Limit > 0 {
		fb = fb.Limit(q.Limit, "")
	}
	data, _, err := fb.Execute()
	if err != nil {
		return nil, err
	}
	return decodeRows(data)
}

func (s *Supabase) Upsert(table string, record Record, conflictColumns []string) ([]Record, error) {
	onConflict := strings.Join(conflictColumns, ",")
	data, _, err := s.client.From(table).Upsert(record, onConflict, "representation", "").Execute()
	if err != nil {
		return nil, err
	}
	return decodeRows(data)
}

func (s *Supabase) RPC(function string, params Record) (any, error) {
	raw := s.client.Rpc(function, "", params)
	if s.client.ClientError != nil {
		return nil, s.client.ClientError
	}
	var result any
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		// Scalar results come back unquoted.
		return raw, nil
	}
	return result, nil
}

func (s *Supabase) Count(table string, filters map[string]string) (int, error) {
	fb := s.client.From(table).Select("*", "exact", true)
	for column, value := range filters {
		fb = fb.Eq(column, value)
	}
	_, count, err := fb.Execute()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *Supabase) Search(table, column, term string, limit int) ([]Record, error) {
	fb := s.client.From(table).Select("*", "", false).Ilike(column, "%"+term+"%")
	if limit > 0 {
		fb = fb.Limit(limit, "")
	}
	data, _, err := fb.Execute()
	if err != nil {
		return nil, err
	}
	return decodeRows(data)
}
