package repository

import (
	"fmt"
	"strings"
	"sync"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// json field name -> column name, per model type
var columnCache sync.Map

func columnsOf(db *gorm.DB, model any) (map[string]string, error) {
	key := fmt.Sprintf("%T", model)
	if m, ok := columnCache.Load(key); ok {
		return m.(map[string]string), nil
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", key, err)
	}

	m := make(map[string]string, len(stmt.Schema.Fields))
	for _, f := range stmt.Schema.Fields {
		if f.DBName == "" {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		m[name] = f.DBName
	}
	columnCache.Store(key, m)
	return m, nil
}

// updateColumns translates document field names to columns. The id and
// unknown names are dropped.
func updateColumns(db *gorm.DB, model any, fields domain.Fields) (map[string]any, error) {
	cols, err := columnsOf(db, model)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		col, ok := cols[k]
		if !ok || k == "_id" {
			continue
		}
		out[col] = v
	}
	return out, nil
}

func selectColumns(db *gorm.DB, model any, names []string) ([]string, error) {
	cols, err := columnsOf(db, model)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if col, ok := cols[n]; ok {
			out = append(out, col)
		}
	}
	return out, nil
}

func parseID(id string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", domain.ErrInvalidID
	}
	return u.String(), nil
}

func parseIDs(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		parsed, err := parseID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

func newID() string { return uuid.NewString() }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// fold lower-cases s with full Unicode case mapping.
func fold(s string) string { return strings.ToLower(s) }

// containsPattern is a LIKE operand matching the folded s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(fold(s)) + "%"
}

// updated builds the outcome of an update that matched matched rows.
func updated(matched, modified int64) domain.UpdateResult {
	return domain.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  matched,
		ModifiedCount: modified,
	}
}

func deleted(n int64) domain.DeleteResult {
	return domain.DeleteResult{Acknowledged: true, DeletedCount: n}
}
