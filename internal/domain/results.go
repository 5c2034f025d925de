package domain

// The write outcome descriptors mirror what the document store reports, so
// clients that re-fetch after a write keep working whichever store is active.

type InsertResult struct {
	Acknowledged bool    `json:"acknowledged"`
	InsertedID   *string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func Inserted(id string) InsertResult {
	return InsertResult{Acknowledged: true, InsertedID: &id}
}

// Fields is a partial document keyed by its JSON/document field names.
type Fields map[string]any

// Only keeps the keys that appear in allowed.
func (f Fields) Only(allowed []string) Fields {
	out := make(Fields, len(f))
	for _, k := range allowed {
		if v, ok := f[k]; ok {
			out[k] = v
		}
	}
	return out
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps Page*Size far from overflowing int.
	MaxPage = 1_000_000
)

// ListQuery is a zero-based page window with an optional substring search.
type ListQuery struct {
	Page   int
	Size   int
	Search string
}

func (q ListQuery) Offset() int { return q.Page * q.Size }
