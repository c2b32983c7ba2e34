package database

import (
	"database/sql"

	"github.com/goccy/go-json"
)

// List-valued columns (tags, images, amenities) are stored as JSON array
// text. A nil slice is stored as NULL.

func encodeList(values []string) (sql.NullString, error) {
	if values == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// decodeList never fails: NULL or unparseable text reads as an empty list.
// ok is false only for unparseable text.
func decodeList(raw sql.NullString) (values []string, ok bool) {
	if !raw.Valid || raw.String == "" {
		return []string{}, true
	}
	if err := json.Unmarshal([]byte(raw.String), &values); err != nil {
		return []string{}, false
	}
	if values == nil {
		values = []string{}
	}
	return values, true
}

func (db *DB) decodeListField(table, column string, id int64, raw sql.NullString) []string {
	values, ok := decodeList(raw)
	if !ok {
		db.logger.Warn().
			Str("table", table).
			Str("column", column).
			Int64("id", id).
			Msg("malformed list column, reading as empty")
	}
	return values
}
