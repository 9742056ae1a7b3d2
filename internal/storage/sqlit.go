package storage

import (
	"database/sql"
	"time"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	Close() error
}

type Store struct{ db DB }

func OpenSQLite(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

func InitSchema(db DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS views(
		route TEXT, range_from TEXT, range_to TEXT, ts INTEGER
	)`)
	return err
}

func NewStore(db DB) *Store { return &Store{db: db} }

// View is one page or API hit worth counting.
type View struct {
	Route string
	From  string // empty when the route has no range
	To    string
	At    time.Time
}

// ViewStats aggregates views of one route.
type ViewStats struct {
	Route  string         `json:"route"`
	Count  int            `json:"count"`
	Ranges map[string]int `json:"ranges,omitempty"` // "from..to" -> count
}

func (s *Store) RecordView(v View) error {
	_, err := s.db.Exec(`INSERT INTO views(route,range_from,range_to,ts) VALUES(?,?,?,?)`,
		v.Route, v.From, v.To, v.At.Unix())
	return err
}

// ViewStats returns per-route counts of views recorded at or after since.
func (s *Store) ViewStats(since time.Time) (map[string]*ViewStats, error) {
	rows, err := s.db.Query(`SELECT route, range_from, range_to, COUNT(*) FROM views
		WHERE ts>=? GROUP BY route, range_from, range_to ORDER BY route ASC`, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]*ViewStats{}
	for rows.Next() {
		var route, from, to string
		var n int
		if err := rows.Scan(&route, &from, &to, &n); err != nil {
			return nil, err
		}
		st, ok := out[route]
		if !ok {
			st = &ViewStats{Route: route}
			out[route] = st
		}
		st.Count += n
		if from != "" || to != "" {
			if st.Ranges == nil {
				st.Ranges = map[string]int{}
			}
			st.Ranges[from+".."+to] += n
		}
	}
	return out, rows.Err()
}
