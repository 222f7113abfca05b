package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"pws/internal/domain"
)

// MySQLStorage keeps the run history in a MySQL table shared by every operator
type MySQLStorage struct {
	db    *sql.DB
	table string
	limit int
}

// NewMySQLStorage connects to dsn and creates the history table if it does not exist
func NewMySQLStorage(dsn, table string, limit int) (*MySQLStorage, error) {
	if !isValidTableName(table) {
		return nil, fmt.Errorf("invalid table name: %s", table)
	}

	mcfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid storage dsn: %w", err)
	}
	mcfg.ParseTime = true

	db, err := sql.Open("mysql", mcfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}

	s, err := newMySQLStorage(db, table, limit)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func newMySQLStorage(db *sql.DB, table string, limit int) (*MySQLStorage, error) {
	if !isValidTableName(table) {
		return nil, fmt.Errorf("invalid table name: %s", table)
	}
	s := &MySQLStorage{db: db, table: table, limit: limit}
	if err := s.createTable(); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return s, nil
}

func (s *MySQLStorage) createTable() error {
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` ("+
		"id VARCHAR(36) NOT NULL PRIMARY KEY, "+
		"environment VARCHAR(64) NOT NULL, "+
		"files TEXT NOT NULL, "+
		"all_files BOOLEAN NOT NULL, "+
		"tags TEXT NOT NULL, "+
		"command TEXT NOT NULL, "+
		"success BOOLEAN NOT NULL, "+
		"started_at DATETIME(3) NOT NULL, "+
		"duration_ms BIGINT NOT NULL)", s.table)
	_, err := s.db.Exec(query)
	return err
}

// Save inserts one run
func (s *MySQLStorage) Save(record domain.RunRecord) error {
	files, err := json.Marshal(record.Files)
	if err != nil {
		return fmt.Errorf("marshal files: %w", err)
	}
	tags, err := json.Marshal(record.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	query := fmt.Sprintf("INSERT INTO `%s` (id, environment, files, all_files, tags, command, success, started_at, duration_ms) "+
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err = s.db.Exec(query,
		record.ID, record.Environment, string(files), record.All, string(tags),
		record.Command, record.Success, record.StartedAt, record.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("insert run %s: %w", record.ID, err)
	}
	return nil
}

// Load returns the newest limit runs, oldest first
func (s *MySQLStorage) Load() ([]domain.RunRecord, error) {
	query := fmt.Sprintf("SELECT id, environment, files, all_files, tags, command, success, started_at, duration_ms "+
		"FROM `%s` ORDER BY started_at DESC", s.table)
	if s.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", s.limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		var (
			r           domain.RunRecord
			files, tags string
			durationMS  int64
		)
		if err := rows.Scan(&r.ID, &r.Environment, &files, &r.All, &tags, &r.Command, &r.Success, &r.StartedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if err := json.Unmarshal([]byte(files), &r.Files); err != nil {
			return nil, fmt.Errorf("parse files of run %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
			return nil, fmt.Errorf("parse tags of run %s: %w", r.ID, err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	// newest first from the query; callers expect oldest first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (s *MySQLStorage) Close() error {
	return s.db.Close()
}

// isValidTableName validates a table name before it is interpolated into SQL
func isValidTableName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	invalidChars := []string{"'", "\"", "`", ";", "--", "/*", "*/", " ", "DROP", "DELETE", "TRUNCATE"}
	upperName := strings.ToUpper(name)
	for _, char := range invalidChars {
		if strings.Contains(upperName, char) {
			return false
		}
	}
	return true
}
