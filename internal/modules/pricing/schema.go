// README: toll_rates table layout shared by the Postgres and database/sql stores.
package pricing

import (
	"fmt"
	"strings"
)

// ClassIDs are the vehicle classes that have a rate column (kelas1..kelas5).
var ClassIDs = []string{"1", "2", "3", "4", "5"}

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
	DialectMySQL    Dialect = "mysql"
)

var insertColumns = []string{
	"id_lebuhraya", "nama_lebuhraya", "id_masuk", "nama_masuk", "id_keluar", "nama_keluar",
	"perjalanan", "kelas1", "kelas2", "kelas3", "kelas4", "kelas5",
	"jarak_km", "sistem_tol", "status",
}

func classColumn(id string) string {
	return "kelas" + id
}

func lookupSQL(d Dialect) string {
	cols := []string{"nama_masuk", "nama_keluar"}
	for _, id := range ClassIDs {
		cols = append(cols, classColumn(id))
	}
	return fmt.Sprintf(
		"SELECT %s FROM toll_rates WHERE nama_masuk = %s AND nama_keluar = %s ORDER BY id LIMIT 1",
		strings.Join(cols, ", "), placeholder(d, 1), placeholder(d, 2),
	)
}

func insertSQL(d Dialect) string {
	ph := make([]string, len(insertColumns))
	for i := range ph {
		ph[i] = placeholder(d, i+1)
	}
	return fmt.Sprintf("INSERT INTO toll_rates (%s) VALUES (%s)",
		strings.Join(insertColumns, ", "), strings.Join(ph, ", "))
}

func placeholder(d Dialect, n int) string {
	if d == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// schemaSQL recreates the table. Rate cells keep their text when they are not numeric.
func schemaSQL(d Dialect) []string {
	drop := "DROP TABLE IF EXISTS toll_rates"
	switch d {
	case DialectPostgres:
		return []string{drop, `CREATE TABLE toll_rates (
			id BIGSERIAL PRIMARY KEY,
			id_lebuhraya TEXT, nama_lebuhraya TEXT,
			id_masuk TEXT, nama_masuk TEXT NOT NULL,
			id_keluar TEXT, nama_keluar TEXT NOT NULL,
			perjalanan TEXT,
			kelas1 TEXT, kelas2 TEXT, kelas3 TEXT, kelas4 TEXT, kelas5 TEXT,
			jarak_km TEXT, sistem_tol TEXT, status TEXT
		)`,
			"CREATE INDEX toll_rates_pair_idx ON toll_rates (nama_masuk, nama_keluar)",
		}
	case DialectMySQL:
		return []string{drop, `CREATE TABLE toll_rates (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			id_lebuhraya VARCHAR(64), nama_lebuhraya VARCHAR(255),
			id_masuk VARCHAR(64), nama_masuk VARCHAR(255) COLLATE utf8mb4_bin NOT NULL,
			id_keluar VARCHAR(64), nama_keluar VARCHAR(255) COLLATE utf8mb4_bin NOT NULL,
			perjalanan VARCHAR(255),
			kelas1 VARCHAR(32), kelas2 VARCHAR(32), kelas3 VARCHAR(32), kelas4 VARCHAR(32), kelas5 VARCHAR(32),
			jarak_km VARCHAR(32), sistem_tol VARCHAR(64), status VARCHAR(64),
			INDEX toll_rates_pair_idx (nama_masuk, nama_keluar)
		) DEFAULT CHARSET=utf8mb4`,
		}
	default:
		return []string{drop, `CREATE TABLE toll_rates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			id_lebuhraya INTEGER, nama_lebuhraya TEXT,
			id_masuk INTEGER, nama_masuk TEXT NOT NULL,
			id_keluar INTEGER, nama_keluar TEXT NOT NULL,
			perjalanan TEXT,
			kelas1 REAL, kelas2 REAL, kelas3 REAL, kelas4 REAL, kelas5 REAL,
			jarak_km REAL, sistem_tol TEXT, status TEXT
		)`,
			"CREATE INDEX toll_rates_pair_idx ON toll_rates (nama_masuk, nama_keluar)",
		}
	}
}

func insertArgs(r Rate) []any {
	args := []any{
		nullable(r.HighwayID), nullable(r.HighwayName),
		nullable(r.EntryID), r.EntryName,
		nullable(r.ExitID), r.ExitName,
		nullable(r.Journey),
	}
	for _, id := range ClassIDs {
		args = append(args, nullable(r.Rates[id]))
	}
	return append(args, nullable(r.DistanceKm), nullable(r.TollSystem), nullable(r.Status))
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
