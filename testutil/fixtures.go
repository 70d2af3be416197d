package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// ExampleCSV is the two-row session used throughout the tests: the second
// speed sample is an outlier and the fixes are 0.0005° of latitude apart.
const ExampleCSV = `Temps,Vitesse,Lat,Lon
0,10,48.0,2.0
1,95,48.0005,2.0
`

// RecorderCSV is a recorder export with timestamps, energy counters and a
// column the application does not know.
const RecorderCSV = `Date,Heure,Temps,Vitesse,Tension,CurrentIn,MotorCurrent,Alt,Distance,WHCharged,WHDischarged,Lat,Lon,Sat,GazFrein,Note
010524,13523500,0,0,41.5,0.2,0,120,0,0,0,48.8566,2.3522,7,0,start
010524,13523600,1,12.5,41.2,8.4,7.9,121,3,0,0.5,48.8567,2.3523,7,35,
010524,13523700,2,18,40.9,12.1,11.5,121,8,0.1,0.9,48.8569,2.3525,8,60,
010524,13523800,3,21,40.7,14.8,14.0,123,14,0.1,1.2,48.8571,2.3528,8,70,
010524,13523900,4,19.5,40.8,6.0,5.7,124,19,0.2,0.4,48.8573,2.3530,8,20,
010524,13524000,5,15,41.0,0.5,0,124,23,0.3,0,48.8574,2.3531,8,0,stop
`

// RecorderColumns is the column set of CreateRecorderTable
var RecorderColumns = []string{"Date", "Heure", "Temps", "Vitesse", "Tension", "Alt", "Lat", "Lon"}

// RecorderRows holds the rows inserted by CreateRecorderTable
var RecorderRows = [][]interface{}{
	{"020524", "8150000", 0.0, 0.0, 42.0, 35.0, 45.7640, 4.8357},
	{"020524", "8150100", 1.0, 9.5, 41.8, 35.5, 45.7641, 4.8358},
	{"020524", "8150200", 2.0, 14.0, 41.7, 36.0, 45.7643, 4.8360},
}

// CreateRecorderTable creates a recorder sample table named table in db
func CreateRecorderTable(t *testing.T, db *sql.DB, table string) {
	t.Helper()

	createTableSQL := `CREATE TABLE ` + table + ` (
		Date TEXT,
		Heure TEXT,
		Temps REAL,
		Vitesse REAL,
		Tension REAL,
		Alt REAL,
		Lat REAL,
		Lon REAL
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	insertSQL := `INSERT INTO ` + table + ` VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, row := range RecorderRows {
		if _, err := db.Exec(insertSQL, row...); err != nil {
			t.Fatalf("Failed to insert row: %v", err)
		}
	}
}

// CreateSQLiteFixture creates a recorder SQLite dump on disk with a "data" table
func CreateSQLiteFixture(t *testing.T, dbPath string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	CreateRecorderTable(t, db, "data")
}
