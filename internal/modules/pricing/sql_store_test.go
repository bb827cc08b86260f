package pricing

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"farely/internal/modules/vehicle"
)

func setupSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "toll_rates.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewSQLStore(db, DialectSQLite)
	require.NoError(t, s.ResetTable(context.Background()))
	return s
}

func seedRates() []Rate {
	return []Rate{
		{HighwayID: "1", HighwayName: "KL-Karak", EntryName: "Gombak", ExitName: "Jalan Duta",
			Rates: map[string]string{"1": "1.50", "2": "3.00", "3": "4.50", "4": "0.80", "5": "1.00"}},
		{HighwayID: "1", HighwayName: "KL-Karak", EntryName: "Jalan Duta", ExitName: "Gombak",
			Rates: map[string]string{"1": "1.60"}},
		{HighwayID: "2", EntryName: "Jalan Duta", ExitName: "Sungai Buloh",
			Rates: map[string]string{"1": "N/A", "2": "0"}},
		{HighwayID: "2", EntryName: "Gombak", ExitName: "Jalan Duta",
			Rates: map[string]string{"1": "9.99"}},
	}
}

func TestSQLStore_Lookup(t *testing.T) {
	ctx := context.Background()
	s := setupSQLiteStore(t)
	require.NoError(t, s.InsertRates(ctx, seedRates()))

	r, err := s.Lookup(ctx, "Gombak", "Jalan Duta")
	require.NoError(t, err)
	assert.Equal(t, "Gombak", r.EntryName)
	assert.Equal(t, "Jalan Duta", r.ExitName)
	assert.Equal(t, 1.5, parseRate(r.Rates["1"]), "first matching row wins")
	assert.Equal(t, 4.5, parseRate(r.Rates["3"]))

	r, err = s.Lookup(ctx, "Jalan Duta", "Gombak")
	require.NoError(t, err)
	assert.Equal(t, 1.6, parseRate(r.Rates["1"]))
	_, has := r.Rates["2"]
	assert.False(t, has, "NULL cells are absent")

	r, err = s.Lookup(ctx, "Jalan Duta", "Sungai Buloh")
	require.NoError(t, err)
	assert.Equal(t, "N/A", r.Rates["1"])

	_, err = s.Lookup(ctx, "gombak", "jalan duta")
	assert.ErrorIs(t, err, ErrRateNotFound, "names match case-sensitively")

	_, err = s.Lookup(ctx, "Sungai Buloh", "Jalan Duta")
	assert.ErrorIs(t, err, ErrRateNotFound)
}

func TestSQLStore_MissingTableIsLookupError(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = NewSQLStore(db, DialectSQLite).Lookup(context.Background(), "A", "B")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateNotFound)
}

func TestSQLStore_ServiceEndToEnd(t *testing.T) {
	ctx := context.Background()
	s := setupSQLiteStore(t)
	require.NoError(t, s.InsertRates(ctx, seedRates()))

	svc := NewService(s, vehicle.DefaultCatalog(), 4)
	got, err := svc.Calculate(ctx, CalculateCommand{
		Plazas:       []string{"Gombak", "Jalan Duta", "Sungai Buloh", "Sungai Rasau"},
		VehicleClass: "1",
		DistanceKm:   15,
	})
	require.NoError(t, err)
	require.Len(t, got.Details, 3)
	require.NotNil(t, got.Details[0].Rate)
	assert.Equal(t, 1.5, *got.Details[0].Rate)
	assert.Nil(t, got.Details[1].Rate, "non-numeric cell")
	assert.Nil(t, got.Details[2].Rate, "no row")
	assert.InDelta(t, 3.75, got.TotalCost, 1e-9)
}

func TestSQLStore_MySQL(t *testing.T) {
	dsn := os.Getenv("FARELY_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("FARELY_TEST_MYSQL_DSN not set; skipping MySQL store test")
	}
	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	s := NewSQLStore(db, DialectMySQL)
	require.NoError(t, s.ResetTable(ctx))
	require.NoError(t, s.InsertRates(ctx, seedRates()))

	r, err := s.Lookup(ctx, "Gombak", "Jalan Duta")
	require.NoError(t, err)
	assert.Equal(t, "1.50", r.Rates["1"])

	_, err = s.Lookup(ctx, "GOMBAK", "JALAN DUTA")
	assert.ErrorIs(t, err, ErrRateNotFound)
}
