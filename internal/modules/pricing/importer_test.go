package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tariffCSV = "\ufeffID_Lebuhraya,Nama_Lebuhraya,ID_Masuk,Nama_Masuk,ID_Keluar,Nama_Keluar,Perjalanan,Kelas 1,Kelas 2,Kelas 3,Kelas 4,Kelas 5,Jarak_KM,Sistem_Tol,Status,Source_File\n" +
	"1,KL-Karak,10,Gombak,11,Jalan Duta,Gombak - Jalan Duta,1.50,3.00,4.50,0.80,1.00,12.5,Tertutup,Aktif,a.pdf\n" +
	"1,KL-Karak,11,Jalan Duta,10, Gombak ,Jalan Duta - Gombak,1.60,,,,,12.5,Tertutup,Aktif,a.pdf\n" +
	"2,DUKE,20,Jalan Duta,21,,missing exit,1.00,,,,,,,,\n" +
	"2,DUKE,20,Jalan Duta,22,Sentul,Jalan Duta - Sentul,-,-,-,-,-,3,Terbuka,Aktif,b.pdf\n"

func TestImportCSV_SQLite(t *testing.T) {
	ctx := context.Background()
	s := setupSQLiteStore(t)

	n, err := ImportCSV(ctx, strings.NewReader(tariffCSV), s)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	r, err := s.Lookup(ctx, "Gombak", "Jalan Duta")
	require.NoError(t, err)
	assert.Equal(t, 0.8, parseRate(r.Rates["4"]))

	r, err = s.Lookup(ctx, "Jalan Duta", "Gombak")
	require.NoError(t, err, "cells are trimmed on import")
	assert.Equal(t, 1.6, parseRate(r.Rates["1"]))

	r, err = s.Lookup(ctx, "Jalan Duta", "Sentul")
	require.NoError(t, err)
	assert.Equal(t, "-", r.Rates["1"])
	assert.Zero(t, parseRate(r.Rates["1"]))
}

func TestImportCSV_ReplacesExistingRows(t *testing.T) {
	ctx := context.Background()
	s := setupSQLiteStore(t)
	require.NoError(t, s.InsertRates(ctx, []Rate{{EntryName: "Old", ExitName: "Row", Rates: map[string]string{"1": "1"}}}))

	_, err := ImportCSV(ctx, strings.NewReader(tariffCSV), s)
	require.NoError(t, err)

	_, err = s.Lookup(ctx, "Old", "Row")
	assert.ErrorIs(t, err, ErrRateNotFound)
}

func TestImportCSV_MissingColumns(t *testing.T) {
	w := &recordingWriter{}
	_, err := ImportCSV(context.Background(), strings.NewReader("a,b,c\n1,2,3\n"), w)
	assert.ErrorIs(t, err, ErrBadCSV)
	assert.False(t, w.reset, "table must not be dropped for an unusable file")
}

type recordingWriter struct {
	reset   bool
	batches []int
	failOn  int
}

func (w *recordingWriter) ResetTable(context.Context) error {
	w.reset = true
	return nil
}

func (w *recordingWriter) InsertRates(_ context.Context, rates []Rate) error {
	if w.failOn > 0 && len(w.batches)+1 == w.failOn {
		return errors.New("disk full")
	}
	w.batches = append(w.batches, len(rates))
	return nil
}

func bigCSV(rows int) string {
	var b strings.Builder
	b.WriteString("Nama_Masuk,Nama_Keluar,Kelas 1\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "P%d,P%d,1.00\n", i, i+1)
	}
	return b.String()
}

func TestImportCSV_Batches(t *testing.T) {
	w := &recordingWriter{}
	n, err := ImportCSV(context.Background(), strings.NewReader(bigCSV(1001)), w)
	require.NoError(t, err)
	assert.Equal(t, 1001, n)
	assert.Equal(t, []int{500, 500, 1}, w.batches)
}

func TestImportCSV_WriterError(t *testing.T) {
	w := &recordingWriter{failOn: 2}
	n, err := ImportCSV(context.Background(), strings.NewReader(bigCSV(1200)), w)
	require.Error(t, err)
	assert.Equal(t, 500, n)
}

func TestImportCSV_SkipsMalformedLines(t *testing.T) {
	body := "Nama_Masuk,Nama_Keluar,Kelas 1\n" +
		"A,B,1.00\n" +
		"C,\"D,2.00\n"
	w := &recordingWriter{}
	n, err := ImportCSV(context.Background(), strings.NewReader(body), w)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
