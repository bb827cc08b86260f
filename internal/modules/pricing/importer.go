// README: Imports the toll tariff CSV into the toll_rates table.
package pricing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

const importBatchSize = 500

var ErrBadCSV = errors.New("toll tariff csv is missing required columns")

// RateWriter recreates and fills the toll_rates table.
type RateWriter interface {
	ResetTable(ctx context.Context) error
	InsertRates(ctx context.Context, rates []Rate) error
}

// ImportCSV replaces the table contents with the rows of r and returns the number inserted.
// Rows without an entry or exit plaza name are skipped, and so are malformed lines.
func ImportCSV(ctx context.Context, r io.Reader, w RateWriter) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	idx := makeIndex(header)
	if _, ok := idx["Nama_Masuk"]; !ok {
		return 0, ErrBadCSV
	}
	if _, ok := idx["Nama_Keluar"]; !ok {
		return 0, ErrBadCSV
	}

	if err := w.ResetTable(ctx); err != nil {
		return 0, err
	}

	total, skipped := 0, 0
	batch := make([]Rate, 0, importBatchSize)
	flush := func() error {
		if err := w.InsertRates(ctx, batch); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			log.Printf("import: skipping line %d: %v", perr.Line, err)
			skipped++
			continue
		}
		if err != nil {
			return total, err
		}

		rate := rateFromRecord(record, idx)
		if rate.EntryName == "" || rate.ExitName == "" {
			skipped++
			continue
		}
		batch = append(batch, rate)
		if len(batch) == importBatchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}
	if skipped > 0 {
		log.Printf("import: skipped %d rows", skipped)
	}
	return total, nil
}

func rateFromRecord(record []string, idx map[string]int) Rate {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	r := Rate{
		HighwayID:   get("ID_Lebuhraya"),
		HighwayName: get("Nama_Lebuhraya"),
		EntryID:     get("ID_Masuk"),
		EntryName:   get("Nama_Masuk"),
		ExitID:      get("ID_Keluar"),
		ExitName:    get("Nama_Keluar"),
		Journey:     get("Perjalanan"),
		Rates:       make(map[string]string, len(ClassIDs)),
		DistanceKm:  get("Jarak_KM"),
		TollSystem:  get("Sistem_Tol"),
		Status:      get("Status"),
	}
	for _, id := range ClassIDs {
		if v := get("Kelas " + id); v != "" {
			r.Rates[id] = v
		}
	}
	return r
}

func makeIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		idx[h] = i
	}
	return idx
}
