// Package export serializes price series to CSV and JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"coinstats/internal/feature/prices/domain/entity"
)

// Row is one exported (date, price) pair.
type Row struct {
	Date  string      `json:"date"`
	Price json.Number `json:"price"`
}

// Rows converts records to export rows: the open-time date and the close rounded to 2 decimal places.
func Rows(records []entity.PriceRecord) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row{Date: r.Date(), Price: json.Number(r.RoundedClose().String())})
	}
	return rows
}

// WriteCSV writes a "Date,Price" header followed by one row per record.
func WriteCSV(w io.Writer, records []entity.PriceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Price"}); err != nil {
		return err
	}
	for _, row := range Rows(records) {
		if err := cw.Write([]string{row.Date, row.Price.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the records as a 4-space indented JSON array of {date, price} objects.
func WriteJSON(w io.Writer, records []entity.PriceRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(Rows(records))
}
