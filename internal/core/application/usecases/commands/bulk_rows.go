package commands

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"parceltrack/internal/core/domain/services"
)

var ErrBulkInputUnreadable = errors.New("bulk input cannot be parsed")

// BulkRow is one data row of a bulk import. Number counts data rows from 1;
// the header is not counted.
type BulkRow struct {
	Number int
	Input  services.ShipmentInput
}

// ParseBulkRows reads comma separated text with a header row.
//
// Columns are matched by header name, ignoring case and surrounding blanks:
// receiver, description, weight, packageSize, deliveryAddress. Other columns
// are ignored. A row missing a column, or shorter than the header, gets an
// empty value for it and fails validation later on its own. Only input that
// is not CSV at all, or has no header, fails as a whole.
func ParseBulkRows(r io.Reader) ([]BulkRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", ErrBulkInputUnreadable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBulkInputUnreadable, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	cell := func(record []string, name string) string {
		i, ok := columns[strings.ToLower(name)]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []BulkRow
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrBulkInputUnreadable, readErr)
		}
		if isBlank(record) {
			continue
		}

		rows = append(rows, BulkRow{
			Number: len(rows) + 1,
			Input: services.ShipmentInput{
				Receiver:        cell(record, "receiver"),
				Description:     cell(record, "description"),
				Weight:          cell(record, "weight"),
				PackageSize:     cell(record, "packageSize"),
				DeliveryAddress: cell(record, "deliveryAddress"),
			},
		})
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
