package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pkordes/wedding-timeline/internal/clock"
	"github.com/pkordes/wedding-timeline/internal/domain"
)

// csvHeaders defines the column names written as the first row of a CSV export.
var csvHeaders = []string{
	"Start", "End", "Block", "Minutes", "Location", "Audience", "Notes", "Kind",
}

// CSV writes a header row and one row per block, sentinel included, in
// emission order.
func CSV(w io.Writer, blocks []domain.Block) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("export.CSV: %w", err)
	}
	for _, b := range blocks {
		if err := cw.Write(blockToCSVRecord(b)); err != nil {
			return fmt.Errorf("export.CSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.CSV: %w", err)
	}
	return nil
}

func blockToCSVRecord(b domain.Block) []string {
	return []string{
		clock.Format(b.Start),
		clock.Format(b.End),
		b.Name,
		strconv.Itoa(b.Minutes()),
		b.Location,
		b.Audience.String(),
		b.Notes,
		b.Kind.String(),
	}
}
