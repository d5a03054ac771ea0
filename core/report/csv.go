package report

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
)

// WriteCSV streams the matrix as CSV, headers first. The title is not
// written; file naming is the caller's business.
func WriteCSV(w io.Writer, m Matrix) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(m.Headers); err != nil {
		return errors.Wrap(err, "writing headers")
	}
	for _, row := range m.Rows {
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "writing row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}
