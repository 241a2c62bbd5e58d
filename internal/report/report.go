// Package report renders query aggregates for people and for files.
package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
)

// NoDataMessage is printed when a query matched no tick.
const NoDataMessage = "No data available for the specified time range."

// Header is the column order of the CSV artifact.
var Header = []string{"min_price", "max_price", "total_volume", "start_price", "end_price"}

// Print writes agg to w in a human readable form.
func Print(w io.Writer, agg v1.Aggregate) error {
	if !agg.HasData() {
		_, err := fmt.Fprintln(w, NoDataMessage)
		return err
	}

	row := Row(agg)
	for i, name := range Header {
		if _, err := fmt.Fprintf(w, "%-13s %s\n", name+":", row[i]); err != nil {
			return err
		}
	}
	return nil
}

// Row formats agg in Header order. Prices are stored as float32 and are
// printed with that precision.
func Row(agg v1.Aggregate) []string {
	return []string{
		formatPrice(agg.MinPrice),
		formatPrice(agg.MaxPrice),
		strconv.FormatInt(agg.TotalVolume, 10),
		formatPrice(agg.StartPrice),
		formatPrice(agg.EndPrice),
	}
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 32)
}

// WriteCSV replaces the file at path with a header and one row for agg.
func WriteCSV(path string, agg v1.Aggregate) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewTracer("create_report").Wrap(err)
	}

	bw := bufio.NewWriter(f)
	w := csv.NewWriter(bw)
	if err := w.WriteAll([][]string{Header, Row(agg)}); err != nil {
		f.Close()
		return errors.NewTracer("write_report").Wrap(err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return errors.NewTracer("flush_report").Wrap(err)
	}
	if err := f.Close(); err != nil {
		return errors.NewTracer("close_report").Wrap(err)
	}
	return nil
}
