// Package bankio reads and writes the question bank as files: a TSV table
// for pasting into a spreadsheet and a versioned YAML document for backups.
package bankio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/wordwise/internal/question"
)

// TSVColumns is the column order shared with the spreadsheet importer.
var TSVColumns = []string{"category", "type", "question", "options", "answer", "explanation"}

// WriteTSV writes one line per question. Every field is double-quoted with
// inner quotes doubled, so the output pastes cleanly into a sheet.
func WriteTSV(w io.Writer, qs []question.Question) error {
	bw := bufio.NewWriter(w)
	for i, q := range qs {
		if i > 0 {
			bw.WriteByte('\n')
		}
		fields := []string{
			q.Category,
			string(q.Kind),
			q.Text,
			strings.Join(q.Options, ", "),
			q.Answer,
			q.Explanation,
		}
		for j, f := range fields {
			if j > 0 {
				bw.WriteByte('\t')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(f, `"`, `""`))
			bw.WriteByte('"')
		}
	}
	return bw.Flush()
}

// ReadTSV parses TSV written by WriteTSV (or copied out of a sheet) into
// raw rows in the TSVColumns layout. Quoting is optional.
func ReadTSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tsv: %w", err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		rows = append(rows, rec)
	}
	return rows, nil
}
