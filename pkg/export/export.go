package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

// ObjectRecord describes one object held by a factory.
type ObjectRecord struct {
	Family   string `json:"family"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	RefCount int    `json:"ref_count"`
}

// WriteJSON writes the records to w in JSON format.
func WriteJSON(w io.Writer, records []ObjectRecord) error {
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}

// WriteCSV writes the records to w in CSV format with a header line.
func WriteCSV(w io.Writer, records []ObjectRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"family", "name", "type", "ref_count"}); err != nil {
		return err
	}
	for _, r := range records {
		rec := []string{r.Family, r.Name, r.Type, strconv.Itoa(r.RefCount)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filter returns the records of family, or all records when family is empty.
func Filter(records []ObjectRecord, family string) []ObjectRecord {
	if family == "" {
		return records
	}
	out := make([]ObjectRecord, 0, len(records))
	for _, r := range records {
		if r.Family == family {
			out = append(out, r)
		}
	}
	return out
}
