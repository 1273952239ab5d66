package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ekindev/coursesearch/internal/pkg/apperrors"
	"github.com/ekindev/coursesearch/internal/pkg/logger"
)

// Record is one validated course row from a catalog source. Subject, Number
// and Name are always non-empty; Description and CreditHours may be "".
type Record struct {
	Subject     string
	Number      string
	Name        string
	Description string
	CreditHours string
}

// Validate checks the required identifying fields. A failing record is
// skipped during parsing, never stored partially.
func (r Record) Validate() error {
	if r.Subject == "" || r.Number == "" || r.Name == "" {
		return fmt.Errorf("%w: subject, number and name are required", apperrors.ErrValidationFailed)
	}
	return nil
}

// creditHourColumns are the recognized header synonyms, checked in order
// before falling back to any header containing both "credit" and "hour".
var creditHourColumns = []string{
	"credit hours",
	"credit_hours",
	"credits",
	"credit",
	"hours",
}

// DefaultPath returns the conventional CSV location for a school:
// <dataRoot>/<school lower>/<SCHOOL>_courses.csv.
func DefaultPath(dataRoot, school string) string {
	return filepath.Join(dataRoot, strings.ToLower(school), strings.ToUpper(school)+"_courses.csv")
}

// LoadFile reads and parses the catalog CSV at path. A missing file maps to
// apperrors.ErrSourceNotFound so callers can report a setup problem instead
// of a generic failure.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to open catalog source %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads course records from CSV data. The first row is the header;
// header keys are matched case-insensitively. Rows missing subject, number
// or name are skipped, never stored as partial records. Zero valid rows is
// not an error.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: source has no readable data", apperrors.ErrSourceNotFound)
		}
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	columns := make([]string, len(header))
	for i, key := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(key))
	}

	var records []Record
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}
		line++

		values := make(map[string]string, len(columns))
		for i, column := range columns {
			if i < len(row) {
				values[column] = strings.TrimSpace(row[i])
			}
		}

		record := Record{
			Subject:     values["subject"],
			Number:      values["number"],
			Name:        values["name"],
			Description: values["description"],
			CreditHours: resolveCreditValue(values),
		}

		if err := record.Validate(); err != nil {
			logger.Debug().Err(err).Int("line", line).Msg("Skipping catalog row")
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

// resolveCreditValue collapses the credit-hour header synonyms into one field.
func resolveCreditValue(values map[string]string) string {
	for _, key := range creditHourColumns {
		if value := values[key]; value != "" {
			return value
		}
	}

	for key, value := range values {
		if strings.Contains(key, "credit") && strings.Contains(key, "hour") && value != "" {
			return value
		}
	}

	return ""
}
