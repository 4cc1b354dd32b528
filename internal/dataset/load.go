package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/verte-zerg/launchdash/internal/model"
	"github.com/verte-zerg/launchdash/internal/store"
)

// CSV headers for the required columns.
const (
	HeaderSite    = "Launch Site"
	HeaderPayload = "Payload Mass (kg)"
	HeaderClass   = "class"
	HeaderBooster = "Booster Version Category"
)

// RequiredHeaders lists the CSV columns every source must provide.
var RequiredHeaders = []string{HeaderSite, HeaderPayload, HeaderClass, HeaderBooster}

// Load reads a dataset from source. SQLite files (.db, .sqlite, .sqlite3) are
// read through the store package; "-" reads CSV from stdin; anything else is
// parsed as CSV.
func Load(source string) (*Dataset, error) {
	if source == "" {
		return nil, loadErr(source, 0, "no data source given", os.ErrNotExist)
	}
	if source == "-" {
		return LoadReader("stdin", os.Stdin)
	}
	if isSQLite(source) {
		return loadSQLite(source)
	}
	file, err := os.Open(source)
	if err != nil {
		return nil, loadErr(source, 0, "", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only data file.
			_ = cerr
		}
	}()
	return LoadReader(source, file)
}

// LoadReader parses CSV launch records from r. name identifies the source in
// errors.
func LoadReader(name string, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, loadErr(name, 0, "no header row", ErrEmpty)
		}
		return nil, loadErr(name, 1, "failed to read header", errors.Join(ErrMalformed, err))
	}
	cols, err := mapColumns(headers)
	if err != nil {
		return nil, loadErr(name, 1, "", err)
	}

	var records []model.Record
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, loadErr(name, line, "", errors.Join(ErrMalformed, err))
		}
		if isBlankRow(row) {
			continue
		}
		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, loadErr(name, line, "", err)
		}
		records = append(records, rec)
	}

	ds, err := New(records)
	if err != nil {
		return nil, loadErr(name, 0, "", err)
	}
	return ds, nil
}

type columnIndex struct {
	site    int
	payload int
	class   int
	booster int
}

func mapColumns(headers []string) (columnIndex, error) {
	index := map[string]int{}
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		key := strings.ToLower(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	lookup := func(name string) (int, error) {
		i, ok := index[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		return i, nil
	}

	var cols columnIndex
	var err error
	if cols.site, err = lookup(HeaderSite); err != nil {
		return cols, err
	}
	if cols.payload, err = lookup(HeaderPayload); err != nil {
		return cols, err
	}
	if cols.class, err = lookup(HeaderClass); err != nil {
		return cols, err
	}
	if cols.booster, err = lookup(HeaderBooster); err != nil {
		return cols, err
	}
	return cols, nil
}

func parseRow(row []string, cols columnIndex) (model.Record, error) {
	site := strings.TrimSpace(row[cols.site])
	if site == "" {
		return model.Record{}, fmt.Errorf("%w: empty %q", ErrMalformed, HeaderSite)
	}
	payloadText := strings.TrimSpace(row[cols.payload])
	payload, err := strconv.ParseFloat(payloadText, 64)
	if err != nil || !model.IsFinite(payload) {
		return model.Record{}, fmt.Errorf("%w: invalid %q value %q", ErrMalformed, HeaderPayload, payloadText)
	}
	classText := strings.TrimSpace(row[cols.class])
	class, err := strconv.ParseFloat(classText, 64)
	if err != nil || (class != 0 && class != 1) {
		return model.Record{}, fmt.Errorf("%w: %q must be 0 or 1, got %q", ErrMalformed, HeaderClass, classText)
	}
	return model.Record{
		Site:            site,
		PayloadMass:     payload,
		Success:         class == 1,
		BoosterCategory: strings.TrimSpace(row[cols.booster]),
	}, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isSQLite(source string) bool {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}

func loadSQLite(source string) (*Dataset, error) {
	st, err := store.Open(source)
	if err != nil {
		return nil, loadErr(source, 0, "", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			// Best-effort close; the dataset is already in memory.
			_ = cerr
		}
	}()

	records, err := st.ListLaunches(context.Background())
	if err != nil {
		var colErr *store.MissingColumnError
		switch {
		case errors.As(err, &colErr):
			return nil, loadErr(source, 0, "", fmt.Errorf("%w %q", ErrMissingColumn, colErr.Column))
		case errors.Is(err, store.ErrMissingTable):
			return nil, loadErr(source, 0, "", fmt.Errorf("%w: %w", ErrMissingColumn, err))
		default:
			return nil, loadErr(source, 0, "", errors.Join(ErrMalformed, err))
		}
	}
	ds, err := New(records)
	if err != nil {
		return nil, loadErr(source, 0, "", err)
	}
	return ds, nil
}
