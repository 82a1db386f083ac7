package table

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/nutrition-api/internal/domain"
)

// Required header columns. Matching is case-sensitive.
const (
	colID       = "ID"
	colName     = "name"
	colCalories = "calories"
	colIron     = "iron"
)

const delimiter = ';'

// Source opens the raw reference file.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// FileSource reads the reference file from local disk.
type FileSource struct {
	Path string
}

// DataPath returns the fixed location of the reference file under baseDir.
func DataPath(baseDir string) string {
	return filepath.Join(baseDir, "data", "nutrition.csv")
}

func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(s.Path)
}

func (s FileSource) String() string { return s.Path }

// Loader builds the reference table from a Source.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a Loader that reports duplicate names through logger.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// LoadFile loads the reference table from a local path.
func (l *Loader) LoadFile(path string) (*domain.Table, error) {
	return l.Load(context.Background(), FileSource{Path: path})
}

// Load reads and parses the reference file. It always returns a usable table:
// on any failure the table is empty and the error explains why. A missing
// source wraps both domain.ErrDataUnavailable and fs.ErrNotExist.
func (l *Loader) Load(ctx context.Context, src Source) (*domain.Table, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewTable(nil), fmt.Errorf("%w: %s: %w", domain.ErrDataUnavailable, src, err)
		}
		return domain.NewTable(nil), fmt.Errorf("open reference table %s: %w", src, err)
	}
	defer rc.Close()

	t, err := l.Parse(rc)
	if err != nil {
		return domain.NewTable(nil), fmt.Errorf("load reference table %s: %w", src, err)
	}
	return t, nil
}

// Parse reads a semicolon-delimited table with a header row.
func (l *Loader) Parse(r io.Reader) (*domain.Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(content))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", domain.ErrCorruptData)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []domain.Food
	seenIDs := make(map[int]int)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if isBlank(record) {
			continue
		}

		food, err := parseRow(header, cols, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if prev, ok := seenIDs[food.ID]; ok {
			return nil, fmt.Errorf("%w: line %d: ID %d already used on line %d", domain.ErrCorruptData, line, food.ID, prev)
		}
		seenIDs[food.ID] = line
		rows = append(rows, food)
	}

	t := domain.NewTable(rows)
	for _, name := range t.Duplicates() {
		l.logger.Warn("duplicate food name, lookups use the first row", "name", name)
	}
	return t, nil
}

// columns holds header positions of the required columns.
type columns struct {
	id, name, calories, iron int
}

func indexHeader(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}

	var missing []string
	get := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
		}
		return i
	}
	cols := columns{
		id:       get(colID),
		name:     get(colName),
		calories: get(colCalories),
		iron:     get(colIron),
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%w: header missing columns %s", domain.ErrCorruptData, strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(header []string, cols columns, record []string) (domain.Food, error) {
	cell := func(i int) string {
		if i < len(record) {
			return record[i]
		}
		return ""
	}

	idRaw := strings.TrimSpace(cell(cols.id))
	id, err := strconv.Atoi(idRaw)
	if err != nil {
		return domain.Food{}, fmt.Errorf("%w: ID %q", domain.ErrCorruptData, idRaw)
	}

	name := cell(cols.name)
	if strings.TrimSpace(name) == "" {
		return domain.Food{}, fmt.Errorf("%w: ID %d has no name", domain.ErrCorruptData, id)
	}

	calories, err := domain.ParseCalories(cell(cols.calories))
	if err != nil {
		return domain.Food{}, fmt.Errorf("%s: %w", name, err)
	}

	iron, err := domain.ParseIron(cell(cols.iron))
	if err != nil {
		return domain.Food{}, fmt.Errorf("%s: %w", name, err)
	}

	food := domain.Food{ID: id, Name: name, Calories: calories, Iron: iron}
	for i, h := range header {
		if i == cols.id || i == cols.name || i == cols.calories || i == cols.iron {
			continue
		}
		if v := strings.TrimSpace(cell(i)); v != "" {
			if food.Extra == nil {
				food.Extra = make(map[string]string)
			}
			food.Extra[strings.TrimSpace(h)] = v
		}
	}
	return food, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
