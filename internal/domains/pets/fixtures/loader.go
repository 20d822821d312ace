// Package fixtures loads pet fixtures from JSON literals and CSV tables and
// turns them into domain pets.
package fixtures

import (
	"embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/adapters/http/mapper"
	"github.com/Apurer/petstore-e2e/internal/domains/pets/domain"
	harnesserrors "github.com/Apurer/petstore-e2e/internal/shared/errors"
)

// Names of the fixtures shipped with the harness.
const (
	CreateFixture = "json/pet1.json"
	UpdateFixture = "json/pet2.json"
	BatchFixture  = "csv/pets.csv"
)

// Column order of the batch fixture table.
var Columns = []string{"id", "category_id", "category_name", "name", "tags", "status"}

//go:embed data
var embedded embed.FS

// Default returns the fixture set embedded in the binary.
func Default() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("embedded fixtures: %v", err))
	}
	return sub
}

// Row is one raw data line of the batch fixture table.
type Row struct {
	Line         int
	ID           string
	CategoryID   string
	CategoryName string
	Name         string
	Tags         string
	Status       string
}

// Rows lazily yields the data rows of a CSV fixture in file order.
//
// The header line is consumed and never yielded. The file is opened when
// iteration starts and closed when it ends, so ranging again re-reads the
// file from the top. After yielding an error the sequence stops.
func Rows(fsys fs.FS, name string) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		f, err := open(fsys, name)
		if err != nil {
			yield(Row{}, err)
			return
		}
		defer f.Close()

		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			yield(Row{}, parseError(err))
			return
		}
		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Row{}, parseError(err))
				return
			}
			line, _ := reader.FieldPos(0)
			if len(record) != len(Columns) {
				yield(Row{}, &harnesserrors.MalformedRowError{
					Line:   line,
					Reason: fmt.Sprintf("expected %d fields, got %d", len(Columns), len(record)),
				})
				return
			}
			row := Row{
				Line:         line,
				ID:           record[0],
				CategoryID:   record[1],
				CategoryName: record[2],
				Name:         record[3],
				Tags:         record[4],
				Status:       record[5],
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// ReadRows collects every row of a CSV fixture.
func ReadRows(fsys fs.FS, name string) ([]Row, error) {
	var rows []Row
	for row, err := range Rows(fsys, name) {
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadPet reads a single JSON pet literal.
func LoadPet(fsys fs.FS, name string) (domain.Pet, error) {
	f, err := open(fsys, name)
	if err != nil {
		return domain.Pet{}, err
	}
	defer f.Close()

	var payload mapper.Pet
	if err := json.NewDecoder(f).Decode(&payload); err != nil {
		return domain.Pet{}, fmt.Errorf("%w: decode %s: %v", harnesserrors.ErrMalformedRow, name, err)
	}
	return mapper.ToDomainPet(payload), nil
}

// open maps both a missing file and a name the file system cannot hold,
// such as an absolute path, to FixtureNotFoundError.
func open(fsys fs.FS, name string) (fs.File, error) {
	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		return nil, &harnesserrors.FixtureNotFoundError{Path: name, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("open fixture %s: %w", name, err)
	}
	return f, nil
}

func parseError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &harnesserrors.MalformedRowError{Line: parseErr.Line, Reason: parseErr.Err.Error()}
	}
	return fmt.Errorf("read fixture: %w", err)
}
