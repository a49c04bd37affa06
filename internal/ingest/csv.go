// Package ingest loads category question pools from CSV files.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/citizenprep/backend/internal/domain/question"
	"github.com/citizenprep/backend/internal/domain/testset"
)

// Column headers of a pool file.
const (
	colQuestion = "Question"
	colOption1  = "Option 1"
	colOption2  = "Option 2"
	colOption3  = "Option 3"
	colAnswer   = "Correct Answer"
	colNote     = "Note"
)

var ErrMissingColumn = errors.New("missing required column")

// ParseCSV reads the questions of one category. Blank lines and rows without
// a question, first option or correct answer are skipped; every remaining row
// must form a valid question.
func ParseCSV(r io.Reader, category question.Category) ([]question.Question, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", question.ErrUnknownCategory, category)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, required := range []string{colQuestion, colOption1, colAnswer} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var questions []question.Question
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		text := field(row, colQuestion)
		answer := field(row, colAnswer)
		if text == "" || field(row, colOption1) == "" || answer == "" {
			continue
		}

		var options []string
		for _, name := range []string{colOption1, colOption2, colOption3} {
			if opt := field(row, name); opt != "" {
				options = append(options, opt)
			}
		}

		q, err := question.New(text, options, answer, category, field(row, colNote))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// LoadFS reads every "<category>.csv" file at the root of fsys. A file whose
// name is not a known category is rejected. Categories without a file are
// left empty, which generation reports as an empty pool.
func LoadFS(fsys fs.FS) (testset.Pools, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list question files: %w", err)
	}

	pools := make(testset.Pools, len(question.Categories))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".csv" {
			continue
		}

		category, err := question.ParseCategory(strings.TrimSuffix(name, ".csv"))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		qs, err := parseFile(fsys, name, category)
		if err != nil {
			return nil, err
		}
		pools[category] = append(pools[category], qs...)
	}
	return pools, nil
}

// LoadDir reads the pool files in dir.
func LoadDir(dir string) (testset.Pools, error) {
	return LoadFS(os.DirFS(dir))
}

func parseFile(fsys fs.FS, name string, category question.Category) ([]question.Question, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	qs, err := ParseCSV(f, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return qs, nil
}
