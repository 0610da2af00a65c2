// Package loader reads the heart rate document the dashboard is started with.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/heartdash/data"
	"github.com/heartdash/models"
	"github.com/phuslu/log"
)

// Stdin is the source name that reads the document from standard input.
const Stdin = "-"

// Load reads and decodes the document named by source: a file path, Stdin,
// or "" for the embedded sample. A malformed document is not fatal: the
// returned Dataset is empty and the error wraps models.ErrMalformedDataset.
func Load(source string) (models.Dataset, error) {
	return load(source, os.Stdin)
}

func load(source string, stdin io.Reader) (models.Dataset, error) {
	raw, err := read(source, stdin)
	if err != nil {
		return nil, err
	}

	dataset, err := models.LoadDataset(raw)
	if err != nil {
		log.Warn().Str("source", describe(source)).Err(err).Msg("heart rate document is malformed, continuing without data")
		return models.Dataset{}, err
	}

	log.Info().Str("source", describe(source)).Int("records", len(dataset)).Msg("heart rate dataset loaded")
	return dataset, nil
}

func read(source string, stdin io.Reader) ([]byte, error) {
	switch source {
	case "":
		return data.Sample(), nil
	case Stdin:
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset from stdin: %w", err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", source, err)
	}
	return raw, nil
}

// IsMalformed reports whether err only signals a malformed document, which
// callers render as "no data" rather than fail on.
func IsMalformed(err error) bool {
	return errors.Is(err, models.ErrMalformedDataset)
}

func describe(source string) string {
	switch source {
	case "":
		return "embedded sample"
	case Stdin:
		return "stdin"
	default:
		return source
	}
}
