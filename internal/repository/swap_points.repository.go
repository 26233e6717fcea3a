package repository

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/kgsd/fx-md-adapter/internal/entity"
	"github.com/kgsd/fx-md-adapter/internal/tenor"
	"github.com/sirupsen/logrus"
)

// SwapPointsCatalog indexes the swap points reference data by currency pair.
// Entries keep their file order; entries whose toMaturity does not survive
// normalization are dropped and counted. The catalog is built once at
// startup and read-only afterwards.
type SwapPointsCatalog struct {
	entriesByPair map[string][]entity.SwapPointEntry
	skipped       int
}

// LoadSwapPointsCatalog loads the reference file. Loading is fail-soft: a
// missing or unreadable file yields an empty catalog and a logged error,
// never a fatal condition.
func LoadSwapPointsCatalog(path string) *SwapPointsCatalog {
	file, err := os.Open(path)
	if err != nil {
		logrus.Errorf("swap points file %s not found: %v", path, err)
		return &SwapPointsCatalog{entriesByPair: make(map[string][]entity.SwapPointEntry)}
	}
	defer file.Close()

	return LoadSwapPoints(file)
}

// LoadSwapPoints parses delimited reference data: a header record, then
// records of at least ccy1, ccy2, fromMaturity, toMaturity. Short records
// are ignored; extra columns are ignored.
func LoadSwapPoints(r io.Reader) *SwapPointsCatalog {
	catalog := &SwapPointsCatalog{entriesByPair: make(map[string][]entity.SwapPointEntry)}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	recordIndex := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// The reader resumes at the next record after a parse error, so
			// one bad vendor line must not truncate the rest of the catalog.
			logrus.Warnf("skipping malformed swap points record: %v", err)
			recordIndex++
			continue
		}

		recordIndex++
		if recordIndex == 1 {
			continue // header
		}

		if len(fields) < 4 {
			continue
		}

		ccy1 := strings.TrimSpace(fields[0])
		ccy2 := strings.TrimSpace(fields[1])
		fromMaturity := tenor.Normalize(strings.TrimSpace(fields[2]))
		toMaturity := tenor.Normalize(strings.TrimSpace(fields[3]))

		if toMaturity == "" {
			logrus.Warnf("skipping invalid tenor: %s", strings.TrimSpace(fields[3]))
			catalog.skipped++
			continue
		}

		entry := entity.SwapPointEntry{
			Ccy1:         ccy1,
			Ccy2:         ccy2,
			FromMaturity: fromMaturity,
			ToMaturity:   toMaturity,
		}
		catalog.entriesByPair[entry.Pair()] = append(catalog.entriesByPair[entry.Pair()], entry)
	}

	logrus.Infof("loaded swap points for %d currency pairs with %d tenors skipped",
		len(catalog.entriesByPair), catalog.skipped)

	return catalog
}

// Lookup returns the entries for a currency pair in file order, or an empty
// slice for an unknown pair.
func (c *SwapPointsCatalog) Lookup(pair string) []entity.SwapPointEntry {
	return c.entriesByPair[pair]
}

func (c *SwapPointsCatalog) PairCount() int {
	return len(c.entriesByPair)
}

// SkippedCount reports how many records were dropped at load time for an
// invalid toMaturity.
func (c *SwapPointsCatalog) SkippedCount() int {
	return c.skipped
}
