//   This file is part of FREQDICT.
//
//  FREQDICT is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  FREQDICT is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with FREQDICT.  If not, see <https://www.gnu.org/licenses/>.

// Package archive reads and writes Yomichan frequency dictionary
// archives - zip files containing an index.json with dictionary
// metadata and one or more term meta banks with ranked terms.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/flate"

	"freqdict/freq"
)

const (
	// FormatVersion is the Yomichan dictionary format revision.
	FormatVersion = 3

	// FrequencyModeRank marks the dictionary as carrying ranks
	// rather than raw occurrence counts.
	FrequencyModeRank = "rank-based"

	indexFileName      = "index.json"
	termBankFilePrefix = "term_meta_bank_"
	termBankEntryType  = "freq"
	termBankChunkSize  = 10000
)

// Index is the manifest of a dictionary archive.
type Index struct {
	Title         string `json:"title"`
	Format        int    `json:"format"`
	Revision      string `json:"revision"`
	Sequenced     bool   `json:"sequenced"`
	FrequencyMode string `json:"frequencyMode"`
	Author        string `json:"author,omitempty"`
	URL           string `json:"url,omitempty"`
	Description   string `json:"description,omitempty"`
	Attribution   string `json:"attribution,omitempty"`
}

func entryToJSON(entry freq.ExportEntry) []any {
	if entry.Reading != "" {
		return []any{
			entry.Surface,
			termBankEntryType,
			map[string]any{
				"reading":   entry.Reading,
				"frequency": entry.Rank,
			},
		}
	}
	return []any{entry.Surface, termBankEntryType, entry.Rank}
}

// Write stores a ranked term list as a dictionary archive at the given
// path. The file appears atomically - it is first assembled under a
// temporary name and renamed once complete, so a failed run leaves no
// partial archive behind.
func Write(path string, index Index, entries []freq.ExportEntry) error {
	index.Format = FormatVersion
	index.Sequenced = false
	index.FrequencyMode = FrequencyModeRank

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create archive %s: %w", path, err)
	}
	defer os.Remove(tmpPath)

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	if err := writeJSONFile(zw, indexFileName, index); err != nil {
		f.Close()
		return fmt.Errorf("failed to write archive %s: %w", path, err)
	}
	var bankIdx int
	for i := 0; i < len(entries); i += termBankChunkSize {
		chunkEnd := i + termBankChunkSize
		if chunkEnd > len(entries) {
			chunkEnd = len(entries)
		}
		bank := make([][]any, 0, chunkEnd-i)
		for _, entry := range entries[i:chunkEnd] {
			bank = append(bank, entryToJSON(entry))
		}
		bankIdx++
		name := fmt.Sprintf("%s%d.json", termBankFilePrefix, bankIdx)
		if err := writeJSONFile(zw, name, bank); err != nil {
			f.Close()
			return fmt.Errorf("failed to write archive %s: %w", path, err)
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize archive %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive %s: %w", path, err)
	}
	return os.Rename(tmpPath, path)
}

func writeJSONFile(zw *zip.Writer, name string, value any) error {
	wr, err := zw.Create(name)
	if err != nil {
		return err
	}
	raw, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	_, err = wr.Write(raw)
	return err
}

// Load reads a dictionary archive back, returning its index and at
// most maxItems term entries (maxItems <= 0 means no limit). The
// reader accepts both the frequency payload written by this tool
// (a plain rank) and the object form `{"value": rank}` used by some
// third-party dictionaries.
func Load(path string, maxItems int) (Index, []freq.ExportEntry, error) {
	var index Index
	zr, err := zip.OpenReader(path)
	if err != nil {
		return index, nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer zr.Close()

	var indexLoaded bool
	entries := make([]freq.ExportEntry, 0, termBankChunkSize)
	for _, zf := range zr.File {
		switch {
		case zf.Name == indexFileName:
			if err := readJSONFile(zf, &index); err != nil {
				return index, nil, fmt.Errorf("failed to read archive %s: %w", path, err)
			}
			indexLoaded = true
		case strings.HasPrefix(zf.Name, termBankFilePrefix):
			var bank [][]any
			if err := readJSONFile(zf, &bank); err != nil {
				return index, nil, fmt.Errorf("failed to read archive %s: %w", path, err)
			}
			for _, row := range bank {
				if maxItems > 0 && len(entries) >= maxItems {
					break
				}
				entry, err := entryFromJSON(row)
				if err != nil {
					return index, nil, fmt.Errorf(
						"malformed term meta entry in %s (%s): %w", path, zf.Name, err)
				}
				entries = append(entries, entry)
			}
		}
	}
	if !indexLoaded {
		return index, nil, fmt.Errorf("archive %s contains no %s", path, indexFileName)
	}
	return index, entries, nil
}

func readJSONFile(zf *zip.File, value any) error {
	rd, err := zf.Open()
	if err != nil {
		return err
	}
	defer rd.Close()
	raw, err := io.ReadAll(rd)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(raw, value)
}

func entryFromJSON(row []any) (freq.ExportEntry, error) {
	var ans freq.ExportEntry
	if len(row) != 3 {
		return ans, fmt.Errorf("expected 3 elements, found %d", len(row))
	}
	surface, ok := row[0].(string)
	if !ok || surface == "" {
		return ans, fmt.Errorf("missing term surface form")
	}
	ans.Surface = surface
	payload := row[2]
	if obj, ok := payload.(map[string]any); ok {
		if reading, ok := obj["reading"].(string); ok {
			ans.Reading = reading
			payload = obj["frequency"]
		}
	}
	rank, err := rankOfPayload(payload)
	if err != nil {
		return ans, err
	}
	ans.Rank = rank
	return ans, nil
}

func rankOfPayload(payload any) (int, error) {
	switch tr := payload.(type) {
	case float64:
		return int(tr), nil
	case map[string]any:
		value, ok := tr["value"].(float64)
		if !ok {
			return 0, fmt.Errorf("missing frequency value")
		}
		return int(value), nil
	}
	return 0, fmt.Errorf("unsupported frequency payload of type %T", payload)
}
