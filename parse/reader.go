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

package parse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"freqdict/ferror"
	"freqdict/freq"
)

const (
	EncodingUTF8  = "utf-8"
	EncodingUTF16 = "utf-16"

	// raw lexicon tables can come with very long lines (e.g. full
	// attribute dumps per lexeme)
	scannerBufSize = 4 * 1024 * 1024
)

const (
	// KindFreqList marks a table with raw occurrence counts. Rows are
	// keyed by lexeme and the rank must be calculated.
	KindFreqList TableKind = "freqList"

	// KindRankList marks a table already ordered by rank (the n-th
	// line holds the n-th most common term).
	KindRankList TableKind = "rankList"
)

type TableKind string

func (tk TableKind) Validate() error {
	if tk != KindFreqList && tk != KindRankList {
		return fmt.Errorf("unknown table kind `%s`", tk)
	}
	return nil
}

// TableConf describes the column layout of a single raw corpus table.
type TableConf struct {
	Path string `json:"path"`

	// Source is the tag identifying this partial table in merge
	// policy priority declarations.
	Source string `json:"source"`

	Kind      TableKind `json:"kind"`
	Separator string    `json:"separator"`

	// SurfaceCol, ReadingCol and FreqCol are zero-based column indices.
	SurfaceCol int `json:"surfaceCol"`
	ReadingCol int `json:"readingCol"`
	FreqCol    int `json:"freqCol"`

	SkipLines int    `json:"skipLines"`
	Encoding  string `json:"encoding"`
}

func (tc *TableConf) ValidateAndDefaults() error {
	if tc.Path == "" {
		return fmt.Errorf("missing table `path`")
	}
	if tc.Source == "" {
		return fmt.Errorf("missing table `source` tag (table %s)", tc.Path)
	}
	if tc.Kind == "" {
		tc.Kind = KindFreqList
	}
	if err := tc.Kind.Validate(); err != nil {
		return err
	}
	if tc.Separator == "" {
		tc.Separator = "\t"
	}
	if tc.Encoding == "" {
		tc.Encoding = EncodingUTF8
	}
	if tc.Encoding != EncodingUTF8 && tc.Encoding != EncodingUTF16 {
		return fmt.Errorf("unsupported table encoding `%s` (table %s)", tc.Encoding, tc.Path)
	}
	if tc.SurfaceCol < 0 || tc.ReadingCol < 0 || tc.FreqCol < 0 {
		return fmt.Errorf("column indices must not be negative (table %s)", tc.Path)
	}
	return nil
}

func (tc *TableConf) open() (io.ReadCloser, error) {
	f, err := os.Open(tc.Path)
	if err != nil {
		return nil, err
	}
	if tc.Encoding == EncodingUTF16 {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return struct {
			io.Reader
			io.Closer
		}{transform.NewReader(f, dec), f}, nil
	}
	return f, nil
}

// termOfLine extracts the term identity from a split table line.
// Entries without any Japanese script (Arabic numbers, Latin script,
// punctuation) are reported via the ok flag as unusable. Pure kana
// terms read as themselves; for kanji terms the reading column is
// used (converted to hiragana) as long as readings are enabled for
// the corpus.
func (tc *TableConf) termOfLine(items []string, useReadings bool) (freq.Term, bool) {
	surface := items[tc.SurfaceCol]
	if !ContainsKanji(surface) {
		if !ContainsKana(surface) {
			return freq.Term{}, false
		}
		return freq.Term{Surface: surface, Reading: surface}, true
	}
	if useReadings {
		return freq.Term{
			Surface: surface,
			Reading: KatakanaToHiragana(items[tc.ReadingCol]),
		}, true
	}
	return freq.Term{Surface: surface}, true
}

func (tc *TableConf) maxCol() int {
	ans := tc.SurfaceCol
	if tc.ReadingCol > ans {
		ans = tc.ReadingCol
	}
	if tc.FreqCol > ans {
		ans = tc.FreqCol
	}
	return ans
}

// ReadFreqTable reads a raw frequency table into normalized records
// consumable by the merge engine. Terms repeated across lines are
// kept as separate records - unifying them is the merge engine's job.
func ReadFreqTable(conf *TableConf, useReadings bool) ([]freq.Record, error) {
	rd, err := conf.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", conf.Path, err)
	}
	defer rd.Close()

	ans := make([]freq.Record, 0, 10000)
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, scannerBufSize), scannerBufSize)
	var lineIdx int
	for sc.Scan() {
		lineIdx++
		if lineIdx <= conf.SkipLines {
			continue
		}
		items := strings.Split(sc.Text(), conf.Separator)
		if len(items) <= conf.maxCol() {
			log.Warn().
				Str("table", conf.Path).
				Int("line", lineIdx).
				Msg("too few columns, skipping line")
			continue
		}
		term, ok := conf.termOfLine(items, useReadings)
		if !ok {
			continue
		}
		count, err := strconv.ParseInt(strings.TrimSpace(items[conf.FreqCol]), 10, 64)
		if err != nil {
			return nil, ferror.InternalError{
				Msg: fmt.Sprintf(
					"malformed frequency value on line %d of table %s: %s",
					lineIdx, conf.Path, err,
				),
			}
		}
		ans = append(ans, freq.Record{Term: term, Count: count, Source: conf.Source})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", conf.Path, err)
	}
	return ans, nil
}

// ReadRankTable reads a table whose lines are already ordered by rank.
// The n-th usable line receives rank n; no merging is involved. The
// result is truncated at maxItems entries.
func ReadRankTable(conf *TableConf, useReadings bool, maxItems int) ([]freq.ExportEntry, error) {
	if maxItems <= 0 {
		return nil, ferror.CapError{
			Msg: fmt.Sprintf("invalid rank cap %d, a positive value is required", maxItems),
		}
	}
	rd, err := conf.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", conf.Path, err)
	}
	defer rd.Close()

	ans := make([]freq.ExportEntry, 0, maxItems)
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, scannerBufSize), scannerBufSize)
	var lineIdx int
	for sc.Scan() {
		lineIdx++
		if lineIdx <= conf.SkipLines {
			continue
		}
		if len(ans) >= maxItems {
			break
		}
		items := strings.Split(sc.Text(), conf.Separator)
		if len(items) <= conf.maxCol() {
			log.Warn().
				Str("table", conf.Path).
				Int("line", lineIdx).
				Msg("too few columns, skipping line")
			continue
		}
		term, ok := conf.termOfLine(items, useReadings)
		if !ok {
			continue
		}
		ans = append(ans, freq.ExportEntry{
			Surface: term.Surface,
			Reading: term.Reading,
			Rank:    len(ans) + 1,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", conf.Path, err)
	}
	return ans, nil
}
