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

package main

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"freqdict/archive"
	"freqdict/cnf"
	"freqdict/corpus"
	"freqdict/ferror"
	"freqdict/freq"
	"freqdict/parse"
)

// runConvert processes the selected corpora (all configured ones if
// the selector list is empty). Corpora are independent units - they
// are converted in parallel with no shared state, and a failure of
// one corpus does not stop the others.
func runConvert(conf *cnf.Conf, corpusIDs []string) {
	if conf.RankCap <= 0 {
		log.Fatal().
			Err(ferror.CapError{Msg: fmt.Sprintf("invalid rank cap %d", conf.RankCap)}).
			Msg("invalid configuration")
		return
	}
	setups := make([]*corpus.CorpusSetup, 0, len(conf.Corpora))
	if len(corpusIDs) == 0 {
		setups = append(setups, conf.Corpora...)

	} else {
		for _, corpusID := range corpusIDs {
			setup := conf.Corpora.Get(corpusID)
			if setup == nil {
				log.Fatal().Msgf("Unknown corpus %s", corpusID)
				return
			}
			setups = append(setups, setup)
		}
	}

	runID := uuid.New().String()
	log.Info().
		Str("runId", runID).
		Int("numCorpora", len(setups)).
		Msg("starting conversion")

	var numFailed atomic.Int32
	var g errgroup.Group
	g.SetLimit(conf.MaxParallelJobs)
	for _, setup := range setups {
		g.Go(func() error {
			t0 := time.Now()
			outPath := filepath.Join(conf.OutputDir, setup.ID+".zip")
			if err := convertCorpus(conf, setup, outPath); err != nil {
				log.Error().
					Err(err).
					Str("runId", runID).
					Str("corpus", setup.ID).
					Msg("conversion failed")
				numFailed.Add(1)
				return nil
			}
			log.Info().
				Str("runId", runID).
				Str("corpus", setup.ID).
				Str("archive", outPath).
				Float64("durationSec", time.Since(t0).Seconds()).
				Msg("corpus converted")
			return nil
		})
	}
	g.Wait()
	if n := numFailed.Load(); n > 0 {
		log.Fatal().Msgf("conversion finished with %d failed corpora", n)
		return
	}
	log.Info().Str("runId", runID).Msg("conversion finished")
}

// convertCorpus runs the whole pipeline for one corpus/era: raw
// tables -> normalized records -> merged counts -> ranked, capped
// list -> dictionary archive. Any stage failure aborts the corpus
// with an error naming the corpus and the stage; no partial archive
// is produced.
func convertCorpus(conf *cnf.Conf, setup *corpus.CorpusSetup, outPath string) error {
	maxItems := conf.RankCap
	if setup.MaxEntries > 0 {
		maxItems = setup.MaxEntries
	}
	entries, err := produceEntries(setup, maxItems)
	if err != nil {
		return err
	}
	index := archive.Index{
		Title:       setup.Title,
		Revision:    setup.Revision,
		Author:      setup.Author,
		URL:         setup.URL,
		Description: setup.Description,
		Attribution: setup.Attribution,
	}
	if err := archive.Write(outPath, index, entries); err != nil {
		return fmt.Errorf("corpus %s, stage export: %w", setup.ID, err)
	}
	return nil
}

func produceEntries(setup *corpus.CorpusSetup, maxItems int) ([]freq.ExportEntry, error) {
	if setup.IsArchiveSourced() {
		_, entries, err := archive.Load(setup.Archive.Path, maxItems)
		if err != nil {
			return nil, fmt.Errorf("corpus %s, stage load: %w", setup.ID, err)
		}
		return entries, nil
	}
	if setup.IsPreRanked() {
		entries, err := parse.ReadRankTable(setup.Tables[0], setup.UseReadings, maxItems)
		if err != nil {
			return nil, fmt.Errorf("corpus %s, stage parse: %w", setup.ID, err)
		}
		return entries, nil
	}

	var records []freq.Record
	for _, table := range setup.Tables {
		recs, err := parse.ReadFreqTable(table, setup.UseReadings)
		if err != nil {
			return nil, fmt.Errorf("corpus %s, stage parse: %w", setup.ID, err)
		}
		log.Debug().
			Str("corpus", setup.ID).
			Str("table", table.Path).
			Int("numRecords", len(recs)).
			Msg("table parsed")
		records = append(records, recs...)
	}
	counts, err := freq.Merge(setup.MergePolicy, records)
	if err != nil {
		return nil, fmt.Errorf("corpus %s, stage merge: %w", setup.ID, err)
	}
	ranked, err := freq.Rank(counts, maxItems)
	if err != nil {
		return nil, fmt.Errorf("corpus %s, stage rank: %w", setup.ID, err)
	}
	log.Debug().
		Str("corpus", setup.ID).
		Int("numTerms", len(counts)).
		Int("numRanked", len(ranked)).
		Msg("terms merged and ranked")
	return ranked.Export(), nil
}
