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

package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"

	"freqdict/freq"
	"freqdict/parse"
)

// Single corpus configuration types
// ----------------------------------------

// ArchiveSource configures a corpus whose input is an already built
// dictionary archive which is only re-capped and re-packaged.
type ArchiveSource struct {
	Path string `json:"path"`
}

// CorpusSetup defines a single corpus/era conversion: where the raw
// tables are, how their partial views relate to each other (merge
// policy) and the metadata of the produced dictionary.
type CorpusSetup struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Revision string `json:"revision"`

	Author      string `json:"author"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Attribution string `json:"attribution"`

	// UseReadings decides whether readings participate in term
	// identity. Historical-era corpora without reliable reading
	// annotations keep this disabled.
	UseReadings bool `json:"useReadings"`

	MergePolicy freq.MergePolicy   `json:"mergePolicy"`
	Tables      []*parse.TableConf `json:"tables"`
	Archive     *ArchiveSource     `json:"archive,omitempty"`

	// MaxEntries overrides the global rank cap for this corpus
	// (zero means "use the global value").
	MaxEntries int `json:"maxEntries"`
}

// IsArchiveSourced tests whether the corpus repacks an existing
// dictionary archive instead of processing raw tables.
func (cs *CorpusSetup) IsArchiveSourced() bool {
	return cs.Archive != nil
}

// IsPreRanked tests whether the corpus input already carries rank
// ordering (a rank list table or an archive), i.e. whether the
// merge+rank pipeline is bypassed.
func (cs *CorpusSetup) IsPreRanked() bool {
	if cs.IsArchiveSourced() {
		return true
	}
	return len(cs.Tables) > 0 && cs.Tables[0].Kind == parse.KindRankList
}

// SourceTags lists the source tags of all configured tables.
func (cs *CorpusSetup) SourceTags() []string {
	ans := make([]string, len(cs.Tables))
	for i, tc := range cs.Tables {
		ans[i] = tc.Source
	}
	return ans
}

func (cs *CorpusSetup) ValidateAndDefaults() error {
	if cs.ID == "" {
		return fmt.Errorf("missing corpus `id`")
	}
	if cs.Title == "" {
		return fmt.Errorf("missing `title` (corpus %s)", cs.ID)
	}
	if cs.Revision == "" {
		return fmt.Errorf("missing `revision` (corpus %s)", cs.ID)
	}
	if cs.MaxEntries < 0 {
		return fmt.Errorf("`maxEntries` must not be negative (corpus %s)", cs.ID)
	}
	if cs.IsArchiveSourced() {
		if len(cs.Tables) > 0 {
			return fmt.Errorf("corpus %s cannot combine `archive` and `tables`", cs.ID)
		}
		if cs.Archive.Path == "" {
			return fmt.Errorf("missing `archive.path` (corpus %s)", cs.ID)
		}
		return nil
	}
	if len(cs.Tables) == 0 {
		return fmt.Errorf("corpus %s defines neither `tables` nor `archive`", cs.ID)
	}
	for _, tc := range cs.Tables {
		if err := tc.ValidateAndDefaults(); err != nil {
			return fmt.Errorf("corpus %s: %w", cs.ID, err)
		}
	}
	tags := cs.SourceTags()
	for i, tag := range tags {
		if collections.SliceContains(tags[:i], tag) {
			return fmt.Errorf("corpus %s: duplicate table source tag `%s`", cs.ID, tag)
		}
	}
	if cs.IsPreRanked() {
		if len(cs.Tables) != 1 {
			return fmt.Errorf(
				"corpus %s: a rank list source must be the only table", cs.ID)
		}
		return nil
	}
	for _, tc := range cs.Tables {
		if tc.Kind == parse.KindRankList {
			return fmt.Errorf(
				"corpus %s: cannot mix rank list and frequency list tables", cs.ID)
		}
	}
	if cs.MergePolicy.Mode == "" && len(cs.Tables) == 1 {
		cs.MergePolicy.Mode = freq.ModeSingle
		log.Warn().
			Str("corpus", cs.ID).
			Msg("missing `mergePolicy.mode` for a single-table corpus, using `single`")
	}
	if err := cs.MergePolicy.Validate(); err != nil {
		return fmt.Errorf("corpus %s: %w", cs.ID, err)
	}
	if cs.MergePolicy.Mode == freq.ModeSingle && len(cs.Tables) != 1 {
		return fmt.Errorf(
			"corpus %s: the `single` merge policy requires exactly one table", cs.ID)
	}
	if cs.MergePolicy.Mode == freq.ModeExclusivePreferred {
		// fail fast on tags the merge engine would reject anyway
		for _, tag := range tags {
			if !collections.SliceContains(cs.MergePolicy.PriorityOrder, tag) {
				return fmt.Errorf(
					"corpus %s: table source tag `%s` not covered by the priority order",
					cs.ID, tag,
				)
			}
		}
	}
	return nil
}

// Multiple corpora configuration types
// -------------------------------------

type Resources []*CorpusSetup

func (rscs *Resources) Load(directory string) error {
	files, err := os.ReadDir(directory)
	if err != nil {
		return fmt.Errorf("failed to load corpora configs: %w", err)
	}
	for _, f := range files {
		confPath := filepath.Join(directory, f.Name())
		tmp, err := os.ReadFile(confPath)
		if err != nil {
			log.Warn().
				Err(err).
				Str("file", confPath).
				Msg("encountered invalid corpus configuration file, skipping")
			continue
		}
		var conf CorpusSetup
		err = sonic.Unmarshal(tmp, &conf)
		if err != nil {
			log.Warn().
				Err(err).
				Str("file", confPath).
				Msg("encountered invalid corpus configuration file, skipping")
			continue
		}
		*rscs = append(*rscs, &conf)
		log.Info().Str("name", conf.ID).Msg("loaded corpus configuration file")
	}
	return nil
}

func (rscs Resources) Get(name string) *CorpusSetup {
	for _, v := range rscs {
		if v.ID == name {
			return v
		}
	}
	return nil
}
