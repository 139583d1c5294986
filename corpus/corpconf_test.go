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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freqdict/freq"
	"freqdict/parse"
)

func testSetup() *CorpusSetup {
	return &CorpusSetup{
		ID:       "chj_premodern",
		Title:    "奈良〜江戸",
		Revision: "src v2022_03 yomi v0",
		MergePolicy: freq.MergePolicy{
			Mode:          freq.ModeExclusivePreferred,
			PriorityOrder: []string{"suw", "luw"},
		},
		Tables: []*parse.TableConf{
			{Path: "suw.csv", Source: "suw", SurfaceCol: 1, ReadingCol: 0, FreqCol: 16},
			{Path: "luw.csv", Source: "luw", SurfaceCol: 1, ReadingCol: 0, FreqCol: 13},
		},
	}
}

func TestCorpusSetupValid(t *testing.T) {
	setup := testSetup()
	assert.NoError(t, setup.ValidateAndDefaults())
	assert.False(t, setup.IsPreRanked())
	assert.Equal(t, []string{"suw", "luw"}, setup.SourceTags())
}

func TestCorpusSetupRequiresID(t *testing.T) {
	setup := testSetup()
	setup.ID = ""
	assert.Error(t, setup.ValidateAndDefaults())
}

func TestCorpusSetupRequiresTablesOrArchive(t *testing.T) {
	setup := testSetup()
	setup.Tables = nil
	assert.Error(t, setup.ValidateAndDefaults())
}

func TestCorpusSetupRejectsTablesWithArchive(t *testing.T) {
	setup := testSetup()
	setup.Archive = &ArchiveSource{Path: "jpdb.zip"}
	assert.Error(t, setup.ValidateAndDefaults())
}

func TestCorpusSetupArchiveSource(t *testing.T) {
	setup := &CorpusSetup{
		ID:       "jpdb",
		Title:    "JPDB",
		Revision: "v1",
		Archive:  &ArchiveSource{Path: "jpdb.zip"},
	}
	assert.NoError(t, setup.ValidateAndDefaults())
	assert.True(t, setup.IsArchiveSourced())
	assert.True(t, setup.IsPreRanked())
}

func TestCorpusSetupDuplicateSourceTag(t *testing.T) {
	setup := testSetup()
	setup.Tables[1].Source = "suw"
	assert.Error(t, setup.ValidateAndDefaults())
}

func TestCorpusSetupPriorityMustCoverTags(t *testing.T) {
	setup := testSetup()
	setup.MergePolicy.PriorityOrder = []string{"suw"}
	assert.Error(t, setup.ValidateAndDefaults())
}

func TestCorpusSetupSingleRequiresOneTable(t *testing.T) {
	setup := testSetup()
	setup.MergePolicy = freq.MergePolicy{Mode: freq.ModeSingle}
	assert.Error(t, setup.ValidateAndDefaults())
}

func TestCorpusSetupRankListMustBeOnlyTable(t *testing.T) {
	setup := testSetup()
	setup.Tables[0].Kind = parse.KindRankList
	assert.Error(t, setup.ValidateAndDefaults())
}

func TestCorpusSetupRankListSingleTable(t *testing.T) {
	setup := &CorpusSetup{
		ID:       "bccwj",
		Title:    "書き言葉",
		Revision: "src v1.1 yomi v0",
		Tables: []*parse.TableConf{
			{
				Path:       "bccwj.tsv",
				Source:     "suw",
				Kind:       parse.KindRankList,
				SurfaceCol: 2,
				ReadingCol: 1,
				SkipLines:  1,
			},
		},
	}
	assert.NoError(t, setup.ValidateAndDefaults())
	assert.True(t, setup.IsPreRanked())
}

func TestResourcesLoadAndGet(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "csj.json"),
		[]byte(`{"id": "csj", "title": "話し言葉", "revision": "v201803"}`),
		0644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "broken.json"), []byte("{{{"), 0644))

	var rscs Resources
	require.NoError(t, rscs.Load(dir))
	require.Len(t, rscs, 1)
	assert.Equal(t, "csj", rscs[0].ID)
	assert.NotNil(t, rscs.Get("csj"))
	assert.Nil(t, rscs.Get("nwjc"))
}
