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

package freq

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"freqdict/ferror"
)

func TestMergeAdditiveSumsAcrossSources(t *testing.T) {
	recs := []Record{
		{Term: Term{Surface: "火", Reading: "ひ"}, Count: 10, Source: "nonmag"},
		{Term: Term{Surface: "火", Reading: "ひ"}, Count: 5, Source: "mag"},
	}
	counts, err := Merge(MergePolicy{Mode: ModeAdditive}, recs)
	assert.NoError(t, err)
	assert.Equal(t, int64(15), counts[Term{Surface: "火", Reading: "ひ"}])
	assert.Len(t, counts, 1)
}

func TestMergeAdditiveKeepsDistinctIdentitiesApart(t *testing.T) {
	recs := []Record{
		{Term: Term{Surface: "場", Reading: "ば"}, Count: 7, Source: "a"},
		{Term: Term{Surface: "場", Reading: "じょう"}, Count: 3, Source: "b"},
	}
	counts, err := Merge(MergePolicy{Mode: ModeAdditive}, recs)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), counts[Term{Surface: "場", Reading: "ば"}])
	assert.Equal(t, int64(3), counts[Term{Surface: "場", Reading: "じょう"}])
}

func TestMergePreferredKeepsHighestPriorityCount(t *testing.T) {
	policy := MergePolicy{
		Mode:          ModeExclusivePreferred,
		PriorityOrder: []string{"luw", "suw"},
	}
	recs := []Record{
		{Term: Term{Surface: "火曜日"}, Count: 3, Source: "suw"},
		{Term: Term{Surface: "火曜日"}, Count: 8, Source: "luw"},
	}
	counts, err := Merge(policy, recs)
	assert.NoError(t, err)
	assert.Equal(t, int64(8), counts[Term{Surface: "火曜日"}])
}

func TestMergePreferredOrderIndependent(t *testing.T) {
	policy := MergePolicy{
		Mode:          ModeExclusivePreferred,
		PriorityOrder: []string{"luw", "suw"},
	}
	fwd := []Record{
		{Term: Term{Surface: "火曜日"}, Count: 8, Source: "luw"},
		{Term: Term{Surface: "火曜日"}, Count: 3, Source: "suw"},
	}
	rev := []Record{fwd[1], fwd[0]}
	counts1, err := Merge(policy, fwd)
	assert.NoError(t, err)
	counts2, err := Merge(policy, rev)
	assert.NoError(t, err)
	assert.Equal(t, counts1, counts2)
}

func TestMergePreferredNoDoubleCounting(t *testing.T) {
	policy := MergePolicy{
		Mode:          ModeExclusivePreferred,
		PriorityOrder: []string{"suw", "luw"},
	}
	recs := []Record{
		{Term: Term{Surface: "本"}, Count: 100, Source: "suw"},
		{Term: Term{Surface: "家"}, Count: 50, Source: "suw"},
		{Term: Term{Surface: "本"}, Count: 20, Source: "luw"},
		{Term: Term{Surface: "新しい家"}, Count: 30, Source: "luw"},
	}
	counts, err := Merge(policy, recs)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), counts[Term{Surface: "本"}])
	assert.Equal(t, int64(50), counts[Term{Surface: "家"}])
	assert.Equal(t, int64(30), counts[Term{Surface: "新しい家"}])

	// unified mass of overlapping identities never exceeds the mass
	// of the most complete single source
	var unified, suwTotal int64
	unified = counts[Term{Surface: "本"}]
	suwTotal = 100
	assert.LessOrEqual(t, unified, suwTotal)
}

func TestMergePreferredSumsWithinSameSource(t *testing.T) {
	policy := MergePolicy{
		Mode:          ModeExclusivePreferred,
		PriorityOrder: []string{"suw", "luw"},
	}
	recs := []Record{
		{Term: Term{Surface: "の"}, Count: 4, Source: "suw"},
		{Term: Term{Surface: "の"}, Count: 6, Source: "suw"},
		{Term: Term{Surface: "の"}, Count: 100, Source: "luw"},
	}
	counts, err := Merge(policy, recs)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), counts[Term{Surface: "の"}])
}

func TestMergeSingleSumsDuplicateLines(t *testing.T) {
	recs := []Record{
		{Term: Term{Surface: "為る", Reading: "する"}, Count: 2, Source: "suw"},
		{Term: Term{Surface: "為る", Reading: "する"}, Count: 3, Source: "suw"},
	}
	counts, err := Merge(MergePolicy{Mode: ModeSingle}, recs)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), counts[Term{Surface: "為る", Reading: "する"}])
}

func TestMergeSingleIdempotent(t *testing.T) {
	orig := TermCounts{
		{Surface: "本", Reading: "ほん"}: 100,
		{Surface: "家", Reading: "いえ"}: 50,
	}
	recs := make([]Record, 0, len(orig))
	for term, count := range orig {
		recs = append(recs, Record{Term: term, Count: count, Source: "merged"})
	}
	counts, err := Merge(MergePolicy{Mode: ModeSingle}, recs)
	assert.NoError(t, err)
	assert.Equal(t, orig, counts)
}

func TestMergePreferredMissingPriorityOrder(t *testing.T) {
	_, err := Merge(MergePolicy{Mode: ModeExclusivePreferred}, nil)
	assert.Error(t, err)
	assert.IsType(t, ferror.PolicyConfigError{}, err)
}

func TestMergePreferredUndeclaredSourceTag(t *testing.T) {
	policy := MergePolicy{
		Mode:          ModeExclusivePreferred,
		PriorityOrder: []string{"suw"},
	}
	recs := []Record{
		{Term: Term{Surface: "本"}, Count: 1, Source: "luw"},
	}
	_, err := Merge(policy, recs)
	assert.Error(t, err)
	assert.IsType(t, ferror.PolicyConfigError{}, err)
}

func TestMergeUnknownMode(t *testing.T) {
	_, err := Merge(MergePolicy{Mode: "majorityVote"}, nil)
	assert.Error(t, err)
	assert.IsType(t, ferror.PolicyConfigError{}, err)
}

func TestMergeNegativeCount(t *testing.T) {
	recs := []Record{
		{Term: Term{Surface: "本"}, Count: -1, Source: "suw"},
	}
	_, err := Merge(MergePolicy{Mode: ModeAdditive}, recs)
	assert.Error(t, err)
	assert.IsType(t, ferror.CountError{}, err)

	policy := MergePolicy{Mode: ModeExclusivePreferred, PriorityOrder: []string{"suw"}}
	_, err = Merge(policy, recs)
	assert.Error(t, err)
	assert.IsType(t, ferror.CountError{}, err)
}

func TestPolicyValidateDuplicateTag(t *testing.T) {
	policy := MergePolicy{
		Mode:          ModeExclusivePreferred,
		PriorityOrder: []string{"suw", "suw"},
	}
	err := policy.Validate()
	assert.Error(t, err)
	assert.IsType(t, ferror.PolicyConfigError{}, err)
}
