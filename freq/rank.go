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
	"fmt"
	"sort"

	"freqdict/ferror"
)

// DfltRankCap is the default ceiling for the number of top-ranked
// entries kept in a produced dictionary.
const DfltRankCap = 50000

// Entry is a single item of a ranked frequency list.
type Entry struct {
	Term  Term
	Count int64
	Rank  int
}

type RankedList []Entry

// ExportEntry is what the archive packager consumes. Counts are
// deliberately not exposed downstream - only the rank matters to
// the dictionary consumer.
type ExportEntry struct {
	Surface string
	Reading string
	Rank    int
}

// Export strips counts off a ranked list, producing the sequence
// handed over to the archive writer.
func (rl RankedList) Export() []ExportEntry {
	ans := make([]ExportEntry, len(rl))
	for i, entry := range rl {
		ans[i] = ExportEntry{
			Surface: entry.Term.Surface,
			Reading: entry.Term.Reading,
			Rank:    entry.Rank,
		}
	}
	return ans
}

// Rank orders unified term counts by count (descending) and assigns
// dense 1-based ranks. Entries with equal counts are ordered by their
// surface form (and then reading) in ascending byte order so repeated
// runs over the same input produce identical output; equal-count
// entries still receive distinct consecutive ranks. The result is
// truncated to the first maxItems entries.
func Rank(counts TermCounts, maxItems int) (RankedList, error) {
	if maxItems <= 0 {
		return nil, ferror.CapError{
			Msg: fmt.Sprintf("invalid rank cap %d, a positive value is required", maxItems),
		}
	}
	ans := make(RankedList, 0, len(counts))
	for term, count := range counts {
		ans = append(ans, Entry{Term: term, Count: count})
	}
	sort.Slice(ans, func(i, j int) bool {
		if ans[i].Count != ans[j].Count {
			return ans[i].Count > ans[j].Count
		}
		if ans[i].Term.Surface != ans[j].Term.Surface {
			return ans[i].Term.Surface < ans[j].Term.Surface
		}
		return ans[i].Term.Reading < ans[j].Term.Reading
	})
	if len(ans) > maxItems {
		ans = ans[:maxItems]
	}
	for i := range ans {
		ans[i].Rank = i + 1
	}
	return ans, nil
}
