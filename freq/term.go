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

// Term identifies a lexical item within a single corpus. The surface
// form together with the reading forms the whole identity - two records
// belong to the same term iff their Term values are equal. Corpora
// without reliable reading annotations leave Reading empty.
type Term struct {
	Surface string
	Reading string
}

// Record is a single normalized observation of a term: its identity,
// an occurrence count and the tag of the partial table it came from.
// Records are never mutated once created - merging produces new
// aggregate values.
type Record struct {
	Term   Term
	Count  int64
	Source string
}

// TermCounts maps term identities to their unified occurrence counts.
type TermCounts map[Term]int64
