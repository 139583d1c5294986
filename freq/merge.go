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

	"freqdict/ferror"
)

const (
	// ModeAdditive treats partial tables as disjoint samples of the
	// same population - counts for the same identity are summed.
	ModeAdditive PolicyMode = "additive"

	// ModeExclusivePreferred treats partial tables as overlapping in
	// coverage. For an identity present in more than one table only
	// the count from the highest-priority source is kept; summing
	// would count the same underlying occurrence twice.
	ModeExclusivePreferred PolicyMode = "exclusivePreferred"

	// ModeSingle is the base case of exactly one partial table.
	ModeSingle PolicyMode = "single"
)

type PolicyMode string

func (mode PolicyMode) String() string {
	return string(mode)
}

func (mode PolicyMode) Validate() error {
	if mode != ModeAdditive && mode != ModeExclusivePreferred && mode != ModeSingle {
		return ferror.PolicyConfigError{
			Msg: fmt.Sprintf("unknown merge policy mode `%s`", mode),
		}
	}
	return nil
}

// MergePolicy declares how a corpus's partial tables relate to each
// other. The policy is fixed per corpus at configuration time and is
// never inferred from the data.
type MergePolicy struct {
	Mode PolicyMode `json:"mode"`

	// PriorityOrder lists source tags from the most preferred to the
	// least preferred one. Required iff Mode is exclusivePreferred.
	PriorityOrder []string `json:"priorityOrder,omitempty"`
}

func (policy MergePolicy) Validate() error {
	if err := policy.Mode.Validate(); err != nil {
		return err
	}
	if policy.Mode == ModeExclusivePreferred && len(policy.PriorityOrder) == 0 {
		return ferror.PolicyConfigError{
			Msg: "exclusivePreferred policy requires a non-empty priority order",
		}
	}
	seen := make(map[string]bool, len(policy.PriorityOrder))
	for _, tag := range policy.PriorityOrder {
		if seen[tag] {
			return ferror.PolicyConfigError{
				Msg: fmt.Sprintf("duplicate source tag `%s` in priority order", tag),
			}
		}
		seen[tag] = true
	}
	return nil
}

// sourceRank returns the position of a source tag within the declared
// priority order (lower value = more preferred).
func (policy MergePolicy) sourceRank(tag string) (int, bool) {
	for i, v := range policy.PriorityOrder {
		if v == tag {
			return i, true
		}
	}
	return 0, false
}

// Merge produces a single unified count per term identity out of
// records coming from one or more partial tables of the same corpus.
// It is a pure function - for a fixed policy and input the result is
// identical across runs regardless of the input record order (only the
// declared priority order matters for exclusivePreferred).
//
// Records of the same identity coming from the same source are always
// summed; raw tables may list a term repeatedly (e.g. once per
// sub-era or text type).
func Merge(policy MergePolicy, records []Record) (TermCounts, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	switch policy.Mode {
	case ModeAdditive, ModeSingle:
		return mergeAdditive(records)
	case ModeExclusivePreferred:
		return mergePreferred(policy, records)
	}
	return nil, ferror.PolicyConfigError{
		Msg: fmt.Sprintf("unknown merge policy mode `%s`", policy.Mode),
	}
}

func mergeAdditive(records []Record) (TermCounts, error) {
	ans := make(TermCounts, len(records))
	for _, rec := range records {
		if rec.Count < 0 {
			return nil, ferror.CountError{
				Msg: fmt.Sprintf(
					"negative count %d for term `%s` (source `%s`)",
					rec.Count, rec.Term.Surface, rec.Source,
				),
			}
		}
		ans[rec.Term] += rec.Count
	}
	return ans, nil
}

func mergePreferred(policy MergePolicy, records []Record) (TermCounts, error) {
	type winner struct {
		srcRank int
		count   int64
	}
	tmp := make(map[Term]winner, len(records))
	for _, rec := range records {
		if rec.Count < 0 {
			return nil, ferror.CountError{
				Msg: fmt.Sprintf(
					"negative count %d for term `%s` (source `%s`)",
					rec.Count, rec.Term.Surface, rec.Source,
				),
			}
		}
		srcRank, ok := policy.sourceRank(rec.Source)
		if !ok {
			return nil, ferror.PolicyConfigError{
				Msg: fmt.Sprintf(
					"source tag `%s` not present in the declared priority order", rec.Source,
				),
			}
		}
		prev, seen := tmp[rec.Term]
		if !seen || srcRank < prev.srcRank {
			tmp[rec.Term] = winner{srcRank: srcRank, count: rec.Count}

		} else if srcRank == prev.srcRank {
			prev.count += rec.Count
			tmp[rec.Term] = prev
		}
		// lower-priority observations of an already seen identity
		// are dropped entirely
	}
	ans := make(TermCounts, len(tmp))
	for term, v := range tmp {
		ans[term] = v.count
	}
	return ans, nil
}
