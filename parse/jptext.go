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
	"regexp"
	"strings"
)

var (
	kanjiPattern = regexp.MustCompile(`[一-龯ヶ々〆]`)
	kanaPattern  = regexp.MustCompile(`[ぁ-ゟ゠-ヿ]`)
)

// ContainsKanji tests whether a term contains at least one kanji
// character (incl. the iteration marks 々 and 〆).
func ContainsKanji(s string) bool {
	return kanjiPattern.MatchString(s)
}

// ContainsKana tests whether a term contains at least one hiragana
// or katakana character.
func ContainsKana(s string) bool {
	return kanaPattern.MatchString(s)
}

// KatakanaToHiragana folds katakana characters to their hiragana
// counterparts. Characters without a hiragana counterpart (the
// prolonged sound mark, half-width forms etc.) are left untouched.
func KatakanaToHiragana(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r >= 'ァ' && r <= 'ヶ' {
			r -= 'ァ' - 'ぁ'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
