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

	"github.com/rs/zerolog/log"

	"freqdict/archive"
)

const inspectPreviewSize = 10

// runInspect prints the metadata and a short preview of an already
// built dictionary archive.
func runInspect(path string) {
	if path == "" {
		log.Fatal().Msg("Cannot inspect - archive path not specified")
		return
	}
	index, entries, err := archive.Load(path, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load archive")
		return
	}
	fmt.Printf("title:         %s\n", index.Title)
	fmt.Printf("revision:      %s\n", index.Revision)
	fmt.Printf("format:        %d\n", index.Format)
	fmt.Printf("frequencyMode: %s\n", index.FrequencyMode)
	if index.Author != "" {
		fmt.Printf("author:        %s\n", index.Author)
	}
	if index.URL != "" {
		fmt.Printf("url:           %s\n", index.URL)
	}
	fmt.Printf("entries:       %d\n", len(entries))
	for i, entry := range entries {
		if i >= inspectPreviewSize {
			break
		}
		if entry.Reading != "" {
			fmt.Printf("%8d  %s [%s]\n", entry.Rank, entry.Surface, entry.Reading)

		} else {
			fmt.Printf("%8d  %s\n", entry.Rank, entry.Surface)
		}
	}
}
