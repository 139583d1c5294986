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
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"

	"freqdict/cnf"
	"freqdict/general"
)

var (
	version   string
	buildDate string
	gitCommit string
)

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

func main() {
	version := general.VersionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}

	rankCap := flag.Int(
		"rank-cap", 0,
		"overrides the configured ceiling for the number of kept entries")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "FREQDICT - a corpus frequency dictionary builder\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n\t%s [options] convert [config.json] [corpus ...]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] inspect [archive.zip]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] test [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] version\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	action := flag.Arg(0)
	switch action {
	case "version":
		fmt.Printf("freqdict %s\nbuild date: %s\nlast commit: %s\n",
			version.Version, version.BuildDate, version.GitCommit)
		return
	case "inspect":
		logging.SetupLogging("", "info")
		runInspect(flag.Arg(1))
		return
	}

	conf := cnf.LoadConfig(flag.Arg(1))

	if action == "test" {
		if err := conf.LoadSubconfigs(); err != nil {
			log.Fatal().Err(err).Msg("Failed to load subconfig(s)")
			return
		}
		cnf.ValidateAndDefaults(conf)
		log.Info().Msg("config OK")
		return
	}

	logging.SetupLogging(conf.LogFile, conf.LogLevel)

	if err := conf.LoadSubconfigs(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load subconfig(s)")
		return
	}

	log.Info().Msg("Starting FREQDICT")
	cnf.ValidateAndDefaults(conf)
	if *rankCap != 0 {
		conf.RankCap = *rankCap
	}

	switch action {
	case "convert":
		runConvert(conf, flag.Args()[2:])
	default:
		log.Fatal().Msgf("Unknown action %s", action)
	}
}
