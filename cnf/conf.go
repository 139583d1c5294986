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

package cnf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"

	"freqdict/corpus"
	"freqdict/freq"
)

const (
	dfltMaxParallelJobs = 4
)

// Conf is a global configuration of the app
type Conf struct {
	OutputDir string `json:"outputDir"`

	// RankCap limits the number of top-ranked entries kept in each
	// produced dictionary.
	RankCap int `json:"rankCap"`

	// MaxParallelJobs limits how many corpora are converted
	// concurrently.
	MaxParallelJobs int `json:"maxParallelJobs"`

	// CorporaConfDir is an optional directory with per-corpus JSON
	// config files loaded in addition to the inline `corpora` entries.
	CorporaConfDir string `json:"corporaConfDir"`

	Corpora  corpus.Resources `json:"corpora"`
	LogFile  string           `json:"logFile"`
	LogLevel logging.LogLevel `json:"logLevel"`

	srcPath string
}

func (conf *Conf) LoadSubconfigs() error {
	if conf.CorporaConfDir != "" {
		if err := conf.Corpora.Load(conf.CorporaConfDir); err != nil {
			return fmt.Errorf("failed to load subconfig for `corpora`: %w", err)
		}
	}
	return nil
}

func (conf *Conf) IsDebugMode() bool {
	return conf.LogLevel == "debug"
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	conf.srcPath = path
	err = sonic.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

func ValidateAndDefaults(conf *Conf) {
	if conf.RankCap == 0 {
		conf.RankCap = freq.DfltRankCap
		log.Warn().Msgf("rankCap not specified, using default: %d", freq.DfltRankCap)
	}
	if conf.RankCap < 0 {
		log.Fatal().Msgf("invalid rankCap value %d", conf.RankCap)
		return
	}
	if conf.MaxParallelJobs == 0 {
		conf.MaxParallelJobs = dfltMaxParallelJobs
		log.Warn().Msgf(
			"maxParallelJobs not specified, using default: %d",
			dfltMaxParallelJobs,
		)
	}
	if conf.OutputDir == "" {
		log.Fatal().Msg("missing `outputDir`")
		return
	}
	isDir, err := fs.IsDir(conf.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to test `outputDir`")
		return
	}
	if !isDir {
		log.Fatal().Msg("`outputDir` is not a directory")
		return
	}
	if len(conf.Corpora) == 0 {
		log.Fatal().Msg("no corpora configured")
		return
	}
	seen := make(map[string]bool, len(conf.Corpora))
	for _, setup := range conf.Corpora {
		if seen[setup.ID] {
			log.Fatal().Msgf("duplicate corpus id `%s`", setup.ID)
			return
		}
		seen[setup.ID] = true
		if err := setup.ValidateAndDefaults(); err != nil {
			log.Fatal().Err(err).Msg("invalid configuration")
			return
		}
	}
}
