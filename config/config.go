// Package config holds the settings shared by all the search commands.
// Every setting can come from a command-line flag or from a WORDSETS_
// environment variable (WORDSETS_CHUNK_SIZE for chunk-size, and so on).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDataPath         = "data-path"
	ConfigWordsFile        = "words-file"
	ConfigPairsFile        = "pairs-file"
	ConfigTriplesFile      = "triples-file"
	ConfigQuadsFile        = "quads-file"
	ConfigQuintuplesFile   = "quintuples-file"
	ConfigSetsFile         = "sets-file"
	ConfigCombinationsFile = "combinations-file"
	ConfigWordLength       = "word-length"
	ConfigGroupSize        = "group-size"
	ConfigThreshold        = "threshold"
	ConfigChunkSize        = "chunk-size"
	ConfigWorkers          = "workers"
	ConfigQueueSize        = "queue-size"
	ConfigProgressEvery    = "progress-every"
	ConfigDFSFromRoot      = "dfs-from-root"
	ConfigWordsURL         = "words-url"
	ConfigReportFile       = "report-file"
	ConfigDebug            = "debug"
)

const EnvPrefix = "wordsets"

// DefaultWordsURL is the Wordle guess list.
const DefaultWordsURL = "https://raw.githubusercontent.com/tabatkins/wordle-list/main/words"

var ErrInvalidSetting = errors.New("invalid setting")

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config with every default set and nothing read
// from flags or the environment.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDataPath, ".")
	c.SetDefault(ConfigWordsFile, "five_letter_words.txt")
	c.SetDefault(ConfigPairsFile, "valid_pairs.txt")
	c.SetDefault(ConfigTriplesFile, "valid_triples.txt")
	c.SetDefault(ConfigQuadsFile, "valid_quads.txt")
	c.SetDefault(ConfigQuintuplesFile, "valid_quintuples.txt")
	c.SetDefault(ConfigSetsFile, "five_word_sets.txt")
	c.SetDefault(ConfigCombinationsFile, "five_word_combinations.txt")
	c.SetDefault(ConfigWordLength, 5)
	c.SetDefault(ConfigGroupSize, 5)
	c.SetDefault(ConfigThreshold, 24)
	c.SetDefault(ConfigChunkSize, 1000)
	c.SetDefault(ConfigWorkers, 0)
	c.SetDefault(ConfigQueueSize, 10000)
	c.SetDefault(ConfigProgressEvery, 100000)
	c.SetDefault(ConfigDFSFromRoot, false)
	c.SetDefault(ConfigWordsURL, DefaultWordsURL)
	c.SetDefault(ConfigReportFile, "")
	c.SetDefault(ConfigDebug, false)
}

// Load reads settings from args and the environment. Flags win over the
// environment, which wins over the defaults.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("wordsets", pflag.ContinueOnError)
	fs.String(ConfigDataPath, c.GetString(ConfigDataPath), "directory holding the input and output files")
	fs.String(ConfigWordsFile, c.GetString(ConfigWordsFile), "word list, one word per line")
	fs.String(ConfigPairsFile, c.GetString(ConfigPairsFile), "pair results")
	fs.String(ConfigTriplesFile, c.GetString(ConfigTriplesFile), "three-word results")
	fs.String(ConfigQuadsFile, c.GetString(ConfigQuadsFile), "four-word results")
	fs.String(ConfigQuintuplesFile, c.GetString(ConfigQuintuplesFile), "five-word results of the staged search")
	fs.String(ConfigSetsFile, c.GetString(ConfigSetsFile), "results of the backtracking search")
	fs.String(ConfigCombinationsFile, c.GetString(ConfigCombinationsFile), "results of the exhaustive search")
	fs.Int(ConfigWordLength, c.GetInt(ConfigWordLength), "length of every word")
	fs.Int(ConfigGroupSize, c.GetInt(ConfigGroupSize), "number of words in a group for the direct searches")
	fs.Int(ConfigThreshold, c.GetInt(ConfigThreshold), "letters a five-word group must cover in the last stage")
	fs.Int(ConfigChunkSize, c.GetInt(ConfigChunkSize), "items per parallel job")
	fs.Int(ConfigWorkers, c.GetInt(ConfigWorkers), "parallel workers; 0 uses every CPU")
	fs.Int(ConfigQueueSize, c.GetInt(ConfigQueueSize), "capacity of the work queue for the exhaustive search")
	fs.Int(ConfigProgressEvery, c.GetInt(ConfigProgressEvery), "log progress after this many checked combinations")
	fs.Bool(ConfigDFSFromRoot, c.GetBool(ConfigDFSFromRoot), "start each backtracking search after its root word")
	fs.String(ConfigWordsURL, c.GetString(ConfigWordsURL), "where to download the word list from")
	fs.String(ConfigReportFile, c.GetString(ConfigReportFile), "write a YAML run report to this file")
	fs.Bool(ConfigDebug, c.GetBool(ConfigDebug), "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix(EnvPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return c.validate()
}

func (c *Config) validate() error {
	for _, key := range []string{ConfigWordLength, ConfigGroupSize} {
		if c.GetInt(key) < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidSetting, key, c.GetInt(key))
		}
	}
	if c.GetInt(ConfigThreshold) < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidSetting,
			ConfigThreshold, c.GetInt(ConfigThreshold))
	}
	return nil
}

// AdjustRelativePaths makes a relative data path relative to basePath.
func (c *Config) AdjustRelativePaths(basePath string) {
	p := c.GetString(ConfigDataPath)
	if !filepath.IsAbs(p) {
		c.Set(ConfigDataPath, filepath.Join(basePath, p))
	}
}

// SanitizedSettings returns all settings with any credentials in the words
// URL redacted, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	if raw, ok := settings[ConfigWordsURL].(string); ok {
		if u, err := url.Parse(raw); err == nil {
			settings[ConfigWordsURL] = u.Redacted()
		}
	}
	return settings
}

// Path returns the file named by the setting key, inside the data path
// unless it is absolute.
func (c *Config) Path(key string) string {
	p := c.GetString(key)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.GetString(ConfigDataPath), p)
}
