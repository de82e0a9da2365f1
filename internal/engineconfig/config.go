// Package engineconfig loads the engine's construction and ingestion
// parameters from a TOML file, in the style of bastiangx-wordserve's
// pkg/config package.
package engineconfig

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every knob the constructors and loaders in the root
// package accept, so a deployment can be described declaratively
// instead of wired up in Go.
type Config struct {
	Engine     EngineConfig     `toml:"engine"`
	Dictionary DictionaryConfig `toml:"dictionary"`
	Bigram     DictionaryConfig `toml:"bigram"`
}

// EngineConfig mirrors the engine constructor's arguments: maxEditDistance,
// prefixLength, countThreshold, compactLevel and the distance algorithm
// to use.
type EngineConfig struct {
	MaxEditDistance   int    `toml:"max_edit_distance"`
	PrefixLength      int    `toml:"prefix_length"`
	CountThreshold    int64  `toml:"count_threshold"`
	CompactLevel      int    `toml:"compact_level"`
	DistanceAlgorithm string `toml:"distance_algorithm"` // "levenshtein" or "damerau-osa"
}

// DictionaryConfig describes one frequency-dictionary or bigram source
// file and how to parse its lines.
type DictionaryConfig struct {
	Path       string `toml:"path"`
	TermIndex  int    `toml:"term_index"`
	CountIndex int    `toml:"count_index"`
	Separator  string `toml:"separator"`
}

// Default returns the engine's documented defaults, with no dictionary
// or bigram file configured.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			MaxEditDistance:   2,
			PrefixLength:      7,
			CountThreshold:    1,
			CompactLevel:      5,
			DistanceAlgorithm: "damerau-osa",
		},
		Dictionary: DictionaryConfig{TermIndex: 0, CountIndex: 1, Separator: " "},
		Bigram:     DictionaryConfig{TermIndex: 0, CountIndex: 2, Separator: " "},
	}
}

// Load reads and decodes a TOML config file at path, starting from
// Default() so unset fields keep their documented defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
