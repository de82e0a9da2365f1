package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/morezian/symspell"
	"github.com/morezian/symspell/internal/editdistance"
	"github.com/morezian/symspell/internal/engineconfig"
	"github.com/morezian/symspell/internal/logger"
	"github.com/morezian/symspell/verbosity"
)

var (
	configPath string
	log        = logger.New("symspell-cli")
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "symspell",
		Short: "Symmetric Delete spelling correction and word segmentation",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (see internal/engineconfig)")

	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newCompoundCmd())
	rootCmd.AddCommand(newSegmentCmd())
	rootCmd.AddCommand(newLoadBenchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig() engineconfig.Config {
	if configPath == "" {
		return engineconfig.Default()
	}
	cfg, err := engineconfig.Load(configPath)
	if err != nil {
		log.Fatalf("loading config %s: %v", configPath, err)
	}
	return cfg
}

func algorithmFromName(name string) editdistance.Algorithm {
	if name == "levenshtein" {
		return editdistance.Levenshtein
	}
	return editdistance.DamerauOSA
}

func buildEngine(cfg engineconfig.Config) *symspell.Engine {
	engine, err := symspell.New(
		cfg.Engine.MaxEditDistance,
		cfg.Engine.PrefixLength,
		cfg.Engine.CountThreshold,
		cfg.Engine.CompactLevel,
		algorithmFromName(cfg.Engine.DistanceAlgorithm),
	)
	if err != nil {
		log.Fatalf("constructing engine: %v", err)
	}

	if cfg.Dictionary.Path != "" {
		if !engine.LoadDictionaryFile(cfg.Dictionary.Path, cfg.Dictionary.TermIndex, cfg.Dictionary.CountIndex, cfg.Dictionary.Separator) {
			log.Fatalf("loading dictionary %s", cfg.Dictionary.Path)
		}
	}
	if cfg.Bigram.Path != "" {
		if !engine.LoadBigramDictionaryFile(cfg.Bigram.Path, cfg.Bigram.TermIndex, cfg.Bigram.CountIndex, cfg.Bigram.Separator) {
			log.Fatalf("loading bigram dictionary %s", cfg.Bigram.Path)
		}
	}
	return engine
}

func newLookupCmd() *cobra.Command {
	var verbosityName string
	var includeUnknown, transferCasing bool

	cmd := &cobra.Command{
		Use:   "lookup [word]",
		Short: "Look up correction candidates for a single word",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			engine := buildEngine(cfg)

			v := verbosity.Closest
			switch verbosityName {
			case "top":
				v = verbosity.Top
			case "all":
				v = verbosity.All
			}

			suggestions, err := engine.Lookup(args[0], v, cfg.Engine.MaxEditDistance, includeUnknown, transferCasing)
			if err != nil {
				log.Fatalf("lookup: %v", err)
			}
			for _, s := range suggestions {
				fmt.Println(s.String())
			}
		},
	}
	cmd.Flags().StringVar(&verbosityName, "verbosity", "closest", "top | closest | all")
	cmd.Flags().BoolVar(&includeUnknown, "include-unknown", false, "emit a synthetic low-confidence suggestion when nothing matches")
	cmd.Flags().BoolVar(&transferCasing, "transfer-casing", false, "transfer the input's casing onto each suggestion")
	return cmd
}

func newCompoundCmd() *cobra.Command {
	var transferCasing bool

	cmd := &cobra.Command{
		Use:   "compound [text]",
		Short: "Correct a multi-word string with merge/split compound handling",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			engine := buildEngine(cfg)

			suggestion, err := engine.LookupCompound(args[0], cfg.Engine.MaxEditDistance, transferCasing)
			if err != nil {
				log.Fatalf("lookup-compound: %v", err)
			}
			fmt.Println(suggestion.String())
		},
	}
	cmd.Flags().BoolVar(&transferCasing, "transfer-casing", false, "transfer the input's casing onto the corrected text")
	return cmd
}

func newSegmentCmd() *cobra.Command {
	var maxSegWordLen int

	cmd := &cobra.Command{
		Use:   "segment [text]",
		Short: "Segment an unspaced character sequence into dictionary words",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			engine := buildEngine(cfg)

			segWordLen := maxSegWordLen
			if segWordLen == 0 {
				segWordLen = engine.MaxLength()
			}

			info, err := engine.WordSegmentation(args[0], cfg.Engine.MaxEditDistance, segWordLen)
			if err != nil {
				log.Fatalf("word-segmentation: %v", err)
			}
			fmt.Printf("segmented: %s\ncorrected: %s\ndistance: %d\nlogProb: %f\n", info.Segmented, info.Corrected, info.Distance, info.LogProb)
		},
	}
	cmd.Flags().IntVar(&maxSegWordLen, "max-segment-word-length", 0, "override the segmentation window (defaults to the longest dictionary word)")
	return cmd
}

func newLoadBenchCmd() *cobra.Command {
	var useMsgpack bool
	var outPath string

	cmd := &cobra.Command{
		Use:   "load-bench",
		Short: "Load the configured dictionary and write a canonical or msgpack snapshot",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			engine := buildEngine(cfg)
			log.Infof("loaded %d words, %d delete-index buckets", engine.WordCount(), engine.EntryCount())

			if outPath == "" {
				return
			}

			var data []byte
			var err error
			if useMsgpack {
				data, err = engine.ToMsgpack()
			} else {
				var buf []byte
				buf, err = engine.ToBytes()
				data = buf
			}
			if err != nil {
				log.Fatalf("serializing snapshot: %v", err)
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				log.Fatalf("writing snapshot to %s: %v", outPath, err)
			}
			log.Infof("wrote snapshot to %s (%d bytes)", outPath, len(data))
		},
	}
	cmd.Flags().BoolVar(&useMsgpack, "msgpack", false, "write the msgpack companion format instead of the canonical binary format")
	cmd.Flags().StringVar(&outPath, "out", "", "path to write the snapshot to")
	return cmd
}
