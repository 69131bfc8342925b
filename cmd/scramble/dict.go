package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/scramble/internal/config"
	"github.com/verte-zerg/scramble/internal/corpus"
	"github.com/verte-zerg/scramble/internal/model"
	"github.com/verte-zerg/scramble/internal/stats"
	"github.com/verte-zerg/scramble/internal/store"
)

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage the lexicon database",
	}
	cmd.AddCommand(newDictImportCmd())
	cmd.AddCommand(newDictLangsCmd())
	return cmd
}

func newDictImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a word list (one word per line) into the lexicon",
		Args:  cobra.ExactArgs(1),
		RunE:  runDictImportCmd,
	}
	cmd.Flags().StringVar(&dictLang, "lang", defaultLang, "language code of the word list")
	cmd.Flags().BoolVar(&dictRoots, "roots", false, "import as root words instead of dictionary words")
	return cmd
}

func runDictImportCmd(cmd *cobra.Command, args []string) error {
	dictLang = strings.ToLower(strings.TrimSpace(dictLang))
	if dictLang == "" {
		return fmt.Errorf("--lang must not be empty")
	}

	path := args[0]
	words, err := corpus.LoadWords(path)
	if err != nil {
		return wordListLoadError(dictLang, path, err)
	}
	kept := corpus.Filter(words, corpus.FilterForLang(dictLang))
	kind := model.DictionaryWords
	if dictRoots {
		kind = model.RootWords
	}

	st, closeFn, err := openLexicon(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	inserted, err := st.ImportWords(cmd.Context(), kind, dictLang, kept)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new %s words for %s (%d read, %d skipped)\n",
		inserted, kind, dictLang, len(words), len(words)-len(kept))
	return err
}

func newDictLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List languages in the lexicon",
		Args:  cobra.NoArgs,
		RunE:  runDictLangsCmd,
	}
}

func runDictLangsCmd(cmd *cobra.Command, _ []string) error {
	st, closeFn, err := openLexicon(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	langs, err := st.ListLangs(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	if len(langs) == 0 {
		_, err := fmt.Fprintf(cmd.ErrOrStderr(),
			"No imported word lists. Built in: %s. Import with: scramble dict import --lang <code> FILE\n", corpus.DefaultLang)
		return err
	}
	if err := stats.RenderLangs(cmd.OutOrStdout(), langs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// openLexicon applies logging settings from the config file and opens the
// lexicon database.
func openLexicon(cmd *cobra.Command) (*store.Store, func(), error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogging(cmd, fileCfg, defaultPlayLevel)

	path := config.DefaultDBPath()
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	log.Debug().Str("path", path).Msg("lexicon database opened")
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close db")
		}
	}, nil
}
