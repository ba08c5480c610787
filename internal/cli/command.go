package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pmzi/WordSmith/internal"
	"github.com/pmzi/WordSmith/internal/credentials"
)

const logo = `
 ▗▖ ▗▖ ▗▄▖ ▗▄▄▖ ▗▄▄▄      ▗▄▄▖▗▖  ▗▖▗▄▄▄▖▗▄▄▄▖▗▖ ▗▖
 ▐▌ ▐▌▐▌ ▐▌▐▌ ▐▌▐▌  █    ▐▌   ▐▛▚▞▜▌  █    █  ▐▌ ▐▌
 ▐▌ ▐▌▐▌ ▐▌▐▛▀▚▖▐▌  █     ▝▀▚▖▐▌  ▐▌  █    █  ▐▛▀▜▌
 ▐▙█▟▌▝▚▄▞▘▐▌ ▐▌▐▙▄▄▀    ▗▄▄▞▘▐▌  ▐▌▗▄█▄▖  █  ▐▌ ▐▌
`

const apiKeyHint = `
To use OpenAI, you need to set an API key.
You can set it using 'ws --set-openai-api-key <key>'
or export OPENAI_API_KEY.
`

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ws [word | sentence with /marked/ word]",
		Short: "Word translator with a local cache",
		Long: logo + `
ws explains English words: pronunciation, meaning and an example sentence.
Mark a word inside a sentence with slashes to get its meaning in that context.
Every answer is cached locally, so repeated lookups are instant and offline.

Examples:
  ws ubiquitous                          # Explain a single word
  ws "I sat by the /bank/ of the river"  # Explain a word in context
  ws I went for a /run/                  # Quotes are optional
  ws -t Spanish house                    # Also translate into Spanish
  ws -n ubiquitous                       # Ignore the cache and refresh it
  ws --audio ~/clips ubiquitous          # Save a pronunciation clip too
  ws --batch words.txt                   # Look up every line of a file`,
		Args:          cobra.ArbitraryArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	setupFlags(rootCmd, flags)

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		defaultHelp(cmd, args)
		if GetOpenAIKey() == "" && GetGeminiKey() == "" {
			fmt.Fprint(cmd.OutOrStdout(), apiKeyHint)
		}
	})

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.wordsmith.yaml)")

	// Lookup flags
	cmd.Flags().BoolVarP(&flags.NoCache, "no-cache", "n", false, "Bypass the cache and refresh the stored record")
	cmd.Flags().StringVarP(&flags.TargetLanguage, "target-language", "t", "", "Also translate into this language")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "Reject input with more than one distinct /marked/ word")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Look up every non-empty, non-# line of a file")
	cmd.Flags().IntVar(&flags.Workers, "workers", flags.Workers, "Concurrent lookups in batch mode")
	cmd.Flags().StringVar(&flags.StoragePath, "storage", DefaultStoragePath(), "Cache database path")
	cmd.Flags().StringVar(&flags.AudioDir, "audio", "", "Also save a spoken pronunciation of each word into this directory")
	cmd.Flags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")

	// Cache management flags
	cmd.Flags().BoolVar(&flags.List, "list", false, "List all cached words")
	cmd.Flags().Int64Var(&flags.DeleteID, "delete", 0, "Delete the cached word with this id")
	cmd.Flags().StringVar(&flags.ExportFile, "export", "", "Export the cache as an Anki-importable CSV file")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the cache database into a timestamped archive")

	// Provider flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai or gemini")
	cmd.Flags().StringVar(&flags.Fallback, "fallback", "", "Provider to try when the primary one fails")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List chat models available for the current OpenAI key")

	// Credential flags
	cmd.Flags().StringVar(&flags.SetOpenAIKey, "set-openai-api-key", "", "Store the OpenAI API key and exit")
	cmd.Flags().StringVar(&flags.SetOpenAIOrgID, "set-openai-org-id", "", "Store the OpenAI organization id and exit")
	cmd.Flags().StringVar(&flags.SetGeminiKey, "set-gemini-api-key", "", "Store the Gemini API key and exit")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translation.target_language", cmd.Flags().Lookup("target-language"))
	viper.BindPFlag("batch.workers", cmd.Flags().Lookup("workers"))
	viper.BindPFlag("storage.path", cmd.Flags().Lookup("storage"))
	viper.BindPFlag("audio.dir", cmd.Flags().Lookup("audio"))
	viper.BindPFlag("provider.name", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("provider.fallback", cmd.Flags().Lookup("fallback"))
	viper.BindPFlag("openai.model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("gemini.model", cmd.Flags().Lookup("gemini-model"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".wordsmith" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wordsmith")
	}

	// WORDSMITH_OPENAI_MODEL overrides openai.model
	viper.SetEnvPrefix("WORDSMITH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment, config or
// the credential store
func GetOpenAIKey() string {
	return lookupSecret("OPENAI_API_KEY", "openai.api_key", credentials.OpenAIAPIKey)
}

// GetOpenAIOrgID retrieves the optional OpenAI organization id
func GetOpenAIOrgID() string {
	return lookupSecret("OPENAI_ORG_ID", "openai.org_id", credentials.OpenAIOrgID)
}

// GetGeminiKey retrieves the Gemini API key
func GetGeminiKey() string {
	return lookupSecret("GEMINI_API_KEY", "gemini.api_key", credentials.GeminiAPIKey)
}

func lookupSecret(envName, configKey, credentialName string) string {
	// First check environment variable
	if value := os.Getenv(envName); value != "" {
		return value
	}

	// Then check config file
	if value := viper.GetString(configKey); value != "" {
		return value
	}

	// Finally the stored credentials
	store, err := CredentialStore()
	if err != nil {
		return ""
	}
	value, err := store.Load(credentialName)
	if err != nil {
		return ""
	}
	return value
}

// CredentialStore returns the credential store, honouring credentials.dir.
func CredentialStore() (*credentials.Store, error) {
	if dir := viper.GetString("credentials.dir"); dir != "" {
		return credentials.NewStore(dir), nil
	}
	dir, err := credentials.DefaultDir()
	if err != nil {
		return nil, err
	}
	return credentials.NewStore(dir), nil
}
