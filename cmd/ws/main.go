package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pmzi/WordSmith/internal/archive"
	"github.com/pmzi/WordSmith/internal/audio"
	"github.com/pmzi/WordSmith/internal/cli"
	"github.com/pmzi/WordSmith/internal/credentials"
	"github.com/pmzi/WordSmith/internal/logging"
	"github.com/pmzi/WordSmith/internal/models"
	"github.com/pmzi/WordSmith/internal/processor"
	"github.com/pmzi/WordSmith/internal/store"
	"github.com/pmzi/WordSmith/internal/translation"
)

func main() {
	flags := cli.NewFlags()

	rootCmd := cli.CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx := cmd.Context()

	if handled, err := storeCredentials(cmd, flags); handled {
		return err
	}

	settings := cli.LoadSettings(flags)
	logger := logging.NewLogger(settings.Log, os.Stderr)

	if flags.ListModels {
		lister := models.NewLister(settings.Translation, cmd.OutOrStdout())
		return lister.ListAvailableModels(ctx)
	}

	if flags.Archive {
		archivedPath, err := archive.ArchiveDatabase(settings.StoragePath)
		if err != nil {
			return fmt.Errorf("failed to archive cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cache archived to: %s\n", archivedPath)
		return nil
	}

	db, err := store.Open(settings.StoragePath)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := translation.NewProvider(settings.Translation)
	if err != nil {
		return err
	}

	opts := processor.Options{
		BypassCache:    flags.NoCache,
		TargetLanguage: settings.TargetLanguage,
		StrictMarkers:  flags.Strict,
		Timeout:        settings.Timeout,
		Workers:        settings.Workers,
		Out:            cmd.OutOrStdout(),
		ErrOut:         cmd.ErrOrStderr(),
		Logger:         logger,
	}

	// Exports still pick up existing clips when no key is available
	if settings.AudioDir != "" {
		opts.AudioDir = settings.AudioDir
		opts.AudioFormat = settings.Audio.OutputFormat

		speaker, err := audio.NewOpenAIProvider(settings.Audio)
		if err != nil {
			logger.Warn("pronunciation clips disabled", "error", err)
		} else {
			opts.Speaker = speaker
		}
	}

	proc := processor.NewProcessor(db, provider, opts)

	switch {
	case flags.List:
		return proc.ListWords(ctx)
	case cmd.Flags().Changed("delete"):
		return proc.DeleteWord(ctx, flags.DeleteID)
	case flags.ExportFile != "":
		_, err := proc.ExportAnki(ctx, flags.ExportFile)
		return err
	case flags.BatchFile != "":
		summary, err := proc.ProcessBatch(ctx, flags.BatchFile)
		if err != nil {
			return err
		}
		if summary.Errors > 0 {
			return fmt.Errorf("%d of %d lookups failed", summary.Errors, summary.Total)
		}
		return nil
	case len(args) == 0:
		return cmd.Help()
	}

	err = proc.ProcessInput(ctx, strings.Join(args, " "))
	if errors.Is(err, translation.ErrMissingAPIKey) {
		return fmt.Errorf("%w: run 'ws --set-openai-api-key <key>' or export OPENAI_API_KEY", err)
	}
	return err
}

// storeCredentials handles the --set-* flags. It reports whether one of
// them was given.
func storeCredentials(cmd *cobra.Command, flags *cli.Flags) (bool, error) {
	values := []struct {
		flag  string
		name  string
		value string
		label string
	}{
		{"set-openai-api-key", credentials.OpenAIAPIKey, flags.SetOpenAIKey, "OpenAI API key"},
		{"set-openai-org-id", credentials.OpenAIOrgID, flags.SetOpenAIOrgID, "OpenAI organization id"},
		{"set-gemini-api-key", credentials.GeminiAPIKey, flags.SetGeminiKey, "Gemini API key"},
	}

	handled := false
	for _, v := range values {
		if !cmd.Flags().Changed(v.flag) {
			continue
		}
		handled = true

		credStore, err := cli.CredentialStore()
		if err != nil {
			return true, err
		}
		if err := credStore.Save(v.name, v.value); err != nil {
			return true, fmt.Errorf("failed to store %s: %w", v.label, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s set!\n", v.label)
	}

	return handled, nil
}
