package cli

import (
	"calibration_quiz/internal/quiz"
	"calibration_quiz/internal/service"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewBankCmd groups question bank maintenance commands.
func NewBankCmd(configDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Inspect and publish question banks",
	}
	cmd.AddCommand(newBankCheckCmd(configDir), newBankPublishCmd(configDir))
	return cmd
}

func newBankCheckCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a bank file, or the configured bank when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}

			var bank *quiz.Bank
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				bank, err = quiz.LoadBank(f, quiz.FormatFromPath(args[0]))
				if err != nil {
					return err
				}
			} else {
				storage, err := service.NewStorageService(&cfg.Quiz)
				if err != nil {
					return err
				}
				bank, err = storage.LoadBank(cmd.Context())
				if err != nil {
					return err
				}
			}

			if bank.Len() < cfg.Quiz.SampleSize {
				return fmt.Errorf("%w: have %d, need %d", quiz.ErrInsufficientBank, bank.Len(), cfg.Quiz.SampleSize)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d questions, sample size %d\n", bank.Len(), cfg.Quiz.SampleSize)
			return nil
		},
	}
}

func newBankPublishCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <file>",
		Short: "Validate a bank file and upload it to the configured bank location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			storage, err := service.NewStorageService(&cfg.Quiz)
			if err != nil {
				return err
			}
			n, err := storage.PublishBank(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %d questions to %s:%s\n", n, cfg.Quiz.Source, cfg.Quiz.Path)
			return nil
		},
	}
}
