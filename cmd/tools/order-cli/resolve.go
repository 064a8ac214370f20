package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"voice-order-workers/internal/classifier"
	"voice-order-workers/internal/dialogue"
	"voice-order-workers/internal/models"
)

func newResolveCmd(opts *cliOptions) *cobra.Command {
	var (
		intent        string
		name          string
		classifierURL string
	)

	cmd := &cobra.Command{
		Use:   "resolve [utterance]",
		Short: "Resolve one utterance and print the intent record",
		Long: `Resolve runs the intent handler for --intent against the utterance and
prints the resulting record as JSON. Without --intent the utterance is
sent to the classifier at --classifier-url first.`,
		Example: `  order-cli resolve --intent place_order "بدي بيتزا"
  order-cli resolve --classifier-url http://localhost:8000 "اسمي سامي"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			utterance := strings.Join(args, " ")
			if intent == "" && classifierURL == "" {
				return fmt.Errorf("either --intent or --classifier-url is required")
			}

			settings, err := opts.settings()
			if err != nil {
				return err
			}
			log := opts.logger()
			items, names := opts.extractors(settings)
			dispatcher := dialogue.NewDispatcher(settings, items, names)

			var rec models.IntentRecord
			if intent != "" {
				rec = dispatcher.Resolve(utterance, models.IntentRecord{
					Intent: intent,
					Name:   strings.TrimSpace(name),
					Items:  []string{},
				})
			} else {
				client := classifier.NewClient(classifier.Config{BaseURL: classifierURL, Timeout: 10 * time.Second}, log)
				rec = dialogue.NewAgent(client, dispatcher, log).Respond(context.Background(), utterance)
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().StringVarP(&intent, "intent", "i", "", "Intent label detected for the utterance")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Customer name already known")
	cmd.Flags().StringVar(&classifierURL, "classifier-url", "", "Intent classifier base URL used when --intent is empty")
	return cmd
}
