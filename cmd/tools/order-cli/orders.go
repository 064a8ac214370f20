package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"voice-order-workers/internal/models"
	"voice-order-workers/internal/orders"
)

type commitOutput struct {
	Order     models.Order `json:"order"`
	ReplyText string       `json:"reply_text"`
}

// listOutput is the order listing payload: the orders plus their count.
type listOutput struct {
	Orders     []models.Order `json:"orders"`
	TotalCount int            `json:"total_count"`
}

func newCommitCmd(opts *cliOptions) *cobra.Command {
	var (
		name    string
		items   []string
		history []string
	)

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Store an order",
		Long: `Commit stores a pending order in the file store. Without --name the
most recent "اسمي ..." turn in --history supplies the customer name.`,
		Example: `  order-cli commit --name سامي --item بيتزا --item برجر
  order-cli commit --item فلافل --history "مرحبا" --history "اسمي سارة"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings()
			if err != nil {
				return err
			}
			store, err := opts.store()
			if err != nil {
				return err
			}
			_, names := opts.extractors(settings)

			resolver := orders.NewResolver(store, names, orders.ResolverConfig{
				ETA: settings.ETA(),
				IDs: orders.NewIDGenerator(settings.Numerals()),
			}, opts.logger())

			order, err := resolver.Commit(cmd.Context(), name, items, history)
			if errors.Is(err, orders.ErrMissingName) {
				return fmt.Errorf("%s", orders.MissingNameReply)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), commitOutput{
				Order:     order,
				ReplyText: orders.ConfirmationReply(order),
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Customer name")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Ordered menu item (repeatable)")
	cmd.Flags().StringArrayVar(&history, "history", nil, "Earlier utterance, oldest first (repeatable)")
	return cmd
}

func newOrdersCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect stored orders",
	}

	var name string
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			all, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if name != "" {
				all = orders.FilterByName(all, name)
			}
			return printJSON(cmd.OutOrStdout(), listOutput{Orders: all, TotalCount: len(all)})
		},
	}
	list.Flags().StringVarP(&name, "name", "n", "", "Only orders for this customer")

	get := &cobra.Command{
		Use:   "get <order-id>",
		Short: "Print one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			order, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), order)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}
