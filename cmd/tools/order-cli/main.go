// cmd/tools/order-cli/main.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/menu"
	"voice-order-workers/internal/nlu/extract"
	"voice-order-workers/internal/nlu/fuzzy"
	"voice-order-workers/internal/orders"
)

// cliOptions holds the persistent flags shared by every command.
type cliOptions struct {
	ordersFile string
	menuFile   string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "order-cli",
		Short: "Resolve dialogue turns and inspect orders offline",
		Long: `order-cli runs the dialogue resolver and the order store without a
Zeebe broker. Orders are read from and written to a JSON file store.

Available commands:
  resolve  - Resolve one utterance for a given intent
  commit   - Store an order for a named customer
  orders   - List or fetch stored orders
  registry - Inspect the activity registry`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.ordersFile, "orders-file", orders.DefaultFilePath, "Path to the JSON order store")
	root.PersistentFlags().StringVar(&opts.menuFile, "menu", "", "Optional YAML menu file overlaid on the built-in menu")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level to stderr")

	root.AddCommand(
		newResolveCmd(opts),
		newCommitCmd(opts),
		newOrdersCmd(opts),
		newRegistryCmd(),
	)
	return root
}

// settings loads the menu named by --menu or the built-in one.
func (o *cliOptions) settings() (*menu.Settings, error) {
	if o.menuFile == "" {
		return menu.Default(), nil
	}
	return menu.LoadFile(o.menuFile)
}

func (o *cliOptions) logger() logger.Logger {
	if !o.verbose {
		return logger.NewNoOpLogger()
	}
	return logger.NewZapAdapter(logger.NewWithOutput("debug", "console", "stderr", logger.Rotation{}))
}

func (o *cliOptions) extractors(settings *menu.Settings) (*extract.ItemExtractor, *extract.NameExtractor) {
	return extract.NewItemExtractor(settings, fuzzy.New(settings.Matching())), extract.NewNameExtractor(settings)
}

func (o *cliOptions) store() (*orders.FileStore, error) {
	return orders.NewFileStore(o.ordersFile)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
