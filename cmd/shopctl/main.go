package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"ignite-shop/internal/catalog"
	"ignite-shop/internal/checkout"
	"ignite-shop/internal/money"
	"ignite-shop/internal/provider"
	"ignite-shop/internal/repository"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "shopctl",
		Usage: "Inspect the storefront catalog and start checkouts",
		Commands: []*cli.Command{
			{
				Name:      "product",
				Usage:     "Resolve a product id into its page data",
				ArgsUsage: "<product-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "stripe-key", EnvVars: []string{"STRIPE_SECRET_KEY"}, Required: true},
					&cli.StringFlag{Name: "stripe-api-url", EnvVars: []string{"STRIPE_API_URL"}},
					&cli.StringFlag{Name: "locale", EnvVars: []string{"SHOP_LOCALE"}, Value: "pt-BR"},
					&cli.StringFlag{Name: "currency", EnvVars: []string{"SHOP_CURRENCY"}, Value: "BRL"},
				},
				Action: productCommand,
			},
			{
				Name:      "buy",
				Usage:     "Start a checkout for a price id against a running server",
				ArgsUsage: "<price-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "server", EnvVars: []string{"APP_URL"}, Value: "http://localhost:8080"},
				},
				Action: buyCommand,
			},
		},
	}
}

// productCommand prints the view-model a product page would be rendered from
func productCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return cli.Exit("product id is required", 2)
	}

	formatter, err := money.NewFormatter(c.String("locale"), c.String("currency"))
	if err != nil {
		return err
	}

	backend := provider.NewBackend(c.String("stripe-api-url"), nil)
	resolver := catalog.NewResolver(repository.NewStripeProductRepository(backend, c.String("stripe-key")), formatter)

	product, err := resolver.Resolve(c.Context, id)
	if err != nil {
		return fmt.Errorf("failed to resolve product: %w", err)
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(product)
}

// buyCommand runs the buy flow and prints the checkout URL instead of
// opening it
func buyCommand(c *cli.Context) error {
	priceID := c.Args().First()
	if priceID == "" {
		return cli.Exit("price id is required", 2)
	}

	nav := printNavigator{c: c}
	in := checkout.NewInitiator(c.String("server"), nil, nav, stderrNotifier{c: c})
	if err := in.Buy(c.Context, priceID); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

type printNavigator struct{ c *cli.Context }

func (n printNavigator) Navigate(url string) error {
	_, err := fmt.Fprintln(n.c.App.Writer, url)
	return err
}

type stderrNotifier struct{ c *cli.Context }

func (n stderrNotifier) Alert(msg string) {
	fmt.Fprintln(n.c.App.ErrWriter, msg)
}
