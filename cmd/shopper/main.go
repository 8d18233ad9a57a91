// Command shopper is a terminal storefront client: browse the catalog, keep a
// local cart in sync with stock, and place orders.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"storefront/internal/client"
	"storefront/internal/client/apiclient"
	"storefront/internal/client/cart"
	"storefront/internal/client/localstore"
	"storefront/internal/handler/middleware"
	"storefront/internal/infra/discovery"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
)

const usage = `usage: shopper <command> [args]

commands:
  products [-page N] [-limit N] [-featured]   list the catalog
  product <id>                                show one product
  login <token>                               store a bearer token
  logout                                      forget the token
  cart                                        show the cart
  add <id>                                    add one unit to the cart
  qty <id> <delta>                            change a line's quantity
  remove <id>                                 remove a line
  clear                                       empty the cart
  sync                                        align the cart with current stock
  checkout -address <address>                 place an order for the cart
  orders                                      list your orders
  cancel <order-id>                           cancel a pending order
`

type app struct {
	api        *apiclient.Client
	store      *localstore.Store
	reconciler *cart.Reconciler
	logger     *slog.Logger
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "shopper:", err)
		os.Exit(1)
	}
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "shopper:", err)
		os.Exit(1)
	}
}

func newApp() (*app, error) {
	cfg, err := client.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := middleware.NewLogger(config.LogConfig{
		Level:      cfg.LogLevel,
		TimeZone:   "UTC",
		TimeFormat: "15:04:05.000",
		Output:     os.Stderr,
	}).GetSlogLogger()

	baseURL := cfg.APIURL
	if cfg.ConsulAddr != "" {
		registrar, err := discovery.NewConsulRegistrar(cfg.ConsulAddr, logger)
		if err != nil {
			return nil, err
		}
		resolved, err := registrar.ServiceURL(cfg.ServiceName)
		if err != nil {
			return nil, err
		}
		baseURL = resolved + "/api"
		logger.Debug("resolved api through consul", "url", baseURL)
	}

	store, err := localstore.New(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	notifier := cart.NotifierFunc(func(level cart.Level, message string) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", level, message)
	})
	warner := apiclient.NewConnectivityWarner(cfg.WarnCooldown, clock.NewRealClock(), func(message string) {
		notifier.Notify(cart.LevelError, message)
	})

	api, err := apiclient.NewClient(apiclient.Config{
		BaseURL:     baseURL,
		Timeout:     cfg.Timeout,
		MaxAttempts: cfg.MaxAttempts,
		RetryDelay:  cfg.RetryDelay,
	}, nil, warner, logger)
	if err != nil {
		return nil, err
	}

	sess, err := store.LoadSession()
	if err != nil {
		return nil, err
	}
	if sess != nil {
		api.SetToken(sess.Token)
	}

	c, err := cart.Load(store)
	if err != nil {
		return nil, err
	}

	return &app{
		api:        api,
		store:      store,
		reconciler: cart.NewReconciler(c, api, store, notifier, logger),
		logger:     logger,
	}, nil
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "products":
		return a.products(ctx, args)
	case "product":
		id, err := productIDArg(args)
		if err != nil {
			return err
		}
		p, err := a.api.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		printProduct(*p)
		return nil
	case "login":
		if len(args) != 1 {
			return errors.New("login needs a token")
		}
		if err := a.store.SaveSession(localstore.Session{Token: args[0]}); err != nil {
			return err
		}
		fmt.Println("signed in")
		return nil
	case "logout":
		return a.store.ClearSession()
	case "cart":
		a.printCart()
		return nil
	case "add":
		id, err := productIDArg(args)
		if err != nil {
			return err
		}
		p, err := a.api.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		return a.reconciler.AddToCart(ctx, *p)
	case "qty":
		if len(args) != 2 {
			return errors.New("qty needs a product id and a delta")
		}
		id, err := productIDArg(args[:1])
		if err != nil {
			return err
		}
		delta, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid delta %q", args[1])
		}
		return a.reconciler.ChangeQuantity(ctx, id, int32(delta))
	case "remove":
		id, err := productIDArg(args)
		if err != nil {
			return err
		}
		a.reconciler.RemoveFromCart(id)
		return nil
	case "clear":
		a.reconciler.Clear()
		return nil
	case "sync":
		report, err := a.reconciler.SyncCart(ctx, false)
		if err != nil {
			return err
		}
		if len(report.Failed) > 0 {
			a.logger.Warn("stock could not be read for some products", "product_ids", report.Failed)
		}
		a.printCart()
		return nil
	case "checkout":
		return a.checkout(ctx, args)
	case "orders":
		page, err := a.api.ListOrders(ctx, 1, 50)
		if err != nil {
			return err
		}
		for _, o := range page.Orders {
			fmt.Printf("%s  %-10s  %10.2f  %d item(s)\n", o.ID, o.Status, o.TotalAmount, len(o.Items))
		}
		return nil
	case "cancel":
		if len(args) != 1 {
			return errors.New("cancel needs an order id")
		}
		if err := a.api.CancelOrder(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("order cancelled")
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return flag.ErrHelp
	}
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 20, "page size")
	featured := fs.Bool("featured", false, "only featured products")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.api.ListProducts(ctx, apiclient.ListProductsParams{Page: *page, Limit: *limit, Featured: *featured})
	if err != nil {
		return err
	}
	for _, p := range res.Products {
		printProduct(p)
	}
	suffix := ""
	if res.Cached {
		suffix = " (cached)"
	}
	fmt.Printf("page %d/%d, %d products%s\n", res.Page, res.TotalPages, res.Total, suffix)
	return nil
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	address := fs.String("address", "", "shipping address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Shrink the cart to current stock before submitting.
	if _, err := a.reconciler.SyncCart(ctx, false); err != nil {
		return err
	}
	receipt, err := a.reconciler.Checkout(ctx, *address)
	if err != nil {
		return err
	}
	fmt.Printf("order %s  total %.2f  status %s\n", receipt.OrderID, receipt.Total, receipt.Status)
	return nil
}

func (a *app) printCart() {
	c := a.reconciler.Cart()
	lines := c.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, l := range lines {
		stock := "?"
		if l.MaxQuantity != nil {
			stock = strconv.Itoa(int(*l.MaxQuantity))
		}
		fmt.Printf("%6d  %-40s  %3d × %8.2f  (in stock: %s, %s)\n", l.ProductID, l.Title, l.Quantity, l.Price, stock, l.State)
	}
	fmt.Printf("%d item(s), total %.2f\n", c.ItemCount(), c.Total())
}

func printProduct(p apiclient.Product) {
	fmt.Printf("%6d  %-40s  %8.2f  stock %d\n", p.ID, strings.TrimSpace(p.Title), p.Price, p.Quantity)
}

func productIDArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one product id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", args[0])
	}
	return id, nil
}
