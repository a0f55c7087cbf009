// shop is the storefront client: it drives the session, cart and gateway
// packages the way the browser app drives them, persisting state between
// invocations under the user config dir.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/feliperosa-dev/storefront-api/client/cart"
	"github.com/feliperosa-dev/storefront-api/client/gate"
	"github.com/feliperosa-dev/storefront-api/client/gateway"
	"github.com/feliperosa-dev/storefront-api/client/session"
	"github.com/feliperosa-dev/storefront-api/client/storage"
	"github.com/feliperosa-dev/storefront-api/config"
	"github.com/feliperosa-dev/storefront-api/models"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	a := newApp(ctx)

	switch os.Args[1] {
	case "login":
		a.handleLogin(ctx, os.Args[2:])
	case "logout":
		a.handleLogout()
	case "register":
		a.handleRegister(ctx, os.Args[2:])
	case "whoami":
		a.handleWhoAmI()
	case "products":
		a.handleProducts(ctx, os.Args[2:])
	case "product":
		a.handleProduct(ctx, os.Args[2:])
	case "cart":
		a.handleCart(ctx, os.Args[2:])
	case "checkout":
		a.handleCheckout(ctx)
	case "orders":
		a.handleOrders(ctx)
	case "sell":
		a.handleSell(ctx, os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
	default:
		fatal(fmt.Errorf("unknown command: %s", os.Args[1]))
	}
}

func printUsage() {
	fmt.Print(`Usage: shop <command> [args]

Commands:
  login <email> <password>                       Sign in and persist the session
  logout                                         Clear the persisted session
  register <name> <email> <password> <role>      Create an account (SELLER or CUSTOMER)
  whoami                                         Show the current session
  products [name] [category]                     Browse the catalog
  product <id>                                   Show one product
  cart                                           Show cart contents and total
  cart add <product-id> [quantity]               Add a product to the cart
  cart rm <product-id>                           Remove a product from the cart
  cart set <product-id> <quantity>               Change a quantity (0 removes)
  cart clear                                     Empty the cart
  checkout                                       Place an order from the cart
  orders                                         Show order history
  sell list                                      List your products (sellers)
  sell add <name> <price> <stock> [category]     Publish a product (sellers)
  sell rm <product-id>                           Remove a product (sellers)
`)
}

type app struct {
	cfg     *config.Config
	session *session.Manager
	cart    *cart.Manager
	catalog *gateway.CatalogGateway
	orders  *gateway.OrderGateway
}

func newApp(ctx context.Context) *app {
	cfg := config.Load()

	store, err := storage.NewDir(cfg.Client.StateDir)
	fatalOn(err)

	sess := session.NewManager(gateway.NewAuthGateway(cfg.Client.AuthBaseURL), store)
	sess.Restore(ctx)

	return &app{
		cfg:     cfg,
		session: sess,
		cart:    cart.NewManager(store),
		catalog: gateway.NewCatalogGateway(cfg.Client.StoreBaseURL),
		orders:  gateway.NewOrderGateway(cfg.Client.StoreBaseURL),
	}
}

// -------- auth --------

func (a *app) handleLogin(ctx context.Context, args []string) {
	if len(args) != 2 {
		fatal(errors.New("usage: shop login <email> <password>"))
	}

	if err := a.session.Login(ctx, args[0], args[1]); err != nil {
		if errors.Is(err, gateway.ErrInvalidCredentials) {
			fatal(errors.New("invalid email or password"))
		}
		fatal(err)
	}

	user, _ := a.session.User()
	fmt.Printf("✅ Logged in as %s (%s)\n", user.Name, user.Role)
}

func (a *app) handleLogout() {
	a.session.Logout()
	fmt.Println("✅ Logged out")
}

func (a *app) handleRegister(ctx context.Context, args []string) {
	if len(args) != 4 {
		fatal(errors.New("usage: shop register <name> <email> <password> <role>"))
	}

	err := a.session.Register(ctx, args[0], args[1], args[2], args[3])
	if err != nil {
		if errors.Is(err, gateway.ErrDuplicateEmail) {
			fatal(errors.New("that email is already registered"))
		}
		fatal(err)
	}

	fmt.Println("✅ Registration successful, now run: shop login", args[1], "<password>")
}

func (a *app) handleWhoAmI() {
	user, ok := a.session.User()
	if !ok {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
}

// -------- catalog --------

func (a *app) handleProducts(ctx context.Context, args []string) {
	query := gateway.ProductQuery{}
	if len(args) > 0 {
		query.Name = args[0]
	}
	if len(args) > 1 {
		query.Category = args[1]
	}

	products, err := a.catalog.List(ctx, query)
	fatalOn(err)

	printProducts(products)
}

func (a *app) handleProduct(ctx context.Context, args []string) {
	if len(args) != 1 {
		fatal(errors.New("usage: shop product <id>"))
	}

	p, err := a.catalog.Get(ctx, args[0])
	fatalOn(err)

	fmt.Printf("%s — %.2f (%d in stock)\n", p.Name, p.Price, p.Stock)
	fmt.Printf("Category: %s  Seller: %s\n", p.Category, p.SellerName)
	if p.Description != "" {
		fmt.Println(p.Description)
	}
}

// -------- cart --------

func (a *app) handleCart(ctx context.Context, args []string) {
	if len(args) == 0 {
		a.printCart()
		return
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			fatal(errors.New("usage: shop cart add <product-id> [quantity]"))
		}
		quantity := 1
		if len(args) > 2 {
			q, err := strconv.Atoi(args[2])
			if err != nil || q < 1 {
				fatal(errors.New("quantity must be a positive integer"))
			}
			quantity = q
		}

		// Snapshot the product as it looks right now.
		product, err := a.catalog.Get(ctx, args[1])
		fatalOn(err)

		a.cart.Add(product, quantity)
		fmt.Printf("✅ Added %d × %s\n", quantity, product.Name)

	case "rm":
		if len(args) != 2 {
			fatal(errors.New("usage: shop cart rm <product-id>"))
		}
		a.cart.Remove(args[1])
		fmt.Println("✅ Removed")

	case "set":
		if len(args) != 3 {
			fatal(errors.New("usage: shop cart set <product-id> <quantity>"))
		}
		quantity, err := strconv.Atoi(args[2])
		if err != nil {
			fatal(errors.New("quantity must be an integer"))
		}
		a.cart.UpdateQuantity(args[1], quantity)
		fmt.Println("✅ Updated")

	case "clear":
		a.cart.Clear()
		fmt.Println("✅ Cart cleared")

	default:
		fatal(fmt.Errorf("unknown cart subcommand: %s", args[0]))
	}
}

func (a *app) printCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tQTY\tPRICE\tSUBTOTAL")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\n",
			item.Product.Name, item.Quantity, item.Product.Price, item.Subtotal())
	}
	w.Flush()
	fmt.Printf("Total: %.2f\n", a.cart.Total())
}

// -------- checkout & orders --------

func (a *app) handleCheckout(ctx context.Context) {
	a.requireRole(models.RoleCustomer)

	if a.cart.Len() == 0 {
		fatal(errors.New("cart is empty"))
	}

	order, err := a.orders.Create(ctx, a.session.Token(), a.cart.Items(), a.cart.Total())
	fatalOn(err)

	// The order is now the durable record; the local cart is done.
	a.cart.Clear()
	fmt.Printf("✅ Order %s placed, total %.2f (%s)\n", order.ID, order.Total, order.Status)
}

func (a *app) handleOrders(ctx context.Context) {
	a.requireRole(models.RoleCustomer)

	user, _ := a.session.User()
	orders, err := a.orders.ListByUser(ctx, a.session.Token(), user.ID)
	fatalOn(err)

	if len(orders) == 0 {
		fmt.Println("No orders yet")
		return
	}
	for _, o := range orders {
		fmt.Printf("%s  %.2f  %s  %s\n",
			o.ID, o.Total, o.Status, o.CreatedAt.Format("2006-01-02 15:04"))
		for _, item := range o.Items {
			fmt.Printf("    %d × %s @ %.2f\n", item.Quantity, item.ProductName, item.ProductPrice)
		}
	}
}

// -------- seller area --------

func (a *app) handleSell(ctx context.Context, args []string) {
	a.requireRole(models.RoleSeller)

	if len(args) == 0 {
		fatal(errors.New("usage: shop sell <list|add|rm> ..."))
	}

	user, _ := a.session.User()

	switch args[0] {
	case "list":
		products, err := a.catalog.List(ctx, gateway.ProductQuery{SellerID: user.ID})
		fatalOn(err)
		printProducts(products)

	case "add":
		if len(args) < 4 {
			fatal(errors.New("usage: shop sell add <name> <price> <stock> [category]"))
		}
		price, err := strconv.ParseFloat(args[2], 64)
		if err != nil || price <= 0 {
			fatal(errors.New("price must be a positive number"))
		}
		stock, err := strconv.Atoi(args[3])
		if err != nil || stock < 0 {
			fatal(errors.New("stock must be a non-negative integer"))
		}

		form := gateway.ProductForm{
			Name:       args[1],
			Price:      price,
			Stock:      stock,
			SellerName: user.Name,
		}
		if len(args) > 4 {
			form.Category = args[4]
		}

		product, err := a.catalog.Create(ctx, a.session.Token(), form)
		fatalOn(err)
		fmt.Printf("✅ Published %s (%s)\n", product.Name, product.ID)

	case "rm":
		if len(args) != 2 {
			fatal(errors.New("usage: shop sell rm <product-id>"))
		}
		fatalOn(a.catalog.Delete(ctx, a.session.Token(), args[1]))
		fmt.Println("✅ Product removed")

	default:
		fatal(fmt.Errorf("unknown sell subcommand: %s", args[0]))
	}
}

// requireRole routes the command through the access gate the same way a
// protected view would be.
func (a *app) requireRole(role models.Role) {
	result := gate.Check(a.session, role)
	switch result.Decision {
	case gate.DecisionAllow:
	case gate.DecisionPending:
		fatal(errors.New("session is still being restored, try again"))
	case gate.DecisionRedirectToLogin:
		fatal(errors.New("not logged in, run: shop login <email> <password>"))
	case gate.DecisionRedirectToRoleHome:
		fatal(fmt.Errorf("this area needs the %s role (your home is %s)", role, result.RedirectTo))
	}
}

func printProducts(products []models.Product) {
	if len(products) == 0 {
		fmt.Println("No products found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY\tSELLER")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%s\t%s\n",
			p.ID, p.Name, p.Price, p.Stock, p.Category, p.SellerName)
	}
	w.Flush()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	os.Exit(1)
}

func fatalOn(err error) {
	if err != nil {
		fatal(err)
	}
}
