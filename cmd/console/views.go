package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fleetory/console/internal/api"
	"github.com/fleetory/console/internal/guard"
	"github.com/fleetory/console/internal/models"
)

func (a *ConsoleApp) runLogin(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: login <email> [password]")
		return nil
	}

	password := ""
	if len(args) >= 2 {
		password = args[1]
	} else {
		fmt.Fprint(a.out, "Password: ")
		line, err := a.in.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	s, err := a.api.Auth.Login(ctx, args[0], password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", s.Email, s.Role)

	// Post-login navigation goes through the same landing table the guard uses
	return a.navigateTo(ctx, guard.Landing(s.Role), nil, 0)
}

func (a *ConsoleApp) runLogout(ctx context.Context, args []string) error {
	if err := a.api.Auth.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *ConsoleApp) runWhoami(ctx context.Context, args []string) error {
	s, err := a.store.Read()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s), user id %s\n", s.Email, s.Role, s.UserID)
	return nil
}

// runDashboard prints the counters the dashboard home page showed.
// The calls are sequenced deliberately: nothing here depends on ordering
// guarantees the gateway does not give.
func (a *ConsoleApp) runDashboard(ctx context.Context, args []string) error {
	orders, err := a.api.Orders.List(ctx)
	if err != nil {
		return err
	}
	drivers, err := a.api.Drivers.List(ctx)
	if err != nil {
		return err
	}
	products, err := a.api.Products.List(ctx)
	if err != nil {
		return err
	}

	pending := 0
	for _, o := range orders {
		if o.Status == models.OrderStatusPending {
			pending++
		}
	}

	fmt.Fprintf(a.out, "Orders: %d (%d pending)\n", len(orders), pending)
	fmt.Fprintf(a.out, "Drivers: %d\n", len(drivers))
	fmt.Fprintf(a.out, "Products: %d\n", len(products))
	return nil
}

func (a *ConsoleApp) runDistributors(ctx context.Context, args []string) error {
	distributors, err := a.api.Distributors.List(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE")
	for _, d := range distributors {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Email, d.Phone)
	}
	return tw.Flush()
}

func (a *ConsoleApp) runDrivers(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		drivers, err := a.api.Drivers.List(ctx)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tPHONE\tLICENSE\tSTATUS")
		for _, d := range drivers {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Phone, d.LicenseNumber, d.Status)
		}
		return tw.Flush()

	case "add":
		if len(args) < 4 {
			fmt.Fprintln(a.out, "Usage: drivers add <name> <phone> <license>")
			return nil
		}
		driver, err := a.api.Drivers.Create(ctx, api.DriverInput{
			Name:          args[1],
			Phone:         args[2],
			LicenseNumber: args[3],
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Driver %s added (%s)\n", driver.Name, driver.ID)
		return nil

	case "rm":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: drivers rm <id>")
			return nil
		}
		id, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid driver id: %w", err)
		}
		if err := a.api.Drivers.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Driver removed")
		return nil

	default:
		return fmt.Errorf("unknown drivers subcommand %q", sub)
	}
}

func (a *ConsoleApp) runProducts(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		products, err := a.api.Products.List(ctx)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
		for _, p := range products {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, p.Price, p.Stock)
		}
		return tw.Flush()

	case "add":
		if len(args) < 5 {
			fmt.Fprintln(a.out, "Usage: products add <name> <category> <price> <stock>")
			return nil
		}
		price, err := decimal.NewFromString(args[3])
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		stock, err := strconv.Atoi(args[4])
		if err != nil {
			return fmt.Errorf("invalid stock: %w", err)
		}
		product, err := a.api.Products.Create(ctx, api.ProductInput{
			Name:     args[1],
			Category: args[2],
			Price:    price,
			Stock:    stock,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Product %s added (%s)\n", product.Name, product.ID)
		return nil

	case "rm":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: products rm <id>")
			return nil
		}
		id, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid product id: %w", err)
		}
		if err := a.api.Products.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Product removed")
		return nil

	default:
		return fmt.Errorf("unknown products subcommand %q", sub)
	}
}

func (a *ConsoleApp) runOrders(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		orders, err := a.api.Orders.List(ctx)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCUSTOMER\tSTATUS\tTOTAL")
		for _, o := range orders {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.ID, o.CustomerName, o.Status, o.Total)
		}
		return tw.Flush()

	case "show":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: orders show <id>")
			return nil
		}
		id, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid order id: %w", err)
		}
		o, err := a.api.Orders.Get(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Order %s\n  Customer: %s\n  Status: %s\n  Total: %s\n", o.ID, o.CustomerName, o.Status, o.Total)
		return nil

	case "status":
		if len(args) < 3 {
			fmt.Fprintln(a.out, "Usage: orders status <id> <PENDING|ACCEPTED|REJECTED|DELIVERED>")
			return nil
		}
		id, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid order id: %w", err)
		}
		o, err := a.api.Orders.UpdateStatus(ctx, id, strings.ToUpper(args[2]))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Order %s is now %s\n", o.ID, o.Status)
		return nil

	default:
		return fmt.Errorf("unknown orders subcommand %q", sub)
	}
}

func (a *ConsoleApp) runRequests(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		own, err := a.currentDistributor(ctx)
		if err != nil {
			return err
		}
		requests, err := a.api.Requests.ListForDistributor(ctx, own.ID)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tRETAILER\tPHONE\tSTATUS")
		for _, cr := range requests {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cr.ID, cr.RetailerName, cr.RetailerPhone, cr.Status)
		}
		return tw.Flush()

	case "accept", "reject":
		if len(args) < 2 {
			fmt.Fprintf(a.out, "Usage: requests %s <id>\n", sub)
			return nil
		}
		id, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid request id: %w", err)
		}

		status := models.RequestStatusAccepted
		if sub == "reject" {
			status = models.RequestStatusRejected
		}
		cr, err := a.api.Requests.Respond(ctx, id, status)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Request from %s is now %s\n", cr.RetailerName, cr.Status)
		return nil

	default:
		return fmt.Errorf("unknown requests subcommand %q", sub)
	}
}

func (a *ConsoleApp) runAdmin(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		return a.runDistributors(ctx, nil)

	case "onboard":
		if len(args) < 6 {
			fmt.Fprintln(a.out, "Usage: admin onboard <name> <email> <phone> <address> <password>")
			return nil
		}
		d, err := a.api.Auth.RegisterDistributor(ctx, api.RegisterDistributorInput{
			Name:     args[1],
			Email:    args[2],
			Phone:    args[3],
			Address:  args[4],
			Password: args[5],
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Distributor %s onboarded (%s)\n", d.Name, d.ID)
		return nil

	default:
		return fmt.Errorf("unknown admin subcommand %q", sub)
	}
}

// currentDistributor resolves the signed in distributor's own record by the
// session email
func (a *ConsoleApp) currentDistributor(ctx context.Context) (models.Distributor, error) {
	s, err := a.store.Read()
	if err != nil {
		return models.Distributor{}, err
	}

	distributors, err := a.api.Distributors.List(ctx)
	if err != nil {
		return models.Distributor{}, err
	}

	for _, d := range distributors {
		if d.Email == s.Email {
			return d, nil
		}
	}
	return models.Distributor{}, fmt.Errorf("no distributor record for %s", s.Email)
}
