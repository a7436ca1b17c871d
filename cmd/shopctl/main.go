// Command shopctl talks to the autoshop API the way the dashboard does.
//
//	shopctl login -email admin@autoshop.local -password ...
//	AUTOSHOP_TOKEN=... shopctl refunds -status Pending -pages 2
//	AUTOSHOP_TOKEN=... shopctl quote -services 1,2,3 -discount percent:10
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"autoshop/internal/domain/bundle"
	"autoshop/internal/pkg/apiclient"
	"autoshop/internal/pkg/listing"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	session := apiclient.NewSession()
	if token := os.Getenv("AUTOSHOP_TOKEN"); token != "" {
		session.Set(token)
	}
	client := apiclient.FromEnv(session)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "login":
		err = runLogin(ctx, client, args)
	case "status":
		err = runStatus(ctx, client)
	case "refunds":
		err = runRefunds(ctx, client, args)
	case "quote":
		err = runQuote(ctx, client, args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		var rf *apiclient.RequestFailedError
		if errors.As(err, &rf) {
			fmt.Fprintln(os.Stderr, "error:", rf.Message)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: shopctl <login|status|refunds|quote> [flags]")
}

func runLogin(ctx context.Context, c *apiclient.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("AUTOSHOP_PASSWORD"), "account password")
	_ = fs.Parse(args)

	res, err := c.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s), token expires %s\n", res.User.Email, res.User.Role, c.Session().ExpiresAt().Format(time.RFC3339))
	fmt.Printf("export AUTOSHOP_TOKEN=%s\n", res.AccessToken)
	return nil
}

func runStatus(ctx context.Context, c *apiclient.Client) error {
	st, err := c.AuthStatus(ctx)
	if err != nil {
		return err
	}
	if !st.Authenticated {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("signed in as %s (%s)\n", st.User.Email, st.User.Role)
	return nil
}

// runRefunds fetches one window and keeps loading more while -pages allows.
func runRefunds(ctx context.Context, c *apiclient.Client, args []string) error {
	fs := flag.NewFlagSet("refunds", flag.ExitOnError)
	search := fs.String("q", "", "search text")
	status := fs.String("status", listing.All, "refund status filter")
	eligibility := fs.String("eligibility", listing.All, "eligibility filter (100%, 50%, 0%)")
	sortKey := fs.String("sort", "", "sort key, e.g. \"Newest\"")
	pages := fs.Int("pages", 1, "how many pages to load")
	_ = fs.Parse(args)

	if !c.Session().Valid() {
		return apiclient.ErrNotSignedIn
	}

	q := listing.Query{}.
		WithSearch(*search).
		WithFilter("status", *status).
		WithFilter("eligibility", *eligibility).
		WithSort(*sortKey)

	res, err := c.ListRefunds(ctx, q)
	for err == nil && res.HasMore && q.Pages < *pages {
		q = q.NextPage()
		res, err = c.ListRefunds(ctx, q)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tREF\tCUSTOMER\tCENTER\tDAYS\tTIER\tADVANCE\tREFUND\tSTATUS")
	for _, b := range res.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			b.ID, b.BookingRef, b.CustomerName, b.ServiceCenter, b.DaysBeforeCheckIn,
			b.Eligibility, b.AdvanceAmount.StringFixed(2), b.Breakdown.CustomerRefund.StringFixed(2), b.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("showing %d of %d", len(res.Items), res.Visible)
	if res.HasMore {
		fmt.Print(" (more available, raise -pages)")
	}
	fmt.Println()
	return nil
}

func runQuote(ctx context.Context, c *apiclient.Client, args []string) error {
	fs := flag.NewFlagSet("quote", flag.ExitOnError)
	ids := fs.String("services", "", "comma-separated service ids")
	discount := fs.String("discount", "", "percent:<n> or fixed:<amount>")
	custom := fs.String("custom", "", "custom total override")
	_ = fs.Parse(args)

	req := bundle.QuoteRequest{}
	for _, raw := range strings.Split(*ids, ",") {
		if raw = strings.TrimSpace(raw); raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("bad service id %q", raw)
		}
		req.ServiceIDs = append(req.ServiceIDs, id)
	}

	if *discount != "" {
		kind, value, ok := strings.Cut(*discount, ":")
		if !ok {
			return fmt.Errorf("discount must look like percent:10 or fixed:500")
		}
		v, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("bad discount value %q", value)
		}
		req.Discount = &bundle.Discount{Type: bundle.DiscountType(kind), Value: v}
	}
	if *custom != "" {
		v, err := decimal.NewFromString(*custom)
		if err != nil {
			return fmt.Errorf("bad custom total %q", *custom)
		}
		req.CustomTotal = &v
	}

	q, err := c.QuotePackage(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("subtotal:   %s\ndiscount:   %s\ncalculated: %s\ntotal:      %s\n",
		q.Subtotal.StringFixed(2), q.DiscountAmount.StringFixed(2),
		q.CalculatedTotal.StringFixed(2), q.DisplayTotal.StringFixed(2))
	return nil
}
