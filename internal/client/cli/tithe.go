package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/praylink/internal/client/session"
	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/models"
)

// parseAmount reads "25" or "25.50" into minor units.
func parseAmount(s string) (int64, error) {
	return common.ParseMinorUnits(s)
}

// Tithe asks for an amount and a payment method and sends the tithe. PayPal
// payments are captured after the member approves them in the browser.
func (a *App) Tithe(ctx context.Context) error {
	s := a.current()
	if s == nil {
		return session.ErrNoSession
	}

	var b strings.Builder
	b.WriteString("Amount in USD, or pick a preset:")
	for i, p := range session.TithePresets {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, formatAmount(p))
	}
	ans, err := a.ask(b.String())
	if err != nil {
		return err
	}
	var amount int64
	if n, err := strconv.Atoi(ans); err == nil && n >= 1 && n <= len(session.TithePresets) && !strings.Contains(ans, ".") {
		amount = session.TithePresets[n-1]
	} else if amount, err = parseAmount(ans); err != nil {
		return err
	}

	method, err := askChoice(a, "Payment method",
		[]models.PaymentMethod{models.PaymentCreditCard, models.PaymentPayPal}, models.PaymentCreditCard)
	if err != nil {
		return err
	}

	var token string
	if method == models.PaymentCreditCard {
		if token, err = a.ask("Card payment method token (e.g. pm_card_visa)"); err != nil {
			return err
		}
	}

	resp, err := s.Tithe(ctx, amount, method, token)
	if err != nil {
		return err
	}

	if resp.Status == "pending" && resp.ApprovalURL != "" {
		fmt.Fprintln(a.out, "Approve the payment at:", resp.ApprovalURL)
		ok, err := getYesNo(a.reader, "Approved?", a.out)
		if err != nil || !ok {
			fmt.Fprintln(a.out, "Tithe left pending:", resp.Reference)
			return err
		}
		if resp, err = s.CompleteTithe(ctx, method, resp.Reference); err != nil {
			return err
		}
	}

	fmt.Fprintf(a.out, "Thank you for your tithe of %s\n", formatAmount(amount))
	if resp.Upgraded {
		fmt.Fprintln(a.out, "You are now a premium member. The spiritual guide is open to you.")
	}
	return nil
}

func (a *App) History(ctx context.Context) error {
	s := a.current()
	if s == nil {
		return session.ErrNoSession
	}
	tithes, err := s.TitheHistory(ctx)
	if err != nil {
		return err
	}
	if len(tithes) == 0 {
		fmt.Fprintln(a.out, "No tithes yet")
		return nil
	}
	for _, t := range tithes {
		fmt.Fprintf(a.out, "%s  %s %s  %s\n", t.CreatedAt.Local().Format(timeLayout), formatAmount(t.Amount), t.Currency, t.Method)
	}
	return nil
}
