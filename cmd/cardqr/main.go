// Command cardqr is a terminal stand-in for the wallet devices. "show" keeps
// a rotating transaction QR on screen for a card; "redeem" plays the store
// terminal and redeems a scanned payload with the store PIN.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ryanbarcelos/fidelize-sub001/internal/logger"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/qrsession"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/walletclient"
	flag "github.com/spf13/pflag"
)

type options struct {
	apiURL      string
	accessToken string
	cardID      string
	action      string
	payload     string
	pin         string
	points      int
	logLevel    string
}

func main() {
	var opts options
	fs := flag.NewFlagSet("cardqr", flag.ContinueOnError)
	fs.StringVar(&opts.apiURL, "api", "http://localhost:8080", "wallet API base URL")
	fs.StringVar(&opts.accessToken, "access-token", os.Getenv("FIDELIZE_ACCESS_TOKEN"), "user bearer token (show)")
	fs.StringVar(&opts.cardID, "card", "", "card id (show)")
	fs.StringVar(&opts.action, "action", "add_points", "add_points or collect_reward (show)")
	fs.StringVar(&opts.payload, "payload", "", "scanned QR payload (redeem)")
	fs.StringVar(&opts.pin, "pin", "", "store PIN (redeem)")
	fs.IntVar(&opts.points, "points", 1, "points to add (redeem)")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: cardqr show|redeem [flags]")
		fs.PrintDefaults()
	}

	if len(os.Args) < 2 {
		fs.Usage()
		os.Exit(2)
	}
	mode := os.Args[1]
	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	log := logger.New(opts.logLevel, "development")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := walletclient.New(opts.apiURL, opts.accessToken)

	var err error
	switch mode {
	case "show":
		err = show(ctx, client, opts, os.Stdout, qrsession.WithLogger(log))
	case "redeem":
		err = redeem(ctx, client, opts, os.Stdout)
	default:
		fs.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "cardqr:", err)
		os.Exit(1)
	}
}

func show(ctx context.Context, issuer qrsession.Issuer, opts options, out io.Writer, presenterOpts ...qrsession.Option) error {
	if opts.cardID == "" {
		return fmt.Errorf("--card is required")
	}

	failed := make(chan error, 1)
	var shownID string
	presenter := qrsession.NewPresenter(issuer, func(f qrsession.Frame) {
		switch f.State {
		case qrsession.StateGenerating:
			fmt.Fprintln(out, "gerando QR code...")
		case qrsession.StateDisplaying:
			if f.Token.ID != shownID {
				shownID = f.Token.ID
				art, err := qrsession.RenderTerminal(f.Payload)
				if err != nil {
					fmt.Fprintln(out, f.Payload)
				} else {
					fmt.Fprint(out, "\033[H\033[2J", art)
				}
			}
			fmt.Fprintf(out, "\rexpira em %2ds", f.TimeLeft)
		case qrsession.StateIdle:
			if f.Err != nil {
				failed <- f.Err
			}
		}
	}, presenterOpts...)

	if err := presenter.Open(ctx, opts.cardID, opts.action); err != nil {
		return err
	}
	defer presenter.Close()

	select {
	case <-ctx.Done():
		fmt.Fprintln(out)
		return nil
	case err := <-failed:
		return fmt.Errorf("token issuance failed: %w", err)
	}
}

type redeemer interface {
	Redeem(ctx context.Context, in dto.RedeemInput) (*dto.RedeemOutput, error)
}

func redeem(ctx context.Context, client redeemer, opts options, out io.Writer) error {
	payload, err := qrsession.DecodeTokenPayload(opts.payload)
	if err != nil {
		return err
	}

	in := dto.RedeemInput{Token: payload.Token, StorePin: opts.pin}
	if payload.Action == "add_points" {
		in.Points = opts.points
	}

	res, err := client.Redeem(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "cartão %s: %d pontos\n", res.Card.ID, res.Card.Points)
	if res.JustCompleted {
		fmt.Fprintln(out, "cartão completo! recompensa disponível")
	}
	return nil
}
