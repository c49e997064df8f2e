package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/invscan/internal/adapters/camera/stills"
	"github.com/bnema/invscan/internal/adapters/decoder/zxing"
	inventoryview "github.com/bnema/invscan/internal/adapters/render/inventory"
	"github.com/bnema/invscan/internal/adapters/terminal"
	"github.com/bnema/invscan/internal/application"
	"github.com/bnema/invscan/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type scanOptions struct {
	mode     string
	frames   []string
	session  string
	manual   bool
	loop     bool
	interval time.Duration
	checkout bool
	borrower string
	due      time.Duration
}

func newScanCmd(app *app) *cobra.Command {
	var opts scanOptions

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan item codes and act on them",
		Long: "scan decodes QR codes from image frames (a directory or list of files standing in for the camera) " +
			"or from typed input and dispatches each code according to --mode: return ends after one returned item, " +
			"cart collects items for a checkout, count marks items of a cycle-count session and prompts for edits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", string(domain.ModeBorrowCart), "Scan mode (return|cart|count)")
	cmd.Flags().StringSliceVar(&opts.frames, "frames", nil, "Image files or directories used as camera frames")
	cmd.Flags().StringVar(&opts.session, "session", "", "Cycle-count session ID (default: profile session)")
	cmd.Flags().BoolVar(&opts.manual, "manual", false, "Type codes instead of reading frames")
	cmd.Flags().BoolVar(&opts.loop, "loop", false, "Replay frames until interrupted")
	cmd.Flags().DurationVar(&opts.interval, "interval", 200*time.Millisecond, "Pause between frames")
	cmd.Flags().BoolVar(&opts.checkout, "checkout", false, "Check out the cart when scanning ends (cart mode)")
	cmd.Flags().StringVar(&opts.borrower, "borrower", "", "Borrower for --checkout (default: profile borrower)")
	cmd.Flags().DurationVar(&opts.due, "due", 0, "Expected return for --checkout, relative to now")

	return cmd
}

func runScan(cmd *cobra.Command, app *app, opts scanOptions) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mode, err := domain.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	if opts.checkout && mode != domain.ModeBorrowCart {
		return fmt.Errorf("--checkout requires --mode %s", domain.ModeBorrowCart)
	}

	conn, err := app.connect(ctx)
	if err != nil {
		return err
	}

	items := app.newItemCache()
	entries := app.newEntryCache()
	cycle := application.NewCycleCountService(conn.inventory, entries)
	term := terminal.New(terminal.Options{
		Out:     cmd.OutOrStdout(),
		In:      cmd.InOrStdin(),
		Updater: cycle,
		Logger:  app.logger,
	})

	reconcilers := []*application.Reconciler{
		application.NewItemReconciler(conn.inventory, items, app.cfg.PollInterval, app.logger),
	}

	var sessionID domain.InventorySessionID
	var session domain.InventorySession
	if mode == domain.ModeCycleCount {
		if sessionID, err = requireSession(app, opts.session, conn.profile); err != nil {
			return err
		}
		if session, err = cycle.Load(ctx, sessionID); err != nil {
			return fmt.Errorf("load session %s: %w", sessionID, err)
		}
		reconcilers = append(reconcilers, application.NewEntryReconciler(conn.inventory, sessionID, entries, app.cfg.PollInterval, app.logger))
	}
	priming := make([]syncStep, 0, len(reconcilers))
	for _, reconciler := range reconcilers {
		priming = append(priming, syncStep{
			label: "Syncing " + reconciler.Name() + "...",
			run: func(ctx context.Context) error {
				_, err := reconciler.PollOnce(ctx)
				return err
			},
		})
	}
	if err := runSyncSpinner(ctx, cmd.ErrOrStderr(), priming...); err != nil {
		return fmt.Errorf("prime cache: %w", err)
	}

	deps := application.WorkflowDeps{
		Inventory: conn.inventory,
		Items:     items,
		Entries:   entries,
		Feedback:  term,
		Dialog:    term,
		Logger:    app.logger,
	}
	var cameraErr error
	if !opts.manual {
		camera, err := stills.New(opts.frames, stills.Options{Interval: opts.interval, Loop: opts.loop})
		if err != nil {
			cameraErr = domain.NewScanError(domain.KindDevice, "open camera", err)
		} else {
			deps.Camera = camera
			deps.Decoder = zxing.New()
		}
	}

	workflow, err := application.NewWorkflow(deps, application.WorkflowConfig{
		Mode:        mode,
		SessionID:   sessionID,
		AckDuration: app.cfg.AckDuration,
		SettleDelay: app.cfg.SettleDelay,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	pollCtx, stopPolling := context.WithCancel(gctx)
	for _, reconciler := range reconcilers {
		g.Go(func() error {
			return reconciler.Run(pollCtx)
		})
	}
	g.Go(func() error {
		defer stopPolling()
		return runScanSession(gctx, workflow, term, cameraErr)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	switch mode {
	case domain.ModeBorrowCart:
		cart := workflow.Cart()
		if err := writeView(cmd, app, inventoryview.View{Title: "Cart", Cart: cart}); err != nil {
			return err
		}
		if !opts.checkout || len(cart) == 0 {
			return nil
		}
		req := checkoutRequest(app, conn.profile, opts.borrower, opts.due)
		transactionID, err := workflow.Checkout(ctx, req)
		if err != nil {
			return fmt.Errorf("checkout cart: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Checked out %d item(s) for %s (transaction %s)\n", len(cart), sanitizeForTerminal(req.Borrower), transactionID)
	case domain.ModeCycleCount:
		view := cycle.View(session)
		return writeView(cmd, app, inventoryview.View{Title: "Inventory", Items: items.List(), Session: &view})
	}

	return nil
}

// runScanSession drives the camera until its frames run out, then falls
// back to typed codes when the camera became unusable.
func runScanSession(ctx context.Context, workflow *application.Workflow, term *terminal.Terminal, cameraErr error) error {
	defer term.WaitDialogs()

	if cameraErr != nil {
		term.OfferManualEntry(cameraErr)
		<-term.ManualEntry()
		return manualEntry(ctx, workflow, term)
	}
	if workflow.Controller() == nil {
		return manualEntry(ctx, workflow, term)
	}

	host := application.NewScanHost()
	defer host.Stop()

	if err := workflow.Start(ctx, host); err != nil {
		if kind, ok := domain.KindOf(err); ok && kind == domain.KindDevice {
			<-term.ManualEntry()
			return manualEntry(ctx, workflow, term)
		}
		return err
	}

	select {
	case <-workflow.Controller().Done():
	case <-ctx.Done():
		workflow.Stop()
		return nil
	}

	term.WaitDialogs()
	select {
	case <-term.ManualEntry():
		return manualEntry(ctx, workflow, term)
	default:
		return nil
	}
}

func manualEntry(ctx context.Context, workflow *application.Workflow, term *terminal.Terminal) error {
	for {
		line, err := term.ReadLine(ctx, "code: ")
		if err != nil {
			if errors.Is(err, terminal.ErrInputClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		if line == "" {
			return nil
		}

		result := workflow.Submit(ctx, line)
		term.WaitDialogs()
		if result.Done {
			return nil
		}
	}
}
