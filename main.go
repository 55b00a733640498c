package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/customeros/mailsweep/config"
	mailsweep_errors "github.com/customeros/mailsweep/errors"
	"github.com/customeros/mailsweep/interfaces"
	"github.com/customeros/mailsweep/internal/cron"
	"github.com/customeros/mailsweep/internal/logger"
	"github.com/customeros/mailsweep/internal/models"
	"github.com/customeros/mailsweep/internal/tracing"
	"github.com/customeros/mailsweep/services/cleaner"
)

func main() {
	app := &cli.App{
		Name:  "mailsweep",
		Usage: "sweep IMAP folders with pattern-based cleanup rules",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"C"},
				Usage:   "path to the accounts file",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "apply actions without asking for confirmation",
			},
			&cli.IntFlag{
				Name:  "skip-days",
				Value: 30,
				Usage: "leave messages younger than this many days untouched (0 disables)",
			},
			&cli.StringFlag{
				Name:  "schedule",
				Usage: "run repeatedly under the given cron spec instead of once (implies --force)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return cli.Exit(fmt.Sprintf("config initialization failed: %v", err), 2)
	}

	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	tracer, closer, err := tracing.NewJaegerTracer(cfg.Jaeger, appLogger)
	if err != nil {
		appLogger.Warnf("tracer initialization failed: %v", err)
	} else {
		defer closer.Close()
		opentracing.SetGlobalTracer(tracer)
	}

	accountsPath := cfg.AccountsPath
	if c.String("config") != "" {
		accountsPath = c.String("config")
	}

	accounts, err := config.LoadAccounts(accountsPath, appLogger)
	if err != nil {
		return cli.Exit(fmt.Sprintf("loading accounts from %s failed: %v", accountsPath, err), 2)
	}
	if len(accounts) == 0 {
		appLogger.Warnf("no usable accounts in %s, nothing to do", accountsPath)
		return nil
	}

	schedule := c.String("schedule")

	opts := cleaner.Options{
		Interactive:  !c.Bool("force") && schedule == "",
		SkipDays:     c.Int("skip-days"),
		ChunkSize:    cfg.ChunkSize,
		PreviewChars: cfg.PreviewChars,
		SubjectWidth: cfg.SubjectWidth,
	}
	service := cleaner.NewCleanupService(appLogger, opts, os.Stdout)

	if schedule != "" {
		return runScheduled(c.Context, appLogger, service, accounts, schedule)
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := service.Run(ctx, accounts); err != nil {
		if errors.Is(err, mailsweep_errors.ErrRunCanceled) {
			return nil
		}
		return cli.Exit(fmt.Sprintf("sweep failed: %v", err), 2)
	}
	return nil
}

// runScheduled keeps sweeping under the cron spec until SIGINT or SIGTERM.
// A canceled run only ends that tick, not the schedule.
func runScheduled(ctx context.Context, log logger.Logger, service interfaces.CleanupService, accounts []models.Account, schedule string) error {
	manager := cron.NewCronManager(log)

	err := manager.Schedule("sweep", schedule, func() {
		span, jobCtx := tracing.StartTracerSpan(ctx, "scheduledSweep")
		tracing.TagComponentCronJob(span)
		defer span.Finish()

		if err := service.Run(jobCtx, accounts); err != nil && !errors.Is(err, mailsweep_errors.ErrRunCanceled) {
			tracing.TraceErr(span, err)
			log.Errorf("scheduled sweep failed: %v", err)
		}
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid schedule %q: %v", schedule, err), 2)
	}

	manager.Start()
	log.Infof("running on schedule %q, press Ctrl-C to stop", schedule)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	manager.Stop()
	return nil
}
