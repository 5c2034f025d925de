package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SundayYogurt/scholarship_service/config"
	"github.com/SundayYogurt/scholarship_service/infra/queue"
	"github.com/SundayYogurt/scholarship_service/internal/api"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/logger"
	"github.com/SundayYogurt/scholarship_service/internal/mail"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scholarship_service",
		Short:         "Scholarship management API",
		Version:       version,
		SilenceUsage:  true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{Use: "serve", Short: "Run the HTTP API", RunE: runServe},
		newTokenCmd(),
		&cobra.Command{Use: "mailer", Short: "Consume payment events and send receipts", RunE: runMailer},
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	lg := logger.New(logger.ParseLevel(cfg.LogLevel), cfg.Environment)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.StartServer(ctx, cfg, lg)
}

func newTokenCmd() *cobra.Command {
	var email, name string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for local testing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			tok, err := helper.SetupAuth(cfg.AccessSecret).IssueToken(email, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "token subject email")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runMailer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	lg := logger.New(logger.ParseLevel(cfg.LogLevel), cfg.Environment)

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required for the mailer")
	}
	if cfg.MailFrom == "" {
		log.Println("Warning: MAIL_FROM not set, falling back to SMTP_USERNAME")
		cfg.MailFrom = cfg.SMTPUsername
	}

	sender := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
	handler := mail.NewReceiptHandler(mail.NewMailService(sender, cfg.MailFrom, cfg.MailFromName, lg), lg)

	consumer := queue.NewKafkaConsumer(queue.ConsumerConfig{
		Broker:   cfg.KafkaBroker,
		Topic:    cfg.KafkaTopic,
		GroupID:  cfg.KafkaGroupID,
		Username: cfg.KafkaUsername,
		Password: cfg.KafkaPassword,
	}, handler, lg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("mailer listening", "topic", cfg.KafkaTopic, "group", cfg.KafkaGroupID)
	if err := consumer.Listen(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
