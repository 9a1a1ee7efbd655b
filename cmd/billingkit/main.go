package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/billingkit/internal/config"
	"github.com/railzwaylabs/billingkit/internal/logger"
	subscriptiondomain "github.com/railzwaylabs/billingkit/internal/subscription/domain"
	taxdomain "github.com/railzwaylabs/billingkit/internal/tax/domain"
	"github.com/railzwaylabs/billingkit/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "billingkit",
		Short:   "Subscription billing integration toolkit",
		Version: version,
	}
	root.AddCommand(newMigrateCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the local billing tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func runMigrate() error {
	app := fx.New(
		fx.NopLogger,
		config.Module,
		logger.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		fx.Invoke(migrate),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	return app.Stop(context.Background())
}

func migrate(gdb *gorm.DB, log *zap.Logger) error {
	if err := gdb.AutoMigrate(
		&subscriptiondomain.Subscription{},
		&taxdomain.TaxRate{},
	); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
