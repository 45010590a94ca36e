package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/datafocus/go-inventory-sink/cmd/setup"
	"github.com/datafocus/go-inventory-sink/internal/common/graceful"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/deliveries/consumer"
	"github.com/datafocus/go-inventory-sink/internal/deliveries/http"
	"github.com/datafocus/go-inventory-sink/internal/deliveries/http/health"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "consumer",
	Short: "Consumer reads singer records from kafka and writes them to zoho inventory",
	Long:  ``,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runConsumerCmd)

	runConsumerCmd.Flags().StringP(runConsumerCmdName, "n", consumer.RecordStream, "consumer name")
}

var (
	runConsumerCmd = &cobra.Command{
		Use:     "run",
		Short:   "Run consumer",
		Long:    `Run consumer for syncing singer records into zoho inventory, available consumer type: record_stream`,
		Example: "consumer run -n={consumer-type-name}",
		Run:     runConsumer,
	}
	runConsumerCmdName = "name"
)

func runConsumer(ccmd *cobra.Command, args []string) {
	var (
		starters []graceful.ProcessStarter
		stoppers []graceful.ProcessStopper
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumerName, _ := ccmd.Flags().GetString(runConsumerCmdName)

	s, stopperContract, err := setup.Init("consumer-" + consumerName)
	if err != nil {
		log.Fatalf("failed to setup app: %v", err)
	}

	xlog.Infof(ctx, "initializing consumer: %s", consumerName)

	consumerProcess, consumerStopper, err := consumer.NewKafkaConsumer(ctx, consumerName, s)
	if err != nil {
		_ = graceful.StopProcess(s.Config.App.GracefulTimeout, stopperContract...)
		xlog.Fatalf(ctx, "failed to setup consumer: %v", err)
	}

	check := health.NewHealthCheck()
	healthCheckProcess := http.NewHTTPServer(ctx, s.Config, s.NewRelic, s.Metrics, check)

	starters = append(starters, consumerProcess.Start(), healthCheckProcess.Start())
	// stopped in reverse: health check first, setup resources last
	stoppers = append(stoppers, stopperContract...)
	stoppers = append(stoppers, consumerStopper...)
	stoppers = append(stoppers, consumerProcess.Stop())
	stoppers = append(stoppers, healthCheckProcess.Stop())
	stoppers = append(stoppers, func(context.Context) error {
		check.Shutdown()
		return nil
	})

	graceful.StartProcessAtBackground(cancel, starters...)
	xlog.Infof(ctx, "consumer %s started, waiting for shutdown signal...", consumerName)

	if err = graceful.StopProcessAtBackground(ctx, s.Config.App.GracefulTimeout, stoppers...); err != nil {
		xlog.Errorf(ctx, "failed stop consumer %s: %v", consumerName, err)
		return
	}

	xlog.Infof(ctx, "consumer %s stopped successfully!", consumerName)
}
