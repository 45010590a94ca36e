package cmd

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/datafocus/go-inventory-sink/cmd/setup"
	"github.com/datafocus/go-inventory-sink/internal/common/graceful"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/deliveries/singer"
)

var rootCmd = &cobra.Command{
	Use:   "target",
	Short: "Target is a singer target that writes tap records to zoho inventory",
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
	rootCmd.AddCommand(runTargetCmd)

	runTargetCmd.Flags().StringP(runTargetInputFlag, "i", "", "read singer messages from file instead of stdin")
	runTargetCmd.Flags().Bool(runTargetFailFastFlag, false, "stop at the first failed record")
}

var (
	runTargetCmd = &cobra.Command{
		Use:     "run",
		Short:   "Run target",
		Long:    `Run target reading singer messages from stdin, the last STATE value is written to stdout`,
		Example: "tap-something | target run --fail-fast",
		RunE:    runTarget,
	}
	runTargetInputFlag    = "input"
	runTargetFailFastFlag = "fail-fast"
)

func runTarget(ccmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input, _ := ccmd.Flags().GetString(runTargetInputFlag)
	failFast, _ := ccmd.Flags().GetBool(runTargetFailFastFlag)

	// stdout carries the state, so logs go to stderr
	s, stoppers, err := setup.Init("target", setup.WithLogToStderr())
	if err != nil {
		log.Fatalf("failed to setup app: %v", err)
	}
	defer func() {
		if err := graceful.StopProcess(s.Config.App.GracefulTimeout, stoppers...); err != nil {
			xlog.Errorf(ctx, "failed release resources: %v", err)
		}
	}()

	var in io.Reader = os.Stdin
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	runner := singer.New(s.Service.Sink,
		singer.WithFailFast(failFast),
		singer.WithStateOutput(os.Stdout),
	)

	_, err = runner.Run(ctx, in)
	return err
}
