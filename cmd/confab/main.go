package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"confab/pkg/config"
	"confab/pkg/registry"
	"confab/pkg/server"
)

var (
	configFile string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "confab",
		Short: "Federated event scheduling service",
		Long: `A federation of equal-rank servers jointly providing an event scheduling
service. Every server replicates the user and event directory through a
two-phase registration protocol and routes operations to the owning server.`,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(
		serverCmd(),
		registryCmd(),
		clientCmd(),
		statusCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serverCmd() *cobra.Command {
	var (
		memberID        string
		address         string
		registryAddress string
		createRegistry  bool
		peers           []string
	)

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run a scheduling server",
		Long:  `Start one member of the federation. The peer set is fixed at startup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(verbose)
			defer logger.Sync()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg == nil {
				cfg = config.LoadFromEnv()
				if memberID != "" {
					cfg.MemberID = memberID
				}
				if address != "" {
					cfg.Address = address
				}
				if registryAddress != "" {
					cfg.Registry.Address = registryAddress
				}
				if createRegistry {
					cfg.Registry.Create = true
				}
				if len(peers) > 0 {
					cfg.Peers = peers
				}
			}
			if cfg.MemberID == "" {
				return fmt.Errorf("member id is required")
			}

			// One process may host the naming directory for the others.
			if cfg.Registry.Create {
				reg := registry.NewServer(logger.Named("registry"))
				go func() {
					if err := reg.Start(cfg.Registry.Address); err != nil {
						logger.Fatal("Naming directory failed", zap.Error(err))
					}
				}()
				defer reg.Stop()
			}

			srv := server.New(cfg, logger)
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Shutting down", zap.String("signal", sig.String()))
				srv.Stop()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&memberID, "member-id", "m", "", "name to bind in the naming directory")
	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address")
	cmd.Flags().StringVarP(&registryAddress, "registry", "r", "", "naming directory address")
	cmd.Flags().BoolVar(&createRegistry, "create-registry", false, "host the naming directory in this process")
	cmd.Flags().StringSliceVarP(&peers, "peers", "p", nil, "binding names of the other servers (comma-separated, order matters)")

	return cmd
}

func registryCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Run a standalone naming directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(verbose)
			defer logger.Sync()

			reg := registry.NewServer(logger)
			errCh := make(chan error, 1)
			go func() {
				errCh <- reg.Start(address)
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-sigCh:
				reg.Stop()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "localhost:8100", "listen address")

	cmd.AddCommand(unbindCmd())
	return cmd
}

// unbindCmd clears a stale binding left behind by a crashed server.
func unbindCmd() *cobra.Command {
	var registryAddress string

	cmd := &cobra.Command{
		Use:   "unbind <name>",
		Short: "Remove a binding from the naming directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Connect(registryAddress)
			if err != nil {
				return err
			}
			defer reg.Close()

			if err := reg.Unbind(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Unbound %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&registryAddress, "registry", "r", "localhost:8100", "naming directory address")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("confab v0.1.0")
		},
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return nil, nil
	}
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func setupLogger(verbose bool) *zap.Logger {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, _ := config.Build()
	return logger
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
