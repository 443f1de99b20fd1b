package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/revauth/internal/auth"
	"github.com/dropDatabas3/revauth/internal/config"
	"github.com/dropDatabas3/revauth/internal/metrics"
	"github.com/dropDatabas3/revauth/internal/observability/logger"
	"github.com/dropDatabas3/revauth/internal/transport"
	"github.com/dropDatabas3/revauth/internal/util"
)

func main() {
	_ = godotenv.Load(".env")

	var (
		cfgPath string
		yes     bool
	)

	root := &cobra.Command{
		Use:           "revauth",
		Short:         "Reverse-OAuth social login against store-registered accounts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "revauth.yaml", "path to config file")
	root.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "auto-confirm account prompts")

	root.AddCommand(&cobra.Command{
		Use:   "facebook",
		Short: "Authenticate the system Facebook account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap(cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.Facebook.Validate(); err != nil {
				return err
			}
			a := auth.NewFacebook(cfg.Facebook, &envStore{},
				transport.New("", ""), &terminalDelegate{autoConfirm: yes})
			return report(a.Run(cmd.Context()))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "twitter",
		Short: "Authenticate one of the system Twitter accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap(cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.Twitter.Validate(); err != nil {
				return err
			}
			a := auth.NewTwitter(cfg.Twitter, &envStore{},
				transport.New(cfg.Twitter.ConsumerKey, cfg.Twitter.ConsumerSecret),
				&terminalDelegate{autoConfirm: yes})
			return report(a.Run(cmd.Context()))
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap loads config and wires the ambient pieces in the usual order:
// env file already loaded, then config, logger, metrics.
func bootstrap(cfgPath string) (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "revauth",
	})
	if err := metrics.Register(nil); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	return cfg, nil
}

func report(creds *auth.Credentials, problem *auth.Problem) error {
	defer logger.Sync()
	if problem != nil {
		return problem
	}
	fmt.Printf("id:          %s\n", creds.ID)
	fmt.Printf("name:        %s\n", creds.Name)
	if creds.ScreenName != "" {
		fmt.Printf("screen name: %s\n", creds.ScreenName)
	}
	if creds.Email != "" {
		fmt.Printf("email:       %s\n", creds.Email)
	}
	fmt.Printf("avatar:      %s\n", creds.AvatarURL)
	fmt.Printf("token:       %s\n", util.MaskToken(creds.Token))
	if creds.TokenSecret != "" {
		fmt.Printf("secret:      %s\n", util.MaskToken(creds.TokenSecret))
	}
	return nil
}
