package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	baseURL       string
	bind          string
	catalog       string
	port          int
	prefix        string
	profile       bool
	redisAddr     string
	redisDB       int
	redisPassword string
	roundTimeout  time.Duration
	seed          uint64
	tlsCert       string
	tlsKey        string
	verbose       bool
	version       bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.roundTimeout <= 0 {
		return fmt.Errorf("invalid round timeout (must be positive): %s", c.roundTimeout)
	}
	if c.redisDB < 0 {
		return fmt.Errorf("invalid redis database (must be non-negative): %d", c.redisDB)
	}
	if c.baseURL != "" {
		u, err := url.Parse(c.baseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid base url (must be an absolute http(s) url): %q", c.baseURL)
		}
		c.baseURL = strings.TrimSuffix(c.baseURL, "/")
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("VIDQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "vidquiz",
		Short:         "A trivia game: watch a random video and guess its title.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.baseURL, "base-url", "", "public url of the site, used to pre-generate share codes (env: VIDQUIZ_BASE_URL)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: VIDQUIZ_BIND)")
	fs.StringVarP(&cfg.catalog, "catalog", "c", "", "path to a yaml or json video catalog, built-in catalog if unset (env: VIDQUIZ_CATALOG)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: VIDQUIZ_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: VIDQUIZ_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: VIDQUIZ_PROFILE)")
	fs.StringVar(&cfg.redisAddr, "redis-addr", "", "redis address for sharing rounds between instances, in-memory if unset (env: VIDQUIZ_REDIS_ADDR)")
	fs.IntVar(&cfg.redisDB, "redis-db", 0, "redis database number (env: VIDQUIZ_REDIS_DB)")
	fs.StringVar(&cfg.redisPassword, "redis-password", "", "redis password (env: VIDQUIZ_REDIS_PASSWORD)")
	fs.DurationVar(&cfg.roundTimeout, "round-timeout", 60*time.Minute, "time before an idle quiz round expires (env: VIDQUIZ_ROUND_TIMEOUT)")
	fs.Uint64Var(&cfg.seed, "seed", 0, "seed for shuffling, random if 0 (env: VIDQUIZ_SEED)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: VIDQUIZ_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: VIDQUIZ_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: VIDQUIZ_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: VIDQUIZ_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("vidquiz v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
