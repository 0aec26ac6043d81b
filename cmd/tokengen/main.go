package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/spec-kit/failtrack/internal/auth"
	"github.com/spec-kit/failtrack/internal/config"
	"github.com/spec-kit/failtrack/internal/domain"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var name string
	var role string
	var secret string
	var ttlMinutes int

	flagSet := pflag.NewFlagSet("tokengen", pflag.ContinueOnError)
	flagSet.StringVarP(&name, "name", "n", "", "operator name placed in the token subject")
	flagSet.StringVarP(&role, "role", "r", string(domain.OperatorRoleTechnician), "operator role (technician or supervisor)")
	flagSet.StringVar(&secret, "secret", "", "signing secret (default: AUTH_JWT_SECRET)")
	flagSet.IntVar(&ttlMinutes, "ttl", 0, "token lifetime in minutes (default: AUTH_ACCESS_TOKEN_TTL_MINUTES)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if name == "" {
		return errors.New("--name is required")
	}
	operatorRole := domain.OperatorRole(role)
	if !operatorRole.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}

	if secret == "" || ttlMinutes <= 0 {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if secret == "" {
			secret = cfg.Auth.JWTSecret
		}
		if ttlMinutes <= 0 {
			ttlMinutes = cfg.Auth.AccessTokenTTLMinutes
		}
	}

	token, expiresAt, err := auth.NewTokenManager(secret, ttlMinutes).GenerateToken(name, operatorRole)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, token)
	fmt.Fprintf(os.Stderr, "expires %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
