// Command calltoken prints a bearer token for a primary address, signed with
// the service's configured key. Intended for local development and smoke tests.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "github.com/illustspace/gsr/internal/jwt_token"
	"github.com/illustspace/gsr/internal/platform/config"
	id "github.com/illustspace/gsr/pkg/domain"
)

func main() {
	address := flag.String("address", "", "primary address the token is issued for")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to GSR_JWT_TTL)")
	flag.Parse()

	if err := run(*address, *ttl); err != nil {
		fmt.Fprintln(os.Stderr, "calltoken:", err)
		os.Exit(1)
	}
}

func run(address string, ttl time.Duration) error {
	var auth config.Auth
	if err := config.ParseEnv(&auth); err != nil {
		return err
	}
	caller, err := id.ParsePrimaryAddress(address)
	if err != nil {
		return fmt.Errorf("-address: %w", err)
	}
	if ttl <= 0 {
		ttl = auth.TokenTTL
	}

	token, err := jwttoken.NewJWTService(auth.JWTSigningKey, auth.Issuer, auth.Audience).
		GenerateAccessToken(caller, ttl)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	fmt.Println(token)
	return nil
}
