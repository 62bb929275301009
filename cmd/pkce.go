package main

import (
	"context"

	"github.com/desertthunder/glass/internal/pkce"
	"github.com/urfave/cli/v3"
)

// PKCE prints a fresh verifier and its S256 challenge.
func (r *Runner) PKCE(ctx context.Context, cmd *cli.Command) error {
	pair := pkce.New()

	if cmd.Bool("json") {
		return r.writeJSON(map[string]string{
			"code_verifier":         pair.Verifier,
			"code_challenge":        pair.Challenge,
			"code_challenge_method": pkce.MethodS256,
		}, false)
	}

	r.writePlain("verifier:  %s\n", pair.Verifier)
	r.writePlain("challenge: %s\n", pair.Challenge)
	return nil
}
