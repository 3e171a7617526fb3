package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"buycycle/internal/auth"
	"buycycle/internal/validate"
)

var tokenEmail string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed bearer credential for an email",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, ok := validate.Email(tokenEmail)
		if !ok {
			return errors.New("--email must be a valid address")
		}
		tok, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL).Mint(email)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email claim to embed")
	_ = tokenCmd.MarkFlagRequired("email")
}
