package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/stepwise/internal/credential"
)

// Swapped out in tests.
var (
	setCredential    = credential.Set
	deleteCredential = credential.Delete
)

func newKeyCommand(opts *options) *cobra.Command {
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the OpenAI API key in the system keyring",
	}

	keyCmd.AddCommand(&cobra.Command{
		Use:   "set [api-key]",
		Short: "Store the API key (prompts, or reads stdin, when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				var err error
				if key, err = readKey(cmd, opts); err != nil {
					return err
				}
			}
			key = strings.TrimSpace(key)
			if key == "" {
				return errors.New("API key cannot be empty")
			}

			if err := setCredential(credential.APIKeyName, key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key saved to the system keyring.")
			return nil
		},
	})

	keyCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deleteCredential(credential.APIKeyName); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key removed from the system keyring.")
			return nil
		},
	})

	return keyCmd
}

func readKey(cmd *cobra.Command, opts *options) (string, error) {
	if opts.interactive() {
		var key string
		err := huh.NewInput().
			Title("OpenAI API key").
			EchoMode(huh.EchoModePassword).
			Value(&key).
			Run()
		if err != nil {
			return "", fmt.Errorf("reading API key: %w", err)
		}
		return key, nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading API key from stdin: %w", err)
	}
	return line, nil
}
