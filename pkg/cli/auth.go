package cli

import (
	"errors"
	"fmt"

	"github.com/modelgrade/mgrade/pkg/auth"
	urfave "github.com/urfave/cli/v2"
)

var authCmd = &urfave.Command{
	Name:            "auth",
	HideHelpCommand: true,
	Usage:           "Manage the GitHub and GenAI access tokens",
	Subcommands: []*urfave.Command{
		{
			Name:      "set",
			Usage:     "Store a token in the OS keychain",
			ArgsUsage: "[github|genai] TOKEN",
			Action:    cmdAuthSet,
		},
		{
			Name:      "delete",
			Usage:     "Remove a stored token",
			ArgsUsage: "[github|genai]",
			Action:    cmdAuthDelete,
		},
	},
}

func tokenName(arg string) (string, error) {
	switch arg {
	case "github":
		return auth.TokenGitHub, nil
	case "genai":
		return auth.TokenGenAI, nil
	default:
		return "", fmt.Errorf("unknown token name %q, expected github or genai", arg)
	}
}

func cmdAuthSet(c *urfave.Context) error {
	name, err := tokenName(c.Args().Get(0))
	if err != nil {
		return err
	}

	token := c.Args().Get(1)
	if token == "" {
		return errors.New("token value is required")
	}

	if err := auth.Save(getConfig(c).HomeDir, name, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	fmt.Println("Token saved")
	return nil
}

func cmdAuthDelete(c *urfave.Context) error {
	name, err := tokenName(c.Args().Get(0))
	if err != nil {
		return err
	}

	if err := auth.Delete(getConfig(c).HomeDir, name); err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}

	fmt.Println("Token deleted")
	return nil
}
