package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/hubuum-io/hubuum-go/pkg/hubuum"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		server   string
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Hubuum",
		Long:  "Authenticate with a Hubuum API server and store the issued token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = viper.GetString("server")
			}

			if server == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API server: ")
				server, _ = reader.ReadString('\n')
				server = strings.TrimSpace(server)
			}

			if server == "" {
				return ErrServerRequired
			}

			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			base, err := hubuum.ParseBaseURL(server)
			if err != nil {
				return err
			}

			client, err := hubuum.New(base).Login(context.Background(), hubuum.Credentials{
				Username: username,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if err := saveLoginConfig(server, client.Token()); err != nil {
				return fmt.Errorf("saving credentials: %w", err)
			}

			fmt.Printf("Logged in to %s as %s\n", server, username)

			return nil
		},
	}

	cmd.Flags().StringVar(&server, "api", "", "API server URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted if not given)")

	return cmd
}
