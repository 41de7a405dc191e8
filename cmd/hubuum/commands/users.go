package commands

import (
	"context"
	"fmt"

	"github.com/hubuum-io/hubuum-go/pkg/hubuum"
	"github.com/spf13/cobra"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "List, create, update and delete Hubuum users",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newUsersUpdateCommand())
	cmd.AddCommand(newUsersDeleteCommand())
	cmd.AddCommand(newUsersGroupsCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			builder := client.Users().Find()
			if err := applyFilters(builder, filters); err != nil {
				return err
			}

			users, err := builder.Execute(ctx)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return renderList(users)
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as field__operator=value (repeatable)")

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USERNAME",
		Short: "Get a user by username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().ByUsername(ctx, args[0])
			if err != nil {
				return err
			}

			return renderOne(user)
		},
	}
}

func newUsersCreateCommand() *cobra.Command {
	var params hubuum.UserPost

	var email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			if email != "" {
				params.Email = &email
			}

			user, err := client.Users().Create(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			return renderOne(user)
		},
	}

	cmd.Flags().StringVar(&params.Username, "username", "", "username")
	cmd.Flags().StringVar(&params.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUsersUpdateCommand() *cobra.Command {
	var (
		username string
		email    string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var params hubuum.UserPatch
			if cmd.Flags().Changed("username") {
				params.Username = &username
			}

			if cmd.Flags().Changed("email") {
				params.Email = &email
			}

			user, err := client.Users().Update(ctx, id, params)
			if err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}

			return renderOne(user)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "new username")
	cmd.Flags().StringVar(&email, "email", "", "new email address")

	return cmd
}

func newUsersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := client.Users().Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete user: %w", err)
			}

			fmt.Printf("Deleted user %d\n", id)

			return nil
		},
	}
}

func newUsersGroupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "groups USERNAME",
		Short: "List the groups a user belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().ByUsername(ctx, args[0])
			if err != nil {
				return err
			}

			groups, err := client.Users().Handle(*user).Groups(ctx)
			if err != nil {
				return fmt.Errorf("failed to list groups: %w", err)
			}

			return renderList(groups)
		},
	}
}
