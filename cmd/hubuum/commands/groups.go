package commands

import (
	"context"
	"fmt"

	"github.com/hubuum-io/hubuum-go/pkg/hubuum"
	"github.com/spf13/cobra"
)

// NewGroupsCommand creates the groups command group.
func NewGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group"},
		Short:   "Manage groups",
		Long:    "List, create, update and delete Hubuum groups and their members",
	}

	cmd.AddCommand(newGroupsListCommand())
	cmd.AddCommand(newGroupsGetCommand())
	cmd.AddCommand(newGroupsCreateCommand())
	cmd.AddCommand(newGroupsUpdateCommand())
	cmd.AddCommand(newGroupsDeleteCommand())
	cmd.AddCommand(newGroupsMembersCommand())
	cmd.AddCommand(newGroupsAddMemberCommand())
	cmd.AddCommand(newGroupsRemoveMemberCommand())

	return cmd
}

func newGroupsListCommand() *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			builder := client.Groups().Find()
			if err := applyFilters(builder, filters); err != nil {
				return err
			}

			groups, err := builder.Execute(ctx)
			if err != nil {
				return fmt.Errorf("failed to list groups: %w", err)
			}

			return renderList(groups)
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as field__operator=value (repeatable)")

	return cmd
}

func newGroupsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get GROUPNAME",
		Short: "Get a group by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			group, err := client.Groups().ByName(ctx, args[0])
			if err != nil {
				return err
			}

			return renderOne(group)
		},
	}
}

func newGroupsCreateCommand() *cobra.Command {
	var params hubuum.GroupPost

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			group, err := client.Groups().Create(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to create group: %w", err)
			}

			return renderOne(group)
		},
	}

	cmd.Flags().StringVar(&params.Groupname, "name", "", "group name")
	cmd.Flags().StringVar(&params.Description, "description", "", "description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGroupsUpdateCommand() *cobra.Command {
	var (
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a group",
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

			var params hubuum.GroupPatch
			if cmd.Flags().Changed("name") {
				params.Groupname = &name
			}

			if cmd.Flags().Changed("description") {
				params.Description = &description
			}

			group, err := client.Groups().Update(ctx, id, params)
			if err != nil {
				return fmt.Errorf("failed to update group: %w", err)
			}

			return renderOne(group)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new group name")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

func newGroupsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a group",
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

			if err := client.Groups().Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete group: %w", err)
			}

			fmt.Printf("Deleted group %d\n", id)

			return nil
		},
	}
}

func groupHandleByName(ctx context.Context, client *hubuum.AuthenticatedClient, groupname string) (*hubuum.GroupHandle, error) {
	group, err := client.Groups().ByName(ctx, groupname)
	if err != nil {
		return nil, err
	}

	return client.Groups().Handle(*group), nil
}

func newGroupsMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "members GROUPNAME",
		Short: "List the members of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			handle, err := groupHandleByName(ctx, client, args[0])
			if err != nil {
				return err
			}

			members, err := handle.Members(ctx)
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}

			return renderList(members)
		},
	}
}

func newGroupsAddMemberCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-member GROUPNAME USERNAME",
		Short: "Add a user to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			handle, err := groupHandleByName(ctx, client, args[0])
			if err != nil {
				return err
			}

			user, err := client.Users().ByUsername(ctx, args[1])
			if err != nil {
				return err
			}

			if err := handle.AddMember(ctx, user.ID); err != nil {
				return fmt.Errorf("failed to add member: %w", err)
			}

			fmt.Printf("Added %s to %s\n", user.Username, handle.Groupname)

			return nil
		},
	}
}

func newGroupsRemoveMemberCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-member GROUPNAME USERNAME",
		Short: "Remove a user from a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			handle, err := groupHandleByName(ctx, client, args[0])
			if err != nil {
				return err
			}

			user, err := client.Users().ByUsername(ctx, args[1])
			if err != nil {
				return err
			}

			if err := handle.RemoveMember(ctx, user.ID); err != nil {
				return fmt.Errorf("failed to remove member: %w", err)
			}

			fmt.Printf("Removed %s from %s\n", user.Username, handle.Groupname)

			return nil
		},
	}
}
