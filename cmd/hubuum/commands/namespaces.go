package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/hubuum-io/hubuum-go/pkg/hubuum"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewNamespacesCommand creates the namespaces command group.
func NewNamespacesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "namespaces",
		Aliases: []string{"namespace", "ns"},
		Short:   "Manage namespaces",
		Long:    "List, create, update and delete Hubuum namespaces",
	}

	cmd.AddCommand(newNamespacesListCommand())
	cmd.AddCommand(newNamespacesGetCommand())
	cmd.AddCommand(newNamespacesCreateCommand())
	cmd.AddCommand(newNamespacesUpdateCommand())
	cmd.AddCommand(newNamespacesDeleteCommand())
	cmd.AddCommand(newNamespacesPermissionsCommand())

	return cmd
}

func newNamespacesListCommand() *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List namespaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			builder := client.Namespaces().Find()
			if err := applyFilters(builder, filters); err != nil {
				return err
			}

			namespaces, err := builder.Execute(ctx)
			if err != nil {
				return fmt.Errorf("failed to list namespaces: %w", err)
			}

			return renderList(namespaces)
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as field__operator=value (repeatable)")

	return cmd
}

func newNamespacesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Get a namespace by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			namespace, err := client.Namespaces().ByName(ctx, args[0])
			if err != nil {
				return err
			}

			return renderOne(namespace)
		},
	}
}

func newNamespacesCreateCommand() *cobra.Command {
	var (
		params    hubuum.NamespacePost
		groupName string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a namespace owned by a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			group, err := client.Groups().ByName(ctx, groupName)
			if err != nil {
				return err
			}

			params.GroupID = group.ID

			namespace, err := client.Namespaces().Create(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to create namespace: %w", err)
			}

			return renderOne(namespace)
		},
	}

	cmd.Flags().StringVar(&params.Name, "name", "", "namespace name")
	cmd.Flags().StringVar(&params.Description, "description", "", "description")
	cmd.Flags().StringVar(&groupName, "group", "", "owning group name")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}

func newNamespacesUpdateCommand() *cobra.Command {
	var (
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a namespace",
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

			var params hubuum.NamespacePatch
			if cmd.Flags().Changed("name") {
				params.Name = &name
			}

			if cmd.Flags().Changed("description") {
				params.Description = &description
			}

			namespace, err := client.Namespaces().Update(ctx, id, params)
			if err != nil {
				return fmt.Errorf("failed to update namespace: %w", err)
			}

			return renderOne(namespace)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new namespace name")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

func newNamespacesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a namespace",
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

			if err := client.Namespaces().Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete namespace: %w", err)
			}

			fmt.Printf("Deleted namespace %d\n", id)

			return nil
		},
	}
}

func newNamespacesPermissionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "permissions NAME",
		Short: "List the permission grants on a namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			namespace, err := client.Namespaces().ByName(ctx, args[0])
			if err != nil {
				return err
			}

			grants, err := client.Namespaces().Handle(*namespace).Permissions(ctx)
			if err != nil {
				return fmt.Errorf("failed to list permissions: %w", err)
			}

			return outputPermissions(grants)
		},
	}
}

func outputPermissions(grants []hubuum.GroupPermission) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(grants)
	case OutputFormatYAML:
		return StandardYAMLRenderer(grants)
	default:
		return renderPermissionsTable(grants)
	}
}

func renderPermissionsTable(grants []hubuum.GroupPermission) error {
	if len(grants) == 0 {
		_, _ = os.Stdout.WriteString("No permissions found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Group", "Namespace", "Class", "Object", "Class Relation", "Object Relation")

	for _, grant := range grants {
		permission := grant.Permission

		_ = table.Append(
			grant.Group.Groupname,
			grantSummary("rudD", permission.HasReadNamespace, permission.HasUpdateNamespace, permission.HasDeleteNamespace, permission.HasDelegateNamespace),
			grantSummary("crud", permission.HasCreateClass, permission.HasReadClass, permission.HasUpdateClass, permission.HasDeleteClass),
			grantSummary("crud", permission.HasCreateObject, permission.HasReadObject, permission.HasUpdateObject, permission.HasDeleteObject),
			grantSummary("crud", permission.HasCreateClassRelation, permission.HasReadClassRelation, permission.HasUpdateClassRelation, permission.HasDeleteClassRelation),
			grantSummary("crud", permission.HasCreateObjectRelation, permission.HasReadObjectRelation, permission.HasUpdateObjectRelation, permission.HasDeleteObjectRelation),
		)
	}

	return table.Render()
}

// grantSummary compresses grant flags into a marker string, one letter per
// granted operation, a dash per denied one.
func grantSummary(labels string, flags ...bool) string {
	out := make([]byte, len(flags))

	for i, granted := range flags {
		if granted {
			out[i] = labels[i]
		} else {
			out[i] = '-'
		}
	}

	return string(out)
}
