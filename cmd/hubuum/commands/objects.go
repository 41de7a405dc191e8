package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hubuum-io/hubuum-go/pkg/hubuum"
	"github.com/spf13/cobra"
)

// NewObjectsCommand creates the objects command group. Every subcommand is
// scoped to one class through the --class flag.
func NewObjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "objects",
		Aliases: []string{"object", "obj"},
		Short:   "Manage objects within a class",
		Long:    "List, create, update and delete the objects of a Hubuum class",
	}

	cmd.PersistentFlags().String("class", "", "class name the objects belong to")
	_ = cmd.MarkPersistentFlagRequired("class")

	cmd.AddCommand(newObjectsListCommand())
	cmd.AddCommand(newObjectsGetCommand())
	cmd.AddCommand(newObjectsCreateCommand())
	cmd.AddCommand(newObjectsUpdateCommand())
	cmd.AddCommand(newObjectsDeleteCommand())

	return cmd
}

// objectsClient resolves the --class flag to a scoped object collection.
func objectsClient(ctx context.Context, cmd *cobra.Command) (*hubuum.AuthenticatedClient, *hubuum.ObjectsClient, error) {
	client, err := CreateClient(ctx)
	if err != nil {
		return nil, nil, err
	}

	className, err := cmd.Flags().GetString("class")
	if err != nil {
		return nil, nil, err
	}

	class, err := client.Classes().ByName(ctx, className)
	if err != nil {
		return nil, nil, err
	}

	return client, client.Classes().Handle(*class).Objects(), nil
}

func newObjectsListCommand() *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			_, objects, err := objectsClient(ctx, cmd)
			if err != nil {
				return err
			}

			builder := objects.Find()
			if err := applyFilters(builder, filters); err != nil {
				return err
			}

			results, err := builder.Execute(ctx)
			if err != nil {
				return fmt.Errorf("failed to list objects: %w", err)
			}

			return renderList(results)
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as field__operator=value (repeatable)")

	return cmd
}

func newObjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Get an object by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			_, objects, err := objectsClient(ctx, cmd)
			if err != nil {
				return err
			}

			object, err := objects.ByName(ctx, args[0])
			if err != nil {
				return err
			}

			return renderOne(object)
		},
	}
}

func newObjectsCreateCommand() *cobra.Command {
	var (
		params        hubuum.ObjectPost
		namespaceName string
		dataJSON      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an object",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, objects, err := objectsClient(ctx, cmd)
			if err != nil {
				return err
			}

			namespace, err := client.Namespaces().ByName(ctx, namespaceName)
			if err != nil {
				return err
			}

			params.NamespaceID = namespace.ID
			params.HubuumClassID = objects.ClassID()

			if dataJSON != "" {
				if !json.Valid([]byte(dataJSON)) {
					return fmt.Errorf("invalid JSON data: %s", dataJSON)
				}

				params.Data = json.RawMessage(dataJSON)
			}

			object, err := objects.Create(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to create object: %w", err)
			}

			return renderOne(object)
		},
	}

	cmd.Flags().StringVar(&params.Name, "name", "", "object name")
	cmd.Flags().StringVar(&params.Description, "description", "", "description")
	cmd.Flags().StringVar(&namespaceName, "namespace", "", "namespace name")
	cmd.Flags().StringVar(&dataJSON, "data", "", "JSON payload for the object")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("namespace")

	return cmd
}

func newObjectsUpdateCommand() *cobra.Command {
	var (
		name        string
		description string
		dataJSON    string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			_, objects, err := objectsClient(ctx, cmd)
			if err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var params hubuum.ObjectPatch
			if cmd.Flags().Changed("name") {
				params.Name = &name
			}

			if cmd.Flags().Changed("description") {
				params.Description = &description
			}

			if cmd.Flags().Changed("data") {
				if !json.Valid([]byte(dataJSON)) {
					return fmt.Errorf("invalid JSON data: %s", dataJSON)
				}

				params.Data = json.RawMessage(dataJSON)
			}

			object, err := objects.Update(ctx, id, params)
			if err != nil {
				return fmt.Errorf("failed to update object: %w", err)
			}

			return renderOne(object)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new object name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&dataJSON, "data", "", "new JSON payload")

	return cmd
}

func newObjectsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			_, objects, err := objectsClient(ctx, cmd)
			if err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := objects.Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete object: %w", err)
			}

			fmt.Printf("Deleted object %d\n", id)

			return nil
		},
	}
}
