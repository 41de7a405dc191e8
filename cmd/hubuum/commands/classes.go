package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hubuum-io/hubuum-go/pkg/hubuum"
	"github.com/spf13/cobra"
)

// NewClassesCommand creates the classes command group.
func NewClassesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "classes",
		Aliases: []string{"class"},
		Short:   "Manage classes",
		Long:    "List, create, update and delete Hubuum classes",
	}

	cmd.AddCommand(newClassesListCommand())
	cmd.AddCommand(newClassesGetCommand())
	cmd.AddCommand(newClassesCreateCommand())
	cmd.AddCommand(newClassesUpdateCommand())
	cmd.AddCommand(newClassesDeleteCommand())

	return cmd
}

func newClassesListCommand() *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			builder := client.Classes().Find()
			if err := applyFilters(builder, filters); err != nil {
				return err
			}

			classes, err := builder.Execute(ctx)
			if err != nil {
				return fmt.Errorf("failed to list classes: %w", err)
			}

			return renderList(classes)
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as field__operator=value (repeatable)")

	return cmd
}

func newClassesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Get a class by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			class, err := client.Classes().ByName(ctx, args[0])
			if err != nil {
				return err
			}

			return renderOne(class)
		},
	}
}

func newClassesCreateCommand() *cobra.Command {
	var (
		params         hubuum.ClassPost
		namespaceName  string
		schemaJSON     string
		validateSchema bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a class in a namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			namespace, err := client.Namespaces().ByName(ctx, namespaceName)
			if err != nil {
				return err
			}

			params.NamespaceID = namespace.ID

			if schemaJSON != "" {
				if !json.Valid([]byte(schemaJSON)) {
					return fmt.Errorf("invalid JSON schema: %s", schemaJSON)
				}

				params.JSONSchema = json.RawMessage(schemaJSON)
			}

			if cmd.Flags().Changed("validate-schema") {
				params.ValidateSchema = &validateSchema
			}

			class, err := client.Classes().Create(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to create class: %w", err)
			}

			return renderOne(class)
		},
	}

	cmd.Flags().StringVar(&params.Name, "name", "", "class name")
	cmd.Flags().StringVar(&params.Description, "description", "", "description")
	cmd.Flags().StringVar(&namespaceName, "namespace", "", "namespace name")
	cmd.Flags().StringVar(&schemaJSON, "schema", "", "JSON schema for object validation")
	cmd.Flags().BoolVar(&validateSchema, "validate-schema", false, "validate objects against the schema")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("namespace")

	return cmd
}

func newClassesUpdateCommand() *cobra.Command {
	var (
		name           string
		description    string
		schemaJSON     string
		validateSchema bool
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a class",
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

			var params hubuum.ClassPatch
			if cmd.Flags().Changed("name") {
				params.Name = &name
			}

			if cmd.Flags().Changed("description") {
				params.Description = &description
			}

			if cmd.Flags().Changed("schema") {
				if !json.Valid([]byte(schemaJSON)) {
					return fmt.Errorf("invalid JSON schema: %s", schemaJSON)
				}

				params.JSONSchema = json.RawMessage(schemaJSON)
			}

			if cmd.Flags().Changed("validate-schema") {
				params.ValidateSchema = &validateSchema
			}

			class, err := client.Classes().Update(ctx, id, params)
			if err != nil {
				return fmt.Errorf("failed to update class: %w", err)
			}

			return renderOne(class)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new class name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&schemaJSON, "schema", "", "new JSON schema")
	cmd.Flags().BoolVar(&validateSchema, "validate-schema", false, "validate objects against the schema")

	return cmd
}

func newClassesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a class",
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

			if err := client.Classes().Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete class: %w", err)
			}

			fmt.Printf("Deleted class %d\n", id)

			return nil
		},
	}
}
