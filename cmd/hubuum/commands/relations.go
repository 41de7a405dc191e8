package commands

import (
	"context"
	"fmt"

	"github.com/hubuum-io/hubuum-go/pkg/hubuum"
	"github.com/spf13/cobra"
)

// NewClassRelationsCommand creates the class-relations command group.
func NewClassRelationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "class-relations",
		Aliases: []string{"class-relation"},
		Short:   "Manage relations between classes",
	}

	cmd.AddCommand(newClassRelationsListCommand())
	cmd.AddCommand(newClassRelationsCreateCommand())
	cmd.AddCommand(newClassRelationsDeleteCommand())

	return cmd
}

func newClassRelationsListCommand() *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List class relations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			builder := client.ClassRelations().Find()
			if err := applyFilters(builder, filters); err != nil {
				return err
			}

			relations, err := builder.Execute(ctx)
			if err != nil {
				return fmt.Errorf("failed to list class relations: %w", err)
			}

			return renderList(relations)
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as field__operator=value (repeatable)")

	return cmd
}

func newClassRelationsCreateCommand() *cobra.Command {
	var fromName, toName string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Link two classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			from, err := client.Classes().ByName(ctx, fromName)
			if err != nil {
				return err
			}

			target, err := client.Classes().ByName(ctx, toName)
			if err != nil {
				return err
			}

			relation, err := client.ClassRelations().Create(ctx, hubuum.ClassRelationPost{
				FromHubuumClassID: from.ID,
				ToHubuumClassID:   target.ID,
			})
			if err != nil {
				return fmt.Errorf("failed to create class relation: %w", err)
			}

			return renderOne(relation)
		},
	}

	cmd.Flags().StringVar(&fromName, "from", "", "source class name")
	cmd.Flags().StringVar(&toName, "to", "", "target class name")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newClassRelationsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a class relation",
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

			if err := client.ClassRelations().Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete class relation: %w", err)
			}

			fmt.Printf("Deleted class relation %d\n", id)

			return nil
		},
	}
}

// NewObjectRelationsCommand creates the object-relations command group.
func NewObjectRelationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "object-relations",
		Aliases: []string{"object-relation"},
		Short:   "Manage relations between objects",
	}

	cmd.AddCommand(newObjectRelationsListCommand())
	cmd.AddCommand(newObjectRelationsCreateCommand())
	cmd.AddCommand(newObjectRelationsDeleteCommand())

	return cmd
}

func newObjectRelationsListCommand() *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List object relations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			builder := client.ObjectRelations().Find()
			if err := applyFilters(builder, filters); err != nil {
				return err
			}

			relations, err := builder.Execute(ctx)
			if err != nil {
				return fmt.Errorf("failed to list object relations: %w", err)
			}

			return renderList(relations)
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as field__operator=value (repeatable)")

	return cmd
}

func newObjectRelationsCreateCommand() *cobra.Command {
	var fromID, toID, classRelationID int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Link two objects under a class relation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			relation, err := client.ObjectRelations().Create(ctx, hubuum.ObjectRelationPost{
				FromHubuumObjectID: fromID,
				ToHubuumObjectID:   toID,
				ClassRelationID:    classRelationID,
			})
			if err != nil {
				return fmt.Errorf("failed to create object relation: %w", err)
			}

			return renderOne(relation)
		},
	}

	cmd.Flags().IntVar(&fromID, "from", 0, "source object id")
	cmd.Flags().IntVar(&toID, "to", 0, "target object id")
	cmd.Flags().IntVar(&classRelationID, "class-relation", 0, "class relation id")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("class-relation")

	return cmd
}

func newObjectRelationsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an object relation",
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

			if err := client.ObjectRelations().Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete object relation: %w", err)
			}

			fmt.Printf("Deleted object relation %d\n", id)

			return nil
		},
	}
}
