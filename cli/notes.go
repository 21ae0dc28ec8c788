package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"moxie/models"

	"github.com/spf13/cobra"
)

func newFindAllCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "find-all",
		Short: "Print all notes as a JSON array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			provider, err := o.openProvider(ctx, false)
			if err != nil {
				return err
			}
			defer provider.Close()

			notes, err := provider.Notes().FindAll(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), notes)
		},
	}
}

func newFindByIDCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "find-by-id [id]",
		Short: "Print a note as JSON",
		Long:  `Finds a note by its ID. Exits with status 1 and prints nothing when there is no such note.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: must be an integer", args[0])
			}

			ctx := cmd.Context()
			provider, err := o.openProvider(ctx, false)
			if err != nil {
				return err
			}
			defer provider.Close()

			note, err := provider.Notes().FindByID(ctx, id)
			if err != nil {
				return err
			}
			if note == nil {
				return errNotFound
			}
			return writeJSON(cmd.OutOrStdout(), note)
		},
	}
}

func newCreateCmd(o *options) *cobra.Command {
	var jsonContent string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note from JSON",
		Long: `Creates a note from a JSON object with "title" and "content".
The JSON is read from stdin when --json-content is not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := []byte(jsonContent)
			if !cmd.Flags().Changed("json-content") {
				var err error
				if raw, err = io.ReadAll(cmd.InOrStdin()); err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			input, err := models.DecodeNewNote(raw)
			if err != nil {
				return fmt.Errorf("invalid note JSON: %w", err)
			}

			ctx := cmd.Context()
			provider, err := o.openProvider(ctx, false)
			if err != nil {
				return err
			}
			defer provider.Close()

			note, err := provider.Notes().Create(ctx, input)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), note)
		},
	}

	cmd.Flags().StringVar(&jsonContent, "json-content", "", "JSON content of the note to persist")
	return cmd
}

// writeJSON prints v on a single line.
func writeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
