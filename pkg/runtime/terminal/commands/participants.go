package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/ternak-atlas/pkg/models/domain"
	"github.com/de-tools/ternak-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

const commandTimeout = 60 * time.Second

func NewParticipantsCmd(backend *Backend, reporter *export.Reporter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participants",
		Short: "Inspect registered participants",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all participants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			svc, closer, err := backend.open(ctx)
			if err != nil {
				return err
			}
			defer closer()

			participants, err := svc.Participants.ListAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to list participants: %w", err)
			}
			return reporter.HandleParticipants(participants)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			svc, closer, err := backend.open(ctx)
			if err != nil {
				return err
			}
			defer closer()

			p, err := svc.Participants.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			return reporter.HandleParticipants([]domain.Participant{*p})
		},
	})

	return cmd
}
