package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/engine"
)

func newBootstrapCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Load the seed data into the event store and report what was appended",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			skip := s.skipBootstrap
			s.skipBootstrap = true
			defer func() { s.skipBootstrap = skip }()

			rt, err := openRuntime(cmd.Context(), s, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, rt.Close())
			}()

			result, err := rt.engine.Bootstrap(cmd.Context(), rt.data)
			if err != nil {
				return err
			}

			return printJSON(cmd, result)
		},
	}
}

func newIssueCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "issue COPY_ID USER_ID",
		Short: "Issue an available copy to a member",
		Args:  cobra.ExactArgs(2),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			return e.Issue(ctx, args[0], args[1])
		}),
	}
}

func newReturnCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "return COPY_ID",
		Short: "Return an issued copy",
		Args:  cobra.ExactArgs(1),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			return e.Return(ctx, args[0])
		}),
	}
}

func newRenewCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "renew COPY_ID",
		Short: "Extend the due date of an issued copy",
		Args:  cobra.ExactArgs(1),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			return e.Renew(ctx, args[0])
		}),
	}
}

func newStatusCmd(s *settings) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "status COPY_ID STATUS",
		Short: "Move a copy to available, reserved, damaged, missing or archived",
		Args:  cobra.ExactArgs(2),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			if err := e.ChangeCopyStatus(ctx, args[0], core.CopyStatus(args[1]), reason); err != nil {
				return nil, err
			}

			return e.Copy(ctx, args[0])
		}),
	}
	cmd.Flags().StringVar(&reason, "reason", "", "Why the status changes")

	return cmd
}

func newRegisterCopyCmd(s *settings) *cobra.Command {
	var (
		condition string
		shelf     string
	)

	cmd := &cobra.Command{
		Use:   "add-copy COPY_ID BOOK_ID",
		Short: "Register a new physical copy of a catalog book",
		Args:  cobra.ExactArgs(2),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			return e.RegisterCopy(ctx, core.BookCopy{
				ID:            args[0],
				BookID:        args[1],
				Status:        core.CopyAvailable,
				Condition:     core.CopyCondition(condition),
				ShelfLocation: shelf,
			})
		}),
	}
	cmd.Flags().StringVar(&condition, "condition", string(core.ConditionNew), "Physical condition of the copy")
	cmd.Flags().StringVar(&shelf, "shelf", "", "Shelf location")

	return cmd
}

func newCopyCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "copy COPY_ID",
		Short: "Show the current state of a copy",
		Args:  cobra.ExactArgs(1),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			return e.Copy(ctx, args[0])
		}),
	}
}

func newSearchCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "search [TEXT]",
		Short: "Find copies by copy id or book title; without text, browse",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			return e.FindCopiesByQuery(ctx, optionalArg(args))
		}),
	}
}

func newBookCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "book BOOK_ID",
		Short: "Show a catalog book and the availability of its copies",
		Args:  cobra.ExactArgs(1),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			return e.BookAvailability(ctx, args[0])
		}),
	}
}

func newHistoryCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "history COPY_ID",
		Short: "List the ledger entries of a copy",
		Args:  cobra.ExactArgs(1),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			return e.HistoryForCopy(ctx, args[0])
		}),
	}
}

func newMembersCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "members [TEXT]",
		Short: "Find members by name, username or library id",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			return e.FindMemberByQuery(ctx, optionalArg(args))
		}),
	}
}

func newRegisterCmd(s *settings) *cobra.Command {
	var department string

	cmd := &cobra.Command{
		Use:   "register NAME",
		Short: "Register a student with a generated library id and username",
		Args:  cobra.ExactArgs(1),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			return e.Register(ctx, args[0], department)
		}),
	}
	cmd.Flags().StringVar(&department, "department", "", "Department of the student")

	return cmd
}

func newEnrollCmd(s *settings) *cobra.Command {
	var department string

	cmd := &cobra.Command{
		Use:   "enroll NAME LIBRARY_ID",
		Short: "Register a student under a given library id",
		Args:  cobra.ExactArgs(2),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			return e.Enroll(ctx, args[0], args[1], department)
		}),
	}
	cmd.Flags().StringVar(&department, "department", "", "Department of the student")

	return cmd
}

func newFluxCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "flux MEMBER_ID",
		Short: "List the ledger entries of a member, by library id or username",
		Args:  cobra.ExactArgs(1),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			return e.FluxForMember(ctx, args[0])
		}),
	}
}

func newRequestsCmd(s *settings) *cobra.Command {
	var requestType string

	cmd := &cobra.Command{
		Use:   "requests [REQUEST_ID]",
		Short: "List pending requests of a type, or show one request",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			if len(args) == 1 {
				return e.Request(ctx, args[0])
			}

			return e.PendingRequestsByType(ctx, core.RequestType(requestType))
		}),
	}
	cmd.Flags().StringVar(&requestType, "type", string(core.RequestBookAcquisition), "book_acquisition or user_enrollment")

	return cmd
}

func newResolveCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve REQUEST_ID approved|rejected",
		Short: "Approve or reject a pending request",
		Args:  cobra.ExactArgs(2),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			return e.ResolveRequest(ctx, args[0], core.RequestStatus(args[1]))
		}),
	}
}

func newRulesCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the active policy rules",
		Args:  cobra.NoArgs,
		RunE: run(s, func(ctx context.Context, e *engine.Engine, _ []string) (any, error) {
			return e.PolicyRules(ctx)
		}),
	}

	cmd.AddCommand(newAddRuleCmd(s), newRemoveRuleCmd(s))

	return cmd
}

func newAddRuleCmd(s *settings) *cobra.Command {
	var ruleID string

	cmd := &cobra.Command{
		Use:   "add CONDITION ACTION",
		Short: "Add an active policy rule",
		Args:  cobra.ExactArgs(2),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			if ruleID != "" {
				return e.AddRuleWithID(ctx, ruleID, args[0], args[1])
			}

			return e.AddRule(ctx, args[0], args[1])
		}),
	}
	cmd.Flags().StringVar(&ruleID, "id", "", "Rule id; generated when empty")

	return cmd
}

func newRemoveRuleCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "remove RULE_ID",
		Short: "Remove a policy rule",
		Args:  cobra.ExactArgs(1),
		RunE: run(s, func(ctx context.Context, e *engine.Engine, args []string) (any, error) {
			if err := e.RemoveRule(ctx, args[0]); err != nil {
				return nil, err
			}

			return e.PolicyRules(ctx)
		}),
	}
}

func newLedgerCmd(s *settings) *cobra.Command {
	var newestFirst bool

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "List all ledger entries",
		Args:  cobra.NoArgs,
		RunE: run(s, func(ctx context.Context, e *engine.Engine, _ []string) (any, error) {
			ledger, err := e.Ledger(ctx)
			if err != nil || !newestFirst {
				return ledger, err
			}

			return ledger.NewestFirst(), nil
		}),
	}
	cmd.Flags().BoolVar(&newestFirst, "newest-first", false, "Print the most recent entry first")

	return cmd
}

func newOverdueCmd(s *settings) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "List issued copies past their due date",
		Args:  cobra.NoArgs,
		RunE: run(s, func(ctx context.Context, e *engine.Engine, _ []string) (any, error) {
			now := time.Now()
			if at != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return nil, fmt.Errorf("%w: --at must be RFC 3339: %w", core.ErrValidation, err)
				}
				now = parsed
			}

			return e.OverdueLoans(ctx, now)
		}),
	}
	cmd.Flags().StringVar(&at, "at", "", "Reference time in RFC 3339; defaults to now")

	return cmd
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}
