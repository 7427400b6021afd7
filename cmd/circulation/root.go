package main

import (
	"context"
	"errors"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/aegislib/circulation/library/engine"
)

var output = jsoniter.ConfigCompatibleWithStandardLibrary

// action runs one engine operation; its result is printed as JSON.
type action func(ctx context.Context, e *engine.Engine, args []string) (any, error)

func newRootCommand() *cobra.Command {
	s := &settings{}

	cmd := &cobra.Command{
		Use:   "circulation",
		Short: "Library circulation and inventory engine",
		Long: `circulation issues, returns and renews book copies, manages members, requests and policy rules,
and answers inventory queries. State lives in an event store: in memory (default), Postgres or SQLite.
Results are printed as JSON, logs go to stderr.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.validate()
		},
	}

	s.bind(cmd)

	cmd.AddCommand(
		newBootstrapCmd(s),
		newIssueCmd(s),
		newReturnCmd(s),
		newRenewCmd(s),
		newStatusCmd(s),
		newRegisterCopyCmd(s),
		newCopyCmd(s),
		newSearchCmd(s),
		newBookCmd(s),
		newHistoryCmd(s),
		newMembersCmd(s),
		newRegisterCmd(s),
		newEnrollCmd(s),
		newFluxCmd(s),
		newRequestsCmd(s),
		newResolveCmd(s),
		newRulesCmd(s),
		newLedgerCmd(s),
		newOverdueCmd(s),
		newLoadCmd(s),
	)

	return cmd
}

// run opens the runtime, executes fn and prints its result.
func run(s *settings, fn action) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		rt, err := openRuntime(ctx, s, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, rt.Close())
		}()

		result, err := fn(ctx, rt.engine, args)
		if err != nil {
			return err
		}

		return printJSON(cmd, result)
	}
}

func printJSON(cmd *cobra.Command, result any) error {
	encoder := output.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	return encoder.Encode(result)
}
