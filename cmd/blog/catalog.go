package main

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/articles"
	articlescmd "github.com/goliatone/go-blog/internal/commands/articles"
	"github.com/goliatone/go-blog/internal/di"
)

func (app *cli) syncCommand() *cobra.Command {
	var (
		dsn    string
		driver string
		msg    articlescmd.SyncArticlesCommand
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror the markdown directory into the article catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var result *articles.SyncResult
			err := dispatch(cmd.Context(), app, &msg, func(cfg *blog.Config) {
				cfg.Storage.Provider = blog.StorageBun
				if dsn != "" {
					cfg.Storage.DSN = dsn
				}
				if driver != "" {
					cfg.Storage.Driver = driver
				}
				msg.Directory = cfg.Content.Dir
			}, di.WithSyncResultHandler(func(r *articles.SyncResult) { result = r }))
			if err != nil {
				return err
			}
			if result == nil {
				return errors.New("sync finished without a result")
			}

			prefix := ""
			if result.DryRun {
				prefix = "dry run: "
			}
			fmt.Fprintf(app.stdout, "%screated %d, updated %d, skipped %d, deleted %d\n",
				prefix, result.Created, result.Updated, result.Skipped, result.Deleted)
			for _, syncErr := range result.Errors {
				fmt.Fprintf(app.stderr, "warning: %v\n", syncErr)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dsn, "dsn", "", "catalog database DSN (overrides storage.dsn)")
	flags.StringVar(&driver, "driver", "", "catalog driver, sqlite or postgres (overrides storage.driver)")
	flags.BoolVar(&msg.DeleteOrphaned, "delete-orphaned", false, "remove catalog rows without a markdown file")
	flags.BoolVar(&msg.DryRun, "dry-run", false, "report changes without writing them")
	return cmd
}

func (app *cli) checkCommand() *cobra.Command {
	msg := articlescmd.CheckArticlesCommand{FailOnIssues: true}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the front matter of every article",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var report *articles.CheckReport
			execErr := dispatch(cmd.Context(), app, &msg, func(cfg *blog.Config) {
				msg.Directory = cfg.Content.Dir
			}, di.WithCheckResultHandler(func(r *articles.CheckReport) { report = r }))
			if report != nil {
				for _, file := range report.Files {
					for _, issue := range file.Issues {
						fmt.Fprintf(app.stdout, "%s: %s %s\n", file.Path, issue.Location, issue.Message)
					}
				}
				fmt.Fprintf(app.stdout, "checked %d file(s), %d issue(s)\n", report.Checked, report.IssueCount())
			}
			return execErr
		},
	}
	cmd.Flags().BoolVar(&msg.FailOnIssues, "fail-on-issues", true, "exit non-zero when any file has issues")
	return cmd
}

// dispatch builds a tool module whose article handlers are subscribed on the
// go-command dispatcher, then dispatches *msg once mutate has filled it in.
// Subscriptions are removed before returning.
func dispatch[T command.Message](ctx context.Context, app *cli, msg *T, mutate func(*blog.Config), opts ...di.Option) error {
	registry := &articlescmd.DispatcherRegistry{}
	defer registry.Close()

	module, err := app.toolModule(mutate, append(opts, di.WithCommandRegistry(registry))...)
	if err != nil {
		return err
	}
	defer module.Close()

	return dispatcher.Dispatch(ctx, *msg)
}
