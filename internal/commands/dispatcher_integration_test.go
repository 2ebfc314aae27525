package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// reindexCommand stands in for a catalog write that can hit a locked database.
type reindexCommand struct {
	Directory string
}

func (reindexCommand) Type() string { return "blog.test.reindex" }

func (cmd reindexCommand) Validate() error {
	if cmd.Directory == "" {
		return errors.New("directory required")
	}
	return nil
}

var errCatalogLocked = errors.New("database is locked")

func TestDispatcherRetriesLockedCatalog(t *testing.T) {
	var attempts int
	handler := NewHandler(func(ctx context.Context, cmd reindexCommand) error {
		attempts++
		if attempts == 1 {
			return errCatalogLocked
		}
		return nil
	}, WithTimeout[reindexCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), reindexCommand{Directory: "content/posts"}); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts (initial + retry), got %d", attempts)
	}
}

func TestDispatcherRetryExhaustionKeepsCause(t *testing.T) {
	var attempts int
	handler := NewHandler(func(ctx context.Context, cmd reindexCommand) error {
		attempts++
		return errCatalogLocked
	}, WithTimeout[reindexCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	err := dispatcher.Dispatch(context.Background(), reindexCommand{Directory: "content/posts"})
	if err == nil {
		t.Fatal("expected dispatcher to return error after exhausting retries")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts (initial + 2 retries), got %d", attempts)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
