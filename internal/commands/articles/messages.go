package articlescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	syncArticlesMessageType    = "blog.articles.sync"
	checkArticlesMessageType   = "blog.articles.check"
	invalidateCacheMessageType = "blog.articles.invalidate_cache"
)

// Cache scopes accepted by InvalidateCacheCommand.
const (
	ScopeAll     = "all"
	ScopeSource  = "source"
	ScopeCatalog = "catalog"
)

// SyncArticlesCommand mirrors the markdown files in Directory into the
// article catalog.
type SyncArticlesCommand struct {
	// Directory selects the content directory to read.
	Directory string `json:"directory"`
	// DeleteOrphaned removes catalog rows without a matching markdown file.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
	// DryRun counts the changes without writing them.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (SyncArticlesCommand) Type() string { return syncArticlesMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncArticlesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(notBlank("blog.articles.sync.directory_required"))),
	)
}

// CheckArticlesCommand validates the front matter of every file in Directory.
type CheckArticlesCommand struct {
	Directory string `json:"directory"`
	// FailOnIssues turns a report with issues into a command failure.
	FailOnIssues bool `json:"fail_on_issues,omitempty"`
}

// Type implements command.Message.
func (CheckArticlesCommand) Type() string { return checkArticlesMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd CheckArticlesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(notBlank("blog.articles.check.directory_required"))),
	)
}

// InvalidateCacheCommand drops cached article snapshots.
type InvalidateCacheCommand struct {
	// Scope is one of all, source or catalog. Empty means all.
	Scope  string `json:"scope,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Type implements command.Message.
func (InvalidateCacheCommand) Type() string { return invalidateCacheMessageType }

// Validate restricts the scope to the known cache layers.
func (cmd InvalidateCacheCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Scope, validation.In(ScopeAll, ScopeSource, ScopeCatalog)),
		validation.Field(&cmd.Reason, validation.Length(0, 256)),
	)
}

func (cmd InvalidateCacheCommand) scope() string {
	if strings.TrimSpace(cmd.Scope) == "" {
		return ScopeAll
	}
	return cmd.Scope
}

func notBlank(code string) validation.RuleFunc {
	return func(value any) error {
		if text, _ := value.(string); strings.TrimSpace(text) == "" {
			return validation.NewError(code, "directory is required")
		}
		return nil
	}
}
