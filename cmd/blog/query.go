package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blog/articles"
	internalarticles "github.com/goliatone/go-blog/internal/articles"
)

func (app *cli) searchCommand() *cobra.Command {
	var (
		opts   articles.SearchOptions
		sortBy string
		order  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search articles by substring",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := app.toolModule(nil)
			if err != nil {
				return err
			}
			defer module.Close()

			opts.Query = strings.Join(args, " ")
			opts.SortBy = articles.ParseSortKey(sortBy)
			opts.SortOrder = articles.ParseSortOrder(order)

			results, err := module.Query(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(app.stdout, map[string]any{"results": results, "total": len(results)})
			}
			return writeResults(app.stdout, results)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Category, "category", "", "only articles in this category")
	flags.StringVar(&opts.Author, "author", "", "only articles by this author")
	flags.StringVar(&sortBy, "sort-by", string(articles.SortByRelevance), "relevance, date, title or readTime")
	flags.StringVar(&order, "sort-order", string(articles.SortDesc), "asc or desc")
	flags.BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func (app *cli) showCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Print a single article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := app.toolModule(nil)
			if err != nil {
				return err
			}
			defer module.Close()

			article, err := module.Articles().Get(cmd.Context(), args[0])
			if err != nil {
				if internalarticles.IsNotFound(err) {
					return fmt.Errorf("article %q not found", args[0])
				}
				return err
			}
			if asJSON {
				return writeJSON(app.stdout, article)
			}
			fmt.Fprintf(app.stdout, "%s\n%s | %s | %s | %d min read\n\n", article.Title, article.Date, article.Author, article.Category, article.ReadTime)
			if article.Excerpt != "" {
				fmt.Fprintf(app.stdout, "%s\n\n", article.Excerpt)
			}
			fmt.Fprintln(app.stdout, article.Content)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the article as JSON")
	return cmd
}

func (app *cli) categoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the distinct article categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := app.toolModule(nil)
			if err != nil {
				return err
			}
			defer module.Close()

			values, err := module.Articles().Categories(cmd.Context())
			if err != nil {
				return err
			}
			return writeLines(app.stdout, values)
		},
	}
}

func (app *cli) authorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "authors",
		Short: "List the distinct article authors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := app.toolModule(nil)
			if err != nil {
				return err
			}
			defer module.Close()

			values, err := module.Articles().Authors(cmd.Context())
			if err != nil {
				return err
			}
			return writeLines(app.stdout, values)
		},
	}
}

func writeResults(w io.Writer, results []articles.SearchResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "no articles found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tTITLE\tDATE\tSCORE\tMATCHED")
	for _, result := range results {
		fields := make([]string, len(result.MatchedFields))
		for i, field := range result.MatchedFields {
			fields[i] = string(field)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", result.Slug, result.Title, result.Date, result.Score, strings.Join(fields, ","))
	}
	return tw.Flush()
}

func writeLines(w io.Writer, values []string) error {
	for _, value := range values {
		if _, err := fmt.Fprintln(w, value); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
