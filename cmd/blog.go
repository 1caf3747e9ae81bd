package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Generate and inspect blog posts",
}

var blogGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and save one blog post",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("blog"); err != nil {
			return err
		}
		ctx := cmd.Context()

		st := initStore(ctx, cfg.Store)
		defer st.Close() //nolint:errcheck

		gen, err := initBlogGenerator(ctx, cfg, st)
		if err != nil {
			return err
		}
		post, err := gen.Generate(ctx)
		if err != nil {
			return err
		}
		zap.L().Info("blog post generated", zap.String("slug", post.Slug))
		return writeJSONOut(cmd.OutOrStdout(), map[string]string{
			"title":       post.Title,
			"slug":        post.Slug,
			"url":         post.URL,
			"publishDate": post.PublishDate,
		})
	},
}

var blogListLimit int

var blogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored blog posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st := initStore(ctx, cfg.Store)
		defer st.Close() //nolint:errcheck

		posts, err := st.ListPosts(ctx, blogListLimit)
		if err != nil {
			return err
		}
		type row struct {
			Slug        string `json:"slug"`
			Title       string `json:"title"`
			PublishDate string `json:"publishDate"`
		}
		rows := make([]row, 0, len(posts))
		for _, p := range posts {
			rows = append(rows, row{Slug: p.Slug, Title: p.Title, PublishDate: p.PublishDate})
		}
		return writeJSONOut(cmd.OutOrStdout(), rows)
	},
}

var blogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show blog store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st := initStore(ctx, cfg.Store)
		defer st.Close() //nolint:errcheck

		stats, err := st.Stats(ctx)
		if err != nil {
			return err
		}
		return writeJSONOut(cmd.OutOrStdout(), stats)
	},
}

func init() {
	blogListCmd.Flags().IntVar(&blogListLimit, "limit", 10, "maximum posts to list")
	blogCmd.AddCommand(blogGenerateCmd, blogListCmd, blogStatsCmd)
	rootCmd.AddCommand(blogCmd)
}
