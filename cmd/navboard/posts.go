package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"navboard/internal/config"
	"navboard/internal/content"
)

func newPostsCmd(cfg *config.Config) *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Print the blog post summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := content.Load(cfg.ContentPath)
			if err != nil {
				return err
			}
			out, err := glamour.Render(postsMarkdown(site.Posts), style)
			if err != nil {
				return fmt.Errorf("render posts: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", "auto", "glamour style (auto, dark, light, notty, ascii)")
	return cmd
}

func postsMarkdown(posts []content.Post) string {
	var b strings.Builder
	for _, p := range posts {
		fmt.Fprintf(&b, "## %s\n\n_%s_\n\n%s\n\n**%s**\n\n", p.Title, p.Date, p.Excerpt, p.ReadMore)
	}
	return b.String()
}
