package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/glageb/cur-vintage-jobs/internal/adzuna"
	"github.com/glageb/cur-vintage-jobs/internal/form"
	"github.com/glageb/cur-vintage-jobs/internal/model"
	"github.com/glageb/cur-vintage-jobs/internal/skills"
	"github.com/glageb/cur-vintage-jobs/internal/view"
)

// ── search ──────────────────────────────────────────────────────────────────

type searchFlags struct {
	region string
	where  string
	what   string
	page   int
	detect bool
	skills bool
}

func searchCmd() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search jobs and print one page of cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return runSearch(ctx, a, f, cmd.OutOrStdout())
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.region, "region", "", "Region code (default ADZUNA_COUNTRY)")
	fl.StringVar(&f.where, "where", "", "Place to search in")
	fl.StringVar(&f.what, "what", "", "Keywords")
	fl.IntVar(&f.page, "page", 1, "Result page (1-based)")
	fl.BoolVar(&f.detect, "detect", false, "Detect region and place from this machine's IP first")
	fl.BoolVar(&f.skills, "skills", false, "Ask SKILLS_ENDPOINT for skill tags")
	return cmd
}

func runSearch(ctx context.Context, a *app, f searchFlags, out io.Writer) error {
	region := f.region
	if region == "" {
		region = a.cfg.Adzuna.Country
	}
	if !adzuna.IsRegion(region) {
		return fmt.Errorf("%w: unknown region %q", errUsage, region)
	}

	opts := []view.BoardOption{view.WithLocator(a.detector()), view.WithLogger(a.log)}
	if f.skills {
		opts = append(opts, view.WithExtractor(skills.NewClient(a.cfg.Skills.Endpoint)))
	}
	board := view.NewBoard(a.searchClient(), a.posts, opts...)
	board.SetQuery(view.Query{Region: region, Where: f.where, What: f.what})

	if f.detect {
		loc, err := board.Locate(ctx)
		if err != nil {
			fmt.Fprintln(out, err)
		} else {
			if f.where != "" {
				q := board.Snapshot().Query
				q.Where = f.where
				board.SetQuery(q)
			}
			fmt.Fprintf(out, "Searching in %s (%s)\n", loc.Region, loc.Where)
		}
	}

	if _, err := board.Search(ctx, f.page); err != nil {
		return err
	}
	if f.skills {
		if err := board.EnrichSkills(ctx); err != nil {
			return err
		}
	}
	printBoard(out, board.Snapshot(), time.Now())
	return nil
}

func printBoard(out io.Writer, snap view.Snapshot, now time.Time) {
	p := snap.Page
	fmt.Fprintf(out, "%d jobs · page %d of %d\n", p.Total, p.Number, p.TotalPages)
	if snap.SkillsError != "" {
		fmt.Fprintln(out, "skills:", snap.SkillsError)
	}
	for _, c := range p.Cards {
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintf(out, "%s\n%s · %s\n", c.Title, c.Company, c.Location)
		if c.SalaryDisplay != "" {
			fmt.Fprintln(out, c.SalaryDisplay)
		}
		fmt.Fprintln(out, c.Snippet)
		if c.DescriptionExcerpt != "" {
			fmt.Fprintln(out, c.DescriptionExcerpt)
		}
		if len(c.Skills) > 0 {
			fmt.Fprintln(out, "skills:", strings.Join(c.Skills, ", "))
		}
		if c.Posted != "" {
			fmt.Fprintln(out, view.PrintedLabel(c.Posted, now))
		}
		if c.URL != "" && c.URL != "#" {
			fmt.Fprintln(out, c.URL)
		}
	}
}

// ── locate ──────────────────────────────────────────────────────────────────

func locateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Detect region and place from this machine's IP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				loc, err := a.detector().Detect(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", loc.Region, loc.Where)
				return nil
			})
		},
	}
}

// ── posts ───────────────────────────────────────────────────────────────────

func postsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage your own job posts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				list, err := a.posts.List(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, r := range list {
					fmt.Fprintf(out, "%s\t%-11s\t%s\t%s\n", r.ID, r.Status, r.UpdatedAt, r.Title)
				}
				return nil
			})
		},
	})

	var file, status string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a post from a JSON file of form values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return createPost(ctx, a, file, status, cmd.OutOrStdout())
			})
		},
	}
	create.Flags().StringVar(&file, "file", "", "JSON file with form values (- for stdin)")
	create.Flags().StringVar(&status, "status", string(model.StatusDraft), "draft or published")
	_ = create.MarkFlagRequired("file")
	cmd.AddCommand(create)

	cmd.AddCommand(
		transitionCmd("publish", model.StatusPublished),
		transitionCmd("unpublish", model.StatusUnpublished),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a post",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app) error {
					return a.posts.Delete(ctx, args[0])
				})
			},
		},
	)
	return cmd
}

func createPost(ctx context.Context, a *app, file, status string, out io.Writer) error {
	var raw []byte
	var err error
	if file == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return fmt.Errorf("read form values: %w", err)
	}
	var v form.Values
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode form values: %w", err)
	}
	st, err := model.ParseStatus(status)
	if err != nil {
		return err
	}

	s, err := form.FromValues(v, nil)
	if err != nil {
		return err
	}
	rec, err := s.Submit(ctx, a.posts, st)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, rec.ID)
	return nil
}

func transitionCmd(name string, to model.Status) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: "Mark a post " + string(to),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				rec, err := a.posts.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if !model.IsTransitionAllowed(rec.Status, to) {
					return fmt.Errorf("transition %s → %s is not allowed", rec.Status, to)
				}
				return a.posts.SetStatus(ctx, rec.ID, to)
			})
		},
	}
}
