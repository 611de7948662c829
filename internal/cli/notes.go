package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/views"
	"github.com/spf13/cobra"
)

type noteFlags struct {
	title    string
	content  string
	category string
	priority string
	tags     []string
	pinned   bool
	color    string
}

func (r *runner) notesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "notes", Short: "Manage notes"}

	var add noteFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.addNote(cmd, add)
		},
	}
	addCmd.Flags().StringVarP(&add.title, "title", "t", "", "note title")
	addCmd.Flags().StringVar(&add.content, "content", "", "note body")
	addCmd.Flags().StringVar(&add.category, "category", "", "personal|work|ideas|todo|journal|study|other")
	addCmd.Flags().StringVarP(&add.priority, "priority", "p", "", "low|medium|high|urgent")
	addCmd.Flags().StringSliceVar(&add.tags, "tag", nil, "tag (repeatable)")
	addCmd.Flags().BoolVar(&add.pinned, "pin", false, "pin the note")
	addCmd.Flags().StringVar(&add.color, "color", "", "display colour")

	var edit noteFlags
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change note fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.editNote(cmd, args[0], edit)
		},
	}
	editCmd.Flags().StringVarP(&edit.title, "title", "t", "", "note title")
	editCmd.Flags().StringVar(&edit.content, "content", "", "note body")
	editCmd.Flags().StringVar(&edit.category, "category", "", "category")
	editCmd.Flags().StringVarP(&edit.priority, "priority", "p", "", "priority")
	editCmd.Flags().StringVar(&edit.color, "color", "", "display colour")

	var f views.NoteFilter
	var category, priority, sortBy, order string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, pinned first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.Category = models.NoteCategory(category)
			f.Priority = models.NotePriority(priority)
			f.SortBy = views.NoteSortField(sortBy)
			f.SortOrder = views.SortOrder(order)
			return r.listNotes(cmd, f)
		},
	}
	lf := listCmd.Flags()
	lf.StringVar(&category, "category", "", "only this category")
	lf.StringVarP(&priority, "priority", "p", "", "only this priority")
	lf.StringSliceVar(&f.Tags, "tag", nil, "notes having any of these tags")
	lf.StringVarP(&f.SearchQuery, "search", "s", "", "search title, content and tags")
	lf.BoolVar(&f.ShowArchived, "archived", false, "include archived notes")
	lf.StringVar(&sortBy, "sort", "", "createdAt|updatedAt|title|priority")
	lf.StringVar(&order, "order", string(views.SortDesc), "asc|desc")

	tagCmd := &cobra.Command{Use: "tag", Short: "Add or remove note tags"}
	tagCmd.AddCommand(
		&cobra.Command{Use: "add <id> <tag>", Short: "Add a tag", Args: cobra.ExactArgs(2), RunE: r.addNoteTag},
		&cobra.Command{Use: "rm <id> <tag>", Short: "Remove a tag", Args: cobra.ExactArgs(2), RunE: r.removeNoteTag},
	)

	cmd.AddCommand(addCmd, editCmd, listCmd, tagCmd)
	cmd.AddCommand(&cobra.Command{Use: "show <id>", Short: "Show a note", Args: cobra.ExactArgs(1), RunE: r.showNote})
	cmd.AddCommand(&cobra.Command{Use: "pin <id>", Short: "Toggle pinned", Args: cobra.ExactArgs(1), RunE: r.pinNote})
	cmd.AddCommand(&cobra.Command{Use: "archive <id>", Short: "Toggle archived", Args: cobra.ExactArgs(1), RunE: r.archiveNote})
	cmd.AddCommand(&cobra.Command{Use: "delete <id>", Short: "Delete a note", Args: cobra.ExactArgs(1), RunE: r.deleteNote})
	cmd.AddCommand(&cobra.Command{Use: "tags", Short: "List every tag in use", Args: cobra.NoArgs, RunE: r.noteTags})
	cmd.AddCommand(&cobra.Command{Use: "stats", Short: "Note counts", Args: cobra.NoArgs, RunE: r.noteStats})
	return cmd
}

func (r *runner) addNote(cmd *cobra.Command, nf noteFlags) error {
	n, err := r.app.Notes.Create(cmd.Context(), models.Note{
		Title:    nf.title,
		Content:  nf.content,
		Category: models.NoteCategory(nf.category),
		Priority: models.NotePriority(nf.priority),
		Tags:     nf.tags,
		IsPinned: nf.pinned,
		Color:    nf.color,
	})
	if err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), n.ID)
	return nil
}

func (r *runner) editNote(cmd *cobra.Command, id string, nf noteFlags) error {
	fs := cmd.Flags()
	if c := models.NoteCategory(nf.category); fs.Changed("category") && !c.Valid() {
		return r.report(cmd, fmt.Errorf("unknown category %q", nf.category))
	}
	if p := models.NotePriority(nf.priority); fs.Changed("priority") && !p.Valid() {
		return r.report(cmd, fmt.Errorf("unknown priority %q", nf.priority))
	}

	n, err := r.app.Notes.Update(cmd.Context(), id, func(n *models.Note) {
		if fs.Changed("title") {
			n.Title = strings.TrimSpace(nf.title)
		}
		if fs.Changed("content") {
			n.Content = nf.content
		}
		if fs.Changed("category") {
			n.Category = models.NoteCategory(nf.category)
		}
		if fs.Changed("priority") {
			n.Priority = models.NotePriority(nf.priority)
		}
		if fs.Changed("color") {
			n.Color = nf.color
		}
	})
	if err != nil {
		return r.report(cmd, err)
	}
	printNote(cmd.OutOrStdout(), n)
	return nil
}

func (r *runner) listNotes(cmd *cobra.Command, f views.NoteFilter) error {
	notes, err := r.app.Notes.List(cmd.Context(), f)
	if err != nil {
		return r.report(cmd, err)
	}
	w := cmd.OutOrStdout()
	if len(notes) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no notes"))
		return nil
	}
	for _, n := range notes {
		fmt.Fprintln(w, noteLine(n))
	}
	return nil
}

func noteLine(n models.Note) string {
	marker := " "
	if n.IsPinned {
		marker = "*"
	}
	title := n.Title
	if title == "" {
		title = dimStyle.Render("(untitled)")
	}
	line := fmt.Sprintf("%s %s  %s  %s [%s]", marker, dimStyle.Render(n.ID), titleStyle.Render(title), n.Category, n.Priority)
	if len(n.Tags) > 0 {
		line += " " + accentStyle.Render("#"+strings.Join(n.Tags, " #"))
	}
	if n.IsArchived {
		line += " " + warningStyle.Render("archived")
	}
	return line
}

func printNote(w io.Writer, n models.Note) {
	fmt.Fprintln(w, noteLine(n))
	if n.Content != "" {
		fmt.Fprintln(w, n.Content)
	}
}

func (r *runner) showNote(cmd *cobra.Command, args []string) error {
	n, err := r.app.Notes.Get(cmd.Context(), args[0])
	if err != nil {
		return r.report(cmd, err)
	}
	printNote(cmd.OutOrStdout(), n)
	return nil
}

func (r *runner) pinNote(cmd *cobra.Command, args []string) error {
	n, err := r.app.Notes.TogglePin(cmd.Context(), args[0])
	if err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), noteLine(n))
	return nil
}

func (r *runner) archiveNote(cmd *cobra.Command, args []string) error {
	n, err := r.app.Notes.ToggleArchive(cmd.Context(), args[0])
	if err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), noteLine(n))
	return nil
}

func (r *runner) deleteNote(cmd *cobra.Command, args []string) error {
	if err := r.app.Notes.Delete(cmd.Context(), args[0]); err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
	return nil
}

func (r *runner) addNoteTag(cmd *cobra.Command, args []string) error {
	n, err := r.app.Notes.AddTag(cmd.Context(), args[0], args[1])
	if err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), noteLine(n))
	return nil
}

func (r *runner) removeNoteTag(cmd *cobra.Command, args []string) error {
	n, err := r.app.Notes.RemoveTag(cmd.Context(), args[0], args[1])
	if err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), noteLine(n))
	return nil
}

func (r *runner) noteTags(cmd *cobra.Command, args []string) error {
	tags, err := r.app.Notes.Tags(cmd.Context())
	if err != nil {
		return r.report(cmd, err)
	}
	for _, t := range tags {
		fmt.Fprintln(cmd.OutOrStdout(), t)
	}
	return nil
}

func (r *runner) noteStats(cmd *cobra.Command, args []string) error {
	st, err := r.app.Notes.Stats(cmd.Context())
	if err != nil {
		return r.report(cmd, err)
	}
	w := cmd.OutOrStdout()
	printTitle(w, "Notes")
	fmt.Fprintf(w, "total %d  pinned %d  archived %d\n", st.Total, st.Pinned, st.Archived)
	for _, c := range models.NoteCategories {
		fmt.Fprintf(w, "  %-10s %d\n", c, st.ByCategory[c])
	}
	for _, p := range models.NotePriorities {
		fmt.Fprintf(w, "  %-10s %d\n", p, st.ByPriority[p])
	}
	return nil
}
