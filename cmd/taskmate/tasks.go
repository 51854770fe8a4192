package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezkam/taskmate/internal/board"
	"github.com/rezkam/taskmate/internal/domain"
	"github.com/rezkam/taskmate/internal/ptr"
)

// errAborted is returned when a confirmation prompt is declined.
var errAborted = errors.New("aborted")

// resolveID maps a full id or a unique id prefix to a loaded task id.
func (a *app) resolveID(arg string) (string, error) {
	if _, ok := a.board.Task(arg); ok {
		return arg, nil
	}
	var matches []string
	for _, t := range a.board.Tasks() {
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", domain.ErrTaskNotFound, arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous task id %q matches %d tasks", arg, len(matches))
	}
}

// confirm asks a yes/no question on in; anything but y or yes declines.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func listCmd(a *app) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks grouped by category",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a.board.Refresh(ctx)

			f, err := ff.apply(cmd, a.loadFilters(ctx), a.board.Categories())
			if err != nil {
				return err
			}
			a.board.SetFilters(f)

			p := a.paint
			fmt.Fprintln(a.out, p.text("TaskMate - Daftar Tugas"))
			renderFilters(a.out, p, f)
			renderSummary(a.out, p, a.board.Summary())
			renderSections(a.out, p, a.board.Sections(), a.board.Categories(), a.board.Today())
			return nil
		},
	}
	ff.register(cmd)
	return cmd
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.board.Refresh(cmd.Context())
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			task, _ := a.board.Task(id)
			renderTaskDetail(a.out, a.paint, task, a.board.Today())
			return nil
		},
	}
}

func addCmd(a *app) *cobra.Command {
	var (
		d        board.Draft
		priority string
	)
	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if priority != "" {
				p, err := domain.NewPriority(priority)
				if err != nil {
					return err
				}
				d.Priority = p
			}
			if _, err := domain.NewProgress(d.Progress); err != nil {
				return err
			}
			if _, err := domain.NewDeadline(d.Deadline); err != nil {
				return err
			}
			d.Title = strings.Join(args, " ")

			id, err := a.board.AddTask(ctx, d)
			if err != nil {
				return fmt.Errorf("failed to add task: %w", err)
			}
			fmt.Fprintf(a.out, "Tugas ditambahkan: %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&d.Description, "desc", "d", "", "description")
	cmd.Flags().StringVar(&d.Deadline, "deadline", "", "deadline as YYYY-MM-DD")
	cmd.Flags().StringVarP(&d.Category, "category", "c", "", "category key (default Umum)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "High, Medium or Low (default Low)")
	cmd.Flags().IntVar(&d.Progress, "progress", 0, "progress percentage, 0 to 100")
	return cmd
}

func editCmd(a *app) *cobra.Command {
	var (
		title, desc, deadline, category, priority, status string
		progress                                          int
		clearDesc, clearDeadline                          bool
	)
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a.board.Refresh(ctx)
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}

			params := domain.UpdateTaskParams{TaskID: id}
			// set adds field to the mask when its flag was given.
			set := func(flag, field string) bool {
				if !cmd.Flags().Changed(flag) {
					return false
				}
				params.UpdateMask = append(params.UpdateMask, field)
				return true
			}

			if set(domain.FieldTitle, domain.FieldTitle) {
				params.Title = ptr.To(title)
			}
			if clearDesc {
				params.UpdateMask = append(params.UpdateMask, domain.FieldDescription)
			} else if set("desc", domain.FieldDescription) {
				params.Description = ptr.To(desc)
			}
			if clearDeadline {
				params.UpdateMask = append(params.UpdateMask, domain.FieldDeadline)
			} else if set(domain.FieldDeadline, domain.FieldDeadline) {
				if params.Deadline, err = domain.NewDeadline(deadline); err != nil {
					return err
				}
			}
			if set(domain.FieldCategory, domain.FieldCategory) {
				params.Category = ptr.To(category)
			}
			if set(domain.FieldPriority, domain.FieldPriority) {
				p, err := domain.NewPriority(priority)
				if err != nil {
					return err
				}
				params.Priority = &p
			}
			if set(domain.FieldStatus, domain.FieldStatus) {
				s, err := domain.NewStatus(status)
				if err != nil {
					return err
				}
				params.Status = &s
			}
			if set(domain.FieldProgress, domain.FieldProgress) {
				if _, err := domain.NewProgress(progress); err != nil {
					return err
				}
				params.Progress = ptr.To(progress)
			}

			if err := a.board.EditTask(ctx, params); err != nil {
				return fmt.Errorf("failed to edit task: %w", err)
			}
			fmt.Fprintf(a.out, "Tugas diperbarui: %s\n", shortID(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, domain.FieldTitle, "", "new title")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "new description")
	cmd.Flags().StringVar(&deadline, domain.FieldDeadline, "", "new deadline as YYYY-MM-DD, empty clears")
	cmd.Flags().StringVarP(&category, domain.FieldCategory, "c", "", "new category")
	cmd.Flags().StringVarP(&priority, domain.FieldPriority, "p", "", "High, Medium or Low")
	cmd.Flags().StringVar(&status, domain.FieldStatus, "", "pending or done")
	cmd.Flags().IntVar(&progress, domain.FieldProgress, 0, "progress percentage, 0 to 100")
	cmd.Flags().BoolVar(&clearDesc, "clear-desc", false, "remove the description")
	cmd.Flags().BoolVar(&clearDeadline, "clear-deadline", false, "remove the deadline")
	cmd.MarkFlagsMutuallyExclusive("desc", "clear-desc")
	cmd.MarkFlagsMutuallyExclusive(domain.FieldDeadline, "clear-deadline")
	return cmd
}

func toggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID...",
		Short: "Flip tasks between pending and done",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a.board.Refresh(ctx)
			for _, arg := range args {
				id, err := a.resolveID(arg)
				if err != nil {
					return err
				}
				if err := a.board.Toggle(ctx, id); err != nil {
					return fmt.Errorf("gagal memperbarui status di server: %w", err)
				}
				task, _ := a.board.Task(id)
				fmt.Fprintf(a.out, "%s %s: %s\n", shortID(id), task.Title, task.Status)
			}
			return nil
		},
	}
}

func rmCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a.board.Refresh(ctx)
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd.InOrStdin(), a.out, "Apakah kamu yakin ingin menghapus tugas ini?") {
				return errAborted
			}
			if err := a.board.Delete(ctx, id); err != nil {
				return fmt.Errorf("gagal menghapus di server: %w", err)
			}
			fmt.Fprintf(a.out, "Tugas dihapus: %s\n", shortID(id))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func clearDoneCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear-done",
		Short: "Delete every done task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a.board.Refresh(ctx)
			done := a.board.Summary().Done
			if done == 0 {
				fmt.Fprintln(a.out, "Tidak ada tugas Done.")
				return nil
			}
			if !yes && !confirm(cmd.InOrStdin(), a.out, fmt.Sprintf("Yakin hapus %d tugas selesai?", done)) {
				return errAborted
			}
			result, err := a.board.ClearDone(ctx)
			return a.reportClear(result.Deleted, err)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func clearAllCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear-all",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a.board.Refresh(ctx)
			if len(a.board.Tasks()) == 0 {
				fmt.Fprintln(a.out, "Daftar tugas kosong.")
				return nil
			}
			if !yes && !confirm(cmd.InOrStdin(), a.out, "Hapus semua tugas?") {
				return errAborted
			}
			result, err := a.board.ClearAll(ctx)
			return a.reportClear(result.Deleted, err)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// reportClear prints what a bulk delete removed. Partial failures are
// returned after the successful part is reported.
func (a *app) reportClear(deleted []string, err error) error {
	if errors.Is(err, board.ErrNothingToClear) {
		fmt.Fprintln(a.out, "Tidak ada yang dihapus.")
		return nil
	}
	fmt.Fprintf(a.out, "%d tugas dihapus.\n", len(deleted))
	return err
}
