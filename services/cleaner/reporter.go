package cleaner

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/customeros/mailsweep/internal/enum"
	"github.com/customeros/mailsweep/internal/models"
	"github.com/customeros/mailsweep/internal/utils"
)

var (
	deleteTagStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	trashTagStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	skipTagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorTagStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	summaryStyle    = lipgloss.NewStyle().Bold(true)
	folderLineStyle = lipgloss.NewStyle().Underline(true)
)

// Reporter prints per-message results and per-folder summaries to the
// console. One line per checked message, one summary line per folder.
type Reporter struct {
	out          io.Writer
	subjectWidth int
}

func NewReporter(out io.Writer, subjectWidth int) *Reporter {
	return &Reporter{
		out:          out,
		subjectWidth: subjectWidth,
	}
}

func (r *Reporter) Folder(account, folder string) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, folderLineStyle.Render(fmt.Sprintf("%s / %s", account, folder)))
}

func (r *Reporter) Result(outcome enum.Outcome, uid uint32, subject string) {
	fmt.Fprintf(r.out, "%s %6d  %s\n", r.tag(outcome), uid, utils.Truncate(subject, r.subjectWidth))
}

func (r *Reporter) NoMessages() {
	fmt.Fprintln(r.out, skipTagStyle.Render("no messages"))
}

func (r *Reporter) Summary(s models.FolderSummary) {
	fmt.Fprintln(r.out, summaryStyle.Render(fmt.Sprintf(
		"checked %d: deleted %d, trashed %d, skipped %d, errored %d",
		s.Checked, s.Deleted, s.Trashed, s.Skipped, s.Errored,
	)))
}

func (r *Reporter) tag(outcome enum.Outcome) string {
	switch outcome {
	case enum.OutcomeDeleted:
		return deleteTagStyle.Render("[DELETE]")
	case enum.OutcomeTrashed:
		return trashTagStyle.Render("[TRASH] ")
	case enum.OutcomeErrored:
		return errorTagStyle.Render("[ERROR] ")
	default:
		return skipTagStyle.Render("[SKIP]  ")
	}
}
