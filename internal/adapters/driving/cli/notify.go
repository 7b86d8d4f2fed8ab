package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

var (
	loadingColour = color.New(color.FgYellow)
	successColour = color.New(color.FgGreen)
	errorColour   = color.New(color.FgRed, color.Bold)
)

// printNotice writes a notice to stderr, coloured by kind.
// Zero notices print nothing.
func printNotice(cmd *cobra.Command, n domain.Notice) {
	w := cmd.ErrOrStderr()
	switch n.Kind {
	case domain.NoticeLoading:
		loadingColour.Fprintln(w, n.Text)
	case domain.NoticeSuccess:
		successColour.Fprintln(w, n.Text)
	case domain.NoticeError:
		errorColour.Fprintln(w, n.Text)
	case domain.NoticeNone:
	default:
		fmt.Fprintln(w, n.Text)
	}
}
