package domain

// NoticeKind classifies a user-visible notification.
type NoticeKind int

const (
	// NoticeNone means there is nothing to show.
	NoticeNone NoticeKind = iota
	// NoticeLoading marks a long-running operation that has started.
	NoticeLoading
	// NoticeSuccess marks a completed operation.
	NoticeSuccess
	// NoticeError marks a failed operation.
	NoticeError
)

// String returns the string representation of the notice kind.
func (k NoticeKind) String() string {
	switch k {
	case NoticeNone:
		return "none"
	case NoticeLoading:
		return "loading"
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification texts shown to the user.
const (
	TextLoadFailed       = "Failed to load report data."
	TextGenerating       = "Generating AI report..."
	TextGenerated        = "AI report generated!"
	TextGenerationFailed = "Error generating report."
)

// Notice is a transient, non-blocking notification (a toast).
type Notice struct {
	Kind NoticeKind
	Text string
}

// IsZero reports whether there is nothing to show.
func (n Notice) IsZero() bool {
	return n.Kind == NoticeNone
}

func loadingNotice(text string) Notice { return Notice{Kind: NoticeLoading, Text: text} }
func successNotice(text string) Notice { return Notice{Kind: NoticeSuccess, Text: text} }
func errorNotice(text string) Notice   { return Notice{Kind: NoticeError, Text: text} }
