package domain

// SessionState is the report session's position in its state machine.
type SessionState int

const (
	// SessionIdle means no document has been selected.
	SessionIdle SessionState = iota
	// SessionGenerating means a report is being produced for the active document.
	SessionGenerating
	// SessionReady means the active document has a report.
	SessionReady
	// SessionFailed means generation for the active document failed.
	SessionFailed
)

// String returns the string representation of the state.
func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionGenerating:
		return "generating"
	case SessionReady:
		return "ready"
	case SessionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// GenerateRequest describes one report generation call.
// Token identifies the selection that issued it.
type GenerateRequest struct {
	Token      uint64
	DocumentID string
	Extracted  map[string]any
}

// ReportSession binds the active document to its report and generation status.
// A report is only ever held for the document that is currently active.
type ReportSession struct {
	activeID string
	report   *AIReport
	state    SessionState
	token    uint64
}

// NewReportSession creates an idle session.
func NewReportSession() *ReportSession {
	return &ReportSession{state: SessionIdle}
}

// Activate makes doc the active document, drops any report and enters
// SessionGenerating. The returned request must be executed by the caller
// and its outcome passed to Resolve. Any request issued before this call
// becomes stale.
func (s *ReportSession) Activate(doc *Document) GenerateRequest {
	s.token++
	s.activeID = doc.ID
	s.report = nil
	s.state = SessionGenerating

	return GenerateRequest{
		Token:      s.token,
		DocumentID: doc.ID,
		Extracted:  doc.ExtractedOrEmpty(),
	}
}

// Current reports whether req was issued by the latest selection and still
// targets the active document.
func (s *ReportSession) Current(req GenerateRequest) bool {
	return req.Token == s.token && req.DocumentID == s.activeID && s.activeID != ""
}

// Resolve applies the outcome of req. Stale outcomes are discarded and
// reported as not applied, with no notice.
func (s *ReportSession) Resolve(req GenerateRequest, report *AIReport, err error) (bool, Notice) {
	if !s.Current(req) || s.state != SessionGenerating {
		return false, Notice{}
	}

	if err != nil || report == nil {
		s.state = SessionFailed
		s.report = nil
		return true, errorNotice(TextGenerationFailed)
	}

	s.report = report.Clone()
	s.state = SessionReady
	return true, successNotice(TextGenerated)
}

// ActiveDocumentID returns the active document's ID, or "" when idle.
func (s *ReportSession) ActiveDocumentID() string {
	return s.activeID
}

// Report returns the report for the active document, or nil.
func (s *ReportSession) Report() *AIReport {
	return s.report
}

// Generating reports whether a generation is outstanding for the active document.
func (s *ReportSession) Generating() bool {
	return s.state == SessionGenerating
}

// State returns the current session state.
func (s *ReportSession) State() SessionState {
	return s.state
}
