package domain

// Workspace owns the report store, the report session and its conversation,
// and enforces the rules that span them: selecting a document clears the
// conversation, and a successful generation reseeds it with a greeting.
type Workspace struct {
	store   *ReportStore
	session *ReportSession
	thread  *Conversation
}

// NewWorkspace creates a workspace with an empty store and idle session.
func NewWorkspace() *Workspace {
	return &Workspace{
		store:   NewReportStore(),
		session: NewReportSession(),
		thread:  NewConversation(),
	}
}

// Store returns the document store.
func (w *Workspace) Store() *ReportStore {
	return w.store
}

// Session returns the report session.
func (w *Workspace) Session() *ReportSession {
	return w.session
}

// Thread returns the conversation for the active session.
func (w *Workspace) Thread() *Conversation {
	return w.thread
}

// Select activates doc and clears the conversation. The caller executes the
// returned request and reports back through CompleteGeneration.
func (w *Workspace) Select(doc *Document) (GenerateRequest, Notice) {
	req := w.session.Activate(doc)
	w.thread.Reset()
	return req, loadingNotice(TextGenerating)
}

// SelectByID activates the loaded document with the given ID.
func (w *Workspace) SelectByID(id string) (GenerateRequest, Notice, error) {
	doc, ok := w.store.Find(id)
	if !ok {
		return GenerateRequest{}, Notice{}, ErrNotFound
	}
	req, notice := w.Select(doc)
	return req, notice, nil
}

// CompleteGeneration applies a generation outcome. A current success seeds
// the conversation with exactly one greeting turn. Stale outcomes return a
// zero notice and change nothing.
func (w *Workspace) CompleteGeneration(req GenerateRequest, report *AIReport, err error) Notice {
	applied, notice := w.session.Resolve(req, report, err)
	if applied && w.session.State() == SessionReady {
		w.thread.Seed(GreetingText)
	}
	return notice
}

// Send appends the user's message and returns the question to ask, carrying
// the current report and the active document's extracted data (empty when
// there is none). ok is false when nothing was sent.
func (w *Workspace) Send(text string) (AskRequest, bool) {
	userData := map[string]any{}
	if doc, found := w.ActiveDocument(); found {
		userData = doc.ExtractedOrEmpty()
	}
	return w.thread.Submit(text, w.session.Report(), userData)
}

// CompleteAsk appends the assistant's reply (or a fallback) for req.
func (w *Workspace) CompleteAsk(req AskRequest, answer string, err error) bool {
	return w.thread.Resolve(req, answer, err)
}

// ActiveDocument returns the active document, if any.
func (w *Workspace) ActiveDocument() (*Document, bool) {
	return w.store.Find(w.session.ActiveDocumentID())
}
