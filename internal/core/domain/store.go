package domain

// ReportStore holds the documents fetched once at startup.
type ReportStore struct {
	documents []Document
	loading   bool
	started   bool
	failed    bool
}

// NewReportStore creates an empty store that is waiting for its first load.
func NewReportStore() *ReportStore {
	return &ReportStore{
		documents: []Document{},
		loading:   true,
	}
}

// BeginLoad marks the fetch as started. It returns false when a load was
// already issued; the store loads exactly once per lifetime.
func (s *ReportStore) BeginLoad() bool {
	if s.started {
		return false
	}
	s.started = true
	s.loading = true
	return true
}

// CompleteLoad applies the outcome of the fetch started by BeginLoad.
// On success the documents replace the store contents in the order
// received. On failure the store stays empty and a notice is returned.
// Outcomes arriving when no load is outstanding are ignored.
func (s *ReportStore) CompleteLoad(docs []Document, err error) Notice {
	if !s.started || !s.loading {
		return Notice{}
	}
	s.loading = false

	if err != nil {
		s.failed = true
		s.documents = []Document{}
		return errorNotice(TextLoadFailed)
	}

	s.documents = make([]Document, len(docs))
	copy(s.documents, docs)
	return Notice{}
}

// Documents returns the loaded documents in the order received.
// Callers must not modify the returned slice.
func (s *ReportStore) Documents() []Document {
	return s.documents
}

// Len returns the number of loaded documents.
func (s *ReportStore) Len() int {
	return len(s.documents)
}

// Loading reports whether the fetch is still outstanding.
func (s *ReportStore) Loading() bool {
	return s.loading
}

// Failed reports whether the fetch failed.
func (s *ReportStore) Failed() bool {
	return s.failed
}

// Find returns the document with the given ID.
func (s *ReportStore) Find(id string) (*Document, bool) {
	if id == "" {
		return nil, false
	}
	for i := range s.documents {
		if s.documents[i].ID == id {
			return &s.documents[i], true
		}
	}
	return nil, false
}
