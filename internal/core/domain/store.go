package domain

// DataStore is the aggregate unit of persistence: every document, insight
// and alert, each in insertion order. It is read and written as a whole.
//
// Every alert's InsightID references an insight in the same DataStore and
// every insight's DocumentID references a document in the same DataStore.
// Callers keep this true by appending a batch's records together.
type DataStore struct {
	Documents []IngestedDocument `json:"documents"`
	Insights  []ProcessedInsight `json:"insights"`
	Alerts    []Alert            `json:"alerts"`
}

// IsEmpty reports whether all three collections are empty.
// An empty store is treated as uninitialised and reseeded.
func (s *DataStore) IsEmpty() bool {
	return len(s.Documents) == 0 && len(s.Insights) == 0 && len(s.Alerts) == 0
}

// Normalise replaces nil collections with empty ones so the store
// serialises as empty arrays rather than null.
func (s *DataStore) Normalise() {
	if s.Documents == nil {
		s.Documents = []IngestedDocument{}
	}
	if s.Insights == nil {
		s.Insights = []ProcessedInsight{}
	}
	if s.Alerts == nil {
		s.Alerts = []Alert{}
	}
}

// Clone returns a deep copy of the store.
func (s *DataStore) Clone() DataStore {
	out := DataStore{
		Documents: make([]IngestedDocument, len(s.Documents)),
		Insights:  make([]ProcessedInsight, len(s.Insights)),
		Alerts:    make([]Alert, len(s.Alerts)),
	}
	copy(out.Documents, s.Documents)
	for i := range s.Insights {
		ins := s.Insights[i]
		ins.RelevanceRoles = append([]Role(nil), ins.RelevanceRoles...)
		out.Insights[i] = ins
	}
	for i := range s.Alerts {
		a := s.Alerts[i]
		a.RelevantRoles = append([]Role(nil), a.RelevantRoles...)
		out.Alerts[i] = a
	}
	return out
}

// Append adds a batch of records to the end of each collection.
func (s *DataStore) Append(docs []IngestedDocument, insights []ProcessedInsight, alerts []Alert) {
	s.Documents = append(s.Documents, docs...)
	s.Insights = append(s.Insights, insights...)
	s.Alerts = append(s.Alerts, alerts...)
}

// AcknowledgeAlert marks the alert with the given ID as acknowledged.
// It returns false when no alert matches; that is not an error.
func (s *DataStore) AcknowledgeAlert(id string) bool {
	for i := range s.Alerts {
		if s.Alerts[i].ID == id {
			s.Alerts[i].Acknowledged = true
			return true
		}
	}
	return false
}

// FindDocument returns the document with the given ID.
func (s *DataStore) FindDocument(id string) (*IngestedDocument, bool) {
	for i := range s.Documents {
		if s.Documents[i].ID == id {
			return &s.Documents[i], true
		}
	}
	return nil, false
}

// ActiveAlerts returns alerts that have not been acknowledged.
func (s *DataStore) ActiveAlerts() []Alert {
	out := make([]Alert, 0, len(s.Alerts))
	for i := range s.Alerts {
		if !s.Alerts[i].Acknowledged {
			out = append(out, s.Alerts[i])
		}
	}
	return out
}

// CheckIntegrity returns the IDs of insights whose document is missing
// and alerts whose insight is missing.
func (s *DataStore) CheckIntegrity() (orphanInsights, orphanAlerts []string) {
	docs := make(map[string]struct{}, len(s.Documents))
	for i := range s.Documents {
		docs[s.Documents[i].ID] = struct{}{}
	}
	insights := make(map[string]struct{}, len(s.Insights))
	for i := range s.Insights {
		insights[s.Insights[i].ID] = struct{}{}
		if _, ok := docs[s.Insights[i].DocumentID]; !ok {
			orphanInsights = append(orphanInsights, s.Insights[i].ID)
		}
	}
	for i := range s.Alerts {
		if _, ok := insights[s.Alerts[i].InsightID]; !ok {
			orphanAlerts = append(orphanAlerts, s.Alerts[i].ID)
		}
	}
	return orphanInsights, orphanAlerts
}
