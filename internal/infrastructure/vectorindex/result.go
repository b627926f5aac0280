package vectorindex

// Status marks a result envelope as either success or error. All index
// operations report failures through these envelopes instead of
// returning raw errors, so callers branch on Status at the boundary.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

type AddResult struct {
	Status      Status   `json:"status"`
	Message     string   `json:"message,omitempty"`
	DocumentIDs []string `json:"document_ids,omitempty"`
}

// Match is a single nearest-neighbor hit.
type Match struct {
	ID       string                 `json:"id"`
	Document string                 `json:"document"`
	Metadata map[string]interface{} `json:"metadata"`
	Distance float64                `json:"distance"`
	// Similarity is 1 - Distance, clamped to [0,1]. Cosine distance
	// ranges over [0,2], so the raw conversion can go negative.
	Similarity float64 `json:"similarity"`
}

type QueryResult struct {
	Status  Status  `json:"status"`
	Message string  `json:"message,omitempty"`
	Query   string  `json:"query,omitempty"`
	Results []Match `json:"results"`
	Count   int     `json:"count"`
}

type DeleteResult struct {
	Status     Status   `json:"status"`
	Message    string   `json:"message,omitempty"`
	DeletedIDs []string `json:"deleted_ids,omitempty"`
}

type UpdateResult struct {
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	DocumentID string `json:"document_id,omitempty"`
}

type InfoResult struct {
	Status         Status `json:"status"`
	Message        string `json:"message,omitempty"`
	CollectionName string `json:"collection_name,omitempty"`
	DocumentCount  int    `json:"document_count"`
}

func similarityFromDistance(distance float64) float64 {
	s := 1 - distance
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
