package domain

// SearchResult pairs a profile with the two similarity signals of a
// semantic search: the vector-index cosine similarity and the
// independently computed Jaccard overlap. Results keep vector-rank
// order; callers decide how to weigh the two scores.
type SearchResult struct {
	Profile *Profile `json:"profile"`
	// SimilarityScore is 1 - cosine_distance, clamped to [0,1].
	SimilarityScore float64 `json:"similarity_score"`
	// ManualSimilarity is the Jaccard overlap between the query
	// interests and the profile's interests.
	ManualSimilarity float64 `json:"manual_similarity"`
}
