package domain

import "time"

// Relation is one direction of a friendship edge. Edges are always
// written and removed as a symmetric pair, so the graph stays
// undirected even though rows are directed.
type Relation struct {
	ID            int       `json:"id" db:"id"`
	FromProfileID int       `json:"from_profile_id" db:"from_profile_id"`
	ToProfileID   int       `json:"to_profile_id" db:"to_profile_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Friend is a connected profile together with when the connection was
// made, as returned by the friends listing.
type Friend struct {
	Profile      *Profile  `json:"profile"`
	FriendsSince time.Time `json:"friends_since"`
	// InterestSimilarity is the Jaccard overlap between the owning
	// profile's interests and this friend's.
	InterestSimilarity float64 `json:"interest_similarity"`
}
