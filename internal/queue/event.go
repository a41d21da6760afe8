// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// CatalogLinkedEvent is published after an association between two catalog
// records is written (actor→film, oscar→film, oscar→actor).  It carries
// enough information for downstream consumers to log or audit the link
// without querying the primary database.
type CatalogLinkedEvent struct {
	OwnerType   string `json:"owner_type"`   // "actor" or "oscar"
	OwnerID     uint64 `json:"owner_id"`     // id of the record the link was added to
	RelatedType string `json:"related_type"` // "film" or "actor"
	RelatedID   uint64 `json:"related_id"`   // id of the linked record
	LinkedBy    uint64 `json:"linked_by"`    // user id of the admin who made the link
	LinkedAt    string `json:"linked_at"`    // RFC3339 UTC timestamp
}
