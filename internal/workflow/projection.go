package workflow

import (
	"strings"

	"backend/internal/model"

	"github.com/google/uuid"
)

// Read-side projections over the current request set for one actor. These are
// pure and recomputed on demand — the websocket change feed tells clients when
// to re-request them.

// Counters are the dashboard stat buckets for an actor's own requests.
type Counters struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Returned int `json:"returned"`
}

// MyRequests filters to the requests the actor submitted.
func MyRequests(requests []model.TravelRequest, ownerID uuid.UUID) []model.TravelRequest {
	out := make([]model.TravelRequest, 0, len(requests))
	for _, r := range requests {
		if r.UserID == ownerID {
			out = append(out, r)
		}
	}
	return out
}

// ActionRequired filters to non-terminal requests sitting at the actor's
// effective office. Faculty (and Super Admins without an override) get none.
func ActionRequired(requests []model.TravelRequest, actor ActingContext) []model.TravelRequest {
	office, ok := actor.EffectiveOffice()
	if !ok {
		return []model.TravelRequest{}
	}
	out := make([]model.TravelRequest, 0, len(requests))
	for _, r := range requests {
		if IsTerminal(r.Status) {
			continue
		}
		if r.CurrentOffice == office {
			out = append(out, r)
		}
	}
	return out
}

// CountMine tallies the actor's own requests into the dashboard buckets.
// "Pending" is any status containing the word, regardless of office.
func CountMine(mine []model.TravelRequest) Counters {
	c := Counters{Total: len(mine)}
	for _, r := range mine {
		switch {
		case strings.Contains(r.Status, "Pending"):
			c.Pending++
		case r.Status == StatusApproved:
			c.Approved++
		case r.Status == StatusReturned:
			c.Returned++
		}
	}
	return c
}
