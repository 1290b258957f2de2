package v1

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/internal/reallocation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LookupOutcome is the result of the budget lookup started by selecting a month.
type LookupOutcome string

const (
	LookupApplied     LookupOutcome = "applied"     // The figures were loaded
	LookupSkipped     LookupOutcome = "skipped"     // Not all of company, cost center, fiscal year, account and month are set
	LookupStale       LookupOutcome = "stale"       // The selection changed while the lookup ran, the response was discarded
	LookupUnavailable LookupOutcome = "unavailable" // There is no budget for the selection or the lookup failed
)

func newLookupOutcome(r reallocation.FetchResult) LookupOutcome {
	switch {
	case r.Skipped:
		return LookupSkipped
	case r.Stale:
		return LookupStale
	case r.Err != nil:
		return LookupUnavailable
	default:
		return LookupApplied
	}
}

type ReallocationSessionLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/reallocation-sessions/1f2e3d4c-5b6a-4978-8a7b-6c5d4e3f2a1b"`          // The session itself
	Submit string `json:"submit" example:"https://example.com/api/v1/reallocation-sessions/1f2e3d4c-5b6a-4978-8a7b-6c5d4e3f2a1b/submit"` // Submits the reallocation
}

type ReallocationSession struct {
	ID       uuid.UUID                `json:"id" example:"1f2e3d4c-5b6a-4978-8a7b-6c5d4e3f2a1b"` // ID of the session
	OpenedAt time.Time                `json:"openedAt" example:"2024-07-12T09:30:00Z"`           // Time the session was opened
	Record   reallocation.Record      `json:"record"`                                            // The reallocation being edited
	Depth    int                      `json:"depth" example:"5"`                                 // Number of leading identifying fields that are set
	Sequence uint64                   `json:"sequence" example:"7"`                              // Increases with every change of company, cost center, fiscal year, account or month
	Links    ReallocationSessionLinks `json:"links"`
}

// newReallocationSession returns the API v1 representation of the session
func newReallocationSession(c *gin.Context, s *reallocation.Session) ReallocationSession {
	url := c.GetString(string(models.DBContextURL))
	record := s.Record()

	return ReallocationSession{
		ID:       s.ID,
		OpenedAt: s.OpenedAt,
		Record:   record,
		Depth:    record.Depth(),
		Sequence: s.Sequence(),
		Links: ReallocationSessionLinks{
			Self:   fmt.Sprintf("%s/v1/reallocation-sessions/%s", url, s.ID),
			Submit: fmt.Sprintf("%s/v1/reallocation-sessions/%s/submit", url, s.ID),
		},
	}
}

type ReallocationSessionResponse struct {
	Error        *string                    `json:"error" example:"there is no reallocation session with this ID, it may have been closed"` // The error, if any occurred
	Data         *ReallocationSession       `json:"data"`                                                                                   // The session
	Lookup       LookupOutcome              `json:"lookup,omitempty" example:"applied"`                                                     // Outcome of the budget lookup when the month was changed
	Notification *reallocation.Notification `json:"notification"`                                                                           // Advisory message, e.g. when the master budget limit would be exceeded
}

// ReallocationSessionChange sets one field of the record.
type ReallocationSessionChange struct {
	Field string          `json:"field" example:"month" enums:"company,costCenter,fiscalYear,account,month,newBudget"` // The field to change
	Value json.RawMessage `json:"value" swaggertype:"string" example:"June"`                                           // The new value. Strings for all fields, newBudget also accepts numbers. null clears the field
}
