package reallocation

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/budget-desk/backend/internal/types"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LookupResults counts the outcomes of budget lookups started by sessions.
var LookupResults = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reallocation_lookups_total",
		Help: "How many budget lookups were started by reallocation sessions, partitioned by outcome.",
	},
	[]string{"outcome"},
)

// Session is the editing session for one Record.
//
// All methods are safe for concurrent use. The budget lookup runs without
// holding the lock, its result is only applied when no identifying field
// changed in the meantime.
type Session struct {
	ID       uuid.UUID
	OpenedAt time.Time

	mu       sync.Mutex
	record   Record
	sequence uint64
	lookup   Lookup

	lastUsed atomic.Int64 // Unix nanoseconds
}

// NewSession opens a session with an empty record.
func NewSession(lookup Lookup) *Session {
	s := &Session{
		ID:       uuid.New(),
		OpenedAt: time.Now().UTC(),
		lookup:   lookup,
	}
	s.touch(s.OpenedAt)
	return s
}

func (s *Session) touch(t time.Time) {
	s.lastUsed.Store(t.UnixNano())
}

// LastUsed returns when the session was last retrieved from its store.
func (s *Session) LastUsed() time.Time {
	return time.Unix(0, s.lastUsed.Load()).UTC()
}

// Record returns a copy of the current record.
func (s *Session) Record() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// Sequence returns the edit sequence number. It increases with every change
// of an identifying field.
func (s *Session) Sequence() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sequence
}

// ChangeIdentifying sets an identifying field and clears everything
// downstream of it.
//
// The month is parsed from its English name. Use SelectMonth afterwards to
// load the budget figures.
func (s *Session) ChangeIdentifying(field Field, value string) error {
	if !field.Identifying() {
		return ErrUnknownField
	}

	var month types.FiscalMonth
	if field == FieldMonth {
		m, err := types.ParseFiscalMonth(value)
		if err != nil {
			return err
		}
		month = m
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case FieldCompany:
		s.record.Company = value
	case FieldCostCenter:
		s.record.CostCenter = value
	case FieldFiscalYear:
		s.record.FiscalYear = value
	case FieldAccount:
		s.record.Account = value
	case FieldMonth:
		s.record.Month = month
	}

	ClearDownstream(&s.record, field)
	s.sequence++

	return nil
}

// EnterNewBudget sets the new budget and recomputes the derived values.
// An invalid amount clears the new budget.
func (s *Session) EnterNewBudget(amount decimal.NullDecimal) *Warning {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.NewBudget = amount
	ClearDownstream(&s.record, FieldNewBudget)

	return Recompute(&s.record)
}

// FetchResult is the outcome of a budget lookup.
type FetchResult struct {
	Applied bool     // The figures were written to the record
	Skipped bool     // Not all identifying fields were set, no lookup was made
	Stale   bool     // An identifying field changed while the lookup ran, the response was discarded
	Err     error    // The lookup failed. The figures stay unset
	Warning *Warning // Set if a new budget entered during the lookup exceeds the master budget limit
}

// Fetch is a budget lookup in progress.
type Fetch struct {
	done   chan struct{}
	result FetchResult
}

// Done is closed when the lookup has finished and its result was applied or discarded.
func (f *Fetch) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the lookup has finished or ctx is done.
func (f *Fetch) Wait(ctx context.Context) (FetchResult, error) {
	select {
	case <-f.done:
		return f.result, nil
	case <-ctx.Done():
		return FetchResult{}, ctx.Err()
	}
}

func resolved(r FetchResult) *Fetch {
	f := &Fetch{done: make(chan struct{}), result: r}
	close(f.done)
	return f
}

// SelectMonth looks up the budget figures for the current selection.
//
// If any identifying field is empty, nothing is looked up. Otherwise exactly
// one lookup is started in the background. When the figures are applied, the
// derived values are recomputed for a new budget that was entered meanwhile.
func (s *Session) SelectMonth(ctx context.Context) *Fetch {
	s.mu.Lock()
	key := s.record.Key()
	sequence := s.sequence
	s.mu.Unlock()

	if !key.Complete() {
		LookupResults.WithLabelValues("skipped").Inc()
		return resolved(FetchResult{Skipped: true})
	}

	f := &Fetch{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		figures, err := s.lookup.LookupBudget(ctx, key)

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.sequence != sequence {
			log.Debug().Str("session", s.ID.String()).Uint64("sequence", sequence).Uint64("current", s.sequence).Msg("discarding stale budget lookup")
			LookupResults.WithLabelValues("stale").Inc()
			f.result = FetchResult{Stale: true, Err: err}
			return
		}

		if err != nil {
			log.Debug().Str("session", s.ID.String()).Err(err).Msg("budget lookup unavailable")
			LookupResults.WithLabelValues("unavailable").Inc()
			f.result = FetchResult{Err: err}
			return
		}

		s.record.setFigures(figures)
		LookupResults.WithLabelValues("applied").Inc()
		f.result = FetchResult{Applied: true, Warning: Recompute(&s.record)}
	}()

	return f
}
