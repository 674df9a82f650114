// Package watch polls sip_config and reports changes between polls.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/sipconfig/internal/sip"
)

type Evaluator interface {
	Evaluate(ctx context.Context) *sip.Report
}

// Notifier receives every non-empty change set.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

type NotifierFunc func(ctx context.Context, ev Event)

func (f NotifierFunc) Notify(ctx context.Context, ev Event) { f(ctx, ev) }

// Change is one column of one row that differs from the previous poll.
// A nil Old or New means the value was or became unknown.
type Change struct {
	ConfigFlag string `json:"config_flag"`
	Column     string `json:"column"`
	Old        *int   `json:"old"`
	New        *int   `json:"new"`
}

type Event struct {
	Changes []Change  `json:"changes"`
	Rows    []sip.Row `json:"rows"`
	Time    time.Time `json:"time"`
}

type Watcher struct {
	eval Evaluator

	mu        sync.Mutex
	interval  time.Duration
	notifiers []Notifier
	reset     chan time.Duration

	prev   []sip.Row
	primed bool
}

func New(eval Evaluator, interval time.Duration, notifiers ...Notifier) *Watcher {
	return &Watcher{
		eval:      eval,
		interval:  interval,
		notifiers: notifiers,
		reset:     make(chan time.Duration, 1),
	}
}

// SetNotifiers replaces the notifiers used from the next change on.
func (w *Watcher) SetNotifiers(notifiers ...Notifier) {
	w.mu.Lock()
	w.notifiers = notifiers
	w.mu.Unlock()
}

// SetInterval changes the poll interval of a running watcher. Non-positive
// values are ignored.
func (w *Watcher) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if d == w.interval {
		return
	}
	w.interval = d
	// keep only the latest pending value; senders hold mu so the send below
	// never blocks
	select {
	case <-w.reset:
	default:
	}
	w.reset <- d
}

// Interval is the current poll interval.
func (w *Watcher) Interval() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.interval
}

// Poll evaluates once. The first poll only records a baseline; later polls
// notify when any row differs from the previous one.
func (w *Watcher) Poll(ctx context.Context) (Event, bool) {
	rows := w.eval.Evaluate(ctx).Rows
	ev := Event{Rows: rows, Time: time.Now()}

	if !w.primed {
		w.prev, w.primed = rows, true
		log.Info().Int("rows", len(rows)).Msg("sip config baseline recorded")
		return ev, false
	}

	ev.Changes = Diff(w.prev, rows)
	w.prev = rows
	if len(ev.Changes) == 0 {
		return ev, false
	}

	for _, c := range ev.Changes {
		log.Info().
			Str("config_flag", c.ConfigFlag).
			Str("column", c.Column).
			Str("old", show(c.Old)).
			Str("new", show(c.New)).
			Msg("sip config changed")
	}
	w.mu.Lock()
	notifiers := w.notifiers
	w.mu.Unlock()
	for _, n := range notifiers {
		n.Notify(ctx, ev)
	}
	return ev, true
}

// Run polls every interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	w.Poll(ctx)

	ticker := time.NewTicker(w.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case d := <-w.reset:
			ticker.Reset(d)
			log.Info().Dur("interval", d).Msg("watch interval changed")
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

// Diff lists column changes from prev to cur, in cur's row order followed by
// rows that disappeared.
func Diff(prev, cur []sip.Row) []Change {
	old := make(map[string]sip.Row, len(prev))
	for _, r := range prev {
		old[r.ConfigFlag] = r
	}

	var changes []Change
	seen := make(map[string]bool, len(cur))
	for _, r := range cur {
		seen[r.ConfigFlag] = true
		changes = appendRowChanges(changes, r.ConfigFlag, old[r.ConfigFlag], r)
	}
	for _, r := range prev {
		if !seen[r.ConfigFlag] {
			changes = appendRowChanges(changes, r.ConfigFlag, r, sip.Row{})
		}
	}
	return changes
}

func appendRowChanges(changes []Change, flag string, a, b sip.Row) []Change {
	if !sameInt(a.Enabled, b.Enabled) {
		changes = append(changes, Change{ConfigFlag: flag, Column: "enabled", Old: a.Enabled, New: b.Enabled})
	}
	if !sameInt(a.EnabledNVRAM, b.EnabledNVRAM) {
		changes = append(changes, Change{ConfigFlag: flag, Column: "enabled_nvram", Old: a.EnabledNVRAM, New: b.EnabledNVRAM})
	}
	return changes
}

func sameInt(a, b *int) bool {
	return sip.Row{Enabled: a}.Equal(sip.Row{Enabled: b})
}

func show(v *int) string {
	if v == nil {
		return "unknown"
	}
	if *v == 0 {
		return "0"
	}
	return "1"
}
