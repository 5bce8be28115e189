package parking

import "time"

// Transaction is the immutable record of one completed, billed exit.
type Transaction struct {
	TicketID    int64
	VehicleNo   string
	Class       VehicleClass
	BilledHours int64
	Amount      float64
	CompletedAt time.Time
}

// Ledger is the append-only sequence of completed exits. Entries are never
// mutated or removed; the ledger is the durable record of billing, not the
// ticket. Not safe for concurrent use on its own; the Lot serializes
// access.
type Ledger struct {
	entries []Transaction
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Append(tx Transaction) {
	l.entries = append(l.entries, tx)
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns every entry. The ordering is stable across calls with no
// intervening append.
func (l *Ledger) Recent(limit int) []Transaction {
	n := len(l.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Transaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

func (l *Ledger) Len() int {
	return len(l.entries)
}
