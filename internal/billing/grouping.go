package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is a flat payment row as stored: one row per settlement
// action, with no persisted bill identifier.
type PaymentRecord struct {
	ID              int64
	OrderID         int64
	TableNumber     int
	Amount          decimal.Decimal
	Method          string
	CashReceived    *decimal.Decimal
	ChangeAmount    *decimal.Decimal
	WalletReference *string
	ProcessedBy     string
	PaidAt          time.Time
}

// BillGroup is one inferred logical bill: payment rows sharing a table and
// a minute-truncated timestamp. DisplayAmount is the amount of the most
// recent payment in the group, not the naive sum — a merged settlement
// re-issues one consolidated row whose amount already is the full bill,
// while earlier rows in the group are stale partial attempts. NaiveSum is
// kept for auditing the difference.
type BillGroup struct {
	TableNumber   int
	Minute        time.Time
	Payments      []PaymentRecord
	DisplayAmount decimal.Decimal
	NaiveSum      decimal.Decimal
	Methods       []string

	// CashReceived and ChangeAmount are taken from the most recent
	// payment. They are nil when the tender never involves cash (the
	// "tng" mobile wallet), and must render as "not applicable", not 0.00.
	CashReceived *decimal.Decimal
	ChangeAmount *decimal.Decimal
}

type groupKey struct {
	table  int
	minute time.Time
}

// GroupPayments reconstructs logical bills from independent payment rows.
// The grouping key is (table number, timestamp truncated to the minute);
// that proximity heuristic is the only discriminator available and is
// lossy by design — two unrelated bills sharing table and minute cannot
// be told apart. Groups are returned most recent first; payments within a
// group are in chronological order.
func GroupPayments(payments []PaymentRecord) []BillGroup {
	grouped := make(map[groupKey][]PaymentRecord)
	for _, p := range payments {
		key := groupKey{table: p.TableNumber, minute: p.PaidAt.Truncate(time.Minute)}
		grouped[key] = append(grouped[key], p)
	}

	groups := make([]BillGroup, 0, len(grouped))
	for key, members := range grouped {
		sort.Slice(members, func(i, j int) bool {
			return members[i].PaidAt.Before(members[j].PaidAt)
		})

		latest := members[len(members)-1]
		naive := decimal.Zero
		methodSeen := make(map[string]bool)
		var methods []string
		for _, m := range members {
			naive = naive.Add(m.Amount)
			if !methodSeen[m.Method] {
				methodSeen[m.Method] = true
				methods = append(methods, m.Method)
			}
		}

		group := BillGroup{
			TableNumber:   key.table,
			Minute:        key.minute,
			Payments:      members,
			DisplayAmount: latest.Amount,
			NaiveSum:      naive,
			Methods:       methods,
		}
		if latest.Method != TenderTNG {
			group.CashReceived = latest.CashReceived
			group.ChangeAmount = latest.ChangeAmount
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if !groups[i].Minute.Equal(groups[j].Minute) {
			return groups[i].Minute.After(groups[j].Minute)
		}
		return groups[i].TableNumber < groups[j].TableNumber
	})
	return groups
}
