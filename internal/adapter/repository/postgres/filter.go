package postgres

import (
	"fmt"
	"strings"

	"github.com/finlane/payledger/internal/domain"
)

// buildPaymentPredicate renders the filter as a conjunctive SQL predicate
// plus its ordered arguments. An empty filter yields an empty clause.
// Placeholders start at $1; callers appending their own args continue
// numbering from len(args)+1.
func buildPaymentPredicate(filter domain.PaymentFilter) (clause string, args []any) {
	var conds []string

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	if filter.Method != nil {
		args = append(args, string(*filter.Method))
		conds = append(conds, fmt.Sprintf("method = $%d", len(args)))
	}

	from, to := filter.CreatedAtBounds()
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}
