package history

import (
	"strings"

	custom_error "github.com/hopeIsCo0l/AnuTest/pkg/errors"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"
)

type listQuery struct {
	Type   string `form:"type"`
	Search string `form:"search"`
	Order  string `form:"order"`
	Limit  int    `form:"limit" binding:"omitempty,min=0"`
}

func (q listQuery) toFilter() (Filter, error) {
	filter := Filter{Search: q.Search, Limit: q.Limit}

	switch strings.ToLower(q.Order) {
	case "", "desc":
	case "asc":
		filter.Ascending = true
	default:
		return Filter{}, custom_error.Validation("order must be asc or desc")
	}

	if q.Type != "" && !strings.EqualFold(q.Type, "ALL") {
		t := models.TransactionType(strings.ToUpper(q.Type))
		switch t {
		case models.TransactionRestock, models.TransactionProductionStart, models.TransactionProductionFinish, models.TransactionAdjustment:
			filter.Type = t
		default:
			return Filter{}, custom_error.Validation("unknown transaction type %q", q.Type)
		}
	}
	return filter, nil
}
