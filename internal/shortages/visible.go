package shortages

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/sallaty-client/pkg/models"
)

// Visible derives the displayed set from the raw fetched set, the
// active filter, the search term, and the viewing store. It never
// mutates its input and never triggers network activity.
func Visible(set []models.Shortage, filter Filter, term string, viewerID int64) []models.Shortage {
	out := make([]models.Shortage, 0, len(set))
	for _, shortage := range set {
		if !MatchesSearch(shortage, term) {
			continue
		}
		if filter == FilterRespondedByMe && !respondedBy(shortage, viewerID) {
			continue
		}
		out = append(out, shortage)
	}
	return out
}

// MatchesSearch reports whether the term is a case-insensitive
// substring of the product name or the owning store name. The empty
// term matches everything.
func MatchesSearch(shortage models.Shortage, term string) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(shortage.ProductName), needle) ||
		strings.Contains(strings.ToLower(shortage.StoreName), needle)
}

func respondedBy(shortage models.Shortage, storeID int64) bool {
	for _, response := range shortage.Responses {
		if response.StoreID == storeID {
			return true
		}
	}
	return false
}

// CanRespond reports whether the respond action is offered: a store
// never responds to its own shortage, and fulfilled shortages take no
// further offers.
func CanRespond(shortage models.Shortage, viewerID int64) bool {
	return shortage.StoreID != viewerID && !shortage.IsFulfilled
}

// Status is the display state of a shortage.
type Status string

const (
	StatusFulfilled Status = "fulfilled"
	StatusAnswered  Status = "answered"
	StatusAwaiting  Status = "awaiting"
)

// StatusOf derives the display state from the record.
func StatusOf(shortage models.Shortage) Status {
	switch {
	case shortage.IsFulfilled:
		return StatusFulfilled
	case len(shortage.Responses) > 0:
		return StatusAnswered
	default:
		return StatusAwaiting
	}
}

// StatusText renders the display state the way the shortage list shows
// it.
func StatusText(shortage models.Shortage) string {
	switch StatusOf(shortage) {
	case StatusFulfilled:
		return "تم التلبية"
	case StatusAnswered:
		return fmt.Sprintf("يوجد ردود (%d)", len(shortage.Responses))
	default:
		return "بانتظار الرد"
	}
}
