package models

import (
	"math"
	"net/url"
	"strconv"
)

// maxPrice — предел цены, при котором сумма в центах точно представима во float64
// и заведомо помещается в int64.
const maxPrice = (1 << 53) / 100

// OfferingRef — параметры услуги в query (sessionId, sessionTitle, sessionType, duration, price).
type OfferingRef struct {
	SessionID string
	Title     string
	Type      string
	Duration  string
	Price     string
}

func OfferingRefFromQuery(q url.Values) OfferingRef {
	return OfferingRef{
		SessionID: q.Get("sessionId"),
		Title:     q.Get("sessionTitle"),
		Type:      q.Get("sessionType"),
		Duration:  q.Get("duration"),
		Price:     q.Get("price"),
	}
}

func (r OfferingRef) Query() url.Values {
	q := url.Values{}
	q.Set("sessionId", r.SessionID)
	q.Set("sessionTitle", r.Title)
	q.Set("sessionType", r.Type)
	q.Set("duration", r.Duration)
	q.Set("price", r.Price)

	return q
}

// Encode — query-строка с percent-encoding всех значений.
func (r OfferingRef) Encode() string { return r.Query().Encode() }

// Complete — хватает ли данных для страницы оплаты.
func (r OfferingRef) Complete() bool {
	return r.SessionID != "" && r.Title != "" && r.Price != ""
}

// PriceValue разбирает цену; ok=false, если цена не конечное число,
// отрицательна или не переводится в центы без переполнения.
func (r OfferingRef) PriceValue() (float64, bool) {
	p, err := strconv.ParseFloat(r.Price, 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > maxPrice {
		return 0, false
	}

	return p, true
}
