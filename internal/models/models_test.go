package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOffering_DecodeIconAndID(t *testing.T) {
	t.Parallel()

	raw := `[
		{"id":"individual","title":"Séance","price":60,"icon":"Video","available":true},
		{"id":7,"title":"Groupe","price":25.5,"icon":"Users"},
		{"id":8,"title":"Autre","price":10,"icon":"Sparkles"},
		{"id":9,"title":"Sans icône","price":10,"icon":null}
	]`

	var got []Offering
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Len(t, got, 4)

	require.Equal(t, FlexID("individual"), got[0].ID)
	require.Equal(t, IconVideo, got[0].Icon)
	require.True(t, got[0].Available)

	require.Equal(t, FlexID("7"), got[1].ID)
	require.Equal(t, IconUsers, got[1].Icon)
	require.False(t, got[1].Available, "missing flag means unavailable")

	require.Equal(t, IconClock, got[2].Icon)
	require.Equal(t, IconClock, got[3].Icon)
}

func TestOffering_Ref_Encode(t *testing.T) {
	t.Parallel()

	o := Offering{ID: "individual", Title: "Coaching & bien-être", Type: "visio", Duration: "1 h", Price: 60}
	enc := o.Ref().Encode()

	require.Contains(t, enc, "sessionTitle=Coaching+%26+bien-%C3%AAtre")
	require.Contains(t, enc, "duration=1+h")
	require.Contains(t, enc, "price=60")
	require.Contains(t, enc, "sessionId=individual")
}

func TestOfferingRef_Complete(t *testing.T) {
	t.Parallel()

	require.True(t, OfferingRef{SessionID: "1", Title: "t", Price: "10"}.Complete())
	require.False(t, OfferingRef{SessionID: "1", Title: "t"}.Complete())
	require.False(t, OfferingRef{Title: "t", Price: "10"}.Complete())

	for _, bad := range []string{"abc", "-1", "NaN", "Inf", "-Inf", "1e300"} {
		_, ok := OfferingRef{Price: bad}.PriceValue()
		require.False(t, ok, bad)
	}
	p, ok := OfferingRef{Price: "49.9"}.PriceValue()
	require.True(t, ok)
	require.InDelta(t, 49.9, p, 1e-9)

	p, ok = OfferingRef{Price: "90071992547409"}.PriceValue()
	require.True(t, ok)
	require.Equal(t, int64(9007199254740900), PaymentDraft{OriginalPrice: p}.AmountMinor())
}

func TestPaymentDraft_FinalPrice(t *testing.T) {
	t.Parallel()

	d := PaymentDraft{OriginalPrice: 100, Discount: 0.2}
	require.Equal(t, "80.00", FormatAmount(d.FinalPrice()))
	require.Equal(t, int64(8000), d.AmountMinor())

	d = PaymentDraft{OriginalPrice: 59.99}
	require.Equal(t, int64(5999), d.AmountMinor())
	require.Equal(t, "59.99", FormatAmount(d.FinalPrice()))
}

func TestFormatPhone(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"0612345678":    "(06) 12 34 56 78",
		"+33612345678":  "+33612345678",
		"06 12 34 56 7": "06 12 34 56 7",
		"":              "",
	}

	for in, want := range cases {
		require.Equal(t, want, FormatPhone(in), in)
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "05/03/2025", FormatDate("2025-03-05T10:00:00Z"))
	require.Equal(t, "05/03/2025", FormatDate("2025-03-05"))
	require.Equal(t, "hier", FormatDate("hier"))
}
