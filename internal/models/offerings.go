package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Icon — закрытый набор пиктограмм предложения.
// Неизвестное или отсутствующее значение приводится к IconClock при декодировании.
type Icon int

const (
	IconClock Icon = iota
	IconVideo
	IconUsers
)

func ParseIcon(s string) Icon {
	switch s {
	case "Video":
		return IconVideo
	case "Users":
		return IconUsers
	default:
		return IconClock
	}
}

func (i Icon) String() string {
	switch i {
	case IconVideo:
		return "Video"
	case IconUsers:
		return "Users"
	default:
		return "Clock"
	}
}

func (i *Icon) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*i = IconClock
		return nil
	}

	*i = ParseIcon(s)

	return nil
}

func (i Icon) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// FlexID — идентификатор, который API отдаёт то строкой, то числом.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())

	return nil
}

func (f FlexID) String() string { return string(f) }

// Offering — бронируемая услуга каталога.
type Offering struct {
	ID          FlexID  `json:"id"`
	Title       string  `json:"title"`
	Duration    string  `json:"duration"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Icon        Icon    `json:"icon"`
	Available   bool    `json:"available"`
}

// Ref — параметры услуги, которые переносятся между страницами через query.
func (o Offering) Ref() OfferingRef {
	return OfferingRef{
		SessionID: o.ID.String(),
		Title:     o.Title,
		Type:      o.Type,
		Duration:  o.Duration,
		Price:     strconv.FormatFloat(o.Price, 'f', -1, 64),
	}
}

type Availability struct {
	Available bool `json:"available"`
}
