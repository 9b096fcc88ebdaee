package justtcg

import (
	"bytes"
	"encoding/json"
)

// CardRecord is the subset of a JustTCG card the gateway reads. Everything
// else in the upstream document is passed through untouched via
// CardResponse.Raw.
type CardRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Game        string `json:"game"`
	Set         string `json:"set"`
	TCGPlayerID string `json:"tcgplayerId"`
}

// DataKind tags which shape the upstream "data" field had.
type DataKind int

// Data kinds.
const (
	DataNone DataKind = iota
	DataSingle
	DataMany
)

// CardData is the "data" field of a card response. JustTCG returns either a
// single card object or a list of cards, so the field is decoded into a
// tagged union. Shapes that fit neither decode to DataNone.
//
// The records are filled best-effort: a field of an unexpected type is left
// zero and never hides the card name.
type CardData struct {
	Kind   DataKind
	Single *CardRecord
	Many   []CardRecord

	name string
}

// nameView reads only the name of a card object.
type nameView struct {
	Name string `json:"name"`
}

// UnmarshalJSON never fails: an unexpected shape leaves d as DataNone.
func (d *CardData) UnmarshalJSON(b []byte) error {
	*d = CardData{}

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil
		}
		d.Kind = DataMany
		d.Many = make([]CardRecord, len(elems))
		for i, e := range elems {
			d.Many[i] = decodeRecord(e)
		}
		if len(elems) > 0 {
			d.name = decodeName(elems[0])
		}
	case '{':
		one := decodeRecord(trimmed)
		d.Kind = DataSingle
		d.Single = &one
		d.name = decodeName(trimmed)
	}
	return nil
}

// decodeRecord keeps whatever fields decode cleanly.
func decodeRecord(b []byte) CardRecord {
	var rec CardRecord
	_ = json.Unmarshal(b, &rec)
	return rec
}

func decodeName(b []byte) string {
	var v nameView
	if err := json.Unmarshal(b, &v); err != nil {
		return ""
	}
	return v.Name
}

// Name returns the card name used for marketplace searches: the first
// element's name for a list, the object's name for a single card.
func (d CardData) Name() (string, bool) {
	if d.Kind == DataNone {
		return "", false
	}
	return d.name, d.name != ""
}

// CardResponse is a decoded JustTCG card lookup.
type CardResponse struct {
	// Raw is the full upstream document. Numbers are json.Number so they
	// re-encode exactly as received.
	Raw  map[string]any
	Data CardData
}

// UnmarshalJSON decodes the raw document and the typed "data" view from the
// same bytes.
func (r *CardResponse) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	var typed struct {
		Data CardData `json:"data"`
	}
	if err := json.Unmarshal(b, &typed); err != nil {
		return err
	}

	r.Raw = raw
	r.Data = typed.Data
	return nil
}
