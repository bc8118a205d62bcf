package glade

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Update is one snapshot from the synchronization collaborator.
type Update struct {
	// Time is the server's in-world time in milliseconds (admin offset applied).
	Time    float64
	Weather string
	Snow    float64
	Puddle  float64
	HasEnv  bool
	Plants  []Plant
	Deaths  int
}

type wireUpdate struct {
	Time    float64     `json:"time"`
	Weather string      `json:"weather"`
	Env     *wireEnv    `json:"env"`
	Plants  []wirePlant `json:"plants"`
	Deaths  int         `json:"deaths"`
}

type wireEnv struct {
	SnowLevel   float64 `json:"snow_level"`
	PuddleLevel float64 `json:"puddle_level"`
}

type wirePlant struct {
	ID         json.RawMessage `json:"id"`
	X          float64         `json:"x"`
	Y          float64         `json:"y"`
	StemTex    string          `json:"stemTex"`
	LeafTex    string          `json:"leafTex"`
	FlowerTex  string          `json:"flowerTex"`
	Author     string          `json:"author"`
	ServerTime float64         `json:"server_time"`
	Stats      *wireStats      `json:"stats"`
}

// wireStats times are Unix seconds; the garden works in milliseconds.
type wireStats struct {
	HP           float64 `json:"hp"`
	MaxHP        float64 `json:"maxHp"`
	Vit          float64 `json:"vit"`
	Dead         bool    `json:"dead"`
	DeathTime    float64 `json:"death_time"`
	DeathCause   string  `json:"death_cause"`
	ProtectUntil float64 `json:"protect_until"`
}

// DecodeUpdate parses an updates payload.
func DecodeUpdate(r io.Reader) (Update, error) {
	var w wireUpdate
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return Update{}, fmt.Errorf("glade: decode update: %w", err)
	}
	u := Update{Time: w.Time, Weather: w.Weather, Deaths: w.Deaths}
	if w.Env != nil {
		u.HasEnv = true
		u.Snow = w.Env.SnowLevel
		u.Puddle = w.Env.PuddleLevel
	}
	u.Plants = make([]Plant, 0, len(w.Plants))
	for i, wp := range w.Plants {
		id, err := decodeID(wp.ID)
		if err != nil {
			return Update{}, fmt.Errorf("glade: decode plant %d: %w", i, err)
		}
		p := Plant{
			ID:          id,
			X:           wp.X,
			Y:           wp.Y,
			Author:      wp.Author,
			StemImage:   wp.StemTex,
			LeafImage:   wp.LeafTex,
			FlowerImage: wp.FlowerTex,
			CreatedAt:   wp.ServerTime,
		}
		if s := wp.Stats; s != nil {
			p.Stats = &PlantStats{
				HP:           s.HP,
				MaxHP:        s.MaxHP,
				Vit:          s.Vit,
				Dead:         s.Dead,
				DeathTime:    s.DeathTime * 1000,
				DeathCause:   s.DeathCause,
				ProtectUntil: s.ProtectUntil * 1000,
			}
		}
		u.Plants = append(u.Plants, p)
	}
	return u, nil
}

// DecodeUpdateBytes is DecodeUpdate over a byte slice.
func DecodeUpdateBytes(b []byte) (Update, error) {
	return DecodeUpdate(bytes.NewReader(b))
}

// decodeID accepts numeric or string plant ids.
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", fmt.Errorf("missing id")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}
