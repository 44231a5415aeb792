package web

import (
	"github.com/tomz197/blastar/internal/config"
	"github.com/tomz197/blastar/internal/loop/server"
	"github.com/tomz197/blastar/internal/object"
)

// Message types sent by the browser as JSON text messages.
const (
	MsgStart    = "start"
	MsgMove     = "move"
	MsgFire     = "fire"
	MsgPause    = "pause"
	MsgSettings = "settings"
)

// InMessage is a browser request.
type InMessage struct {
	T     string  `json:"t"`
	X     float64 `json:"x,omitempty"`
	Music bool    `json:"music,omitempty"`
	Sound bool    `json:"sound,omitempty"`
}

// Entity is the wire form of one visual, in world units.
type Entity struct {
	ID       uint64  `msgpack:"id"`
	Kind     string  `msgpack:"k"`
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	W        float64 `msgpack:"w"`
	H        float64 `msgpack:"h"`
	Rotation float64 `msgpack:"r"`
	Opacity  float64 `msgpack:"o"`
	Stage    string  `msgpack:"s,omitempty"` // Hazards only
	Progress float64 `msgpack:"p,omitempty"` // Progress of Stage in [0, 1]
}

// Burst marks where a hazard was destroyed.
type Burst struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
}

// Frame is the msgpack-encoded binary message pushed to the browser.
type Frame struct {
	Tick        uint64   `msgpack:"tick"`
	Playing     bool     `msgpack:"playing"`
	State       string   `msgpack:"state"`
	Score       int      `msgpack:"score"`
	GroundHP    int      `msgpack:"hp"`
	MaxGroundHP int      `msgpack:"maxHp"`
	Band        string   `msgpack:"band"`
	Ended       bool     `msgpack:"ended"`
	Entities    []Entity `msgpack:"e"`
	Sounds      []string `msgpack:"sounds,omitempty"`
	Bursts      []Burst  `msgpack:"bursts,omitempty"`
	LastScore   int      `msgpack:"last,omitempty"`
	Shutdown    bool     `msgpack:"shutdown,omitempty"`
}

// command converts a browser message to a server command.
func (m InMessage) command() (server.Command, bool) {
	switch m.T {
	case MsgStart:
		return server.Command{Kind: server.CommandStart, Settings: m.settings()}, true
	case MsgMove:
		return server.Command{Kind: server.CommandMove, X: m.X}, true
	case MsgFire:
		return server.Command{Kind: server.CommandFire}, true
	case MsgPause:
		return server.Command{Kind: server.CommandPause}, true
	case MsgSettings:
		return server.Command{Kind: server.CommandSettings, Settings: m.settings()}, true
	default:
		return server.Command{}, false
	}
}

func (m InMessage) settings() config.Settings {
	return config.Settings{Music: m.Music, Sound: m.Sound}
}

// newFrame builds the wire frame for a snapshot.
func newFrame(snap *server.Snapshot) Frame {
	f := Frame{
		Tick:        snap.Tick,
		Playing:     snap.Playing,
		State:       snap.State.String(),
		Score:       snap.Score,
		GroundHP:    snap.GroundHP,
		MaxGroundHP: snap.MaxGroundHP,
		Band:        snap.Band.String(),
		Ended:       snap.SessionEnded,
		Entities:    make([]Entity, 0, len(snap.Visuals)),
	}
	for _, v := range snap.Visuals {
		e := Entity{
			ID:       uint64(v.ID),
			Kind:     v.Kind.String(),
			X:        v.X,
			Y:        v.Y,
			W:        v.W,
			H:        v.H,
			Rotation: v.Rotation,
			Opacity:  v.Opacity,
		}
		if v.Kind == object.KindHazard {
			e.Stage = v.Stage.String()
			e.Progress = v.StageProgress
		}
		f.Entities = append(f.Entities, e)
	}
	return f
}
