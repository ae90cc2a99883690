package sink

import (
	"encoding/json"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/errors"
)

// SnapshotOption configures JSON and MessagePack rendering.
type SnapshotOption func(*Snapshot)

// WithWidget records the widget name.
func WithWidget(name string) SnapshotOption { return func(s *Snapshot) { s.Widget = name } }

// WithTimestamp records the frame timestamp.
func WithTimestamp(ts time.Duration) SnapshotOption {
	return func(s *Snapshot) { s.TimestampMS = float64(ts) / float64(time.Millisecond) }
}

// WithFrame records the frame number within a run.
func WithFrame(n int) SnapshotOption { return func(s *Snapshot) { s.Frame = n } }

// Snapshot is the serialized form of one frame: the surface it was drawn
// for and its command list. External renderers replay it command by command.
type Snapshot struct {
	Widget      string       `json:"widget,omitempty" msgpack:"widget,omitempty"`
	Frame       int          `json:"frame" msgpack:"frame"`
	TimestampMS float64      `json:"timestamp_ms" msgpack:"timestamp_ms"`
	Surface     draw.Surface `json:"surface" msgpack:"surface"`
	Commands    draw.List    `json:"commands" msgpack:"commands"`
}

func newSnapshot(s draw.Surface, cmds draw.List, opts []SnapshotOption) Snapshot {
	snap := Snapshot{Surface: s, Commands: cmds}
	for _, opt := range opts {
		opt(&snap)
	}
	return snap
}

// RenderJSON exports the frame as indented JSON.
func RenderJSON(s draw.Surface, cmds draw.List, opts ...SnapshotOption) ([]byte, error) {
	data, err := json.MarshalIndent(newSnapshot(s, cmds, opts), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json snapshot")
	}
	return data, nil
}

// RenderMsgpack exports the frame as MessagePack, the compact form used for
// snapshot streams.
func RenderMsgpack(s draw.Surface, cmds draw.List, opts ...SnapshotOption) ([]byte, error) {
	data, err := msgpack.Marshal(newSnapshot(s, cmds, opts))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode msgpack snapshot")
	}
	return data, nil
}

// DecodeMsgpack reads a snapshot written by [RenderMsgpack].
func DecodeMsgpack(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode msgpack snapshot")
	}
	return snap, nil
}
