package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/miriamsimone/video-generation-pipeline/pkg/timeline"
	"github.com/miriamsimone/video-generation-pipeline/pkg/viseme"
)

// RunVisemes reads aligner output (a JSON array of
// {"start_ms","end_ms","label"} intervals) from path, builds the
// viseme keyframe track and writes it to w as JSON. "-" reads stdin.
func RunVisemes(w io.Writer, path string) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}
	var phonemes []viseme.Phoneme
	if err := json.Unmarshal(data, &phonemes); err != nil {
		return fmt.Errorf("parse phoneme intervals: %w", err)
	}

	keyframes, err := viseme.NewBuilder().Build(phonemes)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(keyframes)
}

// trackFile is the on-disk shape of a saved timeline project: the raw
// keyframe payloads of each track plus optional phoneme intervals.
type trackFile struct {
	Expression []map[string]any `json:"expression,omitempty"`
	Pose       []map[string]any `json:"pose,omitempty"`
	Phonemes   []viseme.Phoneme `json:"phonemes,omitempty"`
}

// RunCombine reads a track file, flattens the three tracks and writes
// the combined export timeline to w.
func RunCombine(w io.Writer, path string) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}
	var tf trackFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("parse track file: %w", err)
	}

	tr := timeline.NewTracks()
	if err := timeline.IngestExpressionKeyframes(tr, tf.Expression); err != nil {
		return err
	}
	if err := timeline.IngestPoseKeyframes(tr, tf.Pose); err != nil {
		return err
	}
	if len(tf.Phonemes) > 0 {
		keyframes, err := viseme.NewBuilder().Build(tf.Phonemes)
		if err != nil {
			return err
		}
		for _, kf := range keyframes {
			if err := tr.AddPhoneme(kf); err != nil {
				return err
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(timeline.Combine(tr))
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
