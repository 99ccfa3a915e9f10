package memory

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// Seed fills the store with synthetic sequences for every given path
// id. Each sequence gets frameCount frames evenly spaced over
// [0,1], rendered as small solid-color PNGs so that players and
// presenters can decode them. Intended for tests and demos.
func Seed(s *Store, pathIDs []string, frameCount int) error {
	if frameCount < 2 {
		return fmt.Errorf("memory: seed needs at least 2 frames, got %d", frameCount)
	}
	for _, id := range pathIDs {
		start, end, pose, err := domain.ParsePathID(id)
		if err != nil {
			// Pose sequences carry no "__<pose>" suffix; their start and
			// end are the composite "neutral_<pose>" labels.
			var ok bool
			start, end, ok = strings.Cut(id, "_to_")
			if !ok {
				return fmt.Errorf("memory: seed %q: %w", id, err)
			}
			pose = ""
		}
		seq := &domain.Sequence{
			PathID:    id,
			ExprStart: start,
			ExprEnd:   end,
			Pose:      pose,
		}
		frames := make(map[string][]byte, frameCount)
		for i := 0; i < frameCount; i++ {
			t := float64(i) / float64(frameCount-1)
			name := fmt.Sprintf("%03d.png", int(t*100+0.5))
			seq.Frames = append(seq.Frames, domain.Frame{T: t, File: name})
			data, err := solidPNG(uint8(i * 255 / (frameCount - 1)))
			if err != nil {
				return fmt.Errorf("memory: seed %q: %w", id, err)
			}
			frames[name] = data
		}
		if err := s.Put(seq, frames); err != nil {
			return err
		}
	}
	return nil
}

func solidPNG(level uint8) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{R: level, G: level, B: level, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
