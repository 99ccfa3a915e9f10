package viseme

import (
	"fmt"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// Phoneme is one aligned interval from the forced aligner.
type Phoneme struct {
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
	Label   string `json:"label"`
}

const (
	// DefaultTransitionMs is the transition length of every emitted
	// keyframe. Long transitions read smoother at the rig's frame rate.
	DefaultTransitionMs int64 = 500

	// DefaultCooldownMs is the minimum spacing between accepted keyframes.
	DefaultCooldownMs int64 = 175

	// settleTransitionMs is the transition of the trailing return to
	// neutral after the last phoneme.
	settleTransitionMs int64 = 300
)

// Builder converts phoneme intervals into a phoneme keyframe track.
// The zero value is not usable; call NewBuilder.
type Builder struct {
	transitionMs int64
	cooldownMs   int64
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithTransition overrides the per-keyframe transition duration.
func WithTransition(ms int64) BuilderOption {
	return func(b *Builder) {
		b.transitionMs = ms
	}
}

// WithCooldown overrides the minimum spacing between accepted keyframes.
func WithCooldown(ms int64) BuilderOption {
	return func(b *Builder) {
		b.cooldownMs = ms
	}
}

// NewBuilder creates a Builder with the default timing rules.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		transitionMs: DefaultTransitionMs,
		cooldownMs:   DefaultCooldownMs,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build scans the phoneme intervals in order and emits the keyframe track.
// Intervals must be sorted by start time; out-of-order input is rejected
// with domain.ErrMalformedTrack.
func (b *Builder) Build(phonemes []Phoneme) ([]domain.PhonemeKeyframe, error) {
	for i := 1; i < len(phonemes); i++ {
		if phonemes[i].StartMs < phonemes[i-1].StartMs {
			return nil, fmt.Errorf("%w: phoneme intervals out of order at index %d", domain.ErrMalformedTrack, i)
		}
	}

	var keyframes []domain.PhonemeKeyframe
	lastExpr := domain.ExprNeutral
	lastAcceptedMs := -b.cooldownMs // allow the first keyframe immediately

	for i := 0; i < len(phonemes); {
		ph := phonemes[i]
		expr := Map(ph.Label)

		// A consonant followed by a vowel conjoins: the mouth starts
		// forming the vowel shape at the consonant's onset.
		if expr == domain.ExprNeutral && i+1 < len(phonemes) {
			next := phonemes[i+1]
			if nextExpr := Map(next.Label); nextExpr != domain.ExprNeutral {
				if nextExpr != lastExpr || i == 0 {
					if ph.StartMs-lastAcceptedMs < b.cooldownMs {
						i += 2
						continue
					}
					keyframes = append(keyframes, domain.PhonemeKeyframe{
						TimeMs:       ph.StartMs,
						Expression:   nextExpr,
						TransitionMs: b.transitionMs,
						Phoneme:      ph.Label + "+" + next.Label,
					})
					lastExpr = nextExpr
					lastAcceptedMs = ph.StartMs
				}
				i += 2
				continue
			}
		}

		if expr != lastExpr || i == 0 {
			if ph.StartMs-lastAcceptedMs < b.cooldownMs {
				i++
				continue
			}
			keyframes = append(keyframes, domain.PhonemeKeyframe{
				TimeMs:       ph.StartMs,
				Expression:   expr,
				TransitionMs: b.transitionMs,
				Phoneme:      ph.Label,
			})
			lastExpr = expr
			lastAcceptedMs = ph.StartMs
		}
		i++
	}

	// Settle back to neutral when speech ends on an open mouth.
	if len(phonemes) > 0 && lastExpr != domain.ExprNeutral {
		keyframes = append(keyframes, domain.PhonemeKeyframe{
			TimeMs:       phonemes[len(phonemes)-1].EndMs,
			Expression:   domain.ExprNeutral,
			TransitionMs: settleTransitionMs,
		})
	}

	return keyframes, nil
}
