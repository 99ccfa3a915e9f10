/*
Package viseme turns aligned phoneme intervals into a lip-sync keyframe track.

The input is the forced aligner's output: a list of (startMs, endMs, label)
intervals using ARPABET labels. A static table buckets vowels into four mouth
shapes (speaking_ah, speaking_ee, speaking_uw, oh_round); silence and
consonants map to neutral.

The builder applies three smoothing rules on top of the raw mapping:

  - Conjoining: a consonant immediately followed by a vowel emits one
    keyframe at the consonant's start targeting the vowel's viseme, so the
    mouth anticipates the sound.
  - De-duplication: no keyframe is emitted when the viseme is unchanged.
  - Cooldown: a candidate keyframe is dropped when fewer than 175 ms have
    passed since the previously accepted keyframe, regardless of viseme.
*/
package viseme
