package ads

import (
	"errors"
	"fmt"
	"time"
)

// VideoPhase is the state of a video ad.
type VideoPhase string

const (
	VideoPlaying   VideoPhase = "playing"
	VideoSkippable VideoPhase = "skippable"
	VideoClosed    VideoPhase = "closed"
)

// CloseReason records how a video ad ended.
type CloseReason string

const (
	ClosedCompleted CloseReason = "completed"
	ClosedSkipped   CloseReason = "skipped"
	ClosedByUser    CloseReason = "closed"
	ClosedCancelled CloseReason = "cancelled"
)

const (
	DefaultSkipAfter = 5 * time.Second
	DefaultDuration  = 15 * time.Second
)

var (
	ErrNotSkippable = errors.New("video ad cannot be skipped yet")
	ErrNoVideoAd    = errors.New("no video ad is showing")
)

// VideoAd is the countdown machine: Playing until SkipAfter, Skippable until Duration,
// then Closed. Skip and Close end it early. It holds no timers; callers feed it elapsed time.
type VideoAd struct {
	SkipAfter time.Duration
	Duration  time.Duration

	elapsed time.Duration
	phase   VideoPhase
	reason  CloseReason
}

func NewVideoAd(skipAfter, duration time.Duration) *VideoAd {
	if skipAfter <= 0 {
		skipAfter = DefaultSkipAfter
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &VideoAd{SkipAfter: skipAfter, Duration: duration, phase: VideoPlaying}
}

// Advance moves the ad to elapsed (time since it started) and returns the new phase.
// Elapsed time never goes backwards, and a closed ad stays closed.
func (v *VideoAd) Advance(elapsed time.Duration) VideoPhase {
	if v.phase == VideoClosed {
		return v.phase
	}
	if elapsed > v.elapsed {
		v.elapsed = elapsed
	}
	switch {
	case v.elapsed >= v.Duration:
		v.elapsed = v.Duration
		v.close(ClosedCompleted)
	case v.elapsed >= v.SkipAfter:
		v.phase = VideoSkippable
	}
	return v.phase
}

// Skip ends a skippable ad.
func (v *VideoAd) Skip() error {
	if v.phase != VideoSkippable {
		return ErrNotSkippable
	}
	v.close(ClosedSkipped)
	return nil
}

// Close ends the ad in any phase.
func (v *VideoAd) Close(reason CloseReason) {
	if v.phase == VideoClosed {
		return
	}
	v.close(reason)
}

func (v *VideoAd) close(reason CloseReason) {
	v.phase = VideoClosed
	v.reason = reason
}

func (v *VideoAd) Phase() VideoPhase      { return v.phase }
func (v *VideoAd) Elapsed() time.Duration { return v.elapsed }
func (v *VideoAd) Reason() CloseReason    { return v.reason }
func (v *VideoAd) CanSkip() bool          { return v.phase == VideoSkippable }

// Label is the countdown caption: seconds left, or "Skip available".
func (v *VideoAd) Label() string {
	if v.CanSkip() {
		return "Skip available"
	}
	return fmt.Sprintf("%ds", int(v.Duration/time.Second)-int(v.elapsed/time.Second))
}

// Progress is the played share of the ad in percent.
func (v *VideoAd) Progress() float64 {
	return float64(v.elapsed) / float64(v.Duration) * 100
}

// VideoAdState is a snapshot of a VideoAd.
type VideoAdState struct {
	Phase       VideoPhase  `json:"phase"`
	ElapsedMs   int64       `json:"elapsedMs"`
	CanSkip     bool        `json:"canSkip"`
	Label       string      `json:"label"`
	Progress    float64     `json:"progress"`
	CloseReason CloseReason `json:"closeReason,omitempty"`
}

func (v *VideoAd) State() VideoAdState {
	return VideoAdState{
		Phase:       v.phase,
		ElapsedMs:   v.elapsed.Milliseconds(),
		CanSkip:     v.CanSkip(),
		Label:       v.Label(),
		Progress:    v.Progress(),
		CloseReason: v.reason,
	}
}
