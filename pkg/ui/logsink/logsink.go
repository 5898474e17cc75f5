// Package logsink is a reference ui.Sink that renders every event as a
// structured log line. It stands in for the real UI front end (out of
// scope for this engine) in local runs and tests.
package logsink

import (
	"time"

	"github.com/cbodonnell/setgame/pkg/log"
)

// Sink logs every presentation event through the given logger.
type Sink struct {
	logger *log.Logger
}

// New returns a Sink that logs through logger, or the package default
// logger if logger is nil.
func New(logger *log.Logger) *Sink {
	return &Sink{logger: logger}
}

func (s *Sink) infof(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Info(format, args...)
		return
	}
	log.Info(format, args...)
}

func (s *Sink) PlaceCard(card, slot int) {
	s.infof("ui: place card=%d slot=%d", card, slot)
}

func (s *Sink) RemoveCard(slot int) {
	s.infof("ui: remove slot=%d", slot)
}

func (s *Sink) PlaceToken(player, slot int) {
	s.infof("ui: token place player=%d slot=%d", player, slot)
}

func (s *Sink) RemoveToken(player, slot int) {
	s.infof("ui: token remove player=%d slot=%d", player, slot)
}

func (s *Sink) SetScore(player, score int) {
	s.infof("ui: score player=%d score=%d", player, score)
}

func (s *Sink) SetFreeze(player int, remaining time.Duration) {
	s.infof("ui: freeze player=%d remaining=%s", player, remaining)
}

func (s *Sink) SetCountdown(remaining time.Duration, warning bool) {
	s.infof("ui: countdown remaining=%s warning=%t", remaining, warning)
}

func (s *Sink) AnnounceWinner(playerIDs []int) {
	s.infof("ui: winners=%v", playerIDs)
}
