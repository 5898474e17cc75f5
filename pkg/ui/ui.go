// Package ui declares the sink the engine emits presentation events to.
// Every implementation must be safe to call from multiple goroutines: the
// Table, Player, and Dealer each call it independently, and only the
// ordering of calls made by a single one of them is guaranteed.
package ui

import "time"

// Sink receives presentation events. Implementations must not block for
// long: a slow Sink serializes behind whichever worker is calling it.
type Sink interface {
	PlaceCard(card, slot int)
	RemoveCard(slot int)
	PlaceToken(player, slot int)
	RemoveToken(player, slot int)
	SetScore(player, score int)
	SetFreeze(player int, remaining time.Duration)
	SetCountdown(remaining time.Duration, warning bool)
	AnnounceWinner(playerIDs []int)
}
