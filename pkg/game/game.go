// Package game is the composition root: it wires a Table, a Dealer, and
// a Player/KeyGen per seat from a Config, an Oracle, and a UI Sink, and
// exposes the whole thing as a single runnable unit.
package game

import (
	"context"

	"github.com/cbodonnell/setgame/pkg/config"
	"github.com/cbodonnell/setgame/pkg/dealer"
	"github.com/cbodonnell/setgame/pkg/log"
	"github.com/cbodonnell/setgame/pkg/oracle"
	"github.com/cbodonnell/setgame/pkg/player"
	"github.com/cbodonnell/setgame/pkg/statusapi"
	"github.com/cbodonnell/setgame/pkg/table"
	"github.com/cbodonnell/setgame/pkg/ui"
	"github.com/google/uuid"
)

// Game owns one complete play-through: a Table, a Dealer, and its seats.
// Every log line its workers emit carries a session id so multiple
// concurrent games in one process can be told apart.
type Game struct {
	sessionID string
	cfg       config.Config
	table     *table.Table
	dealer    *dealer.Dealer
	players   []*player.Player
	logger    *log.Logger
}

// New builds a Game from cfg, wiring the oracle and sink into the Table
// and Dealer and creating one Player (with a paired KeyGen for non-human
// seats) per configured seat.
func New(cfg config.Config, o oracle.Oracle, sink ui.Sink) *Game {
	sessionID := uuid.NewString()
	logger := log.With(log.Fields{"session": sessionID})

	tbl := table.New(table.Options{
		TableSize:  cfg.TableSize,
		DeckSize:   cfg.DeckSize,
		TableDelay: cfg.TableDelay,
		Sink:       sink,
		Oracle:     o,
		Logger:     logger,
	})

	g := &Game{
		sessionID: sessionID,
		cfg:       cfg,
		table:     tbl,
		logger:    logger,
	}

	seats := make([]dealer.Seat, 0, cfg.Players)
	players := make([]*player.Player, 0, cfg.Players)
	for id := 0; id < cfg.Players; id++ {
		human := id < cfg.HumanPlayers
		p := player.New(player.Options{
			ID:            id,
			Human:         human,
			FeatureSize:   cfg.FeatureSize,
			TableSize:     cfg.TableSize,
			Table:         tbl,
			Sink:          sink,
			Request:       g.checkPlayerRequest,
			PointFreeze:   cfg.PointFreeze,
			PenaltyFreeze: cfg.PenaltyFreeze,
			Logger:        logger,
		})
		players = append(players, p)
		seats = append(seats, p)
	}
	g.players = players

	g.dealer = dealer.New(dealer.Options{
		Table:              tbl,
		Oracle:             o,
		Sink:               sink,
		Seats:              seats,
		DeckSize:           cfg.DeckSize,
		FeatureSize:        cfg.FeatureSize,
		TurnTimeout:        cfg.TurnTimeout,
		TurnTimeoutWarning: cfg.TurnTimeoutWarning,
		Hints:              cfg.Hints,
		Logger:             logger,
	})

	return g
}

func (g *Game) checkPlayerRequest(playerID int) {
	g.dealer.CheckPlayerRequest(playerID)
}

// SessionID returns the correlation id assigned to this game.
func (g *Game) SessionID() string { return g.sessionID }

// PlayerByID returns the seat with the given id, for wiring an input
// source (keyboard or otherwise) to a specific player.
func (g *Game) PlayerByID(id int) *player.Player {
	for _, p := range g.players {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

// Run plays the game to completion and returns the winning player ids.
func (g *Game) Run(ctx context.Context) []int {
	g.logger.Info("game: starting with %d players (%d human)", g.cfg.Players, g.cfg.HumanPlayers)
	winners := g.dealer.Run(ctx)
	g.logger.Info("game: finished, winners=%v", winners)
	return winners
}

// Snapshot implements statusapi.Snapshotter: a read-only view of every
// player's score and remaining freeze time, the number of cards on the table, and
// the countdown to the next reshuffle.
func (g *Game) Snapshot() statusapi.State {
	players := make([]statusapi.PlayerStatus, 0, len(g.players))
	for _, p := range g.players {
		players = append(players, statusapi.PlayerStatus{
			ID:           p.ID(),
			Score:        p.Score(),
			FrozenMillis: statusapi.FreezeMillis(p.FrozenRemaining()),
		})
	}

	countdown, _ := g.dealer.CountdownRemaining()
	return statusapi.State{
		Players:          players,
		CardsOnTable:     len(g.table.OnTableCards()),
		CountdownMillis:  statusapi.FreezeMillis(countdown),
		CountdownWarning: countdown > 0 && countdown <= g.cfg.TurnTimeoutWarning,
		Running:          true,
	}
}
