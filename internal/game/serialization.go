package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Checksum computes a deterministic SHA-256 digest of a game state.
// Hosts use it to detect divergence between replayed and live states, or
// between the two clients of a networked match. Timestamps and other
// non-deterministic fields are excluded; everything rules-relevant is
// rendered in a fixed order.
func Checksum(s *GameState) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "GAME:%s|%s|%s|%d|%s|%s|%s|%s\n",
		s.ID, s.Phase, s.TurnPhase, s.CurrentTurn,
		s.ActivePlayerID, s.WinnerID, s.AttackerID, s.AttackTargetID,
	)

	for _, p := range s.Players {
		fmt.Fprintf(&buf, "PLAYER:%s|%d|%d|%d|%d|%d|%t\n",
			p.ID, p.Health, p.MaxHealth, p.Bandwidth, p.MaxBandwidth,
			p.FatigueCount, p.KeptHand,
		)
		for _, c := range p.Deck {
			fmt.Fprintf(&buf, " DECK:%s|%s\n", c.InstanceID, c.Design.ID)
		}
		for _, c := range p.Hand {
			fmt.Fprintf(&buf, " HAND:%s|%s\n", c.InstanceID, c.Design.ID)
		}
		for _, u := range p.Board {
			fmt.Fprintf(&buf, " UNIT:%s|%s|%d|%d|%d|%d|%t|%t|%t|%t|%d|%d|%d|%d|%d\n",
				u.InstanceID, u.Design.ID,
				u.CurrentAttack, u.CurrentHealth, u.MaxHealth, u.Position,
				u.CanAttack, u.SummoningSickness, u.Silenced, u.Stunned,
				u.AttackBuff, u.HealthBuff, u.BoostAttack, u.BoostHealth,
				u.TokensSummoned,
			)
		}
		for _, c := range p.Graveyard {
			fmt.Fprintf(&buf, " GRAVE:%s|%s\n", c.InstanceID, c.Design.ID)
		}
	}

	for _, pe := range s.EffectQueue {
		fmt.Fprintf(&buf, "PENDING:%s|%s|%s|%s|%s|%d|%v\n",
			pe.SourceUnitID, pe.SourcePlayerID, pe.Trigger,
			pe.Effect.Target, pe.Effect.Action, pe.Effect.Value, pe.TargetIDs,
		)
	}

	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
