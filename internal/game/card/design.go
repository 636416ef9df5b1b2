// Package card defines the immutable card design records the engine
// consumes. Designs come from an external catalog; the engine never
// mutates them.
package card

import "fmt"

// Category distinguishes units (stay on the board) from actions
// (one-shot effect cards).
type Category string

const (
	CategoryUnit   Category = "unit"
	CategoryAction Category = "action"
)

// Rarity is informational only; the engine carries it for observers.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Keyword is a static ability carried by a unit design.
type Keyword string

const (
	// KeywordFrontline forces opponents to attack this unit before face
	// or other units.
	KeywordFrontline Keyword = "frontline"
	// KeywordQuick lets a freshly played unit attack immediately.
	KeywordQuick Keyword = "quick"
	// KeywordEvasion makes a unit untargetable by targeted and
	// enemy-sweeping effect resolutions.
	KeywordEvasion Keyword = "evasion"
	// KeywordBoost grants a silence-immune +1/+1 at the start of each of
	// the owner's turns.
	KeywordBoost Keyword = "boost"
)

// Trigger identifies the moment an effect fires.
type Trigger string

const (
	TriggerOnPlay      Trigger = "on_play"
	TriggerOnAttack    Trigger = "on_attack"
	TriggerOnDamaged   Trigger = "on_damaged"
	TriggerOnDestroy   Trigger = "on_destroy"
	TriggerStartOfTurn Trigger = "start_of_turn"
	TriggerEndOfTurn   Trigger = "end_of_turn"
)

// TargetClass identifies which entities an effect resolves against.
type TargetClass string

const (
	TargetSelf           TargetClass = "self"
	TargetFriendlyUnit   TargetClass = "friendly_unit"
	TargetEnemyUnit      TargetClass = "enemy_unit"
	TargetAnyUnit        TargetClass = "any_unit"
	TargetFriendlyPlayer TargetClass = "friendly_player"
	TargetEnemyPlayer    TargetClass = "enemy_player"
	TargetAllFriendly    TargetClass = "all_friendly"
	TargetAllEnemies     TargetClass = "all_enemies"
	TargetAllUnits       TargetClass = "all_units"
	TargetRandomEnemy    TargetClass = "random_enemy"
	TargetRandomFriendly TargetClass = "random_friendly"
)

// ActionKind identifies what an effect does to its resolved targets.
type ActionKind string

const (
	ActionDamage       ActionKind = "damage"
	ActionHeal         ActionKind = "heal"
	ActionDraw         ActionKind = "draw"
	ActionBuffAttack   ActionKind = "buff_attack"
	ActionBuffHealth   ActionKind = "buff_health"
	ActionDestroy      ActionKind = "destroy"
	ActionSilence      ActionKind = "silence"
	ActionReturnToHand ActionKind = "return_to_hand"
	ActionSummon       ActionKind = "summon"
	ActionStun         ActionKind = "stun"
	// ActionCopy is defined in card data but has no executable behavior.
	// The engine accepts it and resolves it as a no-op.
	ActionCopy ActionKind = "copy"
)

// Effect is one trigger/target/action entry on a design. Value carries
// the magnitude (damage dealt, cards drawn, buff size) where the action
// kind uses one.
type Effect struct {
	Trigger Trigger     `yaml:"trigger"`
	Target  TargetClass `yaml:"target"`
	Action  ActionKind  `yaml:"action"`
	Value   int         `yaml:"value"`
}

// TokenConfig describes the unit a design summons at runtime. Tokens are
// plain units: they never carry effects or a token config of their own.
type TokenConfig struct {
	Name       string    `yaml:"name"`
	Attack     int       `yaml:"attack"`
	Health     int       `yaml:"health"`
	Keywords   []Keyword `yaml:"keywords"`
	Trigger    Trigger   `yaml:"trigger"`
	Count      int       `yaml:"count"`
	MaxSummons int       `yaml:"max_summons"`
}

// Design is an immutable card definition supplied by the catalog.
type Design struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Cost     int          `yaml:"cost"`
	Attack   int          `yaml:"attack"`
	Health   int          `yaml:"health"`
	Category Category     `yaml:"category"`
	Rarity   Rarity       `yaml:"rarity"`
	Keywords []Keyword    `yaml:"keywords"`
	Effects  []Effect     `yaml:"effects"`
	Token    *TokenConfig `yaml:"token,omitempty"`
}

// HasKeyword reports whether the design carries the given keyword.
func (d Design) HasKeyword(kw Keyword) bool {
	for _, k := range d.Keywords {
		if k == kw {
			return true
		}
	}
	return false
}

// EffectsFor returns the design's effects matching the given trigger, in
// declaration order.
func (d Design) EffectsFor(trigger Trigger) []Effect {
	var out []Effect
	for _, e := range d.Effects {
		if e.Trigger == trigger {
			out = append(out, e)
		}
	}
	return out
}

// TokenDesign materializes the design's token configuration as a
// standalone unit design. The returned design has no effects and no
// token config.
func (d Design) TokenDesign() (Design, error) {
	if d.Token == nil {
		return Design{}, fmt.Errorf("design %s has no token configuration", d.ID)
	}
	kws := make([]Keyword, len(d.Token.Keywords))
	copy(kws, d.Token.Keywords)
	return Design{
		ID:       d.ID + ":token",
		Name:     d.Token.Name,
		Cost:     0,
		Attack:   d.Token.Attack,
		Health:   d.Token.Health,
		Category: CategoryUnit,
		Rarity:   d.Rarity,
		Keywords: kws,
	}, nil
}

var validTriggers = map[Trigger]bool{
	TriggerOnPlay:      true,
	TriggerOnAttack:    true,
	TriggerOnDamaged:   true,
	TriggerOnDestroy:   true,
	TriggerStartOfTurn: true,
	TriggerEndOfTurn:   true,
}

var validTargets = map[TargetClass]bool{
	TargetSelf:           true,
	TargetFriendlyUnit:   true,
	TargetEnemyUnit:      true,
	TargetAnyUnit:        true,
	TargetFriendlyPlayer: true,
	TargetEnemyPlayer:    true,
	TargetAllFriendly:    true,
	TargetAllEnemies:     true,
	TargetAllUnits:       true,
	TargetRandomEnemy:    true,
	TargetRandomFriendly: true,
}

var validActions = map[ActionKind]bool{
	ActionDamage:       true,
	ActionHeal:         true,
	ActionDraw:         true,
	ActionBuffAttack:   true,
	ActionBuffHealth:   true,
	ActionDestroy:      true,
	ActionSilence:      true,
	ActionReturnToHand: true,
	ActionSummon:       true,
	ActionStun:         true,
	ActionCopy:         true,
}

var validKeywords = map[Keyword]bool{
	KeywordFrontline: true,
	KeywordQuick:     true,
	KeywordEvasion:   true,
	KeywordBoost:     true,
}

// Validate checks a design for internal consistency. The engine only
// accepts validated designs; the catalog loader calls this for every
// entry.
func (d Design) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("design has empty id")
	}
	if d.Name == "" {
		return fmt.Errorf("design %s: empty name", d.ID)
	}
	if d.Cost < 0 {
		return fmt.Errorf("design %s: negative cost %d", d.ID, d.Cost)
	}
	switch d.Category {
	case CategoryUnit:
		if d.Attack < 0 || d.Health <= 0 {
			return fmt.Errorf("design %s: unit needs attack >= 0 and health > 0, got %d/%d", d.ID, d.Attack, d.Health)
		}
	case CategoryAction:
		if len(d.Keywords) > 0 {
			return fmt.Errorf("design %s: action cards cannot carry keywords", d.ID)
		}
		if d.Token != nil {
			return fmt.Errorf("design %s: action cards cannot summon tokens", d.ID)
		}
	default:
		return fmt.Errorf("design %s: unknown category %q", d.ID, d.Category)
	}
	for _, kw := range d.Keywords {
		if !validKeywords[kw] {
			return fmt.Errorf("design %s: unknown keyword %q", d.ID, kw)
		}
	}
	for i, e := range d.Effects {
		if !validTriggers[e.Trigger] {
			return fmt.Errorf("design %s: effect %d: unknown trigger %q", d.ID, i, e.Trigger)
		}
		if !validTargets[e.Target] {
			return fmt.Errorf("design %s: effect %d: unknown target %q", d.ID, i, e.Target)
		}
		if !validActions[e.Action] {
			return fmt.Errorf("design %s: effect %d: unknown action %q", d.ID, i, e.Action)
		}
		if e.Value < 0 {
			return fmt.Errorf("design %s: effect %d: negative value %d", d.ID, i, e.Value)
		}
	}
	if t := d.Token; t != nil {
		if t.Name == "" {
			return fmt.Errorf("design %s: token needs a name", d.ID)
		}
		if t.Attack < 0 || t.Health <= 0 {
			return fmt.Errorf("design %s: token needs attack >= 0 and health > 0, got %d/%d", d.ID, t.Attack, t.Health)
		}
		if !validTriggers[t.Trigger] {
			return fmt.Errorf("design %s: token: unknown trigger %q", d.ID, t.Trigger)
		}
		if t.Count <= 0 {
			return fmt.Errorf("design %s: token: count must be positive, got %d", d.ID, t.Count)
		}
		for _, kw := range t.Keywords {
			if !validKeywords[kw] {
				return fmt.Errorf("design %s: token: unknown keyword %q", d.ID, kw)
			}
		}
	}
	return nil
}
