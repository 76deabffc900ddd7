// Package quest implements the quest state machine on top of a read-only
// catalogue of quest definitions that form a prerequisite graph.
package quest

import (
	"slices"
	"sort"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/progression"
)

// Status is a quest's state from one character's point of view
type Status string

// Quest statuses
const (
	StatusAvailable Status = "available"
	StatusLocked    Status = "locked"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Reward is what completing a quest granted
type Reward struct {
	XP           int
	Gold         int
	LevelsGained int
}

// Totals sums rewards over completed quests
type Totals struct {
	XP   int
	Gold int
}

// Graph answers quest questions against a fixed catalogue
type Graph struct {
	quests map[string]*entities.QuestDefinition
}

// NewGraph builds a graph over a copy of the catalogue. The catalogue is not
// validated here; call Validate once after loading.
func NewGraph(quests map[string]*entities.QuestDefinition) *Graph {
	g := &Graph{quests: make(map[string]*entities.QuestDefinition, len(quests))}
	for id, def := range quests {
		d := *def
		d.Normalize()
		g.quests[id] = &d
	}
	return g
}

// Len returns the number of quests in the catalogue
func (g *Graph) Len() int {
	return len(g.quests)
}

// Get looks up a quest definition
func (g *Graph) Get(id string) (*entities.QuestDefinition, error) {
	def, ok := g.quests[id]
	if !ok {
		return nil, errors.NewReasonf(errors.ReasonQuestNotFound, "quest %s not found", id).
			WithMeta("quest_id", id)
	}
	return def, nil
}

// Status reports where a quest stands for the character
func (g *Graph) Status(c *entities.Character, id string) (Status, error) {
	def, err := g.Get(id)
	if err != nil {
		return "", err
	}

	switch {
	case c.IsQuestCompleted(id):
		return StatusCompleted, nil
	case c.IsQuestActive(id):
		return StatusActive, nil
	case checkAccept(c, def) == nil:
		return StatusAvailable, nil
	default:
		return StatusLocked, nil
	}
}

// Accept adds a quest to the character's active set
func (g *Graph) Accept(c *entities.Character, id string) error {
	def, err := g.Get(id)
	if err != nil {
		return err
	}
	if err := checkAccept(c, def); err != nil {
		return err
	}

	c.ActiveQuests = append(c.ActiveQuests, id)
	return nil
}

// CanAccept reports whether Accept would succeed. It never mutates.
func (g *Graph) CanAccept(c *entities.Character, id string) bool {
	def, ok := g.quests[id]
	if !ok {
		return false
	}
	return checkAccept(c, def) == nil
}

// checkAccept runs the acceptance preconditions in order: level,
// prerequisite, already completed, already active
func checkAccept(c *entities.Character, def *entities.QuestDefinition) error {
	if c.Level < def.RequiredLevel {
		return errors.NewReasonf(errors.ReasonInsufficientLevel,
			"%s requires level %d", def.ID, def.RequiredLevel).
			WithMeta("required_level", def.RequiredLevel).
			WithMeta("level", c.Level)
	}
	if def.HasPrerequisite() && !c.IsQuestCompleted(def.Prerequisite) {
		return errors.NewReasonf(errors.ReasonRequirementsNotMet,
			"%s requires %s to be completed first", def.ID, def.Prerequisite).
			WithMeta("prerequisite", def.Prerequisite)
	}
	if c.IsQuestCompleted(def.ID) {
		return errors.NewReasonf(errors.ReasonAlreadyCompleted, "%s is already completed", def.ID)
	}
	if c.IsQuestActive(def.ID) {
		return errors.NewReasonf(errors.ReasonAlreadyActive, "%s is already active", def.ID)
	}
	return nil
}

// Complete moves an active quest to the completed set and grants its
// experience and gold. A dead character cannot complete quests.
func (g *Graph) Complete(c *entities.Character, id string) (*Reward, error) {
	def, err := g.Get(id)
	if err != nil {
		return nil, err
	}
	if !c.IsQuestActive(id) {
		return nil, errors.NewReasonf(errors.ReasonNotActive, "%s is not active", id)
	}
	if c.IsDead() {
		return nil, errors.NewReasonf(errors.ReasonCharacterDead,
			"%s cannot complete quests while dead", c.Name)
	}

	c.ActiveQuests = removeID(c.ActiveQuests, id)
	c.CompletedQuests = append(c.CompletedQuests, id)

	res, err := progression.GainExperience(c, def.RewardXP)
	if err != nil {
		return nil, err
	}
	if err := progression.AddGold(c, def.RewardGold); err != nil {
		return nil, err
	}

	return &Reward{
		XP:           def.RewardXP,
		Gold:         def.RewardGold,
		LevelsGained: res.LevelsGained,
	}, nil
}

// Abandon drops an active quest without reward
func (g *Graph) Abandon(c *entities.Character, id string) error {
	if !c.IsQuestActive(id) {
		return errors.NewReasonf(errors.ReasonNotActive, "%s is not active", id)
	}
	c.ActiveQuests = removeID(c.ActiveQuests, id)
	return nil
}

// PrerequisiteChain lists the ancestry of a quest from the earliest
// prerequisite to the quest itself
func (g *Graph) PrerequisiteChain(id string) ([]string, error) {
	if _, err := g.Get(id); err != nil {
		return nil, err
	}

	var chain []string
	seen := make(map[string]bool)
	current := id
	for {
		if seen[current] {
			return nil, errors.DataLossf("prerequisite cycle through %s", current).
				WithMeta("quest_id", id).
				WithMeta("chain", chain)
		}
		seen[current] = true

		def, err := g.Get(current)
		if err != nil {
			return nil, errors.Wrapf(err, "prerequisite of %s", id)
		}
		chain = append(chain, current)
		if !def.HasPrerequisite() {
			break
		}
		current = def.Prerequisite
	}

	slices.Reverse(chain)
	return chain, nil
}

// CompletionPercentage is the share of catalogue quests the character has
// completed, 0 when the catalogue is empty
func (g *Graph) CompletionPercentage(c *entities.Character) float64 {
	if len(g.quests) == 0 {
		return 0
	}
	completed := 0
	for _, id := range c.CompletedQuests {
		if _, ok := g.quests[id]; ok {
			completed++
		}
	}
	return float64(completed) / float64(len(g.quests)) * 100
}

// TotalRewards sums rewards over completed quests. Completed IDs missing
// from the catalogue are skipped.
func (g *Graph) TotalRewards(c *entities.Character) Totals {
	var t Totals
	for _, id := range c.CompletedQuests {
		def, ok := g.quests[id]
		if !ok {
			continue
		}
		t.XP += def.RewardXP
		t.Gold += def.RewardGold
	}
	return t
}

// Available returns the quests the character could accept now, by ID
func (g *Graph) Available(c *entities.Character) []*entities.QuestDefinition {
	var out []*entities.QuestDefinition
	for _, def := range g.sorted() {
		if checkAccept(c, def) == nil {
			out = append(out, def)
		}
	}
	return out
}

// ActiveQuests returns definitions for the character's active quests in
// acceptance order
func (g *Graph) ActiveQuests(c *entities.Character) []*entities.QuestDefinition {
	return g.lookup(c.ActiveQuests)
}

// CompletedQuests returns definitions for the character's completed quests
// in completion order
func (g *Graph) CompletedQuests(c *entities.Character) []*entities.QuestDefinition {
	return g.lookup(c.CompletedQuests)
}

// QuestsByLevel returns quests whose required level is within [minLevel, maxLevel]
func (g *Graph) QuestsByLevel(minLevel, maxLevel int) []*entities.QuestDefinition {
	var out []*entities.QuestDefinition
	for _, def := range g.sorted() {
		if def.RequiredLevel >= minLevel && def.RequiredLevel <= maxLevel {
			out = append(out, def)
		}
	}
	return out
}

// Validate checks every definition, then that every prerequisite exists
// and no prerequisite chain loops
func (g *Graph) Validate() error {
	for _, def := range g.sorted() {
		if err := def.Validate(); err != nil {
			return errors.Wrapf(err, "quest %s", def.ID)
		}
	}
	for _, def := range g.sorted() {
		if def.HasPrerequisite() {
			if _, ok := g.quests[def.Prerequisite]; !ok {
				return errors.NewReasonf(errors.ReasonQuestNotFound,
					"prerequisite %s of quest %s not found", def.Prerequisite, def.ID).
					WithMeta("quest_id", def.ID)
			}
		}
	}
	for _, def := range g.sorted() {
		if _, err := g.PrerequisiteChain(def.ID); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) sorted() []*entities.QuestDefinition {
	out := make([]*entities.QuestDefinition, 0, len(g.quests))
	for _, def := range g.quests {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

func (g *Graph) lookup(ids []string) []*entities.QuestDefinition {
	var out []*entities.QuestDefinition
	for _, id := range ids {
		if def, ok := g.quests[id]; ok {
			out = append(out, def)
		}
	}
	return out
}

func removeID(ids []string, id string) []string {
	i := slices.Index(ids, id)
	if i < 0 {
		return ids
	}
	return slices.Delete(ids, i, i+1)
}
