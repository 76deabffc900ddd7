// Package catalog loads the item and quest reference data from the block
// text format:
//
//	QUEST_ID: first_steps
//	TITLE: First Steps
//	DESCRIPTION: Clear the cellar.
//	REWARD_XP: 50
//	REWARD_GOLD: 20
//	REQUIRED_LEVEL: 1
//	PREREQUISITE: NONE
//
// Records are separated by blank lines. Items use ITEM_ID, NAME, TYPE,
// EFFECT (stat:value), COST and DESCRIPTION.
package catalog

import (
	"bytes"
	"embed"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/quest"
)

// Default data file names
const (
	QuestFile = "quests.txt"
	ItemFile  = "items.txt"
)

//go:embed defaults/*.txt
var defaults embed.FS

// Catalog is the read-only reference data for a session
type Catalog struct {
	Quests map[string]*entities.QuestDefinition
	Items  map[string]*entities.ItemDefinition
}

// Load reads and validates both catalogue files
func Load(questPath, itemPath string) (*Catalog, error) {
	quests, err := loadFile(questPath, ParseQuests)
	if err != nil {
		return nil, err
	}
	items, err := loadFile(itemPath, ParseItems)
	if err != nil {
		return nil, err
	}

	c := &Catalog{Quests: quests, Items: items}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("Loaded catalogue",
		"quest_file", questPath,
		"item_file", itemPath,
		"quests", len(quests),
		"items", len(items),
	)
	return c, nil
}

// Defaults returns the built-in catalogue
func Defaults() (*Catalog, error) {
	quests, err := parseEmbedded(QuestFile, ParseQuests)
	if err != nil {
		return nil, err
	}
	items, err := parseEmbedded(ItemFile, ParseItems)
	if err != nil {
		return nil, err
	}
	c := &Catalog{Quests: quests, Items: items}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "built-in catalogue is invalid")
	}
	return c, nil
}

// WriteDefaults writes the built-in files into dir, skipping files that
// already exist. It returns the paths written.
func WriteDefaults(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", dir)
	}

	var written []string
	for _, name := range []string{QuestFile, ItemFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		data, err := defaults.ReadFile("defaults/" + name)
		if err != nil {
			return written, errors.Wrapf(err, "missing embedded %s", name)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, errors.Wrapf(err, "failed to write %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}

// Validate checks every item and the quest prerequisite graph
func (c *Catalog) Validate() error {
	for _, id := range sortedKeys(c.Items) {
		item := c.Items[id]
		if item.ID != id {
			return errors.InvalidArgumentf("item keyed %s has id %s", id, item.ID)
		}
		if err := item.Validate(); err != nil {
			return errors.Wrapf(err, "item %s", id)
		}
	}
	for _, id := range sortedKeys(c.Quests) {
		if c.Quests[id].ID != id {
			return errors.InvalidArgumentf("quest keyed %s has id %s", id, c.Quests[id].ID)
		}
	}
	return quest.NewGraph(c.Quests).Validate()
}

// Item looks up an item definition
func (c *Catalog) Item(id string) (*entities.ItemDefinition, error) {
	item, ok := c.Items[id]
	if !ok {
		return nil, errors.NewReasonf(errors.ReasonItemNotFound, "item %s not found", id).
			WithMeta("item_id", id)
	}
	return item, nil
}

// ItemIDs returns every item ID in sorted order
func (c *Catalog) ItemIDs() []string {
	return sortedKeys(c.Items)
}

// Graph builds the quest graph over the catalogue
func (c *Catalog) Graph() *quest.Graph {
	return quest.NewGraph(c.Quests)
}

func loadFile[T any](path string, parse func(io.Reader) (map[string]T, error)) (map[string]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFoundf("data file %s not found", path).WithMeta("path", path)
		}
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close data file", "path", path, "error", cerr)
		}
	}()

	out, err := parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path).WithMeta("path", path)
	}
	return out, nil
}

func parseEmbedded[T any](name string, parse func(io.Reader) (map[string]T, error)) (map[string]T, error) {
	data, err := defaults.ReadFile("defaults/" + name)
	if err != nil {
		return nil, errors.Wrapf(err, "missing embedded %s", name)
	}
	return parse(bytes.NewReader(data))
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
