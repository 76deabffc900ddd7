package catalog

import (
	"io"
	"strings"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// Item block keys
const (
	keyItemID = "ITEM_ID"
	keyName   = "NAME"
	keyType   = "TYPE"
	keyEffect = "EFFECT"
	keyCost   = "COST"
)

// ParseItems reads item blocks
func ParseItems(r io.Reader) (map[string]*entities.ItemDefinition, error) {
	blocks, err := readBlocks(r)
	if err != nil {
		return nil, err
	}

	items := make(map[string]*entities.ItemDefinition, len(blocks))
	for _, b := range blocks {
		item, err := parseItem(b)
		if err != nil {
			return nil, err
		}
		if _, dup := items[item.ID]; dup {
			return nil, b.fieldError(keyItemID, "duplicate item %s", item.ID)
		}
		items[item.ID] = item
	}
	return items, nil
}

func parseItem(b *block) (*entities.ItemDefinition, error) {
	if err := b.require(keyItemID, keyName, keyType, keyEffect, keyCost, keyDescription); err != nil {
		return nil, err
	}

	itemType := entities.ItemType(strings.ToLower(b.str(keyType)))
	if !itemType.IsValid() {
		return nil, b.fieldError(keyType, "invalid item type %q", b.str(keyType))
	}

	effect, err := entities.ParseStatDelta(b.str(keyEffect))
	if err != nil {
		return nil, b.fieldError(keyEffect, "%s", errors.GetMessage(err))
	}

	cost, err := b.integer(keyCost)
	if err != nil {
		return nil, err
	}

	item := &entities.ItemDefinition{
		ID:          b.str(keyItemID),
		Name:        b.str(keyName),
		Type:        itemType,
		Effect:      effect,
		Cost:        cost,
		Description: b.str(keyDescription),
	}
	if err := item.Validate(); err != nil {
		return nil, errors.Wrapf(err, "block %d", b.index).
			WithMeta("block", b.index).
			WithMeta("line", b.line)
	}
	return item, nil
}
