package domain

// Cart is the client-side list of items awaiting checkout. Membership
// implies the item was available when it was added.
type Cart struct {
	items []Item
	index map[ItemID]int
}

func NewCart() *Cart {
	return &Cart{index: map[ItemID]int{}}
}

func (c *Cart) Add(item Item) error {
	if _, ok := c.index[item.ID]; ok {
		return ErrAlreadyInCart
	}
	if !item.Borrowable() {
		return ErrItemUnavailable
	}

	c.index[item.ID] = len(c.items)
	c.items = append(c.items, item)
	return nil
}

func (c *Cart) Remove(id ItemID) bool {
	pos, ok := c.index[id]
	if !ok {
		return false
	}

	c.items = append(c.items[:pos], c.items[pos+1:]...)
	delete(c.index, id)
	for i := pos; i < len(c.items); i++ {
		c.index[c.items[i].ID] = i
	}
	return true
}

func (c *Cart) Contains(id ItemID) bool {
	_, ok := c.index[id]
	return ok
}

func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IDs() []ItemID {
	ids := make([]ItemID, 0, len(c.items))
	for _, item := range c.items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) Clear() {
	c.items = nil
	c.index = map[ItemID]int{}
}
