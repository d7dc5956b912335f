package game

// Inventory tracks one player's remaining rationed blocks. Length-3 blocks
// are unlimited and never tracked.
type Inventory struct {
	Size4 int `json:"size4"`
	Size5 int `json:"size5"`
}

// DefaultInventory is each player's allotment at the start of a game.
func DefaultInventory() Inventory {
	return Inventory{Size4: 1, Size5: 1}
}

func (v Inventory) Has(size int) bool {
	switch size {
	case 3:
		return true
	case 4:
		return v.Size4 > 0
	case 5:
		return v.Size5 > 0
	default:
		return false
	}
}

// Use consumes one block of the given size and reports whether one was
// available.
func (v *Inventory) Use(size int) bool {
	switch size {
	case 3:
		return true
	case 4:
		if v.Size4 > 0 {
			v.Size4--
			return true
		}
	case 5:
		if v.Size5 > 0 {
			v.Size5--
			return true
		}
	}
	return false
}

// Put returns a block of the given size, reversing a Use.
func (v *Inventory) Put(size int) {
	switch size {
	case 4:
		v.Size4++
	case 5:
		v.Size5++
	}
}
