// Package grid describes the tile alphabet of a level's data string
package grid

// Tile characters as stored in level data, rows are separated by '\n'
const (
	Default = '0'
	Wall    = '1'
	Block   = '2'
	End     = '3'
	Start   = '4'
	Hole    = '5'
)

// restricted-movement blocks occupy '6'-'9' and 'A'-'J'
func isRestricted(r rune) bool {
	return (r >= '6' && r <= '9') || (r >= 'A' && r <= 'J')
}

// Class is a named set of tiles a search can exclude
type Class struct {
	Name string
	// Pattern is a regex character class matching any tile of the class
	Pattern string
	has     func(rune) bool
}

// In reports whether data contains any tile of c
func (c Class) In(data string) bool {
	for _, r := range data {
		if c.has(r) {
			return true
		}
	}
	return false
}

// Absent returns a regex that matches data without any tile of c
func (c Class) Absent() string { return "^[^" + c.Pattern[1:len(c.Pattern)-1] + "]*$" }

var (
	// BlockClass matches movable blocks
	BlockClass = Class{Name: "block", Pattern: "[2]", has: func(r rune) bool { return r == Block }}
	// HoleClass matches holes
	HoleClass = Class{Name: "hole", Pattern: "[5]", has: func(r rune) bool { return r == Hole }}
	// RestrictedClass matches every restricted-movement block
	RestrictedClass = Class{Name: "restricted", Pattern: "[6-9A-J]", has: isRestricted}
)

// Bits of the block_filter wire value
const (
	BitBlock      = 1
	BitHole       = 2
	BitRestricted = 4
)

// BlockFlags is the decoded form of a block_filter bitmask
// a set flag excludes levels containing that class
type BlockFlags struct {
	Block      bool
	Hole       bool
	Restricted bool
}

// DecodeBlockFlags reads the three known bits and ignores the rest
func DecodeBlockFlags(mask int) BlockFlags {
	if mask < 0 {
		return BlockFlags{}
	}
	return BlockFlags{
		Block:      mask&BitBlock != 0,
		Hole:       mask&BitHole != 0,
		Restricted: mask&BitRestricted != 0,
	}
}

// Excluded lists the classes the flags exclude, in bit order
func (f BlockFlags) Excluded() []Class {
	var out []Class
	if f.Block {
		out = append(out, BlockClass)
	}
	if f.Hole {
		out = append(out, HoleClass)
	}
	if f.Restricted {
		out = append(out, RestrictedClass)
	}
	return out
}

// Any reports whether at least one flag is set
func (f BlockFlags) Any() bool { return f.Block || f.Hole || f.Restricted }
