// Package aa maps amino-acid letters to compact residue codes.
//
// Codes 0..25 are the letters A..Z. B, J, Z and X are ambiguous and resolve
// to a fixed set of concrete residues; every other letter is concrete.
// Anything that is not a letter maps to Invalid.
package aa

// AA is a residue code. The zero value is 'A'.
type AA uint8

// Alphabet is the number of letter slots.
const Alphabet = 26

// Invalid is returned for characters outside A-Z/a-z.
const Invalid AA = 0xff

var (
	codes       [256]AA
	resolutions [Alphabet]uint32 // bit i set => concrete code i
)

func init() {
	for i := range codes {
		codes[i] = Invalid
	}
	for c := 'A'; c <= 'Z'; c++ {
		codes[c] = AA(c - 'A')
		codes[c+'a'-'A'] = AA(c - 'A')
	}

	var concrete uint32
	for c := byte('A'); c <= 'Z'; c++ {
		switch c {
		case 'B', 'J', 'Z', 'X':
		default:
			concrete |= bit(c)
		}
	}
	resolutions['B'-'A'] = bit('D') | bit('N')
	resolutions['J'-'A'] = bit('I') | bit('L')
	resolutions['Z'-'A'] = bit('E') | bit('Q')
	resolutions['X'-'A'] = concrete
}

func bit(c byte) uint32 { return 1 << (c - 'A') }

// FromByte returns the code for c, or Invalid.
func FromByte(c byte) AA { return codes[c] }

// IsValid reports whether a is one of the 26 letter codes.
func (a AA) IsValid() bool { return a < Alphabet }

// IsAmbiguous reports whether a stands for more than one concrete residue.
func (a AA) IsAmbiguous() bool { return a.IsValid() && resolutions[a] != 0 }

// Byte returns the upper-case letter for a, or '?' for Invalid.
func (a AA) Byte() byte {
	if !a.IsValid() {
		return '?'
	}
	return 'A' + byte(a)
}

func (a AA) String() string { return string(a.Byte()) }

// Resolves reports whether the ambiguous code a can stand for n.
// It is false for concrete a.
func (a AA) Resolves(n AA) bool {
	if !a.IsValid() || !n.IsValid() {
		return false
	}
	return resolutions[a]&(1<<n) != 0
}

// Resolutions returns the concrete codes a stands for, in code order.
// Concrete codes return nil.
func (a AA) Resolutions() []AA {
	if !a.IsAmbiguous() {
		return nil
	}
	out := make([]AA, 0, Alphabet)
	for i := AA(0); i < Alphabet; i++ {
		if resolutions[a]&(1<<i) != 0 {
			out = append(out, i)
		}
	}
	return out
}

// Equivalent reports whether haystack code h may stand for needle code n:
// either they are identical, or h is ambiguous and resolves to n.
// The relation is directional; an ambiguous n never expands.
func Equivalent(h, n AA) bool {
	if !h.IsValid() || !n.IsValid() {
		return false
	}
	return h == n || h.Resolves(n)
}

// Parse converts s to codes. It returns the index of the first invalid
// character, or -1 when every character is valid.
func Parse(s string) ([]AA, int) {
	out := make([]AA, len(s))
	for i := 0; i < len(s); i++ {
		c := codes[s[i]]
		if c == Invalid {
			return nil, i
		}
		out[i] = c
	}
	return out, -1
}
