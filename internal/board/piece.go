package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return "pnbrqk"[pt]
}

// IsPromotion reports whether a pawn may promote to pt.
func (pt PieceType) IsPromotion() bool {
	return pt == Knight || pt == Bishop || pt == Rook || pt == Queen
}

// PieceTypeFromChar converts a FEN letter of either case to a PieceType.
func PieceTypeFromChar(c byte) PieceType {
	switch c {
	case 'p', 'P':
		return Pawn
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	case 'k', 'K':
		return King
	default:
		return NoPieceType
	}
}

// PieceValue returns the material value of the piece type in pawns.
var PieceValue = [7]int{1, 3, 3, 5, 9, 0, 0}

// Piece is a piece standing on the board. Moved and MoveCount are
// bookkeeping for display and history; legality never reads them.
type Piece struct {
	Type      PieceType
	Color     Color
	Moved     bool
	MoveCount int
}

// NoPiece marks an empty square.
var NoPiece = Piece{Type: NoPieceType, Color: NoColor}

// NewPiece creates an unmoved Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece{Type: pt, Color: c}
}

// IsEmpty returns true if p is the empty-square sentinel.
func (p Piece) IsEmpty() bool {
	return p.Type >= NoPieceType
}

// Is reports whether p has the given type and color, ignoring move bookkeeping.
func (p Piece) Is(pt PieceType, c Color) bool {
	return p.Type == pt && p.Color == c
}

// Char returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) Char() byte {
	if p.IsEmpty() {
		return ' '
	}
	c := p.Type.Char()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

// String returns the FEN character for the piece.
func (p Piece) String() string {
	return string(p.Char())
}

// Unicode returns the chess glyph for the piece, or a middle dot when empty.
func (p Piece) Unicode() string {
	if p.IsEmpty() {
		return "·"
	}
	if p.Color == White {
		return [6]string{"♙", "♘", "♗", "♖", "♕", "♔"}[p.Type]
	}
	return [6]string{"♟", "♞", "♝", "♜", "♛", "♚"}[p.Type]
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	pt := PieceTypeFromChar(c)
	if pt == NoPieceType {
		return NoPiece
	}
	if c >= 'A' && c <= 'Z' {
		return NewPiece(pt, White)
	}
	return NewPiece(pt, Black)
}

// Value returns the material value of the piece.
func (p Piece) Value() int {
	return PieceValue[p.Type]
}
