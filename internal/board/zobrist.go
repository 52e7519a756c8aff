package board

// Zobrist keys for position signatures.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [2][6][64]uint64 // [Color][PieceType][Square]
	zobristEnPassant  [8]uint64        // One per file
	zobristCastling   [16]uint64       // All 16 castling combinations
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// Signature returns a hash identifying the position for repetition
// purposes: piece placement, side to move, castling rights and the en
// passant square. The move clocks and per-piece move counts are not
// part of it.
func (b *Board) Signature() uint64 {
	var sig uint64
	for sq := A1; sq <= H8; sq++ {
		p := b.squares[sq]
		if p.IsEmpty() {
			continue
		}
		sig ^= zobristPiece[p.Color][p.Type][sq]
	}

	if b.SideToMove == Black {
		sig ^= zobristSideToMove
	}
	sig ^= zobristCastling[b.CastlingRights&AllCastling]
	if b.EnPassant.IsValid() {
		sig ^= zobristEnPassant[b.EnPassant.File()]
	}
	return sig
}
