package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Promotions count once per promotion piece.
func (b *Board) Perft(depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}

	moves, err := b.LegalMoveList()
	if err != nil {
		return 0, err
	}
	if depth == 1 {
		return uint64(len(moves)), nil
	}

	var nodes uint64
	for _, m := range moves {
		child := *b
		child.applyMove(m.From, m.To, m.Promotion)
		n, err := child.Perft(depth - 1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// Divide returns the perft count below each root move.
func (b *Board) Divide(depth int) (map[Move]uint64, error) {
	moves, err := b.LegalMoveList()
	if err != nil {
		return nil, err
	}

	counts := make(map[Move]uint64, len(moves))
	for _, m := range moves {
		child := *b
		child.applyMove(m.From, m.To, m.Promotion)
		n, err := child.Perft(depth - 1)
		if err != nil {
			return nil, err
		}
		counts[m] = n
	}
	return counts, nil
}
