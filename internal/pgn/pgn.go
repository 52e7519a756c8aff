package pgn

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/game"
)

// Tags holds PGN header tags by name.
type Tags map[string]string

// roster is the Seven Tag Roster in its required order.
var roster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

const lineWidth = 80

// DefaultTags returns the header used when the caller supplies none.
func DefaultTags(white, black string) Tags {
	return Tags{
		"Event": "Casual Game",
		"Site":  "Terminal",
		"Date":  time.Now().Format("2006.01.02"),
		"Round": "1",
		"White": white,
		"Black": black,
	}
}

// Write writes st as a single PGN game. The Result tag always reflects the
// game, and SetUp/FEN tags are added when it did not start from the
// standard position.
func Write(w io.Writer, st *game.State, tags Tags) error {
	header := make(Tags, len(tags)+3)
	for k, v := range DefaultTags("?", "?") {
		header[k] = v
	}
	for k, v := range tags {
		header[k] = v
	}
	header["Result"] = st.Result()
	if st.StartFEN() != board.StartFEN {
		header["SetUp"] = "1"
		header["FEN"] = st.StartFEN()
	} else {
		delete(header, "SetUp")
		delete(header, "FEN")
	}

	bw := bufio.NewWriter(w)
	for _, k := range orderedKeys(header) {
		fmt.Fprintf(bw, "[%s %s]\n", k, strconv.Quote(header[k]))
	}
	bw.WriteString("\n")

	movetext, err := Movetext(st)
	if err != nil {
		return err
	}
	bw.WriteString(wrap(movetext, lineWidth))
	bw.WriteString("\n\n")
	return bw.Flush()
}

// Movetext returns the numbered SAN moves followed by the result.
func Movetext(st *game.State) (string, error) {
	sans, err := MovesToSAN(st.StartFEN(), st.History())
	if err != nil {
		return "", err
	}

	start, err := board.ParseFEN(st.StartFEN())
	if err != nil {
		return "", err
	}
	number := start.FullMoveNumber
	color := start.SideToMove

	var tokens []string
	for i, san := range sans {
		switch {
		case color == board.White:
			tokens = append(tokens, fmt.Sprintf("%d.", number))
		case i == 0:
			tokens = append(tokens, fmt.Sprintf("%d...", number))
		}
		tokens = append(tokens, san)
		if color == board.Black {
			number++
		}
		color = color.Other()
	}
	tokens = append(tokens, st.Result())
	return strings.Join(tokens, " "), nil
}

func orderedKeys(tags Tags) []string {
	keys := make([]string, 0, len(tags))
	for _, k := range roster {
		if _, ok := tags[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range tags {
		if !slices.Contains(roster, k) && k != "SetUp" && k != "FEN" {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	for _, k := range []string{"SetUp", "FEN"} {
		if _, ok := tags[k]; ok {
			keys = append(keys, k)
		}
	}
	return append(keys, extra...)
}

// wrap breaks text at spaces so no line exceeds width.
func wrap(text string, width int) string {
	var sb strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		if i > 0 {
			if lineLen+1+len(word) > width {
				sb.WriteByte('\n')
				lineLen = 0
			} else {
				sb.WriteByte(' ')
				lineLen++
			}
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}

// Read parses the first game in r and replays it.
func Read(r io.Reader) (*game.State, Tags, error) {
	tags := make(Tags)
	var movetext strings.Builder

	scanner := bufio.NewScanner(r)
	inMoves := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			if inMoves && line == "" && movetext.Len() > 0 {
				break
			}
			continue
		}
		if !inMoves && strings.HasPrefix(line, "[") {
			k, v, err := parseTag(line)
			if err != nil {
				return nil, nil, err
			}
			tags[k] = v
			continue
		}
		inMoves = true
		movetext.WriteString(line)
		movetext.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	startFEN := board.StartFEN
	if fen, ok := tags["FEN"]; ok {
		startFEN = fen
	}
	st, err := game.FromFEN(startFEN)
	if err != nil {
		return nil, nil, err
	}

	for _, token := range moveTokens(movetext.String()) {
		m, err := ParseSAN(st, token)
		if err != nil {
			return nil, nil, err
		}
		if err := st.MakeMove(m.From, m.To, m.Promotion); err != nil {
			return nil, nil, fmt.Errorf("move %q: %w", token, err)
		}
	}
	return st, tags, nil
}

// parseTag splits a line like [White "Magnus"] into name and value.
func parseTag(line string) (string, string, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
	name, quoted, ok := strings.Cut(inner, " ")
	if !ok {
		return "", "", fmt.Errorf("malformed tag %q", line)
	}
	value, err := strconv.Unquote(strings.TrimSpace(quoted))
	if err != nil {
		return "", "", fmt.Errorf("malformed tag %q: %w", line, err)
	}
	return name, value, nil
}

// moveTokens strips comments, variations, move numbers, annotations and
// the result from movetext, leaving only SAN moves.
func moveTokens(text string) []string {
	var clean strings.Builder
	depth := 0
	inComment := false
	inLineComment := false
	for _, c := range text {
		switch {
		case inLineComment:
			if c == '\n' {
				inLineComment = false
				clean.WriteByte(' ')
			}
		case inComment:
			if c == '}' {
				inComment = false
			}
		case c == '{':
			inComment = true
		case c == ';':
			inLineComment = true
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case depth > 0:
		default:
			clean.WriteRune(c)
		}
	}

	var tokens []string
	for _, tok := range strings.Fields(clean.String()) {
		switch tok {
		case "1-0", "0-1", "1/2-1/2", "*":
			continue
		}
		// Drop a leading move number such as "12." or "12..."
		if i := strings.IndexByte(tok, '.'); i > 0 && strings.Trim(tok[:i], "0123456789") == "" {
			tok = strings.TrimLeft(tok[i:], ".")
		}
		if tok == "" || strings.HasPrefix(tok, "$") {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
