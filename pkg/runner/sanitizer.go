package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/gambit/pkg/adapters/chessengine"
	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/game"
)

var (
	// DefaultMaxInputSize bounds one input line.
	DefaultMaxInputSize = 256
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "GAMBIT_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput enforces the size limit, validates UTF-8 and strips control
// characters (ANSI escapes, NUL, BEL) so they reach neither logs nor the terminal.
func SanitizeInput(input string) (string, error) {
	limit := maxInputSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && r != '\t' {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || r == '\t' {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}

// ParseLine reads one line of a game script. A square ("e2", "E2") is a click;
// "start" starts the game; "e2e4", "e2-e4" or "e2 e4" are two clicks.
func ParseLine(line string) ([]domain.Event, error) {
	clean, err := SanitizeInput(line)
	if err != nil {
		return nil, err
	}
	word := strings.ToLower(strings.TrimSpace(clean))
	switch {
	case word == "start":
		return []domain.Event{domain.NewEvent(game.EventStart, nil)}, nil
	case chessengine.ValidSquare(word):
		return []domain.Event{domain.NewEvent(game.EventClicked, word)}, nil
	}

	move := strings.NewReplacer("-", "", " ", "").Replace(word)
	if len(move) == 4 && chessengine.ValidSquare(move[:2]) && chessengine.ValidSquare(move[2:]) {
		return []domain.Event{
			domain.NewEvent(game.EventClicked, move[:2]),
			domain.NewEvent(game.EventClicked, move[2:]),
		}, nil
	}
	return nil, fmt.Errorf("expected a square or a move, got %q", word)
}
