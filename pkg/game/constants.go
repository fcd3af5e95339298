package game

// Control states
const (
	StateOff                = "OFF"
	StateWhiteTurn          = "WHITE_TURN"
	StateWhitePlays         = "WHITE_PLAYS"
	StateWhitePieceSelected = "WHITE_PIECE_SELECTED"
	StateBlackTurn          = "BLACK_TURN"
	StateBlackPlays         = "BLACK_PLAYS"
	StateBlackPieceSelected = "BLACK_PIECE_SELECTED"
	StateGameOver           = "GAME_OVER"
)

// Events
const (
	EventStart   = "START"
	EventClicked = "CLICKED"
)

// Command kinds
const (
	CommandRender    = "render"
	CommandMovePiece = "move_piece"
)

// Extended state fields
const (
	FieldDraggable      = "draggable"
	FieldTurn           = "turn"
	FieldWidth          = "width"
	FieldPosition       = "position"
	FieldWhitePiecesPos = "whitePiecesPos"
	FieldBlackPiecesPos = "blackPiecesPos"
	FieldPieceSquare    = "pieceSquare"
	FieldBoardStyle     = "boardStyle"
	FieldSquareStyles   = "squareStyles"
)

// Sides, as in the FEN active color field.
const (
	White = "w"
	Black = "b"
)

// HighlightColor is the background of the selected square.
const HighlightColor = "rgba(255, 255, 0, 0.4)"

// Opponent returns the other side.
func Opponent(side string) string {
	if side == White {
		return Black
	}
	return White
}
