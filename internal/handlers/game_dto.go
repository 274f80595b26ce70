package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type NewGameDTO struct {
	Difficulty string `schema:"difficulty"`
	Width      int    `schema:"width"`
	Height     int    `schema:"height"`
	MineCount  int    `schema:"mine_count"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// Params resolves the requested board. A difficulty wins over explicit
// dimensions; with neither the game is easy.
func (dto NewGameDTO) Params() (params mines.GameParams, label string, err error) {
	switch {
	case dto.Difficulty != "":
		d, err := mines.ParseDifficulty(dto.Difficulty)
		if err != nil {
			return params, "", err
		}
		return d.Params(), d.String(), nil
	case dto.Width != 0 || dto.Height != 0 || dto.MineCount != 0:
		params = mines.GameParams{
			Width:     dto.Width,
			Height:    dto.Height,
			MineCount: dto.MineCount,
		}
		return params, "custom", params.Validate()
	default:
		return mines.Easy.Params(), mines.Easy.String(), nil
	}
}

var ErrBadButton = errors.New("button must be one of 'left', 'right'")

type ClickDTO struct {
	Index  int    `schema:"index,required"`
	Button string `schema:"button"`
}

func ParseClickDTO(src map[string][]string) (ClickDTO, error) {
	var dto ClickDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (dto ClickDTO) IsLeftClick() (bool, error) {
	switch strings.ToLower(dto.Button) {
	case "", "left":
		return true, nil
	case "right":
		return false, nil
	default:
		return false, fmt.Errorf("%w, got %q", ErrBadButton, dto.Button)
	}
}

type GameSessionDTO struct {
	GameSessionId  string     `json:"game_session_id"`
	Difficulty     string     `json:"difficulty"`
	Grid           mines.Grid `json:"grid"`
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	MineCount      int        `json:"mine_count"`
	RemainingMines int        `json:"remaining_mines"`
	State          string     `json:"state"`
	Dead           bool       `json:"dead"`
	Won            bool       `json:"won"`
	StartedAt      int64      `json:"started_at"`
	EndedAt        *int64     `json:"ended_at,omitempty"`
	Token          string     `json:"token,omitempty"`
	Error          string     `json:"error,omitempty"`
}

func NewGameSessionDTO(snap session.Snapshot) *GameSessionDTO {
	var endedAt *int64
	if snap.EndedAt != nil {
		e := snap.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId:  snap.ID,
		Difficulty:     snap.Label,
		Grid:           snap.Grid,
		Width:          snap.Width,
		Height:         snap.Height,
		MineCount:      snap.MineCount,
		RemainingMines: snap.RemainingMines,
		State:          snap.State.String(),
		Dead:           snap.State == mines.Lost,
		Won:            snap.State == mines.Won,
		StartedAt:      snap.StartedAt.UnixMilli(),
		EndedAt:        endedAt,
	}
}
