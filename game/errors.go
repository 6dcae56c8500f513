package game

import "github.com/pkg/errors"

var (
	ErrOutOfBounds            = errors.New("coordinate out of bounds")
	ErrOccupied               = errors.New("cell already occupied")
	ErrEmptyCell              = errors.New("cell holds no stone")
	ErrInvalidStone           = errors.New("invalid stone")
	ErrNoHistory              = errors.New("no move to undo")
	ErrGameFinished           = errors.New("game already finished")
	ErrUnknownSkill           = errors.New("unknown skill")
	ErrInvalidSkillActivation = errors.New("invalid skill activation")
)
