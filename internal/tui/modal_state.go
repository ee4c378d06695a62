package tui

import (
	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/models"
)

// ModalType names the dialog that is open.
type ModalType int

const (
	ModalActivate ModalType = iota
	ModalReset
	ModalAlert
)

// ModalAction tells the dashboard what a key did to the open modal.
type ModalAction int

const (
	ActionNone ModalAction = iota
	ActionConfirm
	ActionCancel
)

// ModalState is a blocking dialog. While one is open no dashboard key
// reaches the engine.
type ModalState interface {
	Type() ModalType
	Title() string
	Body() string
	Buttons() string
	HandleKey(key string) ModalAction
}

type ActivateState struct{}

func (s *ActivateState) Type() ModalType { return ModalActivate }
func (s *ActivateState) Title() string   { return "Activate service" }
func (s *ActivateState) Body() string    { return config.ActivatePrompt }
func (s *ActivateState) Buttons() string { return "[y] yes   [n] no" }
func (s *ActivateState) HandleKey(key string) ModalAction {
	return yesNo(key)
}

type ResetState struct{}

func (s *ResetState) Type() ModalType { return ModalReset }
func (s *ResetState) Title() string   { return "Reset everything" }
func (s *ResetState) Body() string {
	return "Stop the service and empty every tank?"
}
func (s *ResetState) Buttons() string { return "[y] yes   [n] no" }
func (s *ResetState) HandleKey(key string) ModalAction {
	return yesNo(key)
}

// AlertState shows one pending alarm or filter confirmation. It has a single
// button, so every dismissal acknowledges it.
type AlertState struct {
	Prompt models.Prompt
}

func (s *AlertState) Type() ModalType { return ModalAlert }
func (s *AlertState) Title() string   { return s.Prompt.Title }
func (s *AlertState) Body() string    { return s.Prompt.Message }
func (s *AlertState) Buttons() string { return "[enter] " + s.Prompt.Button }
func (s *AlertState) HandleKey(key string) ModalAction {
	switch key {
	case "enter", " ", "esc", "o":
		return ActionConfirm
	}
	return ActionNone
}

func yesNo(key string) ModalAction {
	switch key {
	case "y", "Y", "enter":
		return ActionConfirm
	case "n", "N", "esc":
		return ActionCancel
	}
	return ActionNone
}
