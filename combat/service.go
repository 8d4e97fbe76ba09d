package combat

import (
	"context"
	"errors"
	"fmt"

	"github.com/sghaida/dojo/storage"
	"go.uber.org/zap"
)

// SelectionKey is the store key holding the active Choice.
const SelectionKey = "type"

// ErrNotWired is returned when a Service is used before its dependencies are
// injected.
var ErrNotWired = errors.New("combat: service not wired")

// Service records which combatant is active and hands it back.
//
// Its fields are injected by the composition root; the zero value is not
// usable until Ninja, Samurai and Store are set. Logger is optional.
type Service struct {
	Ninja   *Ninja
	Samurai *Samurai
	Store   storage.Store
	Logger  *zap.Logger
}

func NewService() *Service { return &Service{} }

func (s *Service) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// ChooseCombatant stores choice as the active selection. Anything but
// ChoiceNinja or ChoiceSamurai fails with InvalidSelectionError and leaves
// the store untouched.
func (s *Service) ChooseCombatant(ctx context.Context, choice Choice) error {
	if !choice.Valid() {
		return InvalidSelectionError{Value: string(choice)}
	}
	if s.Store == nil {
		return fmt.Errorf("%w: missing store", ErrNotWired)
	}
	if err := s.Store.Set(ctx, SelectionKey, string(choice)); err != nil {
		return fmt.Errorf("store selection: %w", err)
	}
	s.log().Info("combatant chosen", zap.Stringer("choice", choice))
	return nil
}

// Selection returns the stored choice as-is; ok is false before the first
// ChooseCombatant.
func (s *Service) Selection(ctx context.Context) (choice Choice, ok bool, err error) {
	if s.Store == nil {
		return "", false, fmt.Errorf("%w: missing store", ErrNotWired)
	}
	v, ok, err := s.Store.Get(ctx, SelectionKey)
	if err != nil {
		return "", false, fmt.Errorf("read selection: %w", err)
	}
	return Choice(v), ok, nil
}

// GetCombatant returns the Ninja when the stored choice is ChoiceNinja and
// the Samurai otherwise, including when nothing has been chosen yet.
func (s *Service) GetCombatant(ctx context.Context) (Combatant, error) {
	if s.Ninja == nil || s.Samurai == nil {
		return nil, fmt.Errorf("%w: missing combatants", ErrNotWired)
	}
	choice, ok, err := s.Selection(ctx)
	if err != nil {
		return nil, err
	}
	if choice == ChoiceNinja {
		return s.Ninja, nil
	}
	if !ok {
		// TODO: decide whether an unselected service should report an error instead of falling back.
		s.log().Debug("no selection stored, falling back to samurai")
	}
	return s.Samurai, nil
}
