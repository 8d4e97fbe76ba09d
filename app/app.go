// Package app is the composition root: it builds the combatant graph, binds
// it into a di.Container and drives the demo scenario.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sghaida/dojo/combat"
	"github.com/sghaida/dojo/config"
	"github.com/sghaida/dojo/di"
	"github.com/sghaida/dojo/logging"
	"github.com/sghaida/dojo/storage"
	"go.uber.org/zap"
)

/*
Dependency keys
Recorded in each di.Service's Deps bag while wiring.
*/
const (
	DepKatana  di.DependencyKey = "katana"
	DepNinja   di.DependencyKey = "ninja"
	DepSamurai di.DependencyKey = "samurai"
	DepStore   di.DependencyKey = "store"
	DepLogger  di.DependencyKey = "logger"
)

/*
Binding keys
What the container answers for.
*/
const (
	KeyKatana           di.BindingKey = "Katana"
	KeyNinja            di.BindingKey = "Ninja"
	KeySamurai          di.BindingKey = "Samurai"
	KeyCombatantService di.BindingKey = "CombatantService"

	// KeyCombatantChoice resolves the active combatant through the service.
	KeyCombatantChoice di.BindingKey = "GetCombatantChoiceType"
	// KeyCurrentCombatant is derived from KeyCombatantChoice unchanged.
	KeyCurrentCombatant di.BindingKey = "CurrentCombatant"
)

// App owns the wired graph for one process.
type App struct {
	Container *di.Container
	Service   *combat.Service
	Logger    *zap.Logger

	closer io.Closer
}

// Build opens the configured store, wires the combatants and the selection
// service, and registers every binding.
func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)

	store, closer, err := storage.Open(ctx, cfg, logger.Named("storage"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	svc, err := wire(store, logger.Named("combat"))
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	c := di.NewContainer(di.WithLogger(logger.Named("di")))
	if err := bindAll(c, svc); err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("bind: %w", err)
	}

	logger.Debug("app built",
		zap.String("env", cfg.Env),
		zap.String("store", cfg.Store),
		zap.Int("bindings", len(c.Keys())),
	)
	return &App{Container: c, Service: svc.Value(), Logger: logger, closer: closer}, nil
}

// wire builds the object graph by hand. One Katana is shared by both
// variants; both variants, the store and the logger go into the service.
func wire(store storage.Store, logger *zap.Logger) (*di.Service[combat.Service], error) {
	katana := di.Init(combat.NewKatana)
	ninja := di.Init(combat.NewNinja)
	samurai := di.Init(combat.NewSamurai)
	storeSvc := di.Init(func() *storage.Store { return &store })
	loggerSvc := di.Init(func() *zap.Logger { return logger })
	svc := di.Init(combat.NewService)

	if _, err := ninja.With(di.Injecting(DepKatana, katana, func(n *combat.Ninja, k *combat.Katana) {
		n.Katana = k
	})); err != nil {
		return nil, fmt.Errorf("wire ninja: %w", err)
	}
	if _, err := samurai.With(di.Injecting(DepKatana, katana, func(s *combat.Samurai, k *combat.Katana) {
		s.Katana = k
	})); err != nil {
		return nil, fmt.Errorf("wire samurai: %w", err)
	}

	_, err := svc.WithAll(
		di.Injecting(DepNinja, ninja, func(s *combat.Service, n *combat.Ninja) { s.Ninja = n }),
		di.Injecting(DepSamurai, samurai, func(s *combat.Service, sa *combat.Samurai) { s.Samurai = sa }),
		di.Injecting(DepStore, storeSvc, func(s *combat.Service, st *storage.Store) { s.Store = *st }),
		di.Injecting(DepLogger, loggerSvc, func(s *combat.Service, l *zap.Logger) { s.Logger = l }),
	)
	if err != nil {
		return nil, fmt.Errorf("wire combat service: %w", err)
	}
	return svc, nil
}

func bindAll(c *di.Container, svc *di.Service[combat.Service]) error {
	s := svc.Value()
	ninja := di.MustGetAs[combat.Service, combat.Ninja](svc, DepNinja)
	samurai := di.MustGetAs[combat.Service, combat.Samurai](svc, DepSamurai)

	return errors.Join(
		di.BindConstant(c, KeyKatana, ninja.Katana),
		di.BindConstant(c, KeyNinja, ninja),
		di.BindConstant(c, KeySamurai, samurai),
		di.BindFactory(c, KeyCombatantService, di.Singleton, func(context.Context) (*combat.Service, error) {
			return s, nil
		}),
		// stage one: ask the service for whatever is selected right now
		di.BindDerived(c, KeyCombatantChoice, di.Transient, KeyCombatantService,
			func(ctx context.Context, svc *combat.Service) (combat.Combatant, error) {
				return svc.GetCombatant(ctx)
			}),
		// stage two: pass stage one through
		di.BindDerived(c, KeyCurrentCombatant, di.Transient, KeyCombatantChoice,
			func(_ context.Context, cb combat.Combatant) (combat.Combatant, error) {
				return cb, nil
			}),
	)
}

// Choose records choice as the active combatant.
func (a *App) Choose(ctx context.Context, choice combat.Choice) error {
	return a.Service.ChooseCombatant(ctx, choice)
}

// CurrentCombatant resolves the final derived binding. Each call re-reads the
// stored selection.
func (a *App) CurrentCombatant(ctx context.Context) (combat.Combatant, error) {
	return di.Resolve[combat.Combatant](ctx, a.Container, KeyCurrentCombatant)
}

// Close releases the store.
func (a *App) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
