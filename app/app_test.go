package app

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sghaida/dojo/combat"
	"github.com/sghaida/dojo/config"
	"github.com/sghaida/dojo/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func buildTestApp(t *testing.T, cfg config.Config) *App {
	t.Helper()

	a, err := Build(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func currentStats(t *testing.T, a *App) combat.Stats {
	t.Helper()

	c, err := a.CurrentCombatant(context.Background())
	require.NoError(t, err)
	return combat.StatsOf(c)
}

//
// -----------------------------------------------------------------------------
// Scenarios
// -----------------------------------------------------------------------------

func TestScenarios(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		choices []combat.Choice
		want    combat.Stats
	}{
		{name: "ninja", choices: []combat.Choice{combat.ChoiceNinja}, want: combat.Stats{Power: 5, Stealth: 10, Damage: 10}},
		{name: "samurai", choices: []combat.Choice{combat.ChoiceSamurai}, want: combat.Stats{Power: 10, Stealth: 5, Damage: 10}},
		{name: "no prior choice", choices: nil, want: combat.Stats{Power: 10, Stealth: 5, Damage: 10}},
		{
			name:    "last write wins",
			choices: []combat.Choice{combat.ChoiceNinja, combat.ChoiceSamurai},
			want:    combat.Stats{Power: 10, Stealth: 5, Damage: 10},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := buildTestApp(t, config.Default())
			for _, ch := range tc.choices {
				require.NoError(t, a.Choose(context.Background(), ch))
			}

			if diff := cmp.Diff(tc.want, currentStats(t, a)); diff != "" {
				t.Fatalf("current combatant mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChainedResolutionMatchesDirect(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := buildTestApp(t, config.Default())

	for _, ch := range []combat.Choice{combat.ChoiceSamurai, combat.ChoiceNinja, combat.ChoiceNinja, combat.ChoiceSamurai} {
		require.NoError(t, a.Choose(ctx, ch))

		direct, err := a.Service.GetCombatant(ctx)
		require.NoError(t, err)
		stageOne, err := di.Resolve[combat.Combatant](ctx, a.Container, KeyCombatantChoice)
		require.NoError(t, err)
		chained, err := a.CurrentCombatant(ctx)
		require.NoError(t, err)

		assert.Same(t, direct, stageOne)
		assert.Same(t, direct, chained)
	}
}

func TestRun_Output(t *testing.T) {
	t.Parallel()

	a := buildTestApp(t, config.Default())

	var out bytes.Buffer
	require.NoError(t, a.Run(context.Background(), &out))

	want := "Expected Ninja with power=5;stealth=10. Actual: power=5;stealth=10\n" +
		"Expected Samurai with power=10;stealth=5. Actual: power=10;stealth=5\n"
	assert.Equal(t, want, out.String())
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	a := buildTestApp(t, config.Default())
	require.NoError(t, a.Choose(context.Background(), combat.ChoiceNinja))

	var out bytes.Buffer
	require.NoError(t, a.Describe(context.Background(), &out))
	assert.Equal(t, "power=5;stealth=10;damage=10\n", out.String())
}

//
// -----------------------------------------------------------------------------
// Wiring
// -----------------------------------------------------------------------------

func TestBuild_Bindings(t *testing.T) {
	t.Parallel()

	a := buildTestApp(t, config.Default())

	assert.Equal(t, []di.BindingKey{
		KeyCombatantService,
		KeyCurrentCombatant,
		KeyCombatantChoice,
		KeyKatana,
		KeyNinja,
		KeySamurai,
	}, a.Container.Keys())
}

func TestBuild_SharedKatanaAndSingletonService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := buildTestApp(t, config.Default())

	katana, err := di.Resolve[*combat.Katana](ctx, a.Container, KeyKatana)
	require.NoError(t, err)
	assert.Equal(t, combat.DefaultKatanaDamage, katana.Damage)
	assert.Same(t, katana, a.Service.Ninja.Weapon())
	assert.Same(t, katana, a.Service.Samurai.Weapon())

	svc, err := di.Resolve[*combat.Service](ctx, a.Container, KeyCombatantService)
	require.NoError(t, err)
	assert.Same(t, a.Service, svc)

	ninja, err := di.Resolve[*combat.Ninja](ctx, a.Container, KeyNinja)
	require.NoError(t, err)
	assert.Same(t, a.Service.Ninja, ninja)
}

func TestWire_RecordsDeps(t *testing.T) {
	t.Parallel()

	svc, err := wire(nil, zaptest.NewLogger(t))
	require.NoError(t, err)

	for _, k := range []di.DependencyKey{DepNinja, DepSamurai, DepStore, DepLogger} {
		assert.True(t, svc.Has(k), "missing dep %s", k)
	}
	assert.False(t, svc.Has(DepKatana))
}

func TestBuild_SQLiteSelectionSurvivesRestart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := config.Default()
	cfg.Store = config.StoreSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "dojo.db")

	first, err := Build(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, first.Choose(ctx, combat.ChoiceNinja))
	require.NoError(t, first.Close())

	second := buildTestApp(t, cfg)
	assert.Equal(t, combat.Stats{Power: 5, Stealth: 10, Damage: 10}, currentStats(t, second))
}

func TestBuild_BadStore(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Store = "redis"

	_, err := Build(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open store")
}

func TestChoose_Invalid(t *testing.T) {
	t.Parallel()

	a := buildTestApp(t, config.Default())
	require.NoError(t, a.Choose(context.Background(), combat.ChoiceNinja))

	err := a.Choose(context.Background(), combat.Choice("ronin"))
	assert.ErrorAs(t, err, &combat.InvalidSelectionError{})
	assert.Equal(t, combat.Stats{Power: 5, Stealth: 10, Damage: 10}, currentStats(t, a))
}
