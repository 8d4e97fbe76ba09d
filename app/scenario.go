package app

import (
	"context"
	"fmt"
	"io"

	"github.com/sghaida/dojo/combat"
)

// step is one round of the demo: choose, resolve, report.
type step struct {
	choice combat.Choice
	label  string
	want   combat.Stats
}

var demo = []step{
	{choice: combat.ChoiceNinja, label: "Ninja", want: combat.Stats{Power: 5, Stealth: 10}},
	{choice: combat.ChoiceSamurai, label: "Samurai", want: combat.Stats{Power: 10, Stealth: 5}},
}

// Run chooses the Ninja then the Samurai, resolving the current combatant
// after each choice and writing one line per round to w.
func (a *App) Run(ctx context.Context, w io.Writer) error {
	for _, st := range demo {
		if err := a.Choose(ctx, st.choice); err != nil {
			return fmt.Errorf("choose %s: %w", st.choice, err)
		}
		c, err := a.CurrentCombatant(ctx)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", st.choice, err)
		}
		if _, err := fmt.Fprintf(w, "Expected %s with power=%d;stealth=%d. Actual: power=%d;stealth=%d\n",
			st.label, st.want.Power, st.want.Stealth, c.Power(), c.Stealth()); err != nil {
			return err
		}
	}
	return nil
}

// Describe writes the current combatant's stats as a single line.
func (a *App) Describe(ctx context.Context, w io.Writer) error {
	c, err := a.CurrentCombatant(ctx)
	if err != nil {
		return err
	}
	st := combat.StatsOf(c)
	_, err = fmt.Fprintf(w, "power=%d;stealth=%d;damage=%d\n", st.Power, st.Stealth, st.Damage)
	return err
}
