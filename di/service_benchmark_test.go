package di_test

import (
	"context"
	"testing"

	"github.com/sghaida/dojo/di"
)

/*
   Shared helpers (NOT counted in benchmarks)
*/

func newBenchBlade() *di.Service[blade] {
	return di.Init(func() *blade { return &blade{Edge: 10} })
}

func newBenchArmor() *di.Service[armor] {
	return di.Init(func() *armor { return &armor{Weight: 3} })
}

/*
   Benchmarks
*/

func BenchmarkInit(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = newWarrior()
	}
}

func BenchmarkWithAll_TwoDependencies(b *testing.B) {
	injBlade := di.Injecting(bladeKey, newBenchBlade(), bindBlade)
	injArmor := di.Injecting(armorKey, newBenchArmor(), bindArmor)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := newWarrior()
		_, _ = w.WithAll(injBlade, injArmor)
	}
}

func BenchmarkTryGetAs_Missing(b *testing.B) {
	w := newWarrior()
	missing := di.Key("missing")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = di.TryGetAs[warrior, blade](w, missing)
	}
}

func BenchmarkResolve_Constant(b *testing.B) {
	c := di.NewContainer()
	if err := di.BindConstant(c, keyBlade, &blade{Edge: 10}); err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = di.Resolve[*blade](ctx, c, keyBlade)
	}
}

func BenchmarkResolve_TwoStageDerived(b *testing.B) {
	c := di.NewContainer()
	must := func(err error) {
		if err != nil {
			b.Fatal(err)
		}
	}
	must(di.BindConstant(c, keyCounter, &brawler{power: 5}))
	must(di.BindDerived(c, keyStage1, di.Transient, keyCounter,
		func(_ context.Context, br *brawler) (fighter, error) { return br, nil }))
	must(di.BindDerived(c, keyStage2, di.Transient, keyStage1,
		func(_ context.Context, f fighter) (fighter, error) { return f, nil }))
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = di.Resolve[fighter](ctx, c, keyStage2)
	}
}
