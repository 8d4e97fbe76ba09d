package combat

// DefaultKatanaDamage is the damage of every Katana built by NewKatana.
const DefaultKatanaDamage = 10

// Katana is the weapon shared by both combatants.
type Katana struct {
	Damage int
}

func NewKatana() *Katana { return &Katana{Damage: DefaultKatanaDamage} }

// Combatant is what the selection service hands out.
type Combatant interface {
	Stealth() int
	Power() int
	Weapon() *Katana
}

// Ninja trades power for stealth.
type Ninja struct {
	Katana *Katana
}

func NewNinja() *Ninja { return &Ninja{} }

func (*Ninja) Stealth() int      { return 10 }
func (*Ninja) Power() int        { return 5 }
func (n *Ninja) Weapon() *Katana { return n.Katana }

// Samurai trades stealth for power.
type Samurai struct {
	Katana *Katana
}

func NewSamurai() *Samurai { return &Samurai{} }

func (*Samurai) Stealth() int      { return 5 }
func (*Samurai) Power() int        { return 10 }
func (s *Samurai) Weapon() *Katana { return s.Katana }

// Stats is a point-in-time copy of a combatant's attributes.
type Stats struct {
	Stealth int
	Power   int
	Damage  int
}

// StatsOf snapshots c. A combatant without a weapon reports zero damage.
func StatsOf(c Combatant) Stats {
	st := Stats{Stealth: c.Stealth(), Power: c.Power()}
	if k := c.Weapon(); k != nil {
		st.Damage = k.Damage
	}
	return st
}
