package tag

import "testing"

func TestParseAndString(t *testing.T) {
	tg, ok := Parse(" Enemy_HitBox ")
	if !ok || tg != EnemyHitBox {
		t.Errorf("Expected enemy_hitbox, got %v %v", tg, ok)
	}
	if _, ok := Parse("dragon"); ok {
		t.Error("Expected unknown name to fail")
	}
	if Tag(99).String() != "unknown" || Shield.String() != "shield" {
		t.Error("Unexpected tag names")
	}
}

func TestSetOrderAndDedup(t *testing.T) {
	s := Of(Enemy, Destructible, Enemy, Shield)
	if len(s) != 3 || s.IndexOf(Shield) != 2 {
		t.Errorf("Expected deduplicated ordered set, got %s", s)
	}

	w := s.With(Player)
	if len(s) != 3 || len(w) != 4 {
		t.Error("Expected With to leave the receiver untouched")
	}
	if len(w.With(Player)) != 4 {
		t.Error("Expected With to ignore a present tag")
	}

	c := s.Clone()
	c[0] = Ground
	if s[0] != Enemy {
		t.Error("Expected Clone to be independent")
	}
	if Set(nil).Clone() != nil {
		t.Error("Expected nil clone of nil set")
	}
	if s.String() != "[enemy,destructible,shield]" {
		t.Errorf("Unexpected set string %s", s)
	}
}

func TestParseSetReportsUnknown(t *testing.T) {
	s, bad, ok := ParseSet([]string{"enemy", "player", "enemy"})
	if !ok || len(s) != 2 || s[1] != Player {
		t.Errorf("Expected [enemy,player], got %s", s)
	}
	if _, bad, ok = ParseSet([]string{"enemy", "ghost"}); ok || bad != "ghost" {
		t.Errorf("Expected ghost reported, got %q", bad)
	}
}

func TestMask(t *testing.T) {
	m := Of(Enemy, StaticObstacle).Mask()
	if !m.Has(Enemy) || !m.Has(StaticObstacle) || m.Has(Player) {
		t.Error("Unexpected mask membership")
	}
	if !MaskAll.Has(Ground) {
		t.Error("Expected MaskAll to match every layer")
	}
}

func TestHolder(t *testing.T) {
	h := NewHolder(EnemyHitBox, Destructible)
	if h.Parent(7) != 7 {
		t.Error("Expected self as parent by default")
	}
	h.WithParent(3)
	if h.Parent(7) != 3 {
		t.Error("Expected custom parent")
	}

	if !h.HasAny(Of(Player, Destructible)) || h.HasAny(nil) {
		t.Error("Unexpected HasAny result")
	}
	var none *Holder
	if none.HasAny(Of(Enemy)) || none.FirstIndex(Of(Enemy)) != -1 {
		t.Error("Expected nil holder to match nothing")
	}
	if i := h.FirstIndex(Of(Player, Destructible, EnemyHitBox)); i != 1 {
		t.Errorf("Expected first priority match at 1, got %d", i)
	}

	h.Replace(EnemyHitBox, PlayerHitBox)
	h.Replace(Ground, Enemy)
	if !h.Has(PlayerHitBox) || h.Has(EnemyHitBox) || h.Has(Enemy) {
		t.Errorf("Unexpected tags after replace: %s", h.Tags())
	}
}
