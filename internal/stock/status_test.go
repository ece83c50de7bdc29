package stock

import "testing"

func TestEvaluate_Thresholds(t *testing.T) {
	// minLevel = 10: critique <= 5, bas <= 10, OK au-dessus
	if got := Evaluate(5, 10); got != StatusCritical {
		t.Errorf("Evaluate(5, 10) = %s, attendu CRITICAL", got)
	}
	if got := Evaluate(5.01, 10); got != StatusLow {
		t.Errorf("Evaluate(5.01, 10) = %s, attendu LOW", got)
	}
	if got := Evaluate(10, 10); got != StatusLow {
		t.Errorf("Evaluate(10, 10) = %s, attendu LOW", got)
	}
	if got := Evaluate(10.5, 10); got != StatusOK {
		t.Errorf("Evaluate(10.5, 10) = %s, attendu OK", got)
	}
	if got := Evaluate(0, 10); got != StatusCritical {
		t.Errorf("Evaluate(0, 10) = %s, attendu CRITICAL", got)
	}
}

func TestEvaluate_ZeroMinLevel(t *testing.T) {
	// Pas de seuil: OK sauf stock épuisé
	if got := Evaluate(3, 0); got != StatusOK {
		t.Errorf("Evaluate(3, 0) = %s, attendu OK", got)
	}
	if got := Evaluate(0, 0); got != StatusCritical {
		t.Errorf("Evaluate(0, 0) = %s, attendu CRITICAL", got)
	}
}

func TestEvaluate_Monotonic(t *testing.T) {
	// Une quantité qui baisse ne doit jamais améliorer le statut
	rank := map[Status]int{StatusOK: 0, StatusLow: 1, StatusCritical: 2}

	minLevel := 8.0
	prev := Evaluate(20, minLevel)
	for q := 20.0; q >= 0; q -= 0.25 {
		cur := Evaluate(q, minLevel)
		if rank[cur] < rank[prev] {
			t.Fatalf("statut amélioré en baissant la quantité: %s -> %s à q=%v", prev, cur, q)
		}
		prev = cur
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		if Evaluate(7.5, 10) != Evaluate(7.5, 10) {
			t.Fatal("Evaluate non déterministe pour des entrées identiques")
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(50, 200); got != 25 {
		t.Errorf("Percent(50, 200) = %v, attendu 25", got)
	}
	if got := Percent(300, 200); got != 100 {
		t.Errorf("Percent(300, 200) = %v, attendu 100 (borné)", got)
	}
	if got := Percent(10, 0); got != 0 {
		t.Errorf("Percent(10, 0) = %v, attendu 0", got)
	}
	if got := Percent(-5, 100); got != 0 {
		t.Errorf("Percent(-5, 100) = %v, attendu 0", got)
	}
}
