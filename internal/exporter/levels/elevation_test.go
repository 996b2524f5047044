package levels

import "testing"

func TestFromIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"plan_3.50.dxf", 3.50},
		{"plan_0.0.dxf", 0.0},
		{"plan_-2.80.dxf", -2.80},
		{"plan_3.dxf", 3.0},
		{"/some/dir/plan_3.50.dxf", 3.50},
		// без расширения точка внутри числа срабатывает как разделитель
		// второго паттерна, десятичная часть теряется
		{"floor_2.80", 2.0},
		{"floor_5", 5.0},
		{"groundfloor.dxf", 0.0},
		{"plan", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromIdentifier(tt.name); got != tt.want {
				t.Errorf("FromIdentifier(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestFromIdentifierAmbiguousTakesFirstMatch(t *testing.T) {
	// оба числа подходят, берется первое совпадение без валидации
	got := FromIdentifier("level_2.5_copy_7.0.dxf")
	if got != 2.5 {
		t.Errorf("got %v, want 2.5", got)
	}
}

func TestStoreyName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plan_3.50.dxf", "plan_3.50"},
		{"/dir/plan_0.0.dxf", "plan_0.0"},
		{"diagram", "diagram"},
	}
	for _, tt := range tests {
		if got := StoreyName(tt.in); got != tt.want {
			t.Errorf("StoreyName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
