package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero uses fallback", 0, DefaultHistoryLimit},
		{"negative uses fallback", -5, DefaultHistoryLimit},
		{"in range passes through", 25, 25},
		{"over max is capped", MaxHistoryLimit + 1, MaxHistoryLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeLimit(tc.limit, DefaultHistoryLimit, MaxHistoryLimit)
			if got != tc.want {
				t.Fatalf("NormalizeLimit(%d) = %d, want %d", tc.limit, got, tc.want)
			}
		})
	}
}
