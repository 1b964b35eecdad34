package points

import "testing"

func TestAward_StandardTable(t *testing.T) {
	t.Parallel()

	want := map[int]int{1: 5, 2: 4, 3: 3, 4: 2, 5: 1}
	for placement, points := range want {
		if got := Award(placement, 1, true); got != points {
			t.Errorf("Award(%d, 1, true) = %d, want %d", placement, got, points)
		}
	}
}

func TestAward_PlacementsBeyondFifthEarnNothing(t *testing.T) {
	t.Parallel()

	for _, multiplier := range []float64{1, 2, 3, 4, 0.5} {
		for _, placement := range []int{0, -1, 6, 7, 50, 1000} {
			if got := Award(placement, multiplier, true); got != 0 {
				t.Errorf("Award(%d, %v, true) = %d, want 0", placement, multiplier, got)
			}
		}
	}
}

func TestAward_FourXOverrideTable(t *testing.T) {
	t.Parallel()

	want := map[int]int{1: 20, 2: 19, 3: 18, 4: 17, 5: 16}
	for placement, points := range want {
		if got := Award(placement, 4, true); got != points {
			t.Errorf("Award(%d, 4, true) = %d, want %d", placement, got, points)
		}
	}
}

func TestAward_LinearScalingForOtherMultipliers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		placement  int
		multiplier float64
		want       int
	}{
		{1, 2, 10},
		{5, 2, 2},
		{1, 3, 15},
		{3, 3, 9},
		{1, 0.5, 2}, // 2.5 truncated toward zero
		{2, 1.5, 6},
	}
	for _, tc := range cases {
		if got := Award(tc.placement, tc.multiplier, true); got != tc.want {
			t.Errorf("Award(%d, %v, true) = %d, want %d", tc.placement, tc.multiplier, got, tc.want)
		}
	}
}

func TestAward_NonMembersNeverEarnPoints(t *testing.T) {
	t.Parallel()

	for _, multiplier := range []float64{1, 2, 4} {
		for placement := 1; placement <= 5; placement++ {
			if got := Award(placement, multiplier, false); got != 0 {
				t.Errorf("Award(%d, %v, false) = %d, want 0", placement, multiplier, got)
			}
		}
	}
}
