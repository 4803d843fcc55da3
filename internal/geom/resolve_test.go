package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestResolveOverlap_NoOverlapIsNoop(t *testing.T) {
	mover := box(-1, -1, -1, 1, 1, 1)
	wall := box(5, -10, -10, 6, 10, 10)
	for i := 0; i < 5; i++ {
		corr, ok := ResolveOverlap(mover, wall)
		if ok || corr != (mgl32.Vec3{}) {
			t.Fatalf("call %d: got (%v, %v), want zero correction", i, corr, ok)
		}
		mover.Translate(corr)
	}
	if !boxApproxEqual(mover, box(-1, -1, -1, 1, 1, 1)) {
		t.Errorf("mover moved: %+v", mover)
	}
}

func TestResolveOverlap_SmallestAxis(t *testing.T) {
	tests := []struct {
		name     string
		mover    AABB
		obstacle AABB
		want     mgl32.Vec3
	}{
		{
			name:     "walked into wall along +x",
			mover:    box(-1, -1, -1, 1, 1, 1),
			obstacle: box(0.8, -10, -10, 2, 10, 10),
			want:     mgl32.Vec3{-0.2, 0, 0},
		},
		{
			name:     "walked into wall along -y",
			mover:    box(-1, -1, -1, 1, 1, 1),
			obstacle: box(-10, -3, -10, 10, -0.7, 10),
			want:     mgl32.Vec3{0, 0.3, 0},
		},
		{
			// The z correction is computed from the z extents only.
			name:     "sunk into floor",
			mover:    box(-1, -1, 0, 1, 1, 2),
			obstacle: box(-10, -10, -1, 10, 10, 0.5),
			want:     mgl32.Vec3{0, 0, 0.5},
		},
		{
			name:     "head in ceiling",
			mover:    box(-1, -1, 0, 1, 1, 2),
			obstacle: box(-10, -10, 1.75, 10, 10, 4),
			want:     mgl32.Vec3{0, 0, -0.25},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveOverlap(tt.mover, tt.obstacle)
			if !ok {
				t.Fatal("expected overlap")
			}
			if !got.ApproxEqualThreshold(tt.want, eps) {
				t.Errorf("correction = %v, want %v", got, tt.want)
			}
			// After the push the boxes at most touch.
			tt.mover.Translate(got)
			again, _ := ResolveOverlap(tt.mover, tt.obstacle)
			if again.Len() > eps {
				t.Errorf("second correction = %v, want ~0", again)
			}
		})
	}
}

func TestResolveOverlap_TiesPreferX(t *testing.T) {
	mover := box(0, 0, 0, 2, 2, 2)
	obstacle := box(1, 1, 1, 3, 3, 3)
	got, ok := ResolveOverlap(mover, obstacle)
	if !ok {
		t.Fatal("expected overlap")
	}
	if !got.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, eps) {
		t.Errorf("got %v, want push along -x", got)
	}
}
