package grove

import (
	"testing"
)

// setupBenchScene creates a Scene with n sprites, each running the same
// looping animation.
func setupBenchScene(n int) *Scene {
	s := NewScene()
	loop := RepeatForever(Sequence(
		Ease(EaseQuadInOut, MoveBy(40, 0, 0.5)),
		Spawn(RotateBy(90, 0.5), FadeTo(0.5, 0.5)),
		Blink(0.3, 3),
		MoveBy(-40, 0, 0.5),
		FadeIn(0.2),
	))
	for i := 0; i < n; i++ {
		sp := NewSprite("sp", i)
		sp.X = float64(i%100) * 40
		sp.Y = float64(i/100) * 40
		s.Run(s.AddChild(sp), loop)
	}
	return s
}

var benchSink float64

func benchRenderer() Renderer {
	return RendererFunc(func(_ any, world Affine, opacity float64) {
		benchSink += world[4] + opacity
	})
}

func BenchmarkUpdate_10000Runs(b *testing.B) {
	s := setupBenchScene(10000)
	s.Update(1.0 / 60) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Update(1.0 / 60)
	}
}

func BenchmarkUpdate_10000Runs_LargeStep(b *testing.B) {
	s := setupBenchScene(10000)
	s.Update(1.0 / 60)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		// Crosses several sequence boundaries per tick.
		s.Update(0.7)
	}
}

func BenchmarkDraw_10000Sprites(b *testing.B) {
	s := setupBenchScene(10000)
	r := benchRenderer()
	s.Update(1.0 / 60)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Draw(Identity, r)
	}
}

func BenchmarkDraw_Nested(b *testing.B) {
	s := NewScene()
	parent := s.AddChild(NewNode("root"))
	for i := 0; i < 1000; i++ {
		n := NewSprite("child", i)
		n.SetPosition(float64(i), 0)
		id, err := s.AddChildTo(parent, n)
		if err != nil {
			b.Fatal(err)
		}
		if i%10 == 0 {
			parent = id
		}
	}
	r := benchRenderer()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Draw(Identity, r)
	}
}

func BenchmarkFrame_1000Sprites(b *testing.B) {
	s := setupBenchScene(1000)
	r := benchRenderer()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Event(Event{Kind: EventTick, DT: 1.0 / 60})
		s.Draw(Identity, r)
	}
}
