package ecs_test

import (
	"fmt"

	"github.com/plus3/lumen/ecs"
)

func ExampleEach2() {
	type Pos struct{ X, Y float64 }
	type Vel struct{ DX, DY float64 }

	w := ecs.NewWorld()

	mover := w.CreateEntity()
	ecs.Add(w, mover, Pos{X: 0, Y: 0})
	ecs.Add(w, mover, Vel{DX: 2, DY: 1})

	scenery := w.CreateEntity()
	ecs.Add(w, scenery, Pos{X: 50, Y: 50})

	// Only entities holding both components are visited.
	dt := 0.5
	ecs.Each2(w, func(_ ecs.EntityId, p *Pos, v *Vel) {
		p.X += v.DX * dt
		p.Y += v.DY * dt
	})

	p := ecs.MustGet[Pos](w, mover)
	fmt.Printf("mover at (%.1f, %.1f)\n", p.X, p.Y)
	fmt.Printf("scenery at (%.1f, %.1f)\n", ecs.MustGet[Pos](w, scenery).X, ecs.MustGet[Pos](w, scenery).Y)
	// Output:
	// mover at (1.0, 0.5)
	// scenery at (50.0, 50.0)
}

func ExampleWorld_DestroyEntity() {
	type Health struct{ HP int }

	w := ecs.NewWorld()
	id := w.CreateEntity()
	ecs.Add(w, id, Health{HP: 10})

	fmt.Println("alive:", w.Alive(id))
	fmt.Println("destroyed:", w.DestroyEntity(id))

	// The handle is stale now, even though the slot will be reused.
	reused := w.CreateEntity()
	fmt.Println("slot reused:", reused.Index() == id.Index())
	fmt.Println("old handle alive:", w.Alive(id))
	// Output:
	// alive: true
	// destroyed: true
	// slot reused: true
	// old handle alive: false
}
