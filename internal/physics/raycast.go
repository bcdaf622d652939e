package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"render3d/internal/engine"
)

type Ray struct {
	Origin    rl.Vector3
	Direction rl.Vector3
}

// NewRay normalizes direction.
func NewRay(origin, direction rl.Vector3) Ray {
	return Ray{Origin: origin, Direction: rl.Vector3Normalize(direction)}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) rl.Vector3 {
	return rl.Vector3Add(r.Origin, rl.Vector3Scale(r.Direction, t))
}

// Transform maps the ray through m. The direction is not renormalized, so a
// parameter t names the same point before and after the transform.
func (r Ray) Transform(m rl.Matrix) Ray {
	o := rl.Vector3Transform(r.Origin, m)
	tip := rl.Vector3Transform(rl.Vector3Add(r.Origin, r.Direction), m)
	return Ray{Origin: o, Direction: rl.Vector3Subtract(tip, o)}
}

type RaycastHit struct {
	Entity   *engine.Entity
	Collider Collider
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Collider is a shape that can be hit by rays and overlap other colliders.
// Implementations raycast in their own local space.
type Collider interface {
	engine.Component
	Raycast(ray Ray, maxDistance float32) (RaycastHit, bool)
	WorldAABB() AABB
}

// RaycastLocal casts a world ray against a shape defined in the local space
// of world. hitLocal receives the local ray and returns the hit parameter
// and local normal. The result is reported in world space.
func RaycastLocal(ray Ray, world rl.Matrix, maxDistance float32, hitLocal func(local Ray) (float32, rl.Vector3, bool)) (RaycastHit, bool) {
	inv := rl.MatrixInvert(world)
	t, n, ok := hitLocal(ray.Transform(inv))
	if !ok || t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}
	normal := rl.Vector3Normalize(rl.Vector3Transform(n, rl.MatrixTranspose(inv)))
	return RaycastHit{Point: ray.At(t), Normal: normal, Distance: t}, true
}

// RayBox intersects a ray with the box [min, max] using the slab method.
// A ray starting inside the box hits the far side.
func RayBox(r Ray, min, max rl.Vector3) (float32, rl.Vector3, bool) {
	tmin, tmax := math32.Inf(-1), math32.Inf(1)
	var nearAxis, farAxis int
	var nearSign, farSign float32

	o := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{min.X, min.Y, min.Z}
	hi := [3]float32{max.X, max.Y, max.Z}

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, rl.Vector3{}, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		// Outward normals of the entry and exit faces on this axis.
		s1, s2 := float32(-1), float32(1)
		if t1 > t2 {
			t1, t2 = t2, t1
			s1, s2 = s2, s1
		}
		if t1 > tmin {
			tmin, nearAxis, nearSign = t1, i, s1
		}
		if t2 < tmax {
			tmax, farAxis, farSign = t2, i, s2
		}
		if tmin > tmax {
			return 0, rl.Vector3{}, false
		}
	}
	if tmax < 0 {
		return 0, rl.Vector3{}, false
	}

	t, axis, sign := tmin, nearAxis, nearSign
	if t < 0 {
		// Origin inside; report the exit face.
		t, axis, sign = tmax, farAxis, farSign
	}
	var n [3]float32
	n[axis] = sign
	return t, rl.Vector3{X: n[0], Y: n[1], Z: n[2]}, true
}

// RaySphere intersects a ray with a sphere. The direction need not be unit
// length.
func RaySphere(r Ray, center rl.Vector3, radius float32) (float32, rl.Vector3, bool) {
	oc := rl.Vector3Subtract(r.Origin, center)
	a := rl.Vector3DotProduct(r.Direction, r.Direction)
	b := 2 * rl.Vector3DotProduct(oc, r.Direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 || a == 0 {
		return 0, rl.Vector3{}, false
	}
	sq := math32.Sqrt(disc)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 {
		return 0, rl.Vector3{}, false
	}
	normal := rl.Vector3Normalize(rl.Vector3Subtract(r.At(t), center))
	return t, normal, true
}

// RayPlane intersects a ray with the plane normal·p = distance. Only the
// front face is hit.
func RayPlane(r Ray, normal rl.Vector3, distance float32) (float32, rl.Vector3, bool) {
	denom := rl.Vector3DotProduct(normal, r.Direction)
	if denom >= 0 {
		return 0, rl.Vector3{}, false
	}
	t := (distance - rl.Vector3DotProduct(normal, r.Origin)) / denom
	if t < 0 {
		return 0, rl.Vector3{}, false
	}
	return t, normal, true
}

// Raycast returns the closest collider hit in scene among entities that are
// active in the hierarchy and on a layer in mask.
func Raycast(scene *engine.Scene, ray Ray, maxDistance float32, mask engine.Layer) (RaycastHit, bool) {
	best := RaycastHit{Distance: maxDistance}
	found := false
	if scene == nil {
		return best, false
	}
	ray.Direction = rl.Vector3Normalize(ray.Direction)

	scene.Traverse(func(e *engine.Entity) bool {
		if !e.IsActiveInHierarchy() || !e.Layer.Has(mask) {
			return true
		}
		for _, c := range engine.GetComponents[Collider](e) {
			if !c.Enabled() {
				continue
			}
			hit, ok := c.Raycast(ray, best.Distance)
			if ok && hit.Distance <= best.Distance {
				hit.Entity = e
				hit.Collider = c
				best = hit
				found = true
			}
		}
		return true
	})
	return best, found
}

// Overlaps reports whether two colliders touch. Boxes that can describe
// themselves as OBBs are tested with SAT, everything else by world AABB.
func Overlaps(a, b Collider) bool {
	if !a.WorldAABB().Intersects(b.WorldAABB()) {
		return false
	}
	ao, aok := a.(interface{ WorldOBB() OBB })
	bo, bok := b.(interface{ WorldOBB() OBB })
	as, asok := a.(interface{ WorldSphere() (rl.Vector3, float32) })
	bs, bsok := b.(interface{ WorldSphere() (rl.Vector3, float32) })
	switch {
	case aok && bok:
		return ao.WorldOBB().IntersectsOBB(bo.WorldOBB())
	case aok && bsok:
		c, r := bs.WorldSphere()
		return ao.WorldOBB().IntersectsSphere(c, r)
	case asok && bok:
		c, r := as.WorldSphere()
		return bo.WorldOBB().IntersectsSphere(c, r)
	case asok && bsok:
		ca, ra := as.WorldSphere()
		cb, rb := bs.WorldSphere()
		return rl.Vector3Distance(ca, cb) <= ra+rb
	}
	return true
}
