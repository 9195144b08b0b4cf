package vertex

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned bounding box, following the same Min/Max
// convention as the teacher's actor.AABB.
type AABB struct {
	Min, Max mgl64.Vec3
}

// ContainsPoint reports whether v lies within the box, inclusive of its
// faces.
func (b AABB) ContainsPoint(v mgl64.Vec3) bool {
	return v.X() >= b.Min.X() && v.X() <= b.Max.X() &&
		v.Y() >= b.Min.Y() && v.Y() <= b.Max.Y() &&
		v.Z() >= b.Min.Z() && v.Z() <= b.Max.Z()
}

// Overlaps reports whether b and o share any point, boundaries included
// (boxes that only touch count as overlapping).
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X() <= o.Max.X() && b.Max.X() >= o.Min.X() &&
		b.Min.Y() <= o.Max.Y() && b.Max.Y() >= o.Min.Y() &&
		b.Min.Z() <= o.Max.Z() && b.Max.Z() >= o.Min.Z()
}

// Mid returns the box's center point, the split point every octree node
// partitions its children around.
func (b AABB) Mid() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Octant returns the sub-box for the given 3-bit octant index (bit 2 = X
// half, bit 1 = Y half, bit 0 = Z half), matching the index() bit-packing
// used to route a point into one of eight children.
func (b AABB) Octant(i int) AABB {
	mid := b.Mid()
	lo, hi := b.Min, b.Max
	var min, max mgl64.Vec3
	if i&(1<<2) != 0 {
		min[0], max[0] = mid.X(), hi.X()
	} else {
		min[0], max[0] = lo.X(), mid.X()
	}
	if i&(1<<1) != 0 {
		min[1], max[1] = mid.Y(), hi.Y()
	} else {
		min[1], max[1] = lo.Y(), mid.Y()
	}
	if i&1 != 0 {
		min[2], max[2] = mid.Z(), hi.Z()
	} else {
		min[2], max[2] = lo.Z(), mid.Z()
	}
	return AABB{Min: min, Max: max}
}
