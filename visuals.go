package fizz

import "github.com/go-gl/mathgl/mgl64"

// VisualRecord is the drawn state a sink keeps for one visual entity.
type VisualRecord struct {
	ID         VisualID
	Mesh       *Mesh
	Appearance Appearance
	Transform  Transform
}

// ScreenQuad returns the record's quad corners in viewport pixels, in the
// order top-left, top-right, bottom-left, bottom-right. The quad is centered
// on the record's position and sized by its appearance.
func (r *VisualRecord) ScreenQuad(cam Camera) [4]mgl64.Vec2 {
	hw, hh := r.Appearance.Size.X()/2, r.Appearance.Size.Y()/2
	pos := r.Transform.Translation
	// World Y points up, so the top edge is +hh.
	lx := [4]float64{-hw, hw, -hw, hw}
	ly := [4]float64{hh, hh, -hh, -hh}
	var q [4]mgl64.Vec2
	for i := range q {
		q[i] = cam.WorldToScreen(mgl64.Vec3{pos.X() + lx[i], pos.Y() + ly[i], pos.Z()})
	}
	return q
}

// Visible reports whether the record would draw anything.
func (r *VisualRecord) Visible() bool {
	return r.Appearance.Size.X() > 0 && r.Appearance.Size.Y() > 0 && r.Appearance.Color.A > 0
}

// VisualTable is sink-side bookkeeping for visual entities. It implements
// Sink and keeps records in creation order. The zero value is ready to use.
// Meshes are referenced, never released; their owner releases them.
type VisualTable struct {
	records []VisualRecord
	index   map[VisualID]int
	nextID  VisualID
}

// CreateVisual implements Sink.
func (t *VisualTable) CreateVisual(mesh *Mesh, a Appearance, tr Transform) VisualID {
	if t.index == nil {
		t.index = make(map[VisualID]int)
	}
	t.nextID++
	t.index[t.nextID] = len(t.records)
	t.records = append(t.records, VisualRecord{ID: t.nextID, Mesh: mesh, Appearance: a, Transform: tr})
	return t.nextID
}

// DestroyVisual implements Sink. Unknown ids are ignored.
func (t *VisualTable) DestroyVisual(id VisualID) {
	i, ok := t.index[id]
	if !ok {
		return
	}
	delete(t.index, id)
	// Keep creation order.
	copy(t.records[i:], t.records[i+1:])
	t.records[len(t.records)-1] = VisualRecord{}
	t.records = t.records[:len(t.records)-1]
	for j := i; j < len(t.records); j++ {
		t.index[t.records[j].ID] = j
	}
}

// SetAppearance implements Sink.
func (t *VisualTable) SetAppearance(id VisualID, c Color, size mgl64.Vec2) {
	if i, ok := t.index[id]; ok {
		t.records[i].Appearance = Appearance{Color: c, Size: size}
	}
}

// SetTransform implements Sink.
func (t *VisualTable) SetTransform(id VisualID, tr Transform) {
	if i, ok := t.index[id]; ok {
		t.records[i].Transform = tr
	}
}

// Len returns the number of live visuals.
func (t *VisualTable) Len() int {
	return len(t.records)
}

// Lookup returns the record for id.
func (t *VisualTable) Lookup(id VisualID) (VisualRecord, bool) {
	i, ok := t.index[id]
	if !ok {
		return VisualRecord{}, false
	}
	return t.records[i], true
}

// Each calls fn for every record in creation order. fn must not create or
// destroy visuals.
func (t *VisualTable) Each(fn func(r *VisualRecord)) {
	for i := range t.records {
		fn(&t.records[i])
	}
}
