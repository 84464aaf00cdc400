package donut

const (
	captionOffset = -2.0
	valueOffset   = 15.0
)

// LabelRenderer draws the two lines at the center of a chart: a caption and
// the formatted value.
type LabelRenderer struct {
	parent Node
	group  Node
}

func NewLabelRenderer(parent Node) *LabelRenderer {
	return &LabelRenderer{
		parent: parent,
	}
}

// Redraw replaces the current label with a new one. There is never more than
// one label group under the parent.
func (r *LabelRenderer) Redraw(caption string, value Value, pre, post string) {
	if r.group != nil {
		r.group.Remove()
	}
	r.group = r.parent.Group("label-group")
	r.group.Text(caption, "label", captionOffset)
	r.group.Text(pre+value.String()+post, "label-value", valueOffset)
}

// Clear removes the label without drawing a new one.
func (r *LabelRenderer) Clear() {
	if r.group == nil {
		return
	}
	r.group.Remove()
	r.group = nil
}
