package core

// LabelStrategy locates the text element serving as a label for the
// given element, or returns nil. Strategies are pure lookups over the
// full element list.
type LabelStrategy func(owner *Element, all []Element) *Element

// LabelStrategies is the ordered list of binding conventions a label
// may be attached by. All three are live compatibility surfaces:
// different producers bind labels via containerId, via boundElements,
// or only via a shared primary group. Lookup tries them in this order.
var LabelStrategies = []LabelStrategy{
	LabelByContainer,
	LabelByBoundElements,
	LabelByGroup,
}

// LabelByContainer finds a text element whose containerId points at
// the owner.
func LabelByContainer(owner *Element, all []Element) *Element {
	for i := range all {
		el := &all[i]
		if el.IsDeleted || el.Kind != KindText {
			continue
		}
		if el.ContainerID == owner.ID {
			return el
		}
	}
	return nil
}

// LabelByBoundElements follows the owner's boundElements entry of type
// "text" to the label.
func LabelByBoundElements(owner *Element, all []Element) *Element {
	for _, ref := range owner.BoundElements {
		if ref.Type != "text" {
			continue
		}
		if el := AliveByID(all, ref.ID); el != nil && el.Kind == KindText {
			return el
		}
	}
	return nil
}

// LabelByGroup finds a text element sharing the owner's primary group.
func LabelByGroup(owner *Element, all []Element) *Element {
	group := owner.PrimaryGroup()
	if group == "" {
		return nil
	}
	for i := range all {
		el := &all[i]
		if el.IsDeleted || el.Kind != KindText || el.ID == owner.ID {
			continue
		}
		if el.PrimaryGroup() == group {
			return el
		}
	}
	return nil
}

// BoundLabel returns the text element serving as the owner's label,
// trying each binding convention in priority order. Returns nil when
// no convention matches.
func BoundLabel(owner *Element, all []Element) *Element {
	for _, strategy := range LabelStrategies {
		if label := strategy(owner, all); label != nil {
			return label
		}
	}
	return nil
}

// LabelText returns the owner's label text, falling back to the
// customData label and finally to "node" so callers never see an
// undefined label.
func LabelText(owner *Element, all []Element) string {
	if owner.Kind == KindText {
		return owner.Text
	}
	if label := BoundLabel(owner, all); label != nil && label.Text != "" {
		return label.Text
	}
	if owner.CustomData != nil {
		if s, ok := owner.CustomData["label"].(string); ok && s != "" {
			return s
		}
	}
	return "node"
}
