//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"slices"
	"strconv"

	"cloud-shadows/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the settings panel to the right of the cookie view. Controls are
// laid out under the snapshot group that carries their key, and boolean
// parameters (the layer stack) become on/off toggles at the bottom.
type HUD struct {
	scene      core.Scene
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls []hudControlState
	toggles  []hudToggleState
	sections []hudSection

	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	enumSetter  core.EnumParameterSetter
	boolSetter  core.BoolParameterSetter

	panelOffsetX int
	title        string
	pixel        *ebiten.Image
}

type hudSection struct {
	name    string
	summary string
	top     int
}

type hudToggleState struct {
	key   string
	label string
	on    bool
	top   int
	rect  image.Rectangle
}

// NewHUD constructs a HUD for the provided scene and panel width.
func NewHUD(scene core.Scene, width int) *HUD {
	h := &HUD{scene: scene, width: max(width, 0), title: "Settings"}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if scene != nil && scene.Name() != "" {
		h.title = scene.Name() + " settings"
	}
	if provider, ok := scene.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, hudControlState{control: ctrl, value: "--"})
		}
	}
	h.intSetter, _ = scene.(core.IntParameterSetter)
	h.floatSetter, _ = scene.(core.FloatParameterSetter)
	h.enumSetter, _ = scene.(core.EnumParameterSetter)
	h.boolSetter, _ = scene.(core.BoolParameterSetter)
	return h
}

// Update pulls a fresh parameter snapshot, lays the panel out for it and
// applies any click on a button.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	provider, ok := h.scene.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	h.refreshControlValues()
	h.refreshToggles()
	h.layout()
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the cookie view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		if h.panel != nil {
			h.panel.Deallocate()
		}
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelBackground)
	h.drawPanel()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		state.hasValue = false
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			state.value = "--"
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			if parsed, err := strconv.Atoi(param.Value); err == nil {
				state.intValue = parsed
				state.floatValue = float64(parsed)
				state.value = strconv.Itoa(parsed)
				state.hasValue = true
			}
		case core.ParamTypeFloat:
			if parsed, err := strconv.ParseFloat(param.Value, 64); err == nil {
				state.floatValue = parsed
				state.value = h.formatFloat(state.control, parsed)
				state.hasValue = true
			}
		case core.ParamTypeEnum:
			state.options = param.Options
			state.optionIndex = slices.Index(param.Options, param.Value)
			state.value = param.Value
			state.hasValue = state.optionIndex >= 0
		}
		if !state.hasValue {
			state.value = "--"
		}
	}
}

// refreshToggles mirrors every boolean parameter of the snapshot, in group
// order.
func (h *HUD) refreshToggles() {
	h.toggles = h.toggles[:0]
	for _, group := range h.snapshot.Groups {
		for _, param := range group.Params {
			if param.Type != core.ParamTypeBool {
				continue
			}
			on, _ := strconv.ParseBool(param.Value)
			h.toggles = append(h.toggles, hudToggleState{key: param.Key, label: param.Label, on: on})
		}
	}
}

// layout walks the snapshot groups top to bottom. A group gets a heading when
// it holds at least one control or toggle; controls the snapshot does not
// mention are listed last under "Other".
func (h *HUD) layout() {
	h.sections = h.sections[:0]
	if h.width <= 0 {
		return
	}
	placed := make([]bool, len(h.controls))
	y := controlsTop
	toggle := 0
	for _, group := range h.snapshot.Groups {
		var rows []int
		toggles := 0
		for _, param := range group.Params {
			if param.Type == core.ParamTypeBool {
				toggles++
				continue
			}
			for i := range h.controls {
				if !placed[i] && h.controls[i].control.Key == param.Key {
					rows = append(rows, i)
					placed[i] = true
				}
			}
		}
		if len(rows) == 0 && toggles == 0 {
			continue
		}
		h.sections = append(h.sections, hudSection{name: group.Name, summary: group.Summary, top: y})
		y += sectionHeight
		for _, i := range rows {
			h.placeControl(i, y)
			y += lineHeight
		}
		for ; toggles > 0 && toggle < len(h.toggles); toggles-- {
			h.placeToggle(toggle, y)
			toggle++
			y += toggleHeight
		}
	}
	var rest []int
	for i, ok := range placed {
		if !ok {
			rest = append(rest, i)
		}
	}
	if len(rest) > 0 {
		h.sections = append(h.sections, hudSection{name: "Other", top: y})
		y += sectionHeight
		for _, i := range rest {
			h.placeControl(i, y)
			y += lineHeight
		}
	}
}

func (h *HUD) placeControl(i, top int) {
	buttonY := top + (lineHeight-buttonSize)/2
	plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
	minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
	h.controls[i].top = top
	h.controls[i].minusRect = minus
	h.controls[i].plusRect = plus
}

func (h *HUD) placeToggle(i, top int) {
	buttonY := top + (toggleHeight-buttonSize)/2
	h.toggles[i].top = top
	h.toggles[i].rect = image.Rect(h.width-panelPadding-toggleWidth, buttonY, h.width-panelPadding, buttonY+buttonSize)
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		switch {
		case pointInRect(px, my, state.minusRect):
			h.applyAdjustment(state, -1)
			return
		case pointInRect(px, my, state.plusRect):
			h.applyAdjustment(state, 1)
			return
		}
	}
	for i := range h.toggles {
		state := &h.toggles[i]
		if h.boolSetter != nil && pointInRect(px, my, state.rect) {
			if h.boolSetter.SetBoolParameter(state.key, !state.on) {
				state.on = !state.on
			}
			return
		}
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if state == nil || direction == 0 {
		return
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return
		}
		step := int(math.Round(state.control.Step))
		if step <= 0 {
			step = 1
		}
		target := state.intValue + direction*step
		if state.control.HasMin {
			min := int(math.Round(state.control.Min))
			if target < min {
				target = min
			}
		}
		if state.control.HasMax {
			max := int(math.Round(state.control.Max))
			if target > max {
				target = max
			}
		}
		if target == state.intValue {
			return
		}
		if h.intSetter.SetIntParameter(state.control.Key, target) {
			state.intValue = target
			state.floatValue = float64(target)
			state.value = strconv.Itoa(target)
		}
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return
		}
		step := state.control.Step
		if step <= 0 {
			step = 0.05
		}
		target := state.floatValue + float64(direction)*step
		if state.control.HasMin && target < state.control.Min {
			target = state.control.Min
		}
		if state.control.HasMax && target > state.control.Max {
			target = state.control.Max
		}
		if math.Abs(target-state.floatValue) < 1e-9 {
			return
		}
		if h.floatSetter.SetFloatParameter(state.control.Key, target) {
			state.floatValue = target
			state.value = h.formatFloat(state.control, target)
		}
	case core.ParamTypeEnum:
		if h.enumSetter == nil || len(state.options) < 2 {
			return
		}
		next := core.WrapIndex(state.optionIndex+direction, len(state.options))
		if h.enumSetter.SetEnumParameter(state.control.Key, state.options[next]) {
			state.optionIndex = next
			state.value = state.options[next]
		}
	}
}

func (h *HUD) drawPanel() {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	if len(h.sections) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, panelPadding+headerBaseline+infoSpacing, dimColor)
		return
	}
	for _, s := range h.sections {
		h.drawSection(s)
	}
	for i := range h.controls {
		h.drawControl(&h.controls[i])
	}
	for i := range h.toggles {
		h.drawToggle(&h.toggles[i])
	}
}

func (h *HUD) drawSection(s hudSection) {
	face := basicfont.Face7x13
	baseline := s.top + sectionHeight - 8
	text.Draw(h.panel, s.name, face, panelPadding, baseline, sectionColor)
	if s.summary != "" {
		w := text.BoundString(face, s.summary).Dx()
		text.Draw(h.panel, s.summary, face, h.width-panelPadding-w, baseline, dimColor)
	}
	h.fillRect(image.Rect(panelPadding, s.top+sectionHeight-3, h.width-panelPadding, s.top+sectionHeight-2), ruleColor)
}

func (h *HUD) drawControl(state *hudControlState) {
	if state.minusRect.Empty() {
		return
	}
	face := basicfont.Face7x13
	baseline := state.top + labelBaseline
	text.Draw(h.panel, state.control.Label, face, panelPadding, baseline, labelColor)
	valueColor := labelColor
	if !state.hasValue {
		valueColor = dimColor
	}
	valueWidth := text.BoundString(face, state.value).Dx()
	text.Draw(h.panel, state.value, face, state.minusRect.Min.X-buttonGap-valueWidth, baseline, valueColor)
	h.drawButton(state.minusRect, "-", state.hasValue && h.canAdjust(state, -1))
	h.drawButton(state.plusRect, "+", state.hasValue && h.canAdjust(state, 1))
}

// drawToggle draws a layer row: the label, dimmed while hidden, and an on/off
// button. Long labels are cut to the room left of the button.
func (h *HUD) drawToggle(state *hudToggleState) {
	if state.rect.Empty() {
		return
	}
	face := basicfont.Face7x13
	col := labelColor
	label := "off"
	if state.on {
		label = "on"
	} else {
		col = dimColor
	}
	room := state.rect.Min.X - buttonGap - panelPadding
	name := []rune(state.label)
	for len(name) > 0 && text.BoundString(face, string(name)).Dx() > room {
		name = name[:len(name)-1]
	}
	text.Draw(h.panel, string(name), face, panelPadding, state.top+toggleHeight/2+5, col)
	h.drawButton(state.rect, label, h.boolSetter != nil)
}

func (h *HUD) fillRect(rect image.Rectangle, col color.RGBA) {
	if h.pixel == nil || rect.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	if state == nil || direction == 0 {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return false
		}
		step := int(math.Round(state.control.Step))
		if step <= 0 {
			step = 1
		}
		target := state.intValue + direction*step
		if state.control.HasMin {
			min := int(math.Round(state.control.Min))
			if direction < 0 && target < min {
				return false
			}
		}
		if state.control.HasMax {
			max := int(math.Round(state.control.Max))
			if direction > 0 && target > max {
				return false
			}
		}
		return true
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return false
		}
		step := state.control.Step
		if step <= 0 {
			step = 0.05
		}
		target := state.floatValue + float64(direction)*step
		if state.control.HasMin && direction < 0 && target < state.control.Min {
			return false
		}
		if state.control.HasMax && direction > 0 && target > state.control.Max {
			return false
		}
		return true
	case core.ParamTypeEnum:
		return h.enumSetter != nil && len(state.options) > 1
	default:
		return false
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	textWidth := bounds.Dx()
	textHeight := bounds.Dy()
	x := rect.Min.X + (rect.Dx()-textWidth)/2
	y := rect.Min.Y + (rect.Dy()-textHeight)/2 + textHeight
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 2
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	default:
		precision = 1
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue    int
	floatValue  float64
	options     []string
	optionIndex int
	hasValue    bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 32
	toggleHeight   = 26
	sectionHeight  = 24
	buttonSize     = 22
	buttonGap      = 6
	toggleWidth    = 40
	headerBaseline = 18
	labelBaseline  = 21
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 10
)

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor      = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	sectionColor    = color.RGBA{R: 150, G: 190, B: 230, A: 255}
	labelColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor        = color.RGBA{R: 140, G: 140, B: 150, A: 255}
	ruleColor       = color.RGBA{R: 60, G: 64, B: 76, A: 255}
)
