package breakout

// Panel shows the "press start" prompt or the game over screen.
type Panel struct {
	surface Surface
	atlas   *Atlas
	field   Dimensions
}

// NewPanel builds a panel drawing from atlas onto surface.
func NewPanel(surface Surface, atlas *Atlas, field Dimensions) *Panel {
	return &Panel{surface: surface, atlas: atlas, field: field}
}

// Draw renders the start prompt, or the game over text above the restart
// button when gameOver is set.
func (p *Panel) Draw(gameOver bool) {
	if !gameOver {
		p.drawCentered(SpriteStartText, 0)
		return
	}
	text := Sprites[SpriteGameOverText].Size
	restart := Sprites[SpriteRestart].Size
	gap := restart.Height / 2
	// The text and the button are stacked around the middle of the field.
	p.drawCentered(SpriteGameOverText, -(restart.Height+gap)/2)
	p.drawCentered(SpriteRestart, (text.Height+gap)/2)
}

func (p *Panel) drawCentered(name SpriteName, offsetY float64) {
	def := Sprites[name]
	pos := GetCenter(p.field, def.Size)
	pos.Y += offsetY
	dst := Rect{Position: pos, Dimensions: def.Size}.Image()
	p.surface.DrawImage(p.atlas.Image, p.atlas.Source(name), dst)
}

