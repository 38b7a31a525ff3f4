package graphics

import "math"

// Built-in texture IDs. Level files and sprite records store these numbers.
const (
	StoneWall = iota
	MossWall
	BlueWall
	Floor
	BrickWall
	WoodWall
	Ceiling
	RedWall
	Barrel
	Pillar
	Lamp
	MetalWall
	Fireball
	Guard1
	Guard2
	Guard3
	Guard4
)

// BuiltinSize is the side length of every generated texture.
const BuiltinSize = 64

type generator func(t *Texture)

var builtins = []struct {
	id   int
	name string
	gen  generator
}{
	{StoneWall, "stone_wall", stoneWall(Pack(120, 120, 124, 255))},
	{MossWall, "moss_wall", mossWall},
	{BlueWall, "blue_wall", stoneWall(Pack(60, 80, 170, 255))},
	{Floor, "floor", floorTiles},
	{BrickWall, "brick_wall", brickWall},
	{WoodWall, "wood_wall", woodWall},
	{Ceiling, "ceiling", ceilingPanels},
	{RedWall, "red_wall", redWall},
	{Barrel, "barrel", barrel},
	{Pillar, "pillar", pillar},
	{Lamp, "lamp", lamp},
	{MetalWall, "metal_wall", metalWall},
	{Fireball, "fireball", fireball},
	{Guard1, "guard_1", guard(0)},
	{Guard2, "guard_2", guard(1)},
	{Guard3, "guard_3", guard(2)},
	{Guard4, "guard_4", guard(3)},
}

// Builtin returns a registry holding the procedurally generated texture set.
// Sprite textures are drawn on the black colour key.
func Builtin() *Registry {
	r := NewRegistry()
	for _, b := range builtins {
		t, _ := NewTexture(b.name, BuiltinSize, BuiltinSize)
		b.gen(t)
		if err := r.Register(b.id, t); err != nil {
			panic("builtin texture " + b.name + ": " + err.Error())
		}
	}
	return r
}

// hash gives a stable pseudo-random byte per texel.
func hash(x, y, seed int) uint8 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + uint32(seed)*2246822519
	h = (h ^ h>>13) * 1274126177
	return uint8(h ^ h>>16)
}

// shade scales a packed colour by f in [0, 2], clamping channels.
func shade(c uint32, f float64) uint32 {
	r, g, b, a := Unpack(c)
	scale := func(v uint8) uint8 {
		s := float64(v) * f
		if s > 255 {
			return 255
		}
		if s < 1 {
			return 1
		}
		return uint8(s)
	}
	return Pack(scale(r), scale(g), scale(b), a)
}

func stoneWall(base uint32) generator {
	return func(t *Texture) {
		for y := 0; y < t.Height; y++ {
			for x := 0; x < t.Width; x++ {
				f := 0.8 + float64(hash(x/2, y/2, 1))/640
				if y%16 == 0 || (x+(y/16)*8)%32 == 0 {
					f = 0.45
				}
				t.Set(x, y, shade(base, f))
			}
		}
	}
}

func mossWall(t *Texture) {
	stoneWall(Pack(110, 110, 105, 255))(t)
	moss := Pack(50, 120, 40, 255)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			if hash(x/4, y/4, 7) < 90 {
				t.Set(x, y, shade(moss, 0.8+float64(hash(x, y, 3))/1280))
			}
		}
	}
}

func brickWall(t *Texture) {
	brick := Pack(150, 60, 45, 255)
	mortar := Pack(170, 165, 150, 255)
	for y := 0; y < t.Height; y++ {
		offset := 0
		if (y/8)%2 == 1 {
			offset = 8
		}
		for x := 0; x < t.Width; x++ {
			if y%8 == 0 || (x+offset)%16 == 0 {
				t.Set(x, y, mortar)
				continue
			}
			t.Set(x, y, shade(brick, 0.85+float64(hash(x, y, 2))/1000))
		}
	}
}

func woodWall(t *Texture) {
	wood := Pack(125, 80, 40, 255)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			if x%16 == 0 {
				t.Set(x, y, shade(wood, 0.4))
				continue
			}
			grain := 0.85 + 0.15*math.Sin(float64(y)*0.35+float64(hash(x/16, 0, 5))/20)
			t.Set(x, y, shade(wood, grain))
		}
	}
}

func metalWall(t *Texture) {
	metal := Pack(140, 150, 160, 255)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			f := 0.9 + float64(hash(x, y, 11))/2560
			switch {
			case x%32 == 0 || y%32 == 0:
				f = 0.5
			case (x%32 == 4 || x%32 == 28) && (y%32 == 4 || y%32 == 28):
				f = 1.4
			}
			t.Set(x, y, shade(metal, f))
		}
	}
}

func redWall(t *Texture) {
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			v := uint8((x*256/t.Width)^(y*256/t.Height)) | 64
			t.Set(x, y, Pack(v, 16, 16, 255))
		}
	}
}

func floorTiles(t *Texture) {
	light := Pack(112, 104, 92, 255)
	dark := Pack(84, 78, 70, 255)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			c := light
			if (x/32+y/32)%2 == 1 {
				c = dark
			}
			t.Set(x, y, shade(c, 0.92+float64(hash(x, y, 13))/1600))
		}
	}
}

func ceilingPanels(t *Texture) {
	base := Pack(70, 70, 78, 255)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			f := 1.0
			if x%32 == 0 || y%32 == 0 {
				f = 0.6
			}
			t.Set(x, y, shade(base, f))
		}
	}
}

// disc paints a filled circle; f returns the colour for a normalised radius.
func disc(t *Texture, cx, cy, radius float64, f func(r float64) uint32) {
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d <= radius {
				t.Set(x, y, f(d/radius))
			}
		}
	}
}

// rect paints the half-open box [x0,x1) x [y0,y1).
func rect(t *Texture, x0, y0, x1, y1 int, c uint32) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			t.Set(x, y, c)
		}
	}
}

func barrel(t *Texture) {
	wood := Pack(120, 75, 35, 255)
	band := Pack(90, 90, 95, 255)
	for y := 24; y < 64; y++ {
		bulge := 2 * math.Sin(float64(y-24)/40*math.Pi)
		half := 14 + bulge
		for x := 0; x < t.Width; x++ {
			dx := math.Abs(float64(x) + 0.5 - 32)
			if dx > half {
				continue
			}
			c := shade(wood, 1.1-dx/half*0.5)
			if y == 30 || y == 31 || y == 56 || y == 57 {
				c = shade(band, 1.1-dx/half*0.5)
			}
			t.Set(x, y, c)
		}
	}
}

func pillar(t *Texture) {
	stone := Pack(160, 155, 145, 255)
	rect(t, 18, 0, 46, 6, stone)
	rect(t, 18, 58, 46, 64, stone)
	for y := 6; y < 58; y++ {
		for x := 22; x < 42; x++ {
			f := 1.15 - math.Abs(float64(x)-31.5)/20
			if (x-22)%5 == 0 {
				f -= 0.2
			}
			t.Set(x, y, shade(stone, f))
		}
	}
}

func lamp(t *Texture) {
	rect(t, 31, 0, 33, 6, Pack(60, 60, 60, 255))
	rect(t, 22, 6, 42, 10, Pack(90, 90, 90, 255))
	disc(t, 32, 16, 8, func(r float64) uint32 {
		return shade(Pack(255, 230, 140, 255), 1.2-r*0.4)
	})
}

func fireball(t *Texture) {
	disc(t, 32, 32, 20, func(r float64) uint32 {
		switch {
		case r < 0.35:
			return Pack(255, 250, 200, 255)
		case r < 0.7:
			return Pack(255, 180, 40, 255)
		default:
			return Pack(220, 70, 10, 255)
		}
	})
}

// guard draws a standing figure; frame moves arms and legs.
func guard(frame int) generator {
	uniform := Pack(70, 100, 70, 255)
	skin := Pack(220, 180, 140, 255)
	boot := Pack(50, 35, 25, 255)
	swing := []int{0, 3, 0, -3}[frame%4]
	return func(t *Texture) {
		disc(t, 32, 12, 6, func(float64) uint32 { return skin })
		rect(t, 24, 18, 40, 40, uniform)
		rect(t, 18, 20+swing, 23, 36+swing, uniform)
		rect(t, 41, 20-swing, 46, 36-swing, uniform)
		rect(t, 25+swing/2, 40, 31+swing/2, 58, uniform)
		rect(t, 33-swing/2, 40, 39-swing/2, 58, uniform)
		rect(t, 24+swing/2, 58, 31+swing/2, 62, boot)
		rect(t, 33-swing/2, 58, 40-swing/2, 62, boot)
	}
}
