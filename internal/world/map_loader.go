package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gridcaster/internal/logger"

	"go.uber.org/zap"
)

const (
	sectionMap     = "MAP_DATA"
	sectionSprites = "SPRITES_DATA"

	// x, y, vx, vy, dirX, dirY, isProjectile, isDestroyed, texture
	spriteFieldCount = 9
)

// loadStats counts input the loader tolerated rather than rejected.
type loadStats struct {
	droppedTokens int
	skippedLines  int
}

// LoadLevel loads a level file from disk.
func LoadLevel(path string) (*Map, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level file %s: %w", path, err)
	}
	defer file.Close()

	m, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return m, nil
}

// MustLoadLevel loads a level and panics on error
func MustLoadLevel(path string) *Map {
	m, err := LoadLevel(path)
	if err != nil {
		panic("Failed to load level: " + err.Error())
	}
	return m
}

// Parse reads the sectioned level format. [MAP_DATA] holds comma-separated
// tile rows, [SPRITES_DATA] holds one {x,y,vx,vy,dirX,dirY,proj,destroyed,tex}
// record per line. Blank lines and lines starting with # are ignored, and any
// other [HEADER] switches to a section whose lines are skipped.
func Parse(r io.Reader) (*Map, error) {
	var (
		rows    [][]uint8
		sprites []Sprite
		stats   loadStats
		section string
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		switch section {
		case sectionMap:
			if row := parseRow(line, &stats); len(row) > 0 {
				rows = append(rows, row)
			} else {
				stats.skippedLines++
			}
		case sectionSprites:
			if s, ok := parseSprite(line, &stats); ok {
				sprites = append(sprites, s)
			} else {
				stats.skippedLines++
			}
		default:
			stats.skippedLines++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading level: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrNoMapData
	}
	size := len(rows)
	cells := make([]uint8, 0, size*size)
	for i, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotSquare, i, len(row), size)
		}
		cells = append(cells, row...)
	}

	m, err := NewMap(size, cells)
	if err != nil {
		return nil, err
	}
	for _, s := range sprites {
		m.Spawn(s)
	}

	logger.Debug("level parsed",
		zap.Int("size", size),
		zap.Int("sprites", len(sprites)),
		zap.Int("dropped_tokens", stats.droppedTokens),
		zap.Int("skipped_lines", stats.skippedLines),
	)
	return m, nil
}

// parseRow keeps every token that parses as a tile code and drops the rest.
func parseRow(line string, stats *loadStats) []uint8 {
	parts := strings.Split(line, ",")
	row := make([]uint8, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			stats.droppedTokens++
			continue
		}
		row = append(row, uint8(v))
	}
	return row
}

// parseSprite accepts a record with or without surrounding braces. The line
// is rejected unless exactly spriteFieldCount numbers survive parsing.
func parseSprite(line string, stats *loadStats) (Sprite, bool) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ",")
	line = strings.TrimSuffix(strings.TrimPrefix(line, "{"), "}")

	vals := make([]float64, 0, spriteFieldCount)
	for _, p := range strings.Split(line, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			stats.droppedTokens++
			continue
		}
		vals = append(vals, v)
	}
	if len(vals) != spriteFieldCount {
		return Sprite{}, false
	}

	return Sprite{
		X:          vals[0],
		Y:          vals[1],
		VX:         vals[2],
		VY:         vals[3],
		DirX:       vals[4],
		DirY:       vals[5],
		Projectile: vals[6] != 0,
		Destroyed:  vals[7] != 0,
		Texture:    int(vals[8]),
	}, true
}
