package color

import (
	"hash/fnv"
	"math"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Hash derives a color from s's content, so the same key (a log source, the
// results) always gets the same color.
func Hash(s string) lipgloss.AdaptiveColor {
	return globalColorer.hash(s)
}

var globalColorer = &colorer{
	colorCache: map[string]lipgloss.AdaptiveColor{},
}

type colorer struct {
	mu         sync.Mutex
	colorCache map[string]lipgloss.AdaptiveColor
}

func (c *colorer) hash(s string) lipgloss.AdaptiveColor {
	c.mu.Lock()
	defer c.mu.Unlock()

	if color, ok := c.colorCache[s]; ok {
		return color
	}
	hue := float64(fnvHash(s)) / float64(math.MaxUint32)
	c.colorCache[s] = lipgloss.AdaptiveColor{
		Dark:  string(hsl{hue, 1.0, 0.7}.rgb().hex()),
		Light: string(hsl{hue, 1.0, 0.3}.rgb().hex()),
	}
	return c.colorCache[s]
}

func fnvHash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
