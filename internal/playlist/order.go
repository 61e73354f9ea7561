// Package playlist turns a directory listing into the ordered sequence the
// browser displays and the player advances through.
package playlist

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/olivier-w/dirplay/internal/media"
	"github.com/samber/lo"
)

// Orderer orders listings. It owns the random source used for shuffling and is
// only used from the session's update loop.
type Orderer struct {
	rng *rand.Rand
}

// NewOrderer creates an Orderer drawing shuffles from src. A nil src seeds
// from the clock.
func NewOrderer(src rand.Source) *Orderer {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1|1)
	}
	return &Orderer{rng: rand.New(src)}
}

// Order returns a new slice: directories sorted by name, followed by the
// files either sorted by name or uniformly shuffled. entries is not modified.
func (o *Orderer) Order(entries []media.Entry, mode Mode) []media.Entry {
	if len(entries) == 0 {
		return []media.Entry{}
	}

	dirs, files := lo.FilterReject(entries, func(e media.Entry, _ int) bool {
		return e.IsDir()
	})
	sortByName(dirs)

	switch mode {
	case Shuffled:
		// Fisher-Yates
		for i := len(files) - 1; i > 0; i-- {
			j := o.rng.IntN(i + 1)
			files[i], files[j] = files[j], files[i]
		}
	default:
		sortByName(files)
	}

	return append(dirs, files...)
}

func sortByName(entries []media.Entry) {
	slices.SortStableFunc(entries, func(a, b media.Entry) int {
		if c := cmp.Compare(a.Name(), b.Name()); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
}
