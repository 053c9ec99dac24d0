package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ChargerTagger produces a placeholder charger tag for backend records that
// arrive without a station id. The production tag is random, which is why the
// fallback lives behind this interface rather than inside the transformer.
type ChargerTagger interface {
	ChargerTag() string
}

// RandomChargerTag mirrors the CH01..CH60 fleet naming of the backend's
// sample data.
type RandomChargerTag struct{}

func (RandomChargerTag) ChargerTag() string {
	n, err := rand.Int(rand.Reader, big.NewInt(60))
	if err != nil {
		return "CH00"
	}
	return fmt.Sprintf("CH%02d", n.Int64()+1)
}
